// Copyright (c) 2025 The btorcore Authors
// SPDX-License-Identifier: MIT

package btorcore

import "github.com/exprdag/btorcore/internal/bv"

// This file is the read-only query surface spec §6 calls
// "Introspection" and "Lookup": every public accessor that does not
// mutate the DAG lives here, mirroring the teacher's noder/noderiface
// split (internal read/write interfaces around *node[V]) narrowed to
// just the read half, since this core's "writers" are the typed
// constructors elsewhere, not a generic node mutator.

// Kind returns h's operator kind, after resolving any proxy forwarding.
func (c *Context) Kind(h Handle) Kind {
	return c.mustResolve(c.forward(h)).kind
}

// Sort returns h's result sort.
func (c *Context) Sort(h Handle) SortID {
	return c.mustResolve(c.forward(h)).sort
}

// WidthOf returns h's bit-width; h must be BV-sorted.
func (c *Context) WidthOf(h Handle) uint32 {
	return c.Width(c.Sort(h))
}

// ArityOf reports how many child edges h carries. For an Args node this
// is the node's own physical arity (≤3), not the logical argument
// count of a chunked chain — see args.go.
func (c *Context) ArityOf(h Handle) int {
	return int(c.mustResolve(c.forward(h)).arity)
}

// Child returns h's i'th child edge (0-indexed), composing h's own
// inversion tag is the caller's responsibility: Child returns the
// stored edge exactly as the node holds it.
func (c *Context) Child(h Handle, i int) Handle {
	n := c.mustResolve(c.forward(h))
	if i < 0 || i >= int(n.arity) {
		c.violationf("Child: index %d out of range for node %d (arity %d)", i, n.id, n.arity)
	}
	return n.children[i]
}

// IsArray reports whether h is array-typed (spec §4.5.4).
func (c *Context) IsArray(h Handle) bool {
	return c.mustResolve(c.forward(h)).isArrayNode()
}

// IsInverted reports whether h itself (before forwarding) carries the
// inversion tag — unlike most queries here, this one deliberately does
// not forward first, since inversion is a property of the edge the
// caller is holding, not of the underlying node.
func (c *Context) IsInverted(h Handle) bool {
	return h.Inverted()
}

// IsParameterized reports whether h transitively contains an unbound parameter.
func (c *Context) IsParameterized(h Handle) bool {
	return c.mustResolve(c.forward(h)).isParameterized()
}

// GetBits returns the constant value stored at h, which must resolve
// to a BvConst node (accounting for inversion — a constant and its
// bitwise complement share one allocated node, constructors.go).
func (c *Context) GetBits(h Handle) bv.Value {
	h = c.forward(h)
	n := c.mustResolve(h)
	if n.kind != BvConst {
		c.violationf("GetBits: node %d is not a BvConst", n.id)
	}
	if h.Inverted() {
		return *n.bvInv
	}
	return *n.bvVal
}

// GetSymbol returns the declared name of h (BvVar/Uf/Param/Lambda), or
// "" if it was declared anonymously.
func (c *Context) GetSymbol(h Handle) string {
	return c.mustResolve(c.forward(h)).symbol
}

// NodeByID looks up a node by its dense arena id and returns an owning
// handle, or the zero Handle if the id is out of range, freed, or the
// reserved null slot.
func (c *Context) NodeByID(id uint64) Handle {
	n := c.getNode(id)
	if n == nil {
		return Handle(0)
	}
	n.refs++
	return handleFor(n.id, false, 0)
}

// NodeBySymbol looks up a previously declared BvVar/Uf/Param/Lambda by
// its symbol and returns an owning handle, or the zero Handle if no
// live node carries that symbol.
func (c *Context) NodeBySymbol(symbol string) Handle {
	id, ok := c.node2symbol[symbol]
	if !ok {
		return Handle(0)
	}
	return c.NodeByID(id)
}

// Match resolves a handle obtained from a different rewriting phase
// (spec §6: "match(handle_from_other_phase)") against this context's
// current arena state: it forwards through any proxy chain and, if
// the terminal node is still live, returns a fresh owning reference to
// it; otherwise the zero Handle.
func (c *Context) Match(h Handle) Handle {
	if c.resolve(h) == nil {
		return Handle(0)
	}
	h = c.forward(h)
	n := c.resolve(h)
	if n == nil {
		return Handle(0)
	}
	n.refs++
	return h
}

// RefCount reports h's current strong reference count, exposed for
// tests and for Stats-style diagnostics (spec §8 "ref conservation").
func (c *Context) RefCount(h Handle) uint32 {
	return c.mustResolve(h).refs
}

// ParentCount reports how many edges currently point at h.
func (c *Context) ParentCount(h Handle) uint32 {
	return c.mustResolve(h).parents
}
