// Copyright (c) 2025 The btorcore Authors
// SPDX-License-Identifier: MIT

package btorcore

import "fmt"

// SortID is an interned, reference-counted type descriptor (spec
// §4.1). Id 0 is reserved and never returned by a constructor.
type SortID uint32

// sortKind enumerates the five sort shapes the registry interns.
type sortKind uint8

const (
	sortBool sortKind = iota
	sortBV
	sortTuple
	sortFun
	sortArray
)

// sortRec is the interned representation of one sort. Tuple sorts
// store their element sorts in elems; Fun sorts store the domain
// tuple's id in domain and the codomain in codomain; Array is a Fun
// sort of arity 1 with the isArray flag set, exactly as spec §4.1
// defines it ("array(idx, elt) = fun(tuple(idx), elt) + is_array flag").
type sortRec struct {
	kind     sortKind
	width    uint32   // BV only
	elems    []SortID // Tuple only
	domain   SortID   // Fun/Array only: the domain tuple sort
	codomain SortID   // Fun/Array only
	isArray  bool
	refs     int
}

// sortKey is the structural fingerprint used to dedup sorts; it is
// comparable so it works directly as a Go map key, unlike Node's
// fingerprint which must mix variable-length child lists via a hash.
type sortKey struct {
	kind          sortKind
	width         uint32
	domain        SortID
	codomain      SortID
	elemsFirst    SortID // first two elems inlined to keep the common
	elemsSecond   SortID // (0,1,2-ary tuple) case allocation-free
	elemsOverflow string // remaining elems joined, only for arity > 2
}

func keyOf(r *sortRec) sortKey {
	k := sortKey{kind: r.kind, width: r.width, domain: r.domain, codomain: r.codomain}
	if len(r.elems) > 0 {
		k.elemsFirst = r.elems[0]
	}
	if len(r.elems) > 1 {
		k.elemsSecond = r.elems[1]
	}
	if len(r.elems) > 2 {
		k.elemsOverflow = fmt.Sprint(r.elems[2:])
	}
	return k
}

// sortTable is the sort registry: a growable id table plus an index
// from structural fingerprint to id, mirroring the node arena/unique
// table split (arena.go/unique.go) at a much smaller scale.
type sortTable struct {
	recs  []*sortRec // slot 0 reserved
	index map[sortKey]SortID
}

func newSortTable() *sortTable {
	return &sortTable{
		recs:  make([]*sortRec, 1, 64),
		index: make(map[sortKey]SortID, 64),
	}
}

func (t *sortTable) rec(id SortID) *sortRec {
	return t.recs[id]
}

// intern looks up r's structural key and either bumps the existing
// record's own refcount, or installs r as a brand-new record with a
// refcount of 1. It reports whether a new record was installed: on a
// cache hit, r's referenced child sorts (elems/domain/codomain)
// already have their one reference accounted for by whichever earlier
// call first created the record, so the caller must not increment
// them again — doing so on every hit would never be balanced by a
// matching decrement in releaseSort, which only walks a record's
// children once, when that record's own refcount reaches zero.
func (t *sortTable) intern(r *sortRec) (SortID, bool) {
	key := keyOf(r)
	if id, ok := t.index[key]; ok {
		t.recs[id].refs++
		return id, false
	}
	id := SortID(len(t.recs))
	t.recs = append(t.recs, r)
	t.index[key] = id
	r.refs = 1
	return id, true
}

// Bool returns the Boolean sort.
func (c *Context) Bool() SortID {
	id, _ := c.sorts.intern(&sortRec{kind: sortBool})
	return id
}

// BV returns the sort of bit-vectors of the given width. width must
// be > 0 (spec §7: width-zero bit-vector is a contract violation).
func (c *Context) BV(width uint32) SortID {
	if width == 0 {
		c.violationf("BV: width must be > 0")
	}
	id, _ := c.sorts.intern(&sortRec{kind: sortBV, width: width})
	return id
}

// Tuple returns the sort of fixed tuples of the given element sorts.
// Each elems[i] is borrowed, not consumed: Tuple takes its own
// reference on the elements only the first time this particular tuple
// shape is created, leaving the caller's own reference to elems[i]
// untouched either way.
func (c *Context) Tuple(elems ...SortID) SortID {
	cp := append([]SortID(nil), elems...)
	id, isNew := c.sorts.intern(&sortRec{kind: sortTuple, elems: cp})
	if isNew {
		for _, e := range cp {
			c.sorts.rec(e).refs++
		}
	}
	return id
}

// Fun returns the sort of functions from domain (a tuple sort) to
// codomain. Both are borrowed: Fun takes its own reference on them
// only the first time this (domain, codomain) pair is created.
func (c *Context) Fun(domain, codomain SortID) SortID {
	if c.sorts.rec(domain).kind != sortTuple {
		c.violationf("Fun: domain sort %d is not a tuple sort", domain)
	}
	id, isNew := c.sorts.intern(&sortRec{kind: sortFun, domain: domain, codomain: codomain})
	if isNew {
		c.sorts.rec(domain).refs++
		c.sorts.rec(codomain).refs++
	}
	return id
}

// Array returns the sort of arrays from idx to elt: a Fun sort of
// arity 1 with isArray set (spec §4.1). elt is borrowed like Fun's
// codomain; idx is consumed internally via Tuple's own scratch
// reference, which is released once the array record's structural
// reference (taken on first creation, same as Fun's) is in place.
func (c *Context) Array(idx, elt SortID) SortID {
	dom := c.Tuple(idx)
	id, isNew := c.sorts.intern(&sortRec{kind: sortArray, domain: dom, codomain: elt, isArray: true})
	if isNew {
		c.sorts.rec(dom).refs++
		c.sorts.rec(elt).refs++
	}
	c.releaseSort(dom)
	return id
}

// Width returns the bit-width of a BV sort.
func (c *Context) Width(s SortID) uint32 {
	r := c.sorts.rec(s)
	if r.kind != sortBV {
		c.violationf("Width: sort %d is not a bit-vector sort", s)
	}
	return r.width
}

// Arity returns the number of elements of a Tuple sort, or the
// declared arity of a Fun/Array sort's domain tuple.
func (c *Context) Arity(s SortID) int {
	r := c.sorts.rec(s)
	switch r.kind {
	case sortTuple:
		return len(r.elems)
	case sortFun, sortArray:
		return c.Arity(r.domain)
	default:
		c.violationf("Arity: sort %d has no arity", s)
		return 0
	}
}

// Domain returns the domain tuple sort of a Fun/Array sort.
func (c *Context) Domain(s SortID) SortID {
	r := c.sorts.rec(s)
	if r.kind != sortFun && r.kind != sortArray {
		c.violationf("Domain: sort %d is not a function sort", s)
	}
	return r.domain
}

// Codomain returns the result sort of a Fun/Array sort.
func (c *Context) Codomain(s SortID) SortID {
	r := c.sorts.rec(s)
	if r.kind != sortFun && r.kind != sortArray {
		c.violationf("Codomain: sort %d is not a function sort", s)
	}
	return r.codomain
}

// Element returns the element sort of an Array sort.
func (c *Context) Element(s SortID) SortID {
	r := c.sorts.rec(s)
	if r.kind != sortArray {
		c.violationf("Element: sort %d is not an array sort", s)
	}
	return r.codomain
}

// Index returns the index sort of an Array sort.
func (c *Context) Index(s SortID) SortID {
	r := c.sorts.rec(s)
	if r.kind != sortArray {
		c.violationf("Index: sort %d is not an array sort", s)
	}
	return c.sorts.rec(r.domain).elems[0]
}

// IsArraySort reports whether s was built by Array (as opposed to a
// general Fun sort of the same shape).
func (c *Context) IsArraySort(s SortID) bool {
	return c.sorts.rec(s).isArray
}

// releaseSort drops one reference to s, recursively releasing any
// sort it was built from once its own refcount reaches zero. Sorts
// are never referenced by a live node's SortID after the node itself
// is freed (release.go calls this from the node release path).
func (c *Context) releaseSort(s SortID) {
	r := c.sorts.rec(s)
	r.refs--
	if r.refs > 0 {
		return
	}
	delete(c.sorts.index, keyOf(r))
	switch r.kind {
	case sortTuple:
		for _, e := range r.elems {
			c.releaseSort(e)
		}
	case sortFun, sortArray:
		c.releaseSort(r.domain)
		c.releaseSort(r.codomain)
	}
}
