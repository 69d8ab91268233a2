// Copyright (c) 2025 The btorcore Authors
// SPDX-License-Identifier: MIT

package btorcore

// Rewriter, BetaReducer and Blaster are the three external hook
// contracts the expression core calls out to (spec §6). None of them
// are implemented in this package: the core only defines the contract
// and the calling convention. A caller that wants simplification,
// beta-reduction under binders, or CNF encoding supplies an
// implementation via WithRewriter/WithBetaReducer/WithBlaster.
//
// Spec §6 is explicit that these hooks must never return a
// recoverable error: a hook that cannot do its job must panic. The
// core does not recover such a panic; it propagates unchanged out of
// the constructor that called the hook. hookFailed (errors.go) wraps a
// hook error in a *ViolationError and panics; no core path calls it.

// Rewriter is consulted by every compound constructor once the
// rewrite level (Context.rewriteLevel) is greater than zero. It is
// given the kind being constructed, the sort it would receive, and
// its already-hash-consed children, and may return a different
// Handle to use instead of allocating a fresh node — typically an
// existing, semantically equal node found via term-level
// simplification (constant folding, De Morgan, etc).
//
// A Rewriter that has no simplification to offer returns the zero
// Handle; the core then proceeds to its normal hash-cons/allocate path.
type Rewriter interface {
	Rewrite(c *Context, kind Kind, sort SortID, children []Handle) Handle
}

// BetaReducer performs substitution of a Lambda's bound parameter by
// an argument inside the Lambda's body. It must be idempotent: reducing
// an already-reduced term returns it unchanged. A Context keeps the one
// installed with WithBetaReducer, but no constructor calls it: Apply
// always builds a suspended Apply node.
type BetaReducer interface {
	BetaReduce(c *Context, lambda Handle, arg Handle) Handle
}

// Blaster bit-blasts a node into its CNF/AIG encoding and returns an
// opaque token; Node.av is the slot for such a token. No core path
// calls Blast, so this package only ever clears av, never fills it.
// The core calls Invalidate for a node whose av is set when that node
// is proxied (SetToProxy, proxy.go) or torn down (teardownNode,
// release.go), in both cases before its children are disconnected;
// in SetToProxy this also drops the old av before the forwarding edge
// is installed, so a second bit-blast pass cannot observe stale state
// through the old node.
type Blaster interface {
	Blast(c *Context, h Handle) any
	Invalidate(c *Context, h Handle)
}
