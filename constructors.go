// Copyright (c) 2025 The btorcore Authors
// SPDX-License-Identifier: MIT

package btorcore

import "github.com/exprdag/btorcore/internal/bv"

// forward walks h's `simplified` chain to its terminal replacement
// (spec §3.4 invariant 5, §4.5 step 1), composing the inversion tag of
// every hop along the way. A terminal node is one that either is not
// Proxy or has a null `simplified`.
func (c *Context) forward(h Handle) Handle {
	for {
		n := c.mustResolve(h)
		if n.kind != Proxy || n.simplified.IsNull() {
			return h
		}
		target := n.simplified
		if h.Inverted() {
			target = target.Not()
		}
		h = target.withPosition(h.Position())
	}
}

func sameChildren(a [3]Handle, b []Handle) bool {
	for i := range b {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// mkOp runs the common tail of the constructor pipeline (spec §4.5
// steps 4-6) once a concrete kind's constructor has already forwarded
// its inputs, checked preconditions, computed the result sort, and
// (for commutative kinds) normalised child order. It is not used for
// BvConst (which canonicalises by inversion, not child order) or for
// Lambda (which hashes by traversal, not by a children-tuple mix).
func (c *Context) mkOp(kind Kind, sort SortID, children ...Handle) Handle {
	if c.rewriteLevel > 0 && c.rewriter != nil {
		if rw := c.rewriter.Rewrite(c, kind, sort, children); !rw.IsNull() {
			c.releaseSort(sort)
			return rw
		}
	}

	hash := fingerprintOp(kind, children)
	arity := len(children)
	if found := c.unique.lookup(hash, func(n *Node) bool {
		return n.kind == kind && n.sort == sort && int(n.arity) == arity && sameChildren(n.children, children)
	}); found != nil {
		found.refs++
		c.releaseSort(sort)
		return handleFor(found.id, false, 0)
	}

	n := c.allocNode()
	n.kind = kind
	n.sort = sort
	n.arity = uint8(arity)
	n.refs = 1
	n.hash = hash
	for i, ch := range children {
		c.connect(n, uint8(i), ch)
	}
	switch kind {
	case Apply:
		n.flags.set(flagApplyBelow)
	case Lambda:
		n.flags.set(flagLambdaBelow)
	}
	c.unique.insert(n)
	return handleFor(n.id, false, 0)
}

// orderCommutative returns a, b reordered so the lower-id operand
// comes first (spec §3.4 invariant 7), breaking ties on the full
// handle (inversion/position) so the ordering is still a total order
// when both operands resolve to the same node.
func orderCommutative(a, b Handle) (Handle, Handle) {
	if a.ID() > b.ID() || (a.ID() == b.ID() && a > b) {
		return b, a
	}
	return a, b
}

func (c *Context) sortOf(h Handle) SortID {
	return c.mustResolve(h).sort
}

func (c *Context) requireBVWidth(h Handle) uint32 {
	s := c.sortOf(h)
	return c.Width(s) // Width itself violates if s is not a BV sort
}

func (c *Context) requireSameSort(a, b Handle) SortID {
	sa, sb := c.sortOf(a), c.sortOf(b)
	if sa != sb {
		c.violationf("sort mismatch: %d vs %d", sa, sb)
	}
	return sa
}

// requireBoolOrBV accepts the "And" kind's polymorphism (spec §4.1's
// registry keeps a distinct Bool sort alongside BV(w); the original
// system has no such split and treats logical conjunction and bitwise
// AND as the same AIG-level operation regardless of width — see
// DESIGN.md's Open Question resolution for how that's reconciled
// here): both operands must carry the identical sort, and that sort
// must be Bool or a BV sort of any width.
func (c *Context) requireBoolOrBV(a, b Handle) SortID {
	s := c.requireSameSort(a, b)
	r := c.sorts.rec(s)
	if r.kind != sortBool && r.kind != sortBV {
		c.violationf("And: operand sort %d is neither Bool nor BV", s)
	}
	return s
}

// BvConst interns a bit-vector constant (spec §4.5 step 3): the LSB of
// the *stored* value is always clear. A value whose LSB is set is
// stored as its bitwise complement and returned through an inverted
// handle, so a constant and its complement always share one allocated
// node. Grounded on original_source/src/btorexp.c's btor_const_exp.
func (c *Context) BvConst(v bv.Value) Handle {
	width := v.Width()
	if width == 0 {
		c.violationf("BvConst: width must be > 0")
	}
	inv := v.Bit(0)
	canon := v
	if inv {
		canon = v.Not()
	}
	hash := fingerprintBvConst(&canon)
	if found := c.unique.lookup(hash, func(n *Node) bool {
		return n.kind == BvConst && n.bvVal.Width() == width && n.bvVal.Equal(canon)
	}); found != nil {
		found.refs++
		return handleFor(found.id, inv, 0)
	}

	n := c.allocNode()
	n.kind = BvConst
	n.sort = c.BV(width)
	n.refs = 1
	n.hash = hash
	cv := canon
	n.bvVal = &cv
	invv := canon.Not()
	n.bvInv = &invv
	c.unique.insert(n)
	return handleFor(n.id, inv, 0)
}

// BvVar declares a fresh bit-vector variable. Variables are never
// hash-consed (spec §4.4): every call allocates a new node, even with
// an identical width and symbol.
func (c *Context) BvVar(width uint32, symbol string) Handle {
	n := c.allocNode()
	n.kind = BvVar
	n.sort = c.BV(width)
	n.refs = 1
	n.symbol = symbol
	c.bvVars[n.id] = struct{}{}
	if symbol != "" {
		c.node2symbol[symbol] = n.id
	}
	return handleFor(n.id, false, 0)
}

// Uf declares a fresh uninterpreted function of the given Fun sort.
// Like BvVar, never hash-consed.
func (c *Context) Uf(funSort SortID, symbol string) Handle {
	r := c.sorts.rec(funSort)
	if r.kind != sortFun && r.kind != sortArray {
		c.violationf("Uf: sort %d is not a function sort", funSort)
	}
	n := c.allocNode()
	n.kind = Uf
	n.sort = funSort
	r.refs++
	n.refs = 1
	n.symbol = symbol
	c.ufs[n.id] = struct{}{}
	if symbol != "" {
		c.node2symbol[symbol] = n.id
	}
	return handleFor(n.id, false, 0)
}

// Param declares a fresh bound-variable placeholder, to be captured by
// exactly one Lambda constructor call. Never hash-consed — alpha
// renaming depends on every Param having a distinct identity until a
// Lambda folds it into an alpha-invariant hash.
func (c *Context) Param(sort SortID, symbol string) Handle {
	n := c.allocNode()
	n.kind = Param
	n.sort = sort
	c.sorts.rec(sort).refs++
	n.refs = 1
	n.symbol = symbol
	n.flags.set(flagParameterized)
	c.parameterized[n.id] = struct{}{}
	if symbol != "" {
		c.node2symbol[symbol] = n.id
	}
	return handleFor(n.id, false, 0)
}

// Slice extracts bits [lower, upper] (inclusive) from a bit-vector.
func (c *Context) Slice(x Handle, upper, lower uint32) Handle {
	x = c.forward(x)
	width := c.requireBVWidth(x)
	if upper >= width || lower > upper {
		c.violationf("Slice: bounds [%d:%d] invalid for width %d", upper, lower, width)
	}
	resultSort := c.BV(upper - lower + 1)

	if c.rewriteLevel > 0 && c.rewriter != nil {
		if rw := c.rewriter.Rewrite(c, Slice, resultSort, []Handle{x}); !rw.IsNull() {
			c.releaseSort(resultSort)
			return rw
		}
	}

	hash := fingerprintSlice(x.ID(), upper, lower)
	if found := c.unique.lookup(hash, func(n *Node) bool {
		return n.kind == Slice && n.children[0] == x && n.sliceHi == upper && n.sliceLo == lower
	}); found != nil {
		found.refs++
		c.releaseSort(resultSort)
		return handleFor(found.id, false, 0)
	}

	n := c.allocNode()
	n.kind = Slice
	n.sort = resultSort
	n.arity = 1
	n.refs = 1
	n.hash = hash
	n.sliceHi = upper
	n.sliceLo = lower
	c.connect(n, 0, x)
	c.unique.insert(n)
	return handleFor(n.id, false, 0)
}

// And builds a bitwise (or, at Bool sort, logical) conjunction.
func (c *Context) And(a, b Handle) Handle {
	a, b = c.forward(a), c.forward(b)
	sort := c.requireBoolOrBV(a, b)
	a, b = orderCommutative(a, b)
	c.sorts.rec(sort).refs++ // mkOp's lookup-miss/rewrite-miss paths each own one ref to sort
	return c.mkOp(And, sort, a, b)
}

// BvEq and FunEq both produce a Bool-sorted equality predicate; the
// two kinds exist separately (spec §3.2) because function/array
// equality participates in different rewrite rules than bit-vector
// equality, even though both are structurally "two children, Bool
// result".
func (c *Context) BvEq(a, b Handle) Handle {
	a, b = c.forward(a), c.forward(b)
	c.requireSameSort(a, b)
	a, b = orderCommutative(a, b)
	return c.mkOp(BvEq, c.Bool(), a, b)
}

func (c *Context) FunEq(a, b Handle) Handle {
	a, b = c.forward(a), c.forward(b)
	sa := c.sortOf(a)
	r := c.sorts.rec(sa)
	if r.kind != sortFun && r.kind != sortArray {
		c.violationf("FunEq: operand sort %d is not a function sort", sa)
	}
	c.requireSameSort(a, b)
	a, b = orderCommutative(a, b)
	n := c.mkOp(FunEq, c.Bool(), a, b)
	c.feqs[c.resolve(n).id] = struct{}{}
	return n
}

// Add and Mul are commutative bit-vector arithmetic.
func (c *Context) Add(a, b Handle) Handle {
	a, b = c.forward(a), c.forward(b)
	sort := c.requireSameSort(a, b)
	c.requireBVWidth(a)
	a, b = orderCommutative(a, b)
	c.sorts.rec(sort).refs++
	return c.mkOp(Add, sort, a, b)
}

func (c *Context) Mul(a, b Handle) Handle {
	a, b = c.forward(a), c.forward(b)
	sort := c.requireSameSort(a, b)
	c.requireBVWidth(a)
	a, b = orderCommutative(a, b)
	c.sorts.rec(sort).refs++
	return c.mkOp(Mul, sort, a, b)
}

// Ult is unsigned less-than, Bool-sorted, non-commutative.
func (c *Context) Ult(a, b Handle) Handle {
	a, b = c.forward(a), c.forward(b)
	c.requireSameSort(a, b)
	c.requireBVWidth(a)
	return c.mkOp(Ult, c.Bool(), a, b)
}

// Sll/Srl: shift-by amount must be a bit-vector of width ceil(log2(width)).
func (c *Context) shiftWidthOK(valWidth uint32, shiftWidth uint32) bool {
	need := uint32(0)
	for (uint32(1) << need) < valWidth {
		need++
	}
	if need == 0 {
		need = 1
	}
	return shiftWidth == need
}

func (c *Context) Sll(x, shift Handle) Handle {
	x, shift = c.forward(x), c.forward(shift)
	sort := c.sortOf(x)
	vw := c.requireBVWidth(x)
	sw := c.requireBVWidth(shift)
	if !c.shiftWidthOK(vw, sw) {
		c.violationf("Sll: shift operand width %d does not match log2(%d)", sw, vw)
	}
	c.sorts.rec(sort).refs++
	return c.mkOp(Sll, sort, x, shift)
}

func (c *Context) Srl(x, shift Handle) Handle {
	x, shift = c.forward(x), c.forward(shift)
	sort := c.sortOf(x)
	vw := c.requireBVWidth(x)
	sw := c.requireBVWidth(shift)
	if !c.shiftWidthOK(vw, sw) {
		c.violationf("Srl: shift operand width %d does not match log2(%d)", sw, vw)
	}
	c.sorts.rec(sort).refs++
	return c.mkOp(Srl, sort, x, shift)
}

func (c *Context) Udiv(a, b Handle) Handle {
	a, b = c.forward(a), c.forward(b)
	sort := c.requireSameSort(a, b)
	c.requireBVWidth(a)
	c.sorts.rec(sort).refs++
	return c.mkOp(Udiv, sort, a, b)
}

func (c *Context) Urem(a, b Handle) Handle {
	a, b = c.forward(a), c.forward(b)
	sort := c.requireSameSort(a, b)
	c.requireBVWidth(a)
	c.sorts.rec(sort).refs++
	return c.mkOp(Urem, sort, a, b)
}

// Concat concatenates a (high bits) with b (low bits).
func (c *Context) Concat(a, b Handle) Handle {
	a, b = c.forward(a), c.forward(b)
	wa := c.requireBVWidth(a)
	wb := c.requireBVWidth(b)
	sort := c.BV(wa + wb)
	return c.mkOp(Concat, sort, a, b)
}

// Apply applies fun to an args-node (built by args.go's Args). The
// result sort is fun's codomain.
func (c *Context) Apply(fun, argsNode Handle) Handle {
	fun, argsNode = c.forward(fun), c.forward(argsNode)
	funSort := c.sortOf(fun)
	r := c.sorts.rec(funSort)
	if r.kind != sortFun && r.kind != sortArray {
		c.violationf("Apply: sort %d is not a function sort", funSort)
	}
	if c.sortOf(argsNode) != r.domain {
		c.violationf("Apply: args sort %d does not match domain sort %d", c.sortOf(argsNode), r.domain)
	}
	codomain := r.codomain
	c.sorts.rec(codomain).refs++
	return c.mkOp(Apply, codomain, fun, argsNode)
}

// Cond builds an if-then-else. When a and b are BV- or Bool-sorted the
// result is a plain Cond node; when they are function/array-sorted,
// arrays.go's CondFun takes over instead (see DESIGN.md's Open
// Question resolution for why arbitrary non-parameterized
// function-typed conditionals are refused here rather than guessed).
func (c *Context) Cond(cond, a, b Handle) Handle {
	cond, a, b = c.forward(cond), c.forward(a), c.forward(b)
	condSort := c.sortOf(cond)
	if c.sorts.rec(condSort).kind != sortBool {
		c.violationf("Cond: condition sort %d is not Bool", condSort)
	}
	sort := c.requireSameSort(a, b)
	if k := c.sorts.rec(sort).kind; k == sortFun || k == sortArray {
		c.violationf("Cond: function/array-sorted branches must go through CondFun (arrays.go)")
	}
	c.sorts.rec(sort).refs++
	return c.mkOp(Cond, sort, cond, a, b)
}

// rawUpdate allocates a primitive Update node without deciding whether
// an Update or a lambda-write is appropriate: arrays.go's Write makes
// that call and is the only public entry point that should reach here.
func (c *Context) rawUpdate(fun, argsNode, value Handle) Handle {
	fun, argsNode, value = c.forward(fun), c.forward(argsNode), c.forward(value)
	funSort := c.sortOf(fun)
	r := c.sorts.rec(funSort)
	if r.kind != sortFun && r.kind != sortArray {
		c.violationf("Update: sort %d is not a function sort", funSort)
	}
	if c.sortOf(argsNode) != r.domain {
		c.violationf("Update: args sort does not match domain")
	}
	if c.sortOf(value) != r.codomain {
		c.violationf("Update: value sort does not match codomain")
	}
	c.sorts.rec(funSort).refs++
	return c.mkOp(Update, funSort, fun, argsNode, value)
}

// Copy increments h's refcount and returns h unchanged (spec §4.6,
// §6 "copy(h)").
func (c *Context) Copy(h Handle) Handle {
	c.mustResolve(h).refs++
	return h
}

// IncExt/DecExt track how many of a node's refs are held by API users
// specifically, as opposed to internal child edges (spec §3.1
// ext_refs, §6 "inc_ext(h)/dec_ext(h)").
func (c *Context) IncExt(h Handle) {
	c.mustResolve(h).extRefs++
}

func (c *Context) DecExt(h Handle) {
	n := c.mustResolve(h)
	if n.extRefs == 0 {
		c.violationf("DecExt: node %d has no external references to drop", n.id)
	}
	n.extRefs--
}
