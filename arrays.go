// Copyright (c) 2025 The btorcore Authors
// SPDX-License-Identifier: MIT

package btorcore

// Arrays are encoded as unary functions with their isArray flag set
// (spec §4.1, §4.5.4): `array(idx, elt)` is `fun(tuple(idx), elt)` plus
// a marker, and every array-typed node (free variable, write, or
// lambda) is simultaneously a function the rest of the core already
// knows how to Apply to.

// ArrayVar declares a fresh uninterpreted array of the given index/
// element sorts (spec §4.5.4). Like Uf, never hash-consed.
func (c *Context) ArrayVar(idxSort, eltSort SortID, symbol string) Handle {
	arrSort := c.Array(idxSort, eltSort)
	h := c.Uf(arrSort, symbol)
	c.mustResolve(h).flags.set(flagIsArray)
	return h
}

// Read looks up arr at index (spec §4.5.4's `read`): sugar for
// Apply(arr, Args(index)).
func (c *Context) Read(arr, index Handle) Handle {
	arr, index = c.forward(arr), c.forward(index)
	argsNode := c.Args(index)
	result := c.Apply(arr, argsNode)
	c.Release(argsNode)
	return result
}

// Write produces an updated array (spec §4.5.4's `write`). When the
// index and value are both concrete (not parameterized) and the
// context isn't forced into always modelling arrays as lambdas
// (Context.arrayAsLambda), it allocates a primitive Update node and
// seeds a one-entry static_rho so a Read immediately following a Write
// at the same (structurally identical) index resolves without a
// rewrite pass. Otherwise — an index or value that depends on an
// enclosing lambda's bound parameter can't be captured in a primitive
// Update's fixed args-node — it falls back to the functional
// read-or-original-value encoding: lambda(p, cond(p == index, value,
// read(arr, p))), still seeded with the same static_rho entry so a
// concrete lookup at the just-written index short-circuits the Apply
// instead of forcing a beta-reduction.
func (c *Context) Write(arr, index, value Handle) Handle {
	arr, index, value = c.forward(arr), c.forward(index), c.forward(value)
	idxParam := c.mustResolve(index).isParameterized()
	valParam := c.mustResolve(value).isParameterized()

	var result Handle
	if c.arrayAsLambda || idxParam || valParam {
		result = c.lambdaWrite(arr, index, value)
	} else {
		argsNode := c.Args(index)
		result = c.rawUpdate(arr, argsNode, value)
		c.Release(argsNode)
	}

	rn := c.mustResolve(result)
	rn.flags.set(flagIsArray)
	c.seedStaticRho(rn, index, value)
	return result
}

// lambdaWrite builds the functional encoding of a write (spec §4.5.4
// "array-as-lambda"): a fresh parameter p stands for every possible
// index, and the body picks value when p equals the written index,
// else falls through to a read of the original array.
func (c *Context) lambdaWrite(arr, index, value Handle) Handle {
	arrSort := c.sortOf(arr)
	idxSort := c.Index(arrSort)

	p := c.Param(idxSort, "")
	eq := c.BvEq(p, index)
	orig := c.Read(arr, p)
	body := c.Cond(eq, value, orig)
	lam := c.Lambda(p, body, "")

	c.Release(p)
	c.Release(eq)
	c.Release(orig)
	c.Release(body)
	return lam
}

// seedStaticRho records that looking up index on the just-built array
// n immediately yields value, without needing to beta-reduce a lambda
// body or walk an Update chain (spec §4.5.4). The args-node is built
// fresh rather than reused from the caller so its id is the same one
// a later Read(n, index) will itself construct and hash-cons to.
//
// Both the key (the args-node) and the value are owning references
// held for as long as the entry lives in n.staticRho; release.go and
// proxy.go must release both on teardown, not just the value.
func (c *Context) seedStaticRho(n *Node, index, value Handle) {
	argsNode := c.Args(index)
	key := c.resolve(argsNode).id
	if n.staticRho == nil {
		n.staticRho = make(map[uint64]staticRhoEntry)
	}
	if old, ok := n.staticRho[key]; ok {
		// The key is already owned by old.key; this call's own fresh
		// reference to the same args-node is redundant.
		c.Release(argsNode)
		c.Release(old.value)
		n.staticRho[key] = staticRhoEntry{key: old.key, value: c.Copy(value)}
		return
	}
	n.staticRho[key] = staticRhoEntry{key: argsNode, value: c.Copy(value)}
}

// CondFun builds an if-then-else between two unary function/array-sorted
// branches. Spec §9 leaves this case open when both branches are
// ordinary (non-parameterized) functions; per DESIGN.md's resolution,
// this is only implemented when at least one branch is parameterized,
// in which case it lowers to a read-dispatch-on-condition lambda like
// the lambda form of Write: lambda(p, cond(cond, read(a,p), read(b,p))).
// p takes the first element of the domain tuple, so branches whose
// domain has more than one element are rejected by Apply.
func (c *Context) CondFun(cond, a, b Handle) Handle {
	cond, a, b = c.forward(cond), c.forward(a), c.forward(b)
	sort := c.requireSameSort(a, b)
	r := c.sorts.rec(sort)
	if r.kind != sortFun && r.kind != sortArray {
		c.violationf("CondFun: operand sort %d is not a function sort", sort)
	}
	if c.sorts.rec(c.sortOf(cond)).kind != sortBool {
		c.violationf("CondFun: condition sort %d is not Bool", c.sortOf(cond))
	}
	an, bn := c.mustResolve(a), c.mustResolve(b)
	if !an.isParameterized() && !bn.isParameterized() {
		c.violationf("CondFun: function/array-typed conditional with two non-parameterized branches is unsupported (see DESIGN.md)")
	}

	p := c.Param(c.sorts.rec(r.domain).elems[0], "")
	readA := c.Read(a, p)
	readB := c.Read(b, p)
	body := c.Cond(cond, readA, readB)
	lam := c.Lambda(p, body, "")
	if r.isArray {
		c.mustResolve(lam).flags.set(flagIsArray)
	}

	c.Release(p)
	c.Release(readA)
	c.Release(readB)
	c.Release(body)
	return lam
}
