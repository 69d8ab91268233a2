// Copyright (c) 2025 The btorcore Authors
// SPDX-License-Identifier: MIT

package btorcore

// Release drops one reference from h (spec §4.6 "release(h)"). When
// the refcount does not reach zero this is just a decrement; when it
// does, the node is torn down using an explicit work stack rather
// than native recursion, so releasing a ten-thousand-node derivation
// in one call cannot overflow the Go stack (spec §4.6, §9 "deep
// recursion in release ... is a correctness requirement, not an
// optimisation"). Grounded verbatim on
// original_source/src/btorexp.c's recursively_release_exp: push
// children and the cleared simplified target before disconnecting,
// remove from the unique table, erase local data and side-table
// entries, disconnect, then free — all before the next stack item is
// popped.
func (c *Context) Release(h Handle) {
	stack := []uint64{h.bare().ID()}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := c.getNode(id)
		if n == nil {
			continue
		}
		if n.refs > 1 {
			n.refs--
			continue
		}

		n.refs = 0

		if !n.simplified.IsNull() {
			stack = append(stack, n.simplified.ID())
			n.simplified = Handle(0)
		}
		for i := 0; i < int(n.arity); i++ {
			if !n.children[i].IsNull() {
				stack = append(stack, n.children[i].ID())
			}
		}
		for _, entry := range n.staticRho {
			stack = append(stack, entry.key.ID())
			stack = append(stack, entry.value.ID())
		}

		c.teardownNode(n)
	}
}

// teardownNode removes n from every index that references it, erases
// its kind-specific local data, disconnects its child edges and
// releases its sort, then returns it to the arena/pool. The caller
// (Release's work-stack loop, its only caller) is responsible
// for having already queued n's children/simplified/static_rho targets
// for their own release.
func (c *Context) teardownNode(n *Node) {
	if n.isUnique() {
		c.unique.remove(n)
	}

	delete(c.bvVars, n.id)
	delete(c.ufs, n.id)
	delete(c.feqs, n.id)
	delete(c.lambdas, n.id)
	delete(c.parameterized, n.id)
	if n.symbol != "" {
		delete(c.node2symbol, n.symbol)
	}

	if n.av != nil && c.blaster != nil {
		c.blaster.Invalidate(c, handleFor(n.id, false, 0))
	}
	n.av = nil
	n.bvVal = nil
	n.bvInv = nil
	n.rho = nil
	n.staticRho = nil

	for i := 0; i < int(n.arity); i++ {
		if !n.children[i].IsNull() {
			c.disconnect(n, uint8(i))
		}
	}

	sort := n.sort
	c.freeNode(n)
	c.releaseSort(sort)
}
