// Copyright (c) 2025 The btorcore Authors
// SPDX-License-Identifier: MIT

package btorcore

import (
	"testing"

	"github.com/exprdag/btorcore/internal/bv"
)

// Spec §8 scenario 5: allocate a deep chain, then release the root
// that owns everything; the final node count must return to baseline
// and release must not blow the Go stack (iterative work-stack, not
// recursion — exercised here by depth alone; a recursive
// implementation would overflow long before 10,000).
func TestScenarioDeepReleaseReturnsToBaseline(t *testing.T) {
	c := NewContext()
	before := c.Stats()

	const depth = 10000
	one := c.BvConst(bv.FromUint64(1, 8))
	cur := c.BvVar(8, "")
	for i := 0; i < depth; i++ {
		next := c.Add(cur, one)
		c.Release(cur)
		cur = next
	}
	c.Release(one)

	c.Release(cur)

	after := c.Stats()
	if after.LiveNodes != before.LiveNodes {
		t.Fatalf("live nodes after releasing the whole chain = %d, want %d", after.LiveNodes, before.LiveNodes)
	}
}

func TestReleaseDecrementsWithoutFreeingSharedNode(t *testing.T) {
	c := NewContext()
	x := c.BvVar(8, "x")
	y := c.BvVar(8, "y")
	and1 := c.And(x, y)
	and2 := c.Copy(and1) // second owner of the same node

	c.Release(and1)
	if c.resolve(and2) == nil {
		t.Fatalf("node must survive while a second reference is still held")
	}
	c.Release(and2)
}

func TestReleaseViaInvertedHandleFreesNode(t *testing.T) {
	c := NewContext()
	x := c.BvVar(8, "x")
	notX := c.Not(x)
	id := notX.ID() // Not is a tag flip, same id as x

	c.Release(notX)
	if c.resolve(handleFor(id, false, 0)) != nil {
		t.Fatalf("releasing the last reference to x (via its Not) must free it")
	}
}

func TestReleaseOfParentDisconnectsChildParentList(t *testing.T) {
	c := NewContext()
	x := c.BvVar(8, "x")
	xCopy := c.Copy(x)
	y := c.BvVar(8, "y")
	and := c.And(x, y)

	if c.ParentCount(x) != 1 {
		t.Fatalf("x should have exactly 1 parent after And(x,y), got %d", c.ParentCount(x))
	}
	c.Release(and)
	if c.ParentCount(xCopy) != 0 {
		t.Fatalf("x should have 0 parents after releasing And(x,y), got %d", c.ParentCount(xCopy))
	}
	c.Release(xCopy)
}
