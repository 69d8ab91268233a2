// Copyright (c) 2025 The btorcore Authors
// SPDX-License-Identifier: MIT

package btorcore

import "testing"

func TestArenaSlotZeroReserved(t *testing.T) {
	c := NewContext()
	if c.getNode(0) != nil {
		t.Fatalf("slot 0 must be reserved (nil)")
	}
}

func TestArenaAllocAssignsDenseIDs(t *testing.T) {
	c := NewContext()
	x := c.BvVar(8, "x")
	y := c.BvVar(8, "y")
	if y.ID() != x.ID()+1 {
		t.Fatalf("ids should be dense and increasing: x=%d y=%d", x.ID(), y.ID())
	}
}

func TestArenaFreeNeverReused(t *testing.T) {
	c := NewContext()
	x := c.BvVar(8, "x")
	id := x.ID()
	c.Release(x)
	if c.getNode(id) != nil {
		t.Fatalf("freed slot must resolve to nil")
	}
	y := c.BvVar(8, "y")
	if y.ID() == id {
		t.Fatalf("a freed id must never be reused, got %d again", id)
	}
}

func TestArenaResolveNullHandle(t *testing.T) {
	c := NewContext()
	if c.resolve(Handle(0)) != nil {
		t.Fatalf("resolving the null handle must return nil")
	}
}

func TestArenaMustResolvePanicsOnDangling(t *testing.T) {
	c := NewContext()
	defer func() {
		if recover() == nil {
			t.Fatalf("mustResolve on a dangling handle should panic")
		}
	}()
	c.mustResolve(handleFor(9999, false, 0))
}
