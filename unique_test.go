// Copyright (c) 2025 The btorcore Authors
// SPDX-License-Identifier: MIT

package btorcore

import "testing"

func TestUniqueTableInsertLookupRemove(t *testing.T) {
	ut := newUniqueTable()
	n := &Node{id: 1, kind: And, sort: 1, arity: 2, hash: fingerprintOp(And, []Handle{1, 2})}
	n.children[0], n.children[1] = 1, 2

	ut.insert(n)
	if ut.count != 1 {
		t.Fatalf("count after one insert = %d, want 1", ut.count)
	}
	if !n.isUnique() {
		t.Fatalf("insert must set flagUnique")
	}

	found := ut.lookup(n.hash, func(c *Node) bool { return c.id == n.id })
	if found != n {
		t.Fatalf("lookup must find the just-inserted node")
	}

	ut.remove(n)
	if ut.count != 0 {
		t.Fatalf("count after remove = %d, want 0", ut.count)
	}
	if n.isUnique() {
		t.Fatalf("remove must clear flagUnique")
	}
	if ut.lookup(n.hash, func(c *Node) bool { return c.id == n.id }) != nil {
		t.Fatalf("lookup must not find a removed node")
	}
}

func TestUniqueTableFingerprintCollisionDisambiguatedByMatch(t *testing.T) {
	ut := newUniqueTable()
	hash := uint64(42)
	a := &Node{id: 1, kind: And, hash: hash}
	b := &Node{id: 2, kind: Add, hash: hash}
	ut.insert(a)
	ut.insert(b)

	found := ut.lookup(hash, func(c *Node) bool { return c.kind == Add })
	if found != b {
		t.Fatalf("lookup with a discriminating match function must skip the wrong-kind collision")
	}
}

func TestUniqueTableGrowsPastLoadFactorOne(t *testing.T) {
	ut := newUniqueTable()
	initial := len(ut.buckets)
	for i := 0; i < initial+1; i++ {
		n := &Node{id: uint64(i + 1), kind: And, hash: uint64(i)}
		ut.insert(n)
	}
	if len(ut.buckets) <= initial {
		t.Fatalf("bucket count should have grown past the load-factor-1 threshold, still %d", len(ut.buckets))
	}
}

func TestLog2Floor(t *testing.T) {
	cases := map[int]int{1: 0, 2: 1, 3: 1, 4: 2, 255: 7, 256: 8}
	for n, want := range cases {
		if got := log2Floor(n); got != want {
			t.Fatalf("log2Floor(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestFingerprintOpOrderSensitive(t *testing.T) {
	h1 := fingerprintOp(And, []Handle{1, 2})
	h2 := fingerprintOp(And, []Handle{2, 1})
	if h1 == h2 {
		t.Fatalf("fingerprintOp must be sensitive to child order (constructors.go normalises before calling it)")
	}
}
