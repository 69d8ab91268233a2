// Copyright (c) 2025 The btorcore Authors
// SPDX-License-Identifier: MIT

package btorcore

import "testing"

// Spec §8 scenario 4: an args chain for 7 arguments must hash-cons to
// the same root when built twice, and (per DESIGN.md's resolution of
// the chunking open question) the worked example must produce exactly
// three physical Args nodes.
func TestScenarioArgsChainSevenArgs(t *testing.T) {
	c := NewContext()
	argv := make([]Handle, 7)
	for i := range argv {
		argv[i] = c.BvVar(8, "")
	}

	root1 := c.Args(argv...)
	root2 := c.Args(argv...)
	if root1.bare() != root2.bare() {
		t.Fatalf("building the same 7-argument chain twice must hash-cons to one root")
	}

	count := 0
	seen := map[uint64]bool{}
	var walk func(h Handle)
	walk = func(h Handle) {
		n := c.mustResolve(h.bare())
		if n.kind != Args || seen[n.id] {
			return
		}
		seen[n.id] = true
		count++
		for i := 0; i < int(n.arity); i++ {
			walk(n.children[i])
		}
	}
	walk(root1)
	if count != 3 {
		t.Fatalf("7-argument chain should build exactly 3 Args nodes, got %d", count)
	}
}

func TestArgsSingleNodeUpToThree(t *testing.T) {
	c := NewContext()
	a, b, cc := c.BvVar(8, ""), c.BvVar(8, ""), c.BvVar(8, "")
	root := c.Args(a, b, cc)
	if c.Kind(root) != Args {
		t.Fatalf("kind = %s, want Args", c.Kind(root))
	}
	if c.ArityOf(root) != 3 {
		t.Fatalf("arity = %d, want 3", c.ArityOf(root))
	}
}

func TestArgsRequiresAtLeastOne(t *testing.T) {
	c := NewContext()
	defer func() {
		if recover() == nil {
			t.Fatalf("Args() with no arguments should panic")
		}
	}()
	c.Args()
}

func TestArgsDeterministicAcrossCalls(t *testing.T) {
	c := NewContext()
	argv := make([]Handle, 11)
	for i := range argv {
		argv[i] = c.BvVar(4, "")
	}
	r1 := c.Args(argv...)
	r2 := c.Args(argv...)
	if r1.bare() != r2.bare() {
		t.Fatalf("11-argument chain must be deterministic across builds")
	}
}
