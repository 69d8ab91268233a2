// Copyright (c) 2025 The btorcore Authors
// SPDX-License-Identifier: MIT

package btorcore

import "testing"

func TestNodeFlagsSetClearTest(t *testing.T) {
	var f nodeFlags
	if f.test(flagUnique) {
		t.Fatalf("a zero-value nodeFlags must not report flagUnique set")
	}
	f.set(flagUnique)
	if !f.test(flagUnique) {
		t.Fatalf("flagUnique should be set")
	}
	if f.test(flagParameterized) {
		t.Fatalf("setting flagUnique must not set unrelated flags")
	}
	f.set(flagParameterized)
	f.clear(flagUnique)
	if f.test(flagUnique) {
		t.Fatalf("flagUnique should be cleared")
	}
	if !f.test(flagParameterized) {
		t.Fatalf("clearing flagUnique must not clear unrelated flags")
	}
}

func TestNodeResetClearsScalarsAndChildEdges(t *testing.T) {
	n := &Node{
		id:    7,
		kind:  And,
		sort:  3,
		flags: flagUnique,
		refs:  5,
	}
	n.children[0] = handleFor(1, false, 0)
	n.reset()

	if n.id != 0 || n.kind != Invalid || n.sort != 0 || n.flags != 0 || n.refs != 0 {
		t.Fatalf("reset must zero every scalar field, got %+v", n)
	}
	if n.children != ([3]Handle{}) {
		t.Fatalf("reset must zero stale child edges, got %v", n.children)
	}
}

func TestNodeIsParameterizedTracksFlag(t *testing.T) {
	n := &Node{}
	if n.isParameterized() {
		t.Fatalf("a fresh node must not be parameterized")
	}
	n.flags.set(flagParameterized)
	if !n.isParameterized() {
		t.Fatalf("isParameterized must reflect flagParameterized")
	}
}

func TestNodeIsUniqueTracksFlag(t *testing.T) {
	n := &Node{}
	if n.isUnique() {
		t.Fatalf("a fresh node must not be unique")
	}
	n.flags.set(flagUnique)
	if !n.isUnique() {
		t.Fatalf("isUnique must reflect flagUnique")
	}
}
