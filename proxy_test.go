// Copyright (c) 2025 The btorcore Authors
// SPDX-License-Identifier: MIT

package btorcore

import "testing"

// Spec §4.5.6 "Proxy forwarding": once x is proxied to y, every
// existing and future access through x must resolve as if the handle
// had been y all along, including inversion composition.
func TestSetToProxyForwardsUninvertedAccess(t *testing.T) {
	c := NewContext()
	x := c.BvVar(8, "x")
	y := c.BvVar(8, "y")

	c.SetToProxy(x, y)

	if c.Kind(x) != c.Kind(y) {
		t.Fatalf("Kind(x) after proxying should match Kind(y)")
	}
	if x.bare() == y.bare() {
		t.Fatalf("the handles' raw ids should still differ; only resolution should unify them")
	}
	// forward() must walk x straight through to y's node id.
	if c.mustResolve(c.forward(x)).id != c.mustResolve(c.forward(y)).id {
		t.Fatalf("forward(x) must resolve to the same node as forward(y)")
	}
}

func TestSetToProxyComposesInversion(t *testing.T) {
	c := NewContext()
	x := c.BvVar(8, "x")
	notX := c.Not(x) // same node, inverted tag
	y := c.BvVar(8, "y")

	c.SetToProxy(notX, y)

	// x itself (uninverted) must now forward to Not(y): SetToProxy was
	// called with the inverted handle, so the uninverted access through
	// the underlying node must land on the complement of y.
	gotNode := c.mustResolve(c.forward(x))
	wantNode := c.mustResolve(c.forward(y))
	if gotNode.id != wantNode.id {
		t.Fatalf("forward(x) node id = %d, want %d", gotNode.id, wantNode.id)
	}
	if c.forward(x).Inverted() == c.forward(y).Inverted() {
		t.Fatalf("forward(x) must be the complement of forward(y) after proxying Not(x) to y")
	}
}

// SetToProxy forwards its target through forward() first, so retargeting
// x a second time transparently re-proxies whatever x currently resolves
// to (here, y) rather than hitting the "already a proxy" guard — that
// guard only fires when a handle somehow still names a live Proxy node
// after forward() has run, which forward()'s own loop never leaves in
// place.
func TestSetToProxyIsTransitiveAcrossRetargeting(t *testing.T) {
	c := NewContext()
	x := c.BvVar(8, "x")
	y := c.BvVar(8, "y")
	z := c.BvVar(8, "z")
	c.SetToProxy(x, y)
	c.SetToProxy(x, z)

	gotNode := c.mustResolve(c.forward(x))
	wantNode := c.mustResolve(c.forward(z))
	if gotNode.id != wantNode.id {
		t.Fatalf("after retargeting, forward(x) must resolve to z's node")
	}
}

func TestSetToProxyRejectsSortMismatch(t *testing.T) {
	c := NewContext()
	x := c.BvVar(8, "x")
	y := c.BvVar(16, "y")
	defer func() {
		if recover() == nil {
			t.Fatalf("proxying across differing sorts should panic")
		}
	}()
	c.SetToProxy(x, y)
}
