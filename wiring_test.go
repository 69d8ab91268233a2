// Copyright (c) 2025 The btorcore Authors
// SPDX-License-Identifier: MIT

package btorcore

import "testing"

func TestConnectBumpsParentAndRefCounts(t *testing.T) {
	c := NewContext()
	x := c.BvVar(8, "x")
	y := c.BvVar(8, "y")
	before := c.RefCount(x)

	and := c.And(x, y)
	_ = and

	if c.RefCount(x) != before+1 {
		t.Fatalf("connect must bump the child's refcount, got %d want %d", c.RefCount(x), before+1)
	}
	if c.ParentCount(x) != 1 {
		t.Fatalf("connect must bump the child's parent count, got %d", c.ParentCount(x))
	}
}

func TestConnectPropagatesParameterizedFlag(t *testing.T) {
	c := NewContext()
	p := c.Param(c.BV(8), "p")
	one := c.BvVar(8, "x")
	add := c.Add(p, one)

	if !c.IsParameterized(add) {
		t.Fatalf("a node with a parameterized child must itself be marked parameterized")
	}
}

func TestConnectDoesNotPropagateParameterizedWhenNoChildIs(t *testing.T) {
	c := NewContext()
	x := c.BvVar(8, "x")
	y := c.BvVar(8, "y")
	add := c.Add(x, y)
	if c.IsParameterized(add) {
		t.Fatalf("a node built from unparameterized children must not be marked parameterized")
	}
}

func TestDisconnectClearsChildSlotAndParentCount(t *testing.T) {
	c := NewContext()
	x := c.BvVar(8, "x")
	xCopy := c.Copy(x)
	y := c.BvVar(8, "y")
	and := c.And(x, y)

	n := c.mustResolve(and)
	c.disconnect(n, 0)

	if !n.children[0].IsNull() {
		t.Fatalf("disconnect must clear the child slot")
	}
	if c.ParentCount(xCopy) != 0 {
		t.Fatalf("disconnect must decrement the former child's parent count, got %d", c.ParentCount(xCopy))
	}
	c.Release(xCopy)
}

func TestDisconnectClearsLambdaParamBackReference(t *testing.T) {
	c := NewContext()
	bv4 := c.BV(4)
	p := c.Param(bv4, "p")
	body := c.BvVar(4, "b")
	lam := c.Lambda(p, body, "")

	ln := c.mustResolve(lam)
	pn := c.mustResolve(p)
	if pn.bindingLambda.ID() != ln.id {
		t.Fatalf("Lambda must set its parameter's bindingLambda back-reference")
	}

	c.disconnect(ln, 0)
	if pn.bindingLambda.ID() != 0 {
		t.Fatalf("disconnecting a lambda from its own parameter must clear bindingLambda")
	}
}
