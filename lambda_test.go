// Copyright (c) 2025 The btorcore Authors
// SPDX-License-Identifier: MIT

package btorcore

import (
	"testing"

	"github.com/exprdag/btorcore/internal/bv"
)

// Spec §8 scenario 3: lambda(p:bv4. ite(eq(p,3),7,read(A,p))) built
// twice with fresh parameter names must hash-cons to the same id.
func TestScenarioLambdaAlphaEquivalence(t *testing.T) {
	c := NewContext()
	bv4 := c.BV(4)
	arr := c.ArrayVar(bv4, bv4, "A")
	// Built once, ahead of either param: both builds' params get a
	// fresh, strictly larger id than these, so the commutative
	// normalisation inside BvEq orders (const, param) identically in
	// both builds regardless of which build ran first.
	three := c.BvConst(bv.FromUint64(3, 4))
	seven := c.BvConst(bv.FromUint64(7, 4))

	build := func(paramName string) Handle {
		p := c.Param(bv4, paramName)
		eq := c.BvEq(p, three)
		read := c.Read(arr, p)
		body := c.Cond(eq, seven, read)
		lam := c.Lambda(p, body, "")
		c.Release(p)
		c.Release(eq)
		c.Release(read)
		c.Release(body)
		return lam
	}

	lam1 := build("p1")
	lam2 := build("p2")

	if lam1.bare() != lam2.bare() {
		t.Fatalf("alpha-equivalent lambdas must share an id: %d vs %d", lam1.ID(), lam2.ID())
	}
}

func TestLambdaDistinctBodiesDontShare(t *testing.T) {
	c := NewContext()
	bv4 := c.BV(4)

	p1 := c.Param(bv4, "")
	one := c.BvConst(bv.FromUint64(1, 4))
	body1 := c.Add(p1, one)
	lam1 := c.Lambda(p1, body1, "")

	p2 := c.Param(bv4, "")
	two := c.BvConst(bv.FromUint64(2, 4))
	body2 := c.Add(p2, two)
	lam2 := c.Lambda(p2, body2, "")

	if lam1.bare() == lam2.bare() {
		t.Fatalf("lambdas with structurally different bodies must not share an id")
	}

	c.Release(p1)
	c.Release(one)
	c.Release(body1)
	c.Release(p2)
	c.Release(two)
	c.Release(body2)
	c.Release(lam1)
	c.Release(lam2)
}

func TestLambdaRequiresParamNode(t *testing.T) {
	c := NewContext()
	notParam := c.BvVar(4, "x")
	body := c.BvVar(4, "y")
	defer func() {
		if recover() == nil {
			t.Fatalf("Lambda with a non-Param first argument should panic")
		}
	}()
	c.Lambda(notParam, body, "")
}
