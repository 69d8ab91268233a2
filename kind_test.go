// Copyright (c) 2025 The btorcore Authors
// SPDX-License-Identifier: MIT

package btorcore

import "testing"

func TestKindStringKnown(t *testing.T) {
	for k := Invalid; k <= Proxy; k++ {
		s := k.String()
		if s == "Kind(?)" {
			t.Errorf("Kind %d has no name", k)
		}
	}
}

func TestKindStringUnknown(t *testing.T) {
	if Kind(255).String() != "Kind(?)" {
		t.Fatalf("out-of-range Kind should report Kind(?)")
	}
}

func TestArityOf(t *testing.T) {
	cases := map[Kind]int{
		BvConst: 0,
		BvVar:   0,
		Slice:   1,
		And:     2,
		Cond:    3,
		Update:  3,
	}
	for k, want := range cases {
		if got := k.arityOf(); got != want {
			t.Errorf("%s.arityOf() = %d, want %d", k, got, want)
		}
	}
}

func TestIsCommutative(t *testing.T) {
	for _, k := range []Kind{And, BvEq, FunEq, Add, Mul} {
		if !k.isCommutative() {
			t.Errorf("%s should be commutative", k)
		}
	}
	for _, k := range []Kind{Ult, Sll, Srl, Udiv, Urem, Concat} {
		if k.isCommutative() {
			t.Errorf("%s should not be commutative", k)
		}
	}
}
