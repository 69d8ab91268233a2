// Copyright (c) 2025 The btorcore Authors
// SPDX-License-Identifier: MIT

package bv

import "testing"

func TestZeroOneOnes(t *testing.T) {
	z := Zero(8)
	if !z.IsZero() {
		t.Fatalf("Zero(8) is not zero")
	}
	o := One(8)
	if o.Bit(0) != true {
		t.Fatalf("One(8) bit 0 should be set")
	}
	ones := Ones(8)
	if ones.Compare(FromUint64(0xff, 8)) != 0 {
		t.Fatalf("Ones(8) = %s, want 0xff", ones)
	}
}

func TestAddWraparound(t *testing.T) {
	a := FromUint64(0xff, 8)
	b := FromUint64(1, 8)
	got := a.Add(b)
	if !got.Equal(Zero(8)) {
		t.Fatalf("0xff+1 mod 2^8 = %s, want 0", got)
	}
}

func TestMulAndDiv(t *testing.T) {
	a := FromUint64(6, 8)
	b := FromUint64(7, 8)
	got := a.Mul(b)
	if !got.Equal(FromUint64(42, 8)) {
		t.Fatalf("6*7 = %s, want 42", got)
	}

	q := FromUint64(42, 8).Udiv(FromUint64(7, 8))
	if !q.Equal(FromUint64(6, 8)) {
		t.Fatalf("42/7 = %s, want 6", q)
	}

	r := FromUint64(43, 8).Urem(FromUint64(7, 8))
	if !r.Equal(FromUint64(1, 8)) {
		t.Fatalf("43%%7 = %s, want 1", r)
	}
}

func TestDivByZeroConvention(t *testing.T) {
	if !FromUint64(5, 8).Udiv(Zero(8)).Equal(Ones(8)) {
		t.Fatalf("udiv by zero must yield all-ones")
	}
	if !FromUint64(5, 8).Urem(Zero(8)).Equal(FromUint64(5, 8)) {
		t.Fatalf("urem by zero must yield the dividend")
	}
}

func TestShifts(t *testing.T) {
	v := FromUint64(0b0000_0001, 8)
	if !v.Sll(3).Equal(FromUint64(0b0000_1000, 8)) {
		t.Fatalf("sll mismatch: %s", v.Sll(3))
	}
	if !FromUint64(0b1000_0000, 8).Srl(7).Equal(One(8)) {
		t.Fatalf("srl mismatch")
	}
	if !FromUint64(1, 8).Sll(8).Equal(Zero(8)) {
		t.Fatalf("shift >= width must yield zero")
	}
}

func TestConcatAndSlice(t *testing.T) {
	hi := FromUint64(0xAB, 8)
	lo := FromUint64(0xCD, 8)
	c := hi.Concat(lo)
	if c.Width() != 16 {
		t.Fatalf("concat width = %d, want 16", c.Width())
	}
	if !c.Equal(FromUint64(0xABCD, 16)) {
		t.Fatalf("concat = %s, want 0xabcd", c)
	}

	if !c.Slice(15, 8).Equal(hi) {
		t.Fatalf("slice(15,8) = %s, want %s", c.Slice(15, 8), hi)
	}
	if !c.Slice(7, 0).Equal(lo) {
		t.Fatalf("slice(7,0) = %s, want %s", c.Slice(7, 0), lo)
	}
}

func TestWideBeyond256(t *testing.T) {
	// Exercise the limb fallback path (width > 256).
	width := uint32(300)
	a := FromUint64(1, width).Sll(290)
	b := FromUint64(1, width).Sll(290)
	sum := a.Add(b)
	want := FromUint64(1, width).Sll(291)
	if !sum.Equal(want) {
		t.Fatalf("wide add mismatch:\n got  %s\n want %s", sum, want)
	}

	q := a.Udiv(FromUint64(1, width))
	if !q.Equal(a) {
		t.Fatalf("wide udiv by one changed value: %s", q)
	}
}

func TestHashStable(t *testing.T) {
	a := FromUint64(1234, 32)
	b := FromUint64(1234, 32)
	if a.Hash() != b.Hash() {
		t.Fatalf("equal values must hash equal")
	}
	c := FromUint64(1235, 32)
	if a.Hash() == c.Hash() {
		t.Fatalf("distinct values should (almost always) hash distinct")
	}
}
