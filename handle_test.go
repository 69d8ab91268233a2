// Copyright (c) 2025 The btorcore Authors
// SPDX-License-Identifier: MIT

package btorcore

import "testing"

func TestHandleRoundTrip(t *testing.T) {
	cases := []struct {
		id       uint64
		inverted bool
		pos      uint8
	}{
		{1, false, 0},
		{1, true, 0},
		{42, false, 2},
		{42, true, 1},
		{1 << 20, false, 3 & 0x3},
	}
	for _, tc := range cases {
		h := handleFor(tc.id, tc.inverted, tc.pos)
		if h.ID() != tc.id {
			t.Errorf("ID() = %d, want %d", h.ID(), tc.id)
		}
		if h.Inverted() != tc.inverted {
			t.Errorf("Inverted() = %v, want %v", h.Inverted(), tc.inverted)
		}
		if h.Position() != tc.pos&0x3 {
			t.Errorf("Position() = %d, want %d", h.Position(), tc.pos&0x3)
		}
	}
}

func TestHandleNotIsInvolution(t *testing.T) {
	h := handleFor(7, false, 1)
	if h.Not().Not() != h {
		t.Fatalf("Not(Not(h)) != h")
	}
	if !h.Not().Inverted() {
		t.Fatalf("Not(h) should be inverted")
	}
}

func TestHandleBareStripsTags(t *testing.T) {
	h := handleFor(99, true, 2)
	b := h.bare()
	if b.Inverted() || b.Position() != 0 {
		t.Fatalf("bare() left tags set: %#x", uint64(b))
	}
	if b.ID() != h.ID() {
		t.Fatalf("bare() changed id")
	}
}

func TestHandleIsNull(t *testing.T) {
	if !(Handle(0)).IsNull() {
		t.Fatalf("zero Handle must be null")
	}
	if handleFor(1, false, 0).IsNull() {
		t.Fatalf("handle with id 1 must not be null")
	}
}
