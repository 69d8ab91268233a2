// Copyright (c) 2025 The btorcore Authors
// SPDX-License-Identifier: MIT

// Package bv is the bit-vector value library (spec §4.2): fixed-width
// unsigned integers with two's-complement arithmetic and exact width
// tracking.
//
// Values are stored uniformly as a little-endian []uint64 limb slice
// with the top limb masked to width, the same word-indexing idiom
// internal/bitset/bitset256.go in the teacher repo uses for its fixed
// 256-bit set (wordIdx = i>>6, bitIdx = i&63). Arithmetic dispatches
// through two paths:
//
//   - width <= 256: converted to a github.com/holiman/uint256.Int (the
//     EVM's native word type) and back — the overwhelming majority of
//     real bit-vector problems fall in this range.
//   - width > 256: computed directly over the limb slice with
//     math/bits carry/borrow primitives (Add64/Sub64), since no
//     library in the retrieval pack offers arbitrary-width fixed-bit
//     arithmetic (math/big has no fixed-width masking, uint256 tops
//     out at 256 bits).
package bv

import (
	"fmt"
	"math/bits"

	"github.com/holiman/uint256"
	"github.com/spaolacci/murmur3"
)

const fastWidth = 256

// Value is an immutable fixed-width bit-vector constant. All
// operations return a new Value; the core (constructors.go) owns
// exactly one Value per BvConst node.
type Value struct {
	width uint32
	limbs []uint64 // little-endian, len = numLimbs(width), top limb masked
}

func numLimbs(width uint32) int {
	return int((width + 63) / 64)
}

func topMask(width uint32) uint64 {
	rem := width % 64
	if rem == 0 {
		return ^uint64(0)
	}
	return (uint64(1) << rem) - 1
}

func newValue(width uint32) Value {
	return Value{width: width, limbs: make([]uint64, numLimbs(width))}
}

func (v Value) masked() Value {
	if len(v.limbs) > 0 {
		v.limbs[len(v.limbs)-1] &= topMask(v.width)
	}
	return v
}

// Width returns the bit-width of v.
func (v Value) Width() uint32 { return v.width }

// Zero returns the all-zero bit-vector of the given width.
func Zero(width uint32) Value { return newValue(width) }

// Ones returns the all-one bit-vector of the given width.
func Ones(width uint32) Value {
	v := newValue(width)
	for i := range v.limbs {
		v.limbs[i] = ^uint64(0)
	}
	return v.masked()
}

// One returns the bit-vector 1 of the given width.
func One(width uint32) Value {
	v := newValue(width)
	if len(v.limbs) > 0 {
		v.limbs[0] = 1
	}
	return v
}

// FromUint64 returns x truncated/zero-extended to width.
func FromUint64(x uint64, width uint32) Value {
	v := newValue(width)
	if len(v.limbs) > 0 {
		v.limbs[0] = x
	}
	return v.masked()
}

// Bit reports the value of bit i (0 = least significant).
func (v Value) Bit(i uint32) bool {
	if i >= v.width {
		return false
	}
	return v.limbs[i/64]&(1<<(i%64)) != 0
}

// SetBit returns a copy of v with bit i set to val.
func (v Value) SetBit(i uint32, val bool) Value {
	out := v.clone()
	if val {
		out.limbs[i/64] |= 1 << (i % 64)
	} else {
		out.limbs[i/64] &^= 1 << (i % 64)
	}
	return out
}

func (v Value) clone() Value {
	out := Value{width: v.width, limbs: make([]uint64, len(v.limbs))}
	copy(out.limbs, v.limbs)
	return out
}

// Not returns the bitwise complement of v.
func (v Value) Not() Value {
	out := newValue(v.width)
	for i, l := range v.limbs {
		out.limbs[i] = ^l
	}
	return out.masked()
}

// IsZero reports whether v is the all-zero value.
func (v Value) IsZero() bool {
	for _, l := range v.limbs {
		if l != 0 {
			return false
		}
	}
	return true
}

// Equal reports bit-pattern equality. Panics (via a generic mismatch,
// caught by the core's own width preconditions before this is ever
// called) are deliberately not raised here; callers are expected to
// have checked widths already, as every core constructor does.
func (v Value) Equal(o Value) bool {
	if v.width != o.width {
		return false
	}
	for i := range v.limbs {
		if v.limbs[i] != o.limbs[i] {
			return false
		}
	}
	return true
}

// Compare does an unsigned comparison, returning -1, 0 or 1.
func (v Value) Compare(o Value) int {
	for i := len(v.limbs) - 1; i >= 0; i-- {
		if v.limbs[i] != o.limbs[i] {
			if v.limbs[i] < o.limbs[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Hash returns a fingerprint suitable for hash-cons fingerprint
// mixing (unique.go) and for use as a map key component.
func (v Value) Hash() uint64 {
	buf := make([]byte, 4+8*len(v.limbs))
	buf[0] = byte(v.width)
	buf[1] = byte(v.width >> 8)
	buf[2] = byte(v.width >> 16)
	buf[3] = byte(v.width >> 24)
	for i, l := range v.limbs {
		off := 4 + i*8
		for b := 0; b < 8; b++ {
			buf[off+b] = byte(l >> (8 * b))
		}
	}
	return murmur3.Sum64(buf)
}

// String renders v as a 0x-prefixed hex literal, most-significant
// limb first.
func (v Value) String() string {
	s := ""
	for i := len(v.limbs) - 1; i >= 0; i-- {
		s += fmt.Sprintf("%016x", v.limbs[i])
	}
	return "0x" + s
}

// --- arithmetic -------------------------------------------------------

// fromWords builds a uint256.Int directly from its four little-endian
// limbs (uint256.Int is defined as [4]uint64).
func fromWords(words [4]uint64) *uint256.Int {
	return &uint256.Int{words[0], words[1], words[2], words[3]}
}

func (v Value) u256() *uint256.Int {
	var words [4]uint64
	copy(words[:], v.limbs)
	return fromWords(words)
}

func fromU256(u *uint256.Int, width uint32) Value {
	out := newValue(width)
	words := [4]uint64(*u)
	n := len(out.limbs)
	if n > 4 {
		n = 4
	}
	copy(out.limbs, words[:n])
	return out.masked()
}

func (v Value) binOp(o Value, limbOp func(a, b []uint64, out []uint64), u256Op func(z, x, y *uint256.Int) *uint256.Int) Value {
	if v.width <= fastWidth {
		z := uint256.NewInt(0)
		u256Op(z, v.u256(), o.u256())
		return fromU256(z, v.width)
	}
	out := newValue(v.width)
	limbOp(v.limbs, o.limbs, out.limbs)
	return out.masked()
}

// Add returns v+o (two's-complement wraparound).
func (v Value) Add(o Value) Value {
	return v.binOp(o, addLimbs, func(z, x, y *uint256.Int) *uint256.Int { return z.Add(x, y) })
}

// Sub returns v-o (two's-complement wraparound).
func (v Value) Sub(o Value) Value {
	return v.binOp(o, subLimbs, func(z, x, y *uint256.Int) *uint256.Int { return z.Sub(x, y) })
}

// Mul returns v*o truncated to width.
func (v Value) Mul(o Value) Value {
	return v.binOp(o, mulLimbs, func(z, x, y *uint256.Int) *uint256.Int { return z.Mul(x, y) })
}

// Udiv returns unsigned v/o. Division by zero returns Ones(width),
// the standard SMT-LIB bit-vector convention.
func (v Value) Udiv(o Value) Value {
	if o.IsZero() {
		return Ones(v.width)
	}
	return v.binOp(o, divLimbs, func(z, x, y *uint256.Int) *uint256.Int { return z.Div(x, y) })
}

// Urem returns unsigned v%o. Remainder by zero returns v itself, the
// standard SMT-LIB bit-vector convention.
func (v Value) Urem(o Value) Value {
	if o.IsZero() {
		return v.clone()
	}
	return v.binOp(o, remLimbs, func(z, x, y *uint256.Int) *uint256.Int { return z.Mod(x, y) })
}

// Sll returns v logically shifted left by shift bits.
func (v Value) Sll(shift uint32) Value {
	if shift >= v.width {
		return Zero(v.width)
	}
	if v.width <= fastWidth {
		z := uint256.NewInt(0).Lsh(v.u256(), uint(shift))
		return fromU256(z, v.width)
	}
	out := newValue(v.width)
	shiftLeftLimbs(v.limbs, shift, out.limbs)
	return out.masked()
}

// Srl returns v logically shifted right by shift bits.
func (v Value) Srl(shift uint32) Value {
	if shift >= v.width {
		return Zero(v.width)
	}
	if v.width <= fastWidth {
		z := uint256.NewInt(0).Rsh(v.u256(), uint(shift))
		return fromU256(z, v.width)
	}
	out := newValue(v.width)
	shiftRightLimbs(v.limbs, shift, out.limbs)
	return out.masked()
}

// Concat returns the (v.width+o.width)-wide value with v in the high
// bits and o in the low bits. Always computed over the limb slice
// directly (not dispatched through the uint256 fast path): the result
// width varies with every call, so there is no fixed-width value to
// hand uint256 the way the same-width binary ops do.
func (v Value) Concat(o Value) Value {
	width := v.width + o.width
	wide := newValue(width)
	copy(wide.limbs, v.limbs) // zero-extend v into the wider field

	shifted := newValue(width)
	shiftLeftLimbs(wide.limbs, o.width, shifted.limbs)

	out := newValue(width)
	copy(out.limbs, o.limbs) // zero-extend o into the wider field, low bits
	for i := range out.limbs {
		out.limbs[i] |= shifted.limbs[i]
	}
	return out.masked()
}

// Slice returns bits [lo, hi] inclusive (hi >= lo), a (hi-lo+1)-wide value.
func (v Value) Slice(hi, lo uint32) Value {
	width := hi - lo + 1
	shifted := v.Srl(lo)
	out := newValue(width)
	copy(out.limbs, shifted.limbs)
	return out.masked()
}

// --- limb-level fallback for width > 256 -------------------------------

func addLimbs(a, b, out []uint64) {
	var carry uint64
	for i := range out {
		out[i], carry = bits.Add64(a[i], b[i], carry)
	}
}

func subLimbs(a, b, out []uint64) {
	var borrow uint64
	for i := range out {
		out[i], borrow = bits.Sub64(a[i], b[i], borrow)
	}
}

func mulLimbs(a, b, out []uint64) {
	n := len(out)
	acc := make([]uint64, n)
	for i := 0; i < n; i++ {
		if a[i] == 0 {
			continue
		}
		var carry uint64
		for j := 0; i+j < n; j++ {
			hi, lo := bits.Mul64(a[i], b[j])
			var c uint64
			acc[i+j], c = bits.Add64(acc[i+j], lo, 0)
			carry += hi + c
			if i+j+1 < n {
				acc[i+j+1], c = bits.Add64(acc[i+j+1], carry, 0)
				carry = c
			}
		}
	}
	copy(out, acc)
}

// divLimbs/remLimbs implement schoolbook binary long division over
// the limb slice. Used only above 256 bits, where this is not the hot
// path for any realistic bit-vector problem; correctness, not speed,
// is the goal here.
func divLimbs(a, b, out []uint64) {
	q, _ := longDivide(a, b)
	copy(out, q)
}

func remLimbs(a, b, out []uint64) {
	_, r := longDivide(a, b)
	copy(out, r)
}

func longDivide(a, b []uint64) (q, r []uint64) {
	n := len(a)
	q = make([]uint64, n)
	r = make([]uint64, n)
	totalBits := n * 64
	for i := totalBits - 1; i >= 0; i-- {
		// r <<= 1
		carry := uint64(0)
		for w := 0; w < n; w++ {
			nc := r[w] >> 63
			r[w] = (r[w] << 1) | carry
			carry = nc
		}
		if a[i/64]&(1<<(uint(i)%64)) != 0 {
			r[0] |= 1
		}
		if cmpLimbs(r, b) >= 0 {
			subLimbsInPlace(r, b)
			q[i/64] |= 1 << (uint(i) % 64)
		}
	}
	return q, r
}

func cmpLimbs(a, b []uint64) int {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func subLimbsInPlace(a, b []uint64) {
	var borrow uint64
	for i := range a {
		a[i], borrow = bits.Sub64(a[i], b[i], borrow)
	}
}

func shiftLeftLimbs(a []uint64, shift uint32, out []uint64) {
	wordShift := int(shift / 64)
	bitShift := uint(shift % 64)
	n := len(out)
	for i := n - 1; i >= 0; i-- {
		src := i - wordShift
		if src < 0 {
			out[i] = 0
			continue
		}
		v := a[src] << bitShift
		if bitShift > 0 && src-1 >= 0 {
			v |= a[src-1] >> (64 - bitShift)
		}
		out[i] = v
	}
}

func shiftRightLimbs(a []uint64, shift uint32, out []uint64) {
	wordShift := int(shift / 64)
	bitShift := uint(shift % 64)
	n := len(out)
	for i := 0; i < n; i++ {
		src := i + wordShift
		if src >= n {
			out[i] = 0
			continue
		}
		v := a[src] >> bitShift
		if bitShift > 0 && src+1 < n {
			v |= a[src+1] << (64 - bitShift)
		}
		out[i] = v
	}
}
