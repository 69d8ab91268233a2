// Copyright (c) 2025 The btorcore Authors
// SPDX-License-Identifier: MIT

package btorcore

import (
	"github.com/exprdag/btorcore/internal/bv"
	"github.com/spaolacci/murmur3"
)

// uniqueTable is the hash-cons index (spec §4.4): an open-chained hash
// table keyed by a node's structural fingerprint, with collision
// chains threaded through Node.next instead of a separate bucket slice
// of slices — this is the same trick the teacher's Table[V] uses for
// its internal child/prefix arrays (reuse a field the struct already
// has rather than allocate an auxiliary collection per bucket), just
// applied to a singly-linked chain instead of a sparse array.
//
// Variables and uninterpreted functions are never inserted here (spec
// §4.4: "every fresh declaration is a distinct node") — constructors.go
// simply never calls insert for BvVar/Uf/Param.
type uniqueTable struct {
	buckets []*Node
	count   int
}

const uniqueTableMaxLog2 = 30

func newUniqueTable() *uniqueTable {
	return &uniqueTable{buckets: make([]*Node, 256)}
}

func (t *uniqueTable) bucketIndex(hash uint64) int {
	return int(hash & uint64(len(t.buckets)-1))
}

// lookup scans the chain for the bucket matching hash, calling match
// on every candidate whose cached fingerprint is equal, and returns
// the first one match accepts. match still has to compare kind and
// children itself: a fingerprint collision between different kinds or
// children is expected and must not be mistaken for identity.
func (t *uniqueTable) lookup(hash uint64, match func(*Node) bool) *Node {
	for n := t.buckets[t.bucketIndex(hash)]; n != nil; n = n.next {
		if n.hash == hash && match(n) {
			return n
		}
	}
	return nil
}

// insert threads n into its bucket's chain and grows the table first
// if the load factor is about to reach 1, per spec §4.4 ("doubles
// whenever load ≥ 1 and log2(size) < 30"). n.hash must already be set.
func (t *uniqueTable) insert(n *Node) {
	if t.count+1 >= len(t.buckets) && log2Floor(len(t.buckets)) < uniqueTableMaxLog2 {
		t.grow()
	}
	idx := t.bucketIndex(n.hash)
	n.next = t.buckets[idx]
	t.buckets[idx] = n
	n.flags.set(flagUnique)
	t.count++
}

// remove unlinks n from its bucket's chain. n.hash must still be the
// value it was inserted with (the unique table never rehashes a live
// node's fingerprint outside of grow, which reuses the cached value).
func (t *uniqueTable) remove(n *Node) {
	idx := t.bucketIndex(n.hash)
	cur := t.buckets[idx]
	if cur == n {
		t.buckets[idx] = n.next
		n.next = nil
		n.flags.clear(flagUnique)
		t.count--
		return
	}
	for cur != nil {
		if cur.next == n {
			cur.next = n.next
			n.next = nil
			n.flags.clear(flagUnique)
			t.count--
			return
		}
		cur = cur.next
	}
}

// grow doubles the bucket array and rehashes every live entry using
// its cached Node.hash — no fingerprint is ever recomputed on resize
// (spec §4.4).
func (t *uniqueTable) grow() {
	old := t.buckets
	t.buckets = make([]*Node, len(old)*2)
	for _, head := range old {
		for n := head; n != nil; {
			next := n.next
			idx := t.bucketIndex(n.hash)
			n.next = t.buckets[idx]
			t.buckets[idx] = n
			n = next
		}
	}
}

func log2Floor(n int) int {
	r := -1
	for n > 0 {
		r++
		n >>= 1
	}
	return r
}

// --- fingerprint functions (spec §4.4 table) ---

func mixHashes(vals ...uint64) uint64 {
	h := murmur3.New64()
	buf := make([]byte, 8)
	for _, v := range vals {
		for i := 0; i < 8; i++ {
			buf[i] = byte(v >> (8 * i))
		}
		_, _ = h.Write(buf)
	}
	return h.Sum64()
}

func fingerprintBvConst(v *bv.Value) uint64 {
	return v.Hash()
}

func fingerprintSlice(childID uint64, hi, lo uint32) uint64 {
	return mixHashes(uint64(Slice), childID, uint64(hi), uint64(lo))
}

// fingerprintOp computes the fingerprint for a binary/ternary op node.
// Children must already be in their canonical (commutativity-sorted)
// order by the time this is called — constructors.go does that
// normalisation before hashing, not this function, so the same
// ordering rule governs both the fingerprint and the stored children.
func fingerprintOp(kind Kind, children []Handle) uint64 {
	vals := make([]uint64, 0, len(children)+1)
	vals = append(vals, uint64(kind))
	for _, ch := range children {
		vals = append(vals, uint64(ch))
	}
	return mixHashes(vals...)
}
