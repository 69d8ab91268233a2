// Copyright (c) 2025 The btorcore Authors
// SPDX-License-Identifier: MIT

// Package btorcore is the expression core of an SMT solver over the
// theory of fixed-width bit-vectors and arrays (arrays are encoded as
// extensional functions over lambda terms).
//
// Its job is narrow and mechanical: construct, deduplicate, simplify
// and manage the lifetime of a shared directed acyclic graph of
// bit-vector/Boolean/array terms. Every term is a hash-consed [Node]
// reached through an owning [Handle]; structurally equal terms always
// resolve to the same node id, parent pointers let a rewriter walk the
// graph upward in O(parents), and reference counting drives deletion
// through an explicit work stack rather than native recursion.
//
// btorcore does not bit-blast, parse, search for a model, or manage
// incremental solving — those are external collaborators reached
// through the [Rewriter], [BetaReducer] and [Blaster] hooks. A single
// [Context] owns one arena, one unique table and one sort registry;
// two contexts share no state, and a node from one is never valid in
// another.
package btorcore
