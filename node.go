// Copyright (c) 2025 The btorcore Authors
// SPDX-License-Identifier: MIT

package btorcore

import "github.com/exprdag/btorcore/internal/bv"

// nodeFlags packs the small set of booleans every node carries into a
// single byte. The get/set/clear shape is lifted from
// internal/bitset/bitset256.go's MustSet/MustClear/Test (shift, mask,
// no allocation) narrowed from a 256-bit set down to the handful of
// bits a Node actually needs.
type nodeFlags uint8

const (
	flagUnique nodeFlags = 1 << iota
	flagParameterized
	flagLambdaBelow
	flagApplyBelow
	flagIsArray
)

func (f *nodeFlags) set(bit nodeFlags)   { *f |= bit }
func (f *nodeFlags) clear(bit nodeFlags) { *f &^= bit }
func (f nodeFlags) test(bit nodeFlags) bool { return f&bit != 0 }

// lifecycle mirrors spec §3.5's state machine. It exists mostly for
// assertions in debug paths; the authoritative state is always
// reconstructable from (kind, unique flag, arena slot).
type lifecycle uint8

const (
	lcLive lifecycle = iota
	lcNotUnique
	lcErased
	lcDisconnected
	lcInvalid
)

// Node is one term in the shared DAG: either a primitive or an
// operator applied to up to three child edges (spec §3.1). Every
// field here is core-private; the introspection API (introspect.go)
// is the only sanctioned way for a caller to read one.
type Node struct {
	id    uint64
	kind  Kind
	sort  SortID
	flags nodeFlags
	state lifecycle

	arity    uint8
	children [3]Handle

	refs    uint32
	extRefs uint32
	parents uint32

	firstParent Handle
	lastParent  Handle
	nextParent  [3]Handle
	prevParent  [3]Handle

	simplified Handle // forwarding edge once proxied; zero = none

	hash uint64 // cached fingerprint (or lambda hash); reused verbatim on unique-table resize
	next *Node  // unique-table collision chain

	// kind-specific extensions (spec §3.1). Only the fields relevant
	// to Node.kind are ever populated; the rest sit at their zero value.
	bvVal     *bv.Value // BvConst: the owned value
	bvInv     *bv.Value // BvConst: precomputed bitwise inverse, used for negation sharing
	sliceHi   uint32    // Slice: inclusive upper bit
	sliceLo   uint32   // Slice: inclusive lower bit
	param     Handle   // Lambda: bound parameter
	body      Handle   // Lambda: raw body as given to the constructor
	bodyPtr   Handle   // Lambda: == simplified body, kept for rewrite caching
	staticRho map[uint64]staticRhoEntry // Lambda write: seeded arg-tuple -> result cache

	bindingLambda Handle // Param: weak back-reference to its binder, 0 if unbound
	assigned      Handle // Param: beta-reduction substitution, 0 if none

	symbol string // BvVar/Uf/Param/Lambda: declared name, "" if anonymous

	rho map[uint64]Handle // Apply-cache: memoizes beta-reduction results keyed by arg handle
	av  any                // opaque cached bit-blast result (Blaster-defined)
}

// staticRhoEntry is one seeded write(arr, index, value) cache entry
// (arrays.go's seedStaticRho): both key and value are owning
// references, so tearing down the node that holds the cache (release.go,
// proxy.go) must release both, not just the value.
type staticRhoEntry struct {
	key   Handle
	value Handle
}

// reset clears a node back to its zero state before it is returned to
// the pool (pool.go). Mirrors bart's node.reset(): every field, the
// child edges and parent links included, goes back to its zero value.
func (n *Node) reset() {
	*n = Node{
		children:   n.children,
		nextParent: n.nextParent,
		prevParent: n.prevParent,
	}
	n.children = [3]Handle{}
	n.nextParent = [3]Handle{}
	n.prevParent = [3]Handle{}
}

// isParameterized reports whether the node transitively contains an
// unbound parameter occurrence.
func (n *Node) isParameterized() bool { return n.flags.test(flagParameterized) }

// hasLambdaBelow reports whether the node transitively contains a
// nested lambda.
func (n *Node) hasLambdaBelow() bool { return n.flags.test(flagLambdaBelow) }

// hasApplyBelow reports whether the node transitively contains an apply.
func (n *Node) hasApplyBelow() bool { return n.flags.test(flagApplyBelow) }

// isArrayNode reports whether the node (necessarily Fun-sorted) is an array.
func (n *Node) isArrayNode() bool { return n.flags.test(flagIsArray) }

// isUnique reports whether the node is currently present in the unique table.
func (n *Node) isUnique() bool { return n.flags.test(flagUnique) }
