// Copyright (c) 2025 The btorcore Authors
// SPDX-License-Identifier: MIT

package btorcore

import (
	"sync"
	"sync/atomic"
)

// nodePool is a type-safe wrapper around sync.Pool specialized for
// *Node. It reuses node memory across allocate/free cycles (ids are
// never reused, spec §4.3, but the struct storage behind a freed id
// is fair game) and tracks allocation statistics for debugging and
// for the Context.Stats introspection call.
//
// Ported from the teacher's pool.go nearly verbatim: same embedded
// sync.Pool, same live/total atomic counters kept permanently rather
// than behind a build tag, because they are cheap and have caught
// real reference-counting bugs before.
type nodePool struct {
	sync.Pool

	totalAllocated atomic.Int64
	currentLive    atomic.Int64
}

func newNodePool() *nodePool {
	p := &nodePool{}
	p.New = func() any {
		p.totalAllocated.Add(1)
		return new(Node)
	}
	return p
}

// get retrieves a *Node from the pool, allocating a fresh one if needed.
func (p *nodePool) get() *Node {
	p.currentLive.Add(1)
	return p.Pool.Get().(*Node)
}

// put returns n to the pool after resetting it to its zero state.
func (p *nodePool) put(n *Node) {
	p.currentLive.Add(-1)
	n.reset()
	p.Pool.Put(n)
}

// stats reports the number of currently checked-out nodes and the
// total ever allocated.
func (p *nodePool) stats() (live, total int64) {
	return p.currentLive.Load(), p.totalAllocated.Load()
}
