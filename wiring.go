// Copyright (c) 2025 The btorcore Authors
// SPDX-License-Identifier: MIT

package btorcore

// connect installs child as parent's pos'th child edge: it bumps the
// child's parent count and refcount, inherits the "below" flags, and
// splices a parent-list entry into the child's intrusive doubly-linked
// parent list (spec §4.5.2).
//
// The parent list is threaded through the *child*'s firstParent/
// lastParent head/tail and the *parent*'s own nextParent[pos]/
// prevParent[pos] arrays: since a node can occupy more than one child
// slot of the same parent (e.g. `and(a, a)`), each occurrence needs
// its own pair of links, so the link lives at the (parent, pos) pair
// rather than on the parent node as a whole. This mirrors the
// original's tagged-parent-pointer trick (BTOR_PREV_PARENT /
// BTOR_NEXT_PARENT key off an occurrence, not just a node) without
// needing real pointer tagging: Handle's existing position tag (used
// elsewhere to address a child slot) plays double duty here as the
// occurrence identifier within the child's parent list.
func (c *Context) connect(parent *Node, pos uint8, child Handle) {
	cn := c.mustResolve(child)
	edge := handleFor(parent.id, false, pos)

	if parent.kind == Apply {
		// Apply nodes splice at the tail (spec §4.5.2): downstream
		// rewrite passes depend on apply occurrences being visited
		// after every other kind of use of the same child.
		if cn.lastParent.IsNull() {
			cn.firstParent = edge
			cn.lastParent = edge
		} else {
			tail := c.getNode(cn.lastParent.ID())
			tailPos := cn.lastParent.Position()
			tail.nextParent[tailPos] = edge
			parent.prevParent[pos] = cn.lastParent
			cn.lastParent = edge
		}
	} else {
		if cn.firstParent.IsNull() {
			cn.firstParent = edge
			cn.lastParent = edge
		} else {
			head := c.getNode(cn.firstParent.ID())
			headPos := cn.firstParent.Position()
			head.prevParent[headPos] = edge
			parent.nextParent[pos] = cn.firstParent
			cn.firstParent = edge
		}
	}

	cn.parents++
	cn.refs++
	parent.children[pos] = child

	if cn.flags.test(flagParameterized) {
		parent.flags.set(flagParameterized)
	}
	if cn.flags.test(flagLambdaBelow) {
		parent.flags.set(flagLambdaBelow)
	}
	if cn.flags.test(flagApplyBelow) {
		parent.flags.set(flagApplyBelow)
	}
}

// disconnect removes parent's pos'th child edge from that child's
// parent list and clears the edge's slot on parent. It does not touch
// the child's refcount: release.go owns the single place a child's
// refcount is decremented, after disconnect has made the edge
// unreachable.
//
// Returns the Handle that was stored at parent.children[pos] (the
// zero Handle if the slot was already empty), so the caller can
// continue releasing it.
func (c *Context) disconnect(parent *Node, pos uint8) Handle {
	childHandle := parent.children[pos]
	if childHandle.IsNull() {
		return childHandle
	}
	cn := c.mustResolve(childHandle)

	prev := parent.prevParent[pos]
	next := parent.nextParent[pos]

	if prev.IsNull() {
		cn.firstParent = next
	} else {
		prevNode := c.getNode(prev.ID())
		prevNode.nextParent[prev.Position()] = next
	}
	if next.IsNull() {
		cn.lastParent = prev
	} else {
		nextNode := c.getNode(next.ID())
		nextNode.prevParent[next.Position()] = prev
	}

	parent.nextParent[pos] = Handle(0)
	parent.prevParent[pos] = Handle(0)
	parent.children[pos] = Handle(0)
	cn.parents--

	// A lambda detaching from its own parameter clears the back
	// reference, unless the parameter has since been re-bound by a
	// different lambda (spec §4.5.2) — in which case the stored
	// binding no longer points at this parent and must survive.
	if parent.kind == Lambda && cn.kind == Param && cn.bindingLambda.ID() == parent.id {
		cn.bindingLambda = Handle(0)
	}

	return childHandle
}
