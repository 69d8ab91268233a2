// Copyright (c) 2025 The btorcore Authors
// SPDX-License-Identifier: MIT

package btorcore

import "testing"

type countingRewriter struct {
	calls int
}

func (r *countingRewriter) Rewrite(c *Context, kind Kind, sort SortID, children []Handle) Handle {
	r.calls++
	return Handle(0)
}

func TestRewriterNotConsultedAtLevelZero(t *testing.T) {
	rw := &countingRewriter{}
	c := NewContext(WithRewriter(rw))
	x := c.BvVar(8, "x")
	y := c.BvVar(8, "y")
	c.And(x, y)
	if rw.calls != 0 {
		t.Fatalf("a rewriter must not be consulted when rewriteLevel is 0, got %d calls", rw.calls)
	}
}

func TestRewriterConsultedAtPositiveLevel(t *testing.T) {
	rw := &countingRewriter{}
	c := NewContext(WithRewriter(rw), WithRewriteLevel(1))
	x := c.BvVar(8, "x")
	y := c.BvVar(8, "y")
	c.And(x, y)
	if rw.calls != 1 {
		t.Fatalf("a rewriter must be consulted exactly once per compound construction at level > 0, got %d calls", rw.calls)
	}
}

type substitutingRewriter struct {
	replacement Handle
}

func (r *substitutingRewriter) Rewrite(c *Context, kind Kind, sort SortID, children []Handle) Handle {
	if kind == And {
		c.resolve(r.replacement).refs++
		return r.replacement
	}
	return Handle(0)
}

func TestRewriterReplacementIsReturnedVerbatim(t *testing.T) {
	c := NewContext(WithRewriteLevel(1))
	stand := c.BvVar(8, "stand-in")
	c.rewriter = &substitutingRewriter{replacement: stand}

	x := c.BvVar(8, "x")
	y := c.BvVar(8, "y")
	got := c.And(x, y)
	if got.bare() != stand.bare() {
		t.Fatalf("And must return the rewriter's replacement verbatim when one is offered")
	}
}
