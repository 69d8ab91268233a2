// Copyright (c) 2025 The btorcore Authors
// SPDX-License-Identifier: MIT

package btorcore

import "go.uber.org/zap"

// Context owns one arena, one unique table and one sort registry
// (spec §5/§6: "the node arena, unique table, and side tables are
// owned by a single solver context. Two solver contexts share no
// state; a node from context A is invalid in context B"). There is no
// package-level mutable state anywhere in this module — every
// operation takes an explicit *Context, mirroring the teacher's own
// *Table[V] receiver style but at the scope of an entire solver
// instance rather than one routing table.
type Context struct {
	sorts *sortTable

	arenaSlots []*Node
	pool       *nodePool

	unique *uniqueTable

	// side tables (spec §4.6, §6): bookkeeping sets touched on
	// creation and cleared on release, independent of the unique
	// table (which only ever holds *sharable* nodes — BvVar and Uf
	// are explicitly never hash-consed, spec §4.4, yet still need
	// O(1) membership/cleanup tracking).
	bvVars        map[uint64]struct{}
	ufs           map[uint64]struct{}
	feqs          map[uint64]struct{}
	lambdas       map[uint64]struct{}
	parameterized map[uint64]struct{}
	node2symbol   map[string]uint64

	rewriteLevel  int
	arrayAsLambda bool

	rewriter    Rewriter
	betaReducer BetaReducer
	blaster     Blaster

	logger *zap.Logger
}

// Option configures a Context at construction time. This is the
// idiomatic Go shape for optional configuration (functional options),
// chosen instead of a config struct or a config-file library because
// the teacher itself configures its Table[V] the same way — by
// zero-value-then-method, not by a parsed config object — and the
// surface here (logger, rewrite level, one boolean) is too small to
// justify a dependency like spf13/viper.
type Option func(*Context)

// WithLogger attaches a structured logger used for contract-violation
// and resource-exhaustion diagnostics (errors.go). The default is a
// no-op logger, so library consumers pay nothing unless they opt in.
func WithLogger(l *zap.Logger) Option {
	return func(c *Context) { c.logger = l }
}

// WithRewriteLevel sets the rewrite level consulted by every compound
// constructor (spec §4.5 step 4). Level 0 disables the Rewriter hook
// entirely; the default is 0 so a Context built without a Rewriter
// never calls through a nil hook.
func WithRewriteLevel(level int) Option {
	return func(c *Context) { c.rewriteLevel = level }
}

// WithArrayAsLambda forces every array write through the lambda
// encoding (spec §4.5.4) even when all inputs are ground, instead of
// emitting an Update node. Off by default.
func WithArrayAsLambda(on bool) Option {
	return func(c *Context) { c.arrayAsLambda = on }
}

// WithRewriter installs the external rewriter hook (spec §6).
func WithRewriter(r Rewriter) Option {
	return func(c *Context) { c.rewriter = r }
}

// WithBetaReducer installs the external beta-reducer hook (spec §6).
func WithBetaReducer(b BetaReducer) Option {
	return func(c *Context) { c.betaReducer = b }
}

// WithBlaster installs the external bit-blaster hook (spec §6).
func WithBlaster(b Blaster) Option {
	return func(c *Context) { c.blaster = b }
}

// NewContext creates a fresh solver context: an empty arena (slot 0
// reserved), an empty unique table, an empty sort registry and empty
// side tables. Mirrors the original's btor_new_btor.
func NewContext(opts ...Option) *Context {
	c := &Context{
		sorts:         newSortTable(),
		arenaSlots:    make([]*Node, 1, 1024), // slot 0 reserved
		pool:          newNodePool(),
		unique:        newUniqueTable(),
		bvVars:        make(map[uint64]struct{}),
		ufs:           make(map[uint64]struct{}),
		feqs:          make(map[uint64]struct{}),
		lambdas:       make(map[uint64]struct{}),
		parameterized: make(map[uint64]struct{}),
		node2symbol:   make(map[string]uint64),
		logger:        zap.NewNop(),
	}
	return c
}

// DeleteContext releases every resource a Context holds. After this
// call the Context and every Handle it ever produced are invalid.
// Mirrors the original's btor_delete_btor. There is nothing to flush
// to disk (spec §5: "it persists no state to disk").
func DeleteContext(c *Context) {
	c.arenaSlots = nil
	c.pool = nil
	c.unique = nil
	c.sorts = nil
	c.bvVars, c.ufs, c.feqs, c.lambdas, c.parameterized, c.node2symbol = nil, nil, nil, nil, nil, nil
}

// Stats reports arena/pool bookkeeping counters, exposed for the
// cmd/btorctl introspection front-end and for tests (spec §8 scenario
// 5: "verify final node count equals the pre-allocation baseline").
type Stats struct {
	LiveNodes     int64
	TotalAllocs   int64
	UniqueEntries int
	NextID        uint64
}

func (c *Context) Stats() Stats {
	live, total := c.pool.stats()
	return Stats{
		LiveNodes:     live,
		TotalAllocs:   total,
		UniqueEntries: c.unique.count,
		NextID:        uint64(len(c.arenaSlots)),
	}
}
