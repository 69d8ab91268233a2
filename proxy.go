// Copyright (c) 2025 The btorcore Authors
// SPDX-License-Identifier: MIT

package btorcore

// SetToProxy rewrites x in place into a Proxy forwarding to y (spec
// §4.5.6): every handle that already points at x keeps working,
// transparently resolved to y by forward() (constructors.go) on its
// next use. x and y must be distinct, already-forwarded nodes of the
// same sort — a rewriter calling this on two differently-sorted terms
// is a contract violation, not a recoverable condition.
//
// Grounded verbatim on original_source/src/btorexp.c's
// btor_set_to_proxy_exp: remove from the unique table, erase local
// data (cache/rho/static_rho, but never x's sort — x keeps its sort
// forever, since callers may still query Width/Kind on a proxied
// handle), snapshot and disconnect the children, release each one,
// then mutate the kind and install the forwarding edge. The cache/rho
// erasure must happen strictly before children are disconnected: a
// rho or static_rho entry can itself reference one of x's children,
// so disconnecting first would leave that entry referring to an edge
// that has already been torn down.
func (c *Context) SetToProxy(x, y Handle) {
	xf := c.forward(x)
	y = c.forward(y)
	n := c.mustResolve(xf)
	if n.kind == Proxy {
		c.violationf("SetToProxy: node %d is already a proxy", n.id)
	}
	if n.sort != c.sortOf(y) {
		c.violationf("SetToProxy: sort mismatch %d vs %d", n.sort, c.sortOf(y))
	}

	if n.isUnique() {
		c.unique.remove(n)
	}

	if n.av != nil && c.blaster != nil {
		c.blaster.Invalidate(c, handleFor(n.id, false, 0))
	}
	n.av = nil
	n.rho = nil
	staticRho := n.staticRho
	n.staticRho = nil

	delete(c.bvVars, n.id)
	delete(c.ufs, n.id)
	delete(c.feqs, n.id)
	delete(c.lambdas, n.id)
	delete(c.parameterized, n.id)

	children := make([]Handle, n.arity)
	copy(children, n.children[:n.arity])
	for i := range children {
		c.disconnect(n, uint8(i))
	}
	for _, ch := range children {
		c.Release(ch)
	}
	for _, entry := range staticRho {
		c.Release(entry.key)
		c.Release(entry.value)
	}

	n.kind = Proxy
	n.arity = 0
	n.state = lcNotUnique
	n.bvVal, n.bvInv = nil, nil

	// n.simplified is always stored as the target for an *uninverted*
	// access to n (forward()'s convention, constructors.go): if xf
	// itself carried the inversion tag, the stored target must be
	// pre-flipped so that composing it back through forward() for
	// both an inverted and an uninverted future access reproduces y
	// (or Not(y)) exactly as xf related to y at the call site.
	target := y
	if xf.Inverted() {
		target = target.Not()
	}
	n.simplified = target.withPosition(0)
	c.resolve(y).refs++
}
