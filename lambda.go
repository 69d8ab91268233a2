// Copyright (c) 2025 The btorcore Authors
// SPDX-License-Identifier: MIT

package btorcore

// Lambda binds param inside body and hash-conses the result up to
// alpha-renaming (spec §4.5.3): two lambdas sharing an id iff their
// bodies coincide after renaming the bound parameter (spec §3.4
// invariant 6). param must be a Param node produced by Context.Param
// and not yet bound to a different live lambda.
func (c *Context) Lambda(param, body Handle, symbol string) Handle {
	param = c.forward(param)
	body = c.forward(body)
	pn := c.mustResolve(param)
	if pn.kind != Param {
		c.violationf("Lambda: first argument must be a Param node")
	}

	bodySort := c.sortOf(body)
	domain := c.Tuple(pn.sort)
	funSort := c.Fun(domain, bodySort)
	c.releaseSort(domain)

	hash := c.lambdaHash(body, param)

	if c.rewriteLevel > 0 && c.rewriter != nil {
		if rw := c.rewriter.Rewrite(c, Lambda, funSort, []Handle{param, body}); !rw.IsNull() {
			c.releaseSort(funSort)
			return rw
		}
	}

	if found := c.unique.lookup(hash, func(n *Node) bool {
		return n.kind == Lambda && n.sort == funSort && c.lambdaMatches(param, body, n)
	}); found != nil {
		found.refs++
		c.releaseSort(funSort)
		return handleFor(found.id, false, 0)
	}

	n := c.allocNode()
	n.kind = Lambda
	n.sort = funSort
	n.arity = 2
	n.refs = 1
	n.hash = hash
	n.body = body
	n.bodyPtr = body
	c.connect(n, 0, param)
	c.connect(n, 1, body)
	n.flags.set(flagLambdaBelow)
	c.lambdas[n.id] = struct{}{}
	n.symbol = symbol
	if symbol != "" {
		c.node2symbol[symbol] = n.id
	}
	pn.bindingLambda = handleFor(n.id, false, 0)
	c.unique.insert(n)
	return handleFor(n.id, false, 0)
}

// lambdaHash is the traversal-based alpha-invariant hash of spec
// §4.5.3: a non-parameterized subterm contributes its id outright (its
// id already captures everything structurally beneath it, by the
// hash-cons invariant); an already-hashed nested lambda contributes
// its cached hash plus its own kind and its parameter's kind, without
// re-walking its body; every other node contributes its own kind
// mixed with its children's contributions. The query's bound
// parameter itself contributes only its kind — never its id — which
// is what makes two lambdas differing only in the bound variable's
// identity hash identically.
func (c *Context) lambdaHash(body, param Handle) uint64 {
	memo := make(map[Handle]uint64)
	boundID := param.bare().ID()

	var walk func(h Handle) uint64
	walk = func(h Handle) uint64 {
		n := c.mustResolve(h.bare())

		if n.id == boundID {
			v := mixHashes(uint64(Param))
			if h.Inverted() {
				v = mixHashes(v, 1)
			}
			return v
		}
		if !n.isParameterized() {
			v := mixHashes(n.id)
			if h.Inverted() {
				v = mixHashes(v, 1)
			}
			return v
		}
		if n.kind == Lambda {
			paramKind := c.mustResolve(n.children[0].bare()).kind
			v := mixHashes(n.hash, uint64(Lambda), uint64(paramKind))
			if h.Inverted() {
				v = mixHashes(v, 1)
			}
			return v
		}
		if v, ok := memo[h]; ok {
			return v
		}
		vals := make([]uint64, 0, int(n.arity)+2)
		vals = append(vals, uint64(n.kind))
		for i := 0; i < int(n.arity); i++ {
			vals = append(vals, walk(n.children[i]))
		}
		if h.Inverted() {
			vals = append(vals, 1)
		}
		v := mixHashes(vals...)
		memo[h] = v
		return v
	}
	return walk(body)
}

// lambdaMatches verifies a hash-bucket candidate is actually
// alpha-equivalent to (queryParam, queryBody): the fingerprint from
// lambdaHash is deliberately weak (a kind-only contribution for most
// parameterized interior nodes) so a match here is what spec §4.5.3
// calls the authoritative "structural comparison under a parameter
// substitution".
func (c *Context) lambdaMatches(queryParam, queryBody Handle, cand *Node) bool {
	candParam, candBody := cand.children[0], cand.children[1]
	if c.sortOf(queryParam) != c.sortOf(candParam) {
		return false
	}
	subst := map[uint64]uint64{queryParam.bare().ID(): candParam.bare().ID()}
	return c.matchUnder(queryBody, candBody, subst)
}

// matchUnder walks q (from the query lambda's body) and k (from the
// candidate's body) in lockstep. subst maps every bound parameter id
// seen so far on the query side to its counterpart on the candidate
// side, extended by one entry per nested binder (spec §4.5.3).
func (c *Context) matchUnder(q, k Handle, subst map[uint64]uint64) bool {
	qn := c.mustResolve(q.bare())

	if !qn.isParameterized() {
		// Already hash-consed identically regardless of binder
		// context: the two sides must be the very same edge.
		return q == k
	}

	if mapped, ok := subst[qn.id]; ok {
		kn := c.mustResolve(k.bare())
		return kn.id == mapped && q.Inverted() == k.Inverted()
	}
	if qn.kind == Param {
		// A parameterized occurrence of a parameter with no entry in
		// subst refers to some binder outside this lambda, which
		// cannot happen in a well-scoped body.
		return false
	}

	kn := c.mustResolve(k.bare())
	if qn.kind != kn.kind || qn.sort != kn.sort || qn.arity != kn.arity {
		return false
	}
	if q.Inverted() != k.Inverted() {
		return false
	}

	if qn.kind == Lambda {
		qp, kp := qn.children[0], kn.children[0]
		if c.sortOf(qp) != c.sortOf(kp) {
			return false
		}
		inner := make(map[uint64]uint64, len(subst)+1)
		for id, m := range subst {
			inner[id] = m
		}
		inner[qp.bare().ID()] = kp.bare().ID()
		return c.matchUnder(qn.children[1], kn.children[1], inner)
	}

	for i := 0; i < int(qn.arity); i++ {
		if !c.matchUnder(qn.children[i], kn.children[i], subst) {
			return false
		}
	}
	return true
}
