// Copyright (c) 2025 The btorcore Authors
// SPDX-License-Identifier: MIT

package btorcore

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Two classes of failure exist in this core (spec §7) and neither is
// recoverable inside a public entry point:
//
//   - programmer errors: sort mismatch, null handle, double release,
//     id/refcount overflow, width-zero bit-vector. Contract violations
//     that can never occur in a correct caller.
//   - resource exhaustion: allocation failure, arena id overflow.
//
// Both are reported the same way: log a structured diagnostic through
// the Context's logger, then panic. There is no error return from a
// constructor — it either yields a valid owning Handle or the process
// aborts.

// ViolationError is the panic value raised by violationf. Callers that
// genuinely need to distinguish "this process is aborting because of a
// contract violation" from an arbitrary panic can recover and type-assert.
type ViolationError struct {
	cause error
}

func (e *ViolationError) Error() string { return e.cause.Error() }
func (e *ViolationError) Unwrap() error { return e.cause }

// violationf logs a structured diagnostic and panics. Use for
// programmer errors detected at a public entry point.
func (c *Context) violationf(format string, args ...any) {
	err := errors.Errorf(format, args...)
	c.logger.Error("contract violation", zap.Error(err))
	panic(&ViolationError{cause: err})
}

// exhaustedf logs and panics for resource exhaustion (id overflow,
// refcount overflow). Distinct from violationf only in wording: both
// are unconditional aborts, spec §7 draws the line for documentation
// purposes, not for different handling.
func (c *Context) exhaustedf(format string, args ...any) {
	err := errors.Wrap(errors.Errorf(format, args...), "resource exhausted")
	c.logger.Error("resource exhaustion", zap.Error(err))
	panic(&ViolationError{cause: err})
}

// hookFailed wraps an error surfaced by an external hook (Rewriter,
// BetaReducer, Blaster). The hooks are contractually required to never
// return a recoverable error (spec §6/§7); one reaching here is itself
// a contract violation on the hook's part, not a normal error path.
func (c *Context) hookFailed(hook string, err error) {
	wrapped := errors.Wrapf(err, "%s hook violated its contract", hook)
	c.logger.Error("hook contract violation", zap.Error(wrapped))
	panic(&ViolationError{cause: wrapped})
}
