//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package dwp

import "errors"

// Sentinel errors returned by this package, in the style of the donor
// repository's exported package-level errors (crypto/spdz, kernel).
var (
	// ErrBadInput covers malformed key/IV/tag sizes, caught before any
	// state mutation. No aliasing check is made: Wrap and Unwrap allocate
	// their own output buffers.
	ErrBadInput = errors.New("dwp: bad input")

	// ErrAuthFailure is returned by Unwrap when the presented tag does
	// not match the computed one. No plaintext is released. (StepV
	// reports a mismatch as false rather than as an error.)
	ErrAuthFailure = errors.New("dwp: authentication failure")

	// ErrOrder is returned when a Step is called out of the required
	// I* -> (E|A)* -> G|V phase order. It is a programming error, not an
	// expected runtime condition, but it is surfaced as an error rather
	// than a panic so misuse is debuggable from a caller's test suite.
	ErrOrder = errors.New("dwp: step called out of order")

	// ErrFinalized is returned by any Step call made after StepG/StepV
	// has already finalized the state.
	ErrFinalized = errors.New("dwp: state already finalized")
)
