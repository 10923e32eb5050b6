// Package common defines sentinel errors and small helpers shared by the
// store, services and CLI layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Lookup errors.
	ErrNotFound       = errors.New("not found")
	ErrUnknownProfile = errors.New("unknown profile")

	// Concurrency guard: a run for the same profile is already in progress.
	ErrProfileBusy = errors.New("profile busy")

	// Input errors.
	ErrEmptyInput = errors.New("empty input")
)
