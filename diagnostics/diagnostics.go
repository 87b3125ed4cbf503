// Package diagnostics carries the reconciler's error taxonomy (spec
// §7): two fatal error types returned to abort a reconciliation, and
// one non-fatal warning delivered through a pluggable Sink instead of
// interrupting the call. The per-case exported-struct-with-Error()
// shape mirrors the teacher library's own errors.go (DefinitionNotFoundError,
// CycleDetectedError, ...).
package diagnostics

import "fmt"

// MissingOwnerError means a string ref was declared with no owner
// fiber to attach it to.
type MissingOwnerError struct {
	Key string
}

func (e MissingOwnerError) Error() string {
	return fmt.Sprintf("reconcile: string ref %q has no declared owner", e.Key)
}

// NotIterableError means a declared lazy child sequence failed to
// produce an iterator.
type NotIterableError struct{}

func (NotIterableError) Error() string {
	return "reconcile: lazy child sequence is not iterable"
}

// DuplicateKeyWarning is the non-fatal, development-build-only
// diagnostic reported on the second occurrence of a key among a
// parent's new children. The algorithm proceeds regardless: the first
// occurrence wins the key and later duplicates are treated as fresh
// insertions.
type DuplicateKeyWarning struct {
	Key   string
	Index int
}

func (w DuplicateKeyWarning) String() string {
	return fmt.Sprintf("duplicate key %q encountered again at child index %d", w.Key, w.Index)
}

// Sink receives non-fatal diagnostics. Fatal errors are never routed
// through a Sink; they are returned to the caller instead.
type Sink interface {
	Warn(w DuplicateKeyWarning)
}

// NopSink discards every warning. It is the default sink: dev-mode
// duplicate-key scanning is opt-in instrumentation, not default
// behavior (spec §7).
type NopSink struct{}

func (NopSink) Warn(DuplicateKeyWarning) {}

// LogFunc is satisfied by telemetry.LogFunction without this package
// depending on the telemetry package.
type LogFunc func(format string, args ...any)

// LogSink routes warnings through an arbitrary leveled log function.
type LogSink struct {
	Log LogFunc
}

func (s LogSink) Warn(w DuplicateKeyWarning) {
	if s.Log == nil {
		return
	}
	s.Log("%s", w.String())
}
