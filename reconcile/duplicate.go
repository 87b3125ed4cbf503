package reconcile

import (
	"github.com/tonyjiang88215/react/diagnostics"
	"github.com/tonyjiang88215/react/iter"
)

// warnDuplicateKeysSlice scans newChildren for a repeated explicit key
// and reports every repeat after the first occurrence through sink.
// This is the opt-in development check from spec §7; the reconciler
// itself never rejects a duplicate key, it always treats the first
// occurrence as the owner and later repeats as fresh insertions.
func warnDuplicateKeysSlice(newChildren []any, sink diagnostics.Sink) {
	seen := make(map[string]bool)
	for i, raw := range newChildren {
		desc, err := normalizeChild(raw, nil)
		if err != nil || desc == nil {
			continue
		}
		key := childKey(desc)
		if key == nil {
			continue
		}
		if seen[*key] {
			sink.Warn(diagnostics.DuplicateKeyWarning{Key: *key, Index: i})
			continue
		}
		seen[*key] = true
	}
}

// warnDuplicateKeysIter scans a dedicated iterator obtained solely for
// the duplicate-key check, so the real reconciliation pass still gets
// a fresh, unconsumed iterator (spec §9, "Lazy sequence in dev mode").
func warnDuplicateKeysIter(it iter.Iterator, sink diagnostics.Sink) {
	if it == nil {
		return
	}
	seen := make(map[string]bool)
	i := 0
	for {
		raw, ok := it.Next()
		if !ok {
			return
		}
		desc, err := normalizeChild(raw, nil)
		if err == nil && desc != nil {
			if key := childKey(desc); key != nil {
				if seen[*key] {
					sink.Warn(diagnostics.DuplicateKeyWarning{Key: *key, Index: i})
				} else {
					seen[*key] = true
				}
			}
		}
		i++
	}
}
