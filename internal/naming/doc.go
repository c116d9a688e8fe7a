// Package naming synthesizes human-readable display names for bags and
// brews at creation time.
//
// A generation call flows through a fixed pipeline: a health check selects
// the degradation level, a coalescing map collapses concurrent identical
// requests, a deadline bounds total latency, and the pipeline itself
// resolves owner and bean names (through TTL caches), computes a day-phase
// sequence ordinal, and renders one of two templates. Every failure mode
// resolves to a cheap local placeholder; the public Generate methods never
// return an error, so entity creation cannot fail because of naming.
//
// Two limitations are deliberate:
//
//   - The deadline is soft. A timed-out caller receives a placeholder, but
//     the in-flight computation keeps running and still populates the
//     caches when it settles, so the next call benefits.
//   - Sequence ordinals are computed count-then-use with no serialization
//     against the store. Two truly parallel brew creations in the same
//     bucket for the same barista can share an ordinal. Identical requests
//     (same barista, bag and millisecond instant) are coalesced, which is
//     the only deduplication performed.
package naming
