// Package message classifies decoded JSON payloads pushed by a workflow
// runner into the closed set of step-by-step debug message kinds.
//
// The runner's debug channel is loosely typed: every message is a JSON
// object with a string "type" discriminant and kind-specific fields.
// This package centralizes all structural checks so that callers never
// scatter type assertions across the codebase:
//   - Object wraps map[string]any with presence-aware typed accessors
//   - Kind and KindOf map type discriminants (including legacy
//     unprefixed aliases) to message kinds
//   - Guard predicates (IsInputRequest, IsStats, ...) validate the
//     required fields of each kind; they are pure and never panic
//   - CanProcess decides whether a payload belongs to the step-by-step
//     channel at all, or should fall through to chat processing
//   - NewControlResponse builds the outbound control message shape
package message
