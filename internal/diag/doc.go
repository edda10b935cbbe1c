// Package diag defines the diagnostic model shared by the lexer, parser and driver.
//
// Nothing at the trace-parsing layer is fatal: a malformed line simply yields no
// fact. Diagnostics exist so that the operator can see what was skipped or
// degraded, for example a trace configuration block whose body is not valid
// JSON, or a message payload that had to be kept as raw text.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity: Info, Warning or Error (severity.go).
//   - Code: compact numeric identifier with a stable string form (codes.go).
//   - Message: short human oriented text.
//   - Primary: source.Span pointing at the offending line fragment.
//   - Notes: optional secondary spans with extra context.
//
// # Emitting diagnostics
//
// Producers depend on the Reporter interface only. BagReporter collects into a
// Bag (capped, sortable, deduplicable); DedupReporter filters repeats before
// forwarding. A nil Reporter is valid everywhere and drops diagnostics.
package diag
