// Package diag defines the diagnostic model shared by the scanner, the
// interpolation parser and the output layers.
//
// # Purpose
//
//   - Provide deterministic, serialisable records for malformed input found
//     while pre-parsing interpolated string literals.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//   - Model fix suggestions as structured edits an editor can apply.
//
// # Scope
//
// Package diag performs no formatting or IO. Rendering lives in
// internal/diagfmt; orchestration lives in internal/driver.
//
// # Data model
//
//   - Severity – Info, Warning, Error.
//   - Code – numeric identifier with a stable string form (FSTR4001, ...).
//   - Message – short, actionable text.
//   - Primary – the source.Span the diagnostic points at.
//   - Notes – optional secondary spans.
//   - Fixes – optional edits (e.g. double a stray '}' or insert a missing one).
//
// None of the parser's diagnostics are fatal: a literal always yields a tree.
//
// # Emitting diagnostics
//
// Producers call Reporter.Report directly or go through ReportBuilder
// (ReportError / ReportWarning) to attach notes and fixes before Emit.
// BagReporter stores into a Bag, which supports limits, sorting and
// deduplication; MultiReporter fans out to several sinks.
package diag
