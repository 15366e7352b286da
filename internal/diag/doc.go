// Package diag defines the diagnostic model shared by the scanner phases.
//
// # Purpose
//
//   - Provide deterministic data structures for findings produced while
//     loading, parsing and scanning source files (unreadable files, syntax
//     errors, configuration problems).
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any IO or CLI integration. Rendering lives in
// internal/diagfmt; the driver decides which diagnostics are fatal.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//     Not to be confused with the logging levels the scanner looks for
//     (internal/levels).
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Path, Primary, Pos, Snippet – where the problem is. Position data is
//     resolved eagerly via Located because file sets do not outlive a pass.
//   - Notes – optional secondary spans/messages for additional context.
//
// # Emitting diagnostics
//
// Phases use a diag.Reporter. The parser constructs a ReportBuilder via
// ReportError and calls Emit; the scanner and driver report path-bound
// diagnostics directly. BagReporter aggregates into a Bag, which sorts and
// filters by severity. DedupReporter suppresses the repeats produced by six
// passes over the same tree.
package diag
