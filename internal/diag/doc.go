// Package diag carries diagnostics produced while lexing and parsing a
// script prefix.
//
// Diagnostics never abort analysis. A prefix typed up to the cursor is
// usually incomplete, so the parser reports what it saw and the engine
// falls back to an empty scope when the statement list is unusable.
// Callers decide whether to show the bag at all.
package diag
