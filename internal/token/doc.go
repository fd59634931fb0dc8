// Package token defines lexical token kinds for the embedded script dialect.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly.
//   - Layout is explicit: the lexer emits Newline, Indent and Dedent, and
//     never emits Newline inside brackets.
//   - None, True and False are identifiers; the dialect allows rebinding them.
package token
