// Package token defines lexical token kinds for ART trace lines.
// Invariants:
//   - Token.Text is the exact slice of the scanned line the token was built from.
//   - Tokens never span lines; Line is the 1-based line the token came from.
//   - Comments and whitespace never appear in the token stream.
//   - Payload tokens (EventPayload, DataPayload) always extend to the end of the line,
//     so at most one of them is produced per line and it is followed only by EOF.
package token
