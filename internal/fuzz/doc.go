// Package fuzztests holds fuzz harnesses for the trace pipeline
// (source -> lexer -> parser -> sorter). They check that arbitrary input
// never panics or hangs and that the sorter only permutes its lines.
package fuzztests
