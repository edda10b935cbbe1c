// Package fact holds the typed facts produced by parsing ART trace lines.
//
// A trace line yields at most one Fact: an *InstanceDecl, a *MessageOccurrence or
// a *Note. Callers switch on the concrete type; a nil Fact means the line carried
// nothing (blank, comment, or not a recognized statement).
//
// Message payloads are a closed two-variant union: *RecordPayload when the data
// following the parameters is a JSON object, *TextPayload otherwise. Callers must
// handle both.
package fact
