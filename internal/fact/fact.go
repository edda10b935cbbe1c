package fact

import (
	"arttrace/internal/token"
)

// Fact is one parsed trace line.
type Fact interface {
	// Line returns the 1-based source line the fact was parsed from.
	Line() uint32
	isFact()
}

// InstanceDecl declares a runtime instance:
//
//	instance <address> <path>[: <dynamic type>] [{data}]
type InstanceDecl struct {
	Address token.Token
	// Structure holds Name tokens interleaved with Number tokens for indices.
	Structure []token.Token
	// DynamicType is nil for built-in runtime instances.
	DynamicType *token.Token
	Data        *InstanceData
	LineNo      uint32
}

// InstanceData is the structured payload attached to an instance line.
type InstanceData struct {
	Thread *string
	Fields map[string]any
}

func (d *InstanceDecl) Line() uint32 { return d.LineNo }
func (*InstanceDecl) isFact()        {}

// AddressText returns the address as written in the trace.
func (d *InstanceDecl) AddressText() string { return d.Address.Text }

// TypeName returns the dynamic type name, or "" when absent.
func (d *InstanceDecl) TypeName() string {
	if d.DynamicType == nil {
		return ""
	}
	return d.DynamicType.Text
}

// Thread returns the thread the instance runs on, when known.
func (d *InstanceDecl) Thread() (string, bool) {
	if d.Data == nil || d.Data.Thread == nil {
		return "", false
	}
	return *d.Data.Thread, true
}

// Endpoint is one side of a message occurrence.
type Endpoint struct {
	Address token.Token
	Name    string
	// Port is empty when the line names no port.
	Port      string
	PortIndex *int
}

// AddressText returns the address as written in the trace.
func (e Endpoint) AddressText() string { return e.Address.Text }

// HasPort reports whether the endpoint names a port.
func (e Endpoint) HasPort() bool { return e.Port != "" }

// MessageOccurrence is a message passed between two instances:
//
//	<addr> <name>[.port][[idx]] -> <addr> <name>[.port][[idx]] : <event>(<params>)[{data}]
type MessageOccurrence struct {
	Sender   Endpoint
	Receiver Endpoint
	Event    token.Token
	Payload  Payload
	LineNo   uint32
}

func (m *MessageOccurrence) Line() uint32 { return m.LineNo }
func (*MessageOccurrence) isFact()        {}

// EventName returns the event (signal) name.
func (m *MessageOccurrence) EventName() string { return m.Event.Text }

// Record returns the structured payload, if the message has one.
func (m *MessageOccurrence) Record() (*RecordPayload, bool) {
	rec, ok := m.Payload.(*RecordPayload)
	return rec, ok
}

// ReceiveTime returns the time the message was received.
func (m *MessageOccurrence) ReceiveTime() (int64, bool) {
	return m.Timestamp(TimeReceive)
}

// HandleTime returns the time the message was handled.
func (m *MessageOccurrence) HandleTime() (int64, bool) {
	return m.Timestamp(TimeHandle)
}

// Timestamp returns the selected timestamp, if present.
func (m *MessageOccurrence) Timestamp(field TimeField) (int64, bool) {
	rec, ok := m.Record()
	if !ok {
		return 0, false
	}
	var ts *int64
	switch field {
	case TimeReceive:
		ts = rec.Receive
	case TimeHandle:
		ts = rec.Handle
	}
	if ts == nil {
		return 0, false
	}
	return *ts, true
}

// Note is a free text annotation:
//
//	note "<text>" [{data}]
type Note struct {
	Text   string
	Time   *int64
	Fields map[string]any
	LineNo uint32
}

func (n *Note) Line() uint32 { return n.LineNo }
func (*Note) isFact()        {}
