package factfmt

import (
	"arttrace/internal/fact"
	"arttrace/internal/sorter"
)

// Kinds of FactRecord.
const (
	KindInstance = "instance"
	KindMessage  = "message"
	KindNote     = "note"
)

// FactRecord is the flat, serializable form of a fact.
type FactRecord struct {
	Kind string `json:"kind" yaml:"kind" msgpack:"kind"`
	Line uint32 `json:"line" yaml:"line" msgpack:"line"`

	Address string `json:"address,omitempty" yaml:"address,omitempty" msgpack:"address,omitempty"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty" msgpack:"path,omitempty"`
	Type    string `json:"type,omitempty" yaml:"type,omitempty" msgpack:"type,omitempty"`
	Role    string `json:"role,omitempty" yaml:"role,omitempty" msgpack:"role,omitempty"`
	Thread  string `json:"thread,omitempty" yaml:"thread,omitempty" msgpack:"thread,omitempty"`

	Sender     *EndpointRecord `json:"sender,omitempty" yaml:"sender,omitempty" msgpack:"sender,omitempty"`
	Receiver   *EndpointRecord `json:"receiver,omitempty" yaml:"receiver,omitempty" msgpack:"receiver,omitempty"`
	Event      string          `json:"event,omitempty" yaml:"event,omitempty" msgpack:"event,omitempty"`
	Params     string          `json:"params,omitempty" yaml:"params,omitempty" msgpack:"params,omitempty"`
	Raw        string          `json:"raw,omitempty" yaml:"raw,omitempty" msgpack:"raw,omitempty"`
	Receive    *int64          `json:"receive,omitempty" yaml:"receive,omitempty" msgpack:"receive,omitempty"`
	Handle     *int64          `json:"handle,omitempty" yaml:"handle,omitempty" msgpack:"handle,omitempty"`
	SyncInvoke *string         `json:"sync_invoke,omitempty" yaml:"sync_invoke,omitempty" msgpack:"sync_invoke,omitempty"`
	SyncReply  *string         `json:"sync_reply,omitempty" yaml:"sync_reply,omitempty" msgpack:"sync_reply,omitempty"`

	Text string `json:"text,omitempty" yaml:"text,omitempty" msgpack:"text,omitempty"`
	Time *int64 `json:"time,omitempty" yaml:"time,omitempty" msgpack:"time,omitempty"`

	Fields map[string]any `json:"fields,omitempty" yaml:"fields,omitempty" msgpack:"fields,omitempty"`
}

type EndpointRecord struct {
	Address   string `json:"address" yaml:"address" msgpack:"address"`
	Name      string `json:"name" yaml:"name" msgpack:"name"`
	Port      string `json:"port,omitempty" yaml:"port,omitempty" msgpack:"port,omitempty"`
	PortIndex *int   `json:"port_index,omitempty" yaml:"port_index,omitempty" msgpack:"port_index,omitempty"`
}

// FileRecord groups the output of one trace file.
type FileRecord struct {
	Path   string         `json:"path" yaml:"path" msgpack:"path"`
	Lines  int            `json:"lines" yaml:"lines" msgpack:"lines"`
	Config *ConfigRecord  `json:"config,omitempty" yaml:"config,omitempty" msgpack:"config,omitempty"`
	Facts  []FactRecord   `json:"facts" yaml:"facts" msgpack:"facts"`
	Sorted []SortedRecord `json:"sorted,omitempty" yaml:"sorted,omitempty" msgpack:"sorted,omitempty"`
}

type ConfigRecord struct {
	Line        uint32         `json:"line" yaml:"line" msgpack:"line"`
	Application string         `json:"application,omitempty" yaml:"application,omitempty" msgpack:"application,omitempty"`
	Values      map[string]any `json:"values" yaml:"values" msgpack:"values"`
}

// SortedRecord is one line of a materialized sort.
type SortedRecord struct {
	Line uint32 `json:"line" yaml:"line" msgpack:"line"`
	Time *int64 `json:"time,omitempty" yaml:"time,omitempty" msgpack:"time,omitempty"`
	Text string `json:"text" yaml:"text" msgpack:"text"`
}

// FromFact flattens f. It returns false for a nil or unknown fact.
func FromFact(f fact.Fact) (FactRecord, bool) {
	switch v := f.(type) {
	case *fact.InstanceDecl:
		rec := FactRecord{
			Kind:    KindInstance,
			Line:    v.LineNo,
			Address: v.AddressText(),
			Path:    v.Path(),
			Type:    v.TypeName(),
			Role:    instanceRole(v),
		}
		if thread, ok := v.Thread(); ok {
			rec.Thread = thread
		}
		if v.Data != nil {
			rec.Fields = v.Data.Fields
		}
		return rec, true
	case *fact.MessageOccurrence:
		rec := FactRecord{
			Kind:     KindMessage,
			Line:     v.LineNo,
			Sender:   endpointRecord(v.Sender),
			Receiver: endpointRecord(v.Receiver),
			Event:    v.EventName(),
		}
		switch p := v.Payload.(type) {
		case *fact.RecordPayload:
			rec.Params = p.Params
			rec.Receive = p.Receive
			rec.Handle = p.Handle
			rec.SyncInvoke = p.SyncInvoke
			rec.SyncReply = p.SyncReply
			rec.Fields = p.Fields
		case *fact.TextPayload:
			rec.Params = p.Params
			rec.Raw = p.Raw
		}
		return rec, true
	case *fact.Note:
		return FactRecord{
			Kind:   KindNote,
			Line:   v.LineNo,
			Text:   v.Text,
			Time:   v.Time,
			Fields: v.Fields,
		}, true
	default:
		return FactRecord{}, false
	}
}

// FromFacts flattens every known fact, skipping nils.
func FromFacts(facts []fact.Fact) []FactRecord {
	out := make([]FactRecord, 0, len(facts))
	for _, f := range facts {
		if rec, ok := FromFact(f); ok {
			out = append(out, rec)
		}
	}
	return out
}

// FromConfig returns nil when cfg is nil.
func FromConfig(cfg *fact.TraceConfiguration) *ConfigRecord {
	if cfg == nil {
		return nil
	}
	rec := &ConfigRecord{Line: cfg.LineNo, Values: cfg.Values}
	if app, ok := cfg.Application(); ok {
		rec.Application = app
	}
	return rec
}

// FromSorted converts materialized lines.
func FromSorted(lines []sorter.Line) []SortedRecord {
	out := make([]SortedRecord, 0, len(lines))
	for _, l := range lines {
		rec := SortedRecord{Line: l.LineNo, Text: l.Text}
		if ts, ok := l.Time(); ok {
			rec.Time = &ts
		}
		out = append(out, rec)
	}
	return out
}

func endpointRecord(e fact.Endpoint) *EndpointRecord {
	return &EndpointRecord{
		Address:   e.AddressText(),
		Name:      e.Name,
		Port:      e.Port,
		PortIndex: e.PortIndex,
	}
}

func instanceRole(d *fact.InstanceDecl) string {
	switch {
	case d.IsTopCapsule():
		return "top"
	case d.IsSystem():
		return "system"
	case d.IsTimer():
		return "timer"
	default:
		return ""
	}
}
