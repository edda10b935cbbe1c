package fact

import "strings"

// Keys recognized in structured payloads.
const (
	KeyReceive    = "time2_receive"
	KeyHandle     = "time3_handle"
	KeySyncInvoke = "sync_invoke"
	KeySyncReply  = "sync_reply"
	KeyThread     = "thread"
	KeyNoteTime   = "time"
)

// Payload is the data carried by a message occurrence.
// It is either *RecordPayload or *TextPayload.
type Payload interface {
	// ParamText returns the text written between the event's parentheses.
	ParamText() string
	isPayload()
}

// RecordPayload is a payload whose data decoded as a JSON object. The object
// either follows the closing parenthesis or is the whole parameter text.
type RecordPayload struct {
	Params string
	// Receive and Handle are nanosecond-scale timestamps.
	Receive *int64
	Handle  *int64
	// SyncInvoke and SyncReply hold correlation addresses of synchronous calls.
	SyncInvoke *string
	SyncReply  *string
	// Fields holds every decoded key, including the recognized ones.
	Fields map[string]any
}

func (p *RecordPayload) ParamText() string { return p.Params }
func (*RecordPayload) isPayload()          {}

// TextPayload is a payload with no structured data. Raw holds trailing text
// that failed to decode; it is empty when nothing followed the parameters.
type TextPayload struct {
	Params string
	Raw    string
}

func (p *TextPayload) ParamText() string { return p.Params }
func (*TextPayload) isPayload()          {}

// DecodePayload builds the payload of a message from its parameter text and
// the data that followed the closing parenthesis. Decoding never fails: data
// that is not a JSON object is kept verbatim in a *TextPayload. The returned
// error reports why the data was kept raw and is nil otherwise.
//
// Without trailing data, parameters that form a JSON object are decoded as
// the record; other parameter text stays plain.
func DecodePayload(params, data string) (Payload, error) {
	if data == "" {
		if !strings.HasPrefix(strings.TrimSpace(params), "{") {
			return &TextPayload{Params: params}, nil
		}
		fields, err := decodeObject(params)
		if err != nil {
			return &TextPayload{Params: params}, nil
		}
		return newRecord(params, fields), nil
	}
	fields, err := decodeObject(data)
	if err != nil {
		return &TextPayload{Params: params, Raw: data}, err
	}
	return newRecord(params, fields), nil
}

func newRecord(params string, fields map[string]any) *RecordPayload {
	return &RecordPayload{
		Params:     params,
		Receive:    intField(fields, KeyReceive),
		Handle:     intField(fields, KeyHandle),
		SyncInvoke: stringField(fields, KeySyncInvoke),
		SyncReply:  stringField(fields, KeySyncReply),
		Fields:     fields,
	}
}

// DecodeInstanceData decodes the object attached to an instance line.
func DecodeInstanceData(text string) (*InstanceData, error) {
	fields, err := decodeObject(text)
	if err != nil {
		return nil, err
	}
	return &InstanceData{Thread: stringField(fields, KeyThread), Fields: fields}, nil
}

// DecodeNoteData decodes the object attached to a note and returns its
// timestamp together with all fields.
func DecodeNoteData(text string) (*int64, map[string]any, error) {
	fields, err := decodeObject(text)
	if err != nil {
		return nil, nil, err
	}
	return intField(fields, KeyNoteTime), fields, nil
}
