package fact

// TraceConfiguration is the JSON settings block embedded in a trace file's
// leading comments.
type TraceConfiguration struct {
	// Raw is the accumulated block text as it was decoded.
	Raw    string
	Values map[string]any
	LineNo uint32 // line of the closing marker
}

// ParseConfiguration decodes an accumulated configuration block.
func ParseConfiguration(text string, line uint32) (*TraceConfiguration, error) {
	values, err := decodeObject(text)
	if err != nil {
		return nil, err
	}
	return &TraceConfiguration{Raw: text, Values: values, LineNo: line}, nil
}

// Lookup walks nested objects along path.
func (c *TraceConfiguration) Lookup(path ...string) (any, bool) {
	if c == nil {
		return nil, false
	}
	var cur any = c.Values
	for _, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = obj[key]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// Text returns the string value at path.
func (c *TraceConfiguration) Text(path ...string) (string, bool) {
	v, ok := c.Lookup(path...)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Application returns trace.application, the name of the traced application.
func (c *TraceConfiguration) Application() (string, bool) {
	return c.Text("trace", "application")
}
