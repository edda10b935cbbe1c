package fact

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"fortio.org/safecast"
)

var errNotObject = errors.New("payload is not a JSON object")

// decodeObject decodes text as a single JSON object. Integers become int64
// so that nanosecond timestamps keep full precision; other numbers become
// float64.
func decodeObject(text string) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("decode payload: trailing data after object")
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	return normalizeNumbers(obj).(map[string]any), nil
}

func normalizeNumbers(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, item := range x {
			x[k] = normalizeNumbers(item)
		}
		return x
	case []any:
		for i, item := range x {
			x[i] = normalizeNumbers(item)
		}
		return x
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n
		}
		if u, err := strconv.ParseUint(x.String(), 10, 64); err == nil {
			return u
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	default:
		return v
	}
}

func intField(fields map[string]any, key string) *int64 {
	v, ok := fields[key]
	if !ok {
		return nil
	}
	n, ok := toInt64(v)
	if !ok {
		return nil
	}
	return &n
}

// toInt64 accepts the integer shapes produced by decodeObject and by
// msgpack decoding of cached fields.
func toInt64(v any) (int64, bool) {
	var (
		n   int64
		err error
	)
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		n, err = safecast.Conv[int64](x)
	case int8:
		n = int64(x)
	case int16:
		n = int64(x)
	case int32:
		n = int64(x)
	case uint8:
		n = int64(x)
	case uint16:
		n = int64(x)
	case uint32:
		n = int64(x)
	case uint64:
		n, err = safecast.Conv[int64](x)
	case float64:
		if x != math.Trunc(x) || x < math.MinInt64 || x >= math.MaxInt64 {
			return 0, false
		}
		n = int64(x)
	case string:
		n, err = strconv.ParseInt(x, 10, 64)
	default:
		return 0, false
	}
	if err != nil {
		return 0, false
	}
	return n, true
}

func stringField(fields map[string]any, key string) *string {
	v, ok := fields[key]
	if !ok {
		return nil
	}
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case int64:
		s = strconv.FormatInt(x, 10)
	case uint64:
		s = strconv.FormatUint(x, 10)
	default:
		return nil
	}
	return &s
}
