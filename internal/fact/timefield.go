package fact

import (
	"fmt"
	"strings"
)

// TimeField selects one of the timestamps a message occurrence may carry.
type TimeField uint8

const (
	// TimeReceive selects the time the message arrived at the receiver.
	TimeReceive TimeField = iota + 1
	// TimeHandle selects the time the receiver finished handling the message.
	TimeHandle
)

func (f TimeField) String() string {
	switch f {
	case TimeReceive:
		return "receive"
	case TimeHandle:
		return "handle"
	default:
		return "unknown"
	}
}

// ParseTimeField converts "receive" or "handle" to a TimeField.
func ParseTimeField(s string) (TimeField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "receive", "time2_receive":
		return TimeReceive, nil
	case "handle", "time3_handle":
		return TimeHandle, nil
	default:
		return 0, fmt.Errorf("invalid time field: %q (expected: receive|handle)", s)
	}
}
