package types

import "fmt"

// Status is the readiness of a controller.
type Status int

// Readiness states. A controller starts in StatusLoading and moves to
// StatusReady after a successful fetch or StatusError after a failed one.
const (
	StatusLoading Status = iota
	StatusError
	StatusReady
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	case StatusReady:
		return "ready"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name produced by MarshalText.
func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "loading":
		*s = StatusLoading
	case "error":
		*s = StatusError
	case "ready":
		*s = StatusReady
	default:
		return fmt.Errorf("unknown status %q", b)
	}
	return nil
}
