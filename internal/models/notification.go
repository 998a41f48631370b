package models

import "fmt"

// Kind classifies a [Notification].
type Kind int

const (
	KindSuccess Kind = iota
	KindError
	KindInfo
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	case KindInfo:
		return "info"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Notification is a short-lived status message.
type Notification struct {
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
}
