package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so that callers branch on it rather than on message text.
type Kind int

const (
	// KindUnknown is an error that carries no classification.
	KindUnknown Kind = iota
	// KindConfiguration is a missing or invalid startup input.
	KindConfiguration
	// KindAuthentication is a failed long-lived to session credential exchange.
	KindAuthentication
	// KindConnect is a failed upstream connection or handshake.
	KindConnect
	// KindNotConnected is a request that arrived with no open upstream session.
	KindNotConnected
	// KindUpstream is a rejected, failed or non-conforming upstream round trip.
	KindUpstream
)

// ErrNotConnected is the cause of every KindNotConnected failure.
var ErrNotConnected = errors.New("no upstream session connected")

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindAuthentication:
		return "authentication"
	case KindConnect:
		return "connect"
	case KindNotConnected:
		return "not_connected"
	case KindUpstream:
		return "upstream"
	}
	return "unknown"
}

// Fatal reports whether a failure of this kind must stop the process.
func (k Kind) Fatal() bool {
	switch k {
	case KindConfiguration, KindAuthentication, KindConnect:
		return true
	}
	return false
}

// Error represents a classified failure of a named operation
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s failure", e.Op, e.Kind)
	}
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a classified error
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf creates a classified error with a formatted cause
func Errorf(kind Kind, op string, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// NotConnected returns the not-connected failure for op
func NotConnected(op string) *Error {
	return &Error{Kind: KindNotConnected, Op: op, Err: ErrNotConnected}
}

// KindOf returns the kind of the outermost classified error in the chain.
func KindOf(err error) Kind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
