package types

import (
	"errors"
	"fmt"
	"net"
)

// ErrorKind classifies every failure the device layer can surface.
type ErrorKind uint

const (
	KindTransport ErrorKind = iota // bind, send, receive or timeout on the UDP exchange
	KindCodec                      // reply did not decode into the expected shape
	KindConfiguration              // no device selected
	KindValidation                 // bad mode name or missing mode sub-config
)

func (k ErrorKind) String() string {
	return [...]string{"Transport", "Codec", "Configuration", "Validation"}[k]
}

// Error is the single error type surfaced by the device layer.
type Error struct {
	Kind    ErrorKind // What went wrong
	Op      string    // Operation that failed
	Timeout bool      // Transport only: the receive deadline expired
	Err     error     // Underlying error, if any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Op)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewTransportError(op string, err error) *Error {
	var ne net.Error
	timeout := errors.As(err, &ne) && ne.Timeout()
	return &Error{Kind: KindTransport, Op: op, Timeout: timeout, Err: err}
}

func NewCodecError(op string, err error) *Error {
	return &Error{Kind: KindCodec, Op: op, Err: err}
}

func NewConfigurationError(op string) *Error {
	return &Error{Kind: KindConfiguration, Op: op}
}

func NewValidationError(op string) *Error {
	return &Error{Kind: KindValidation, Op: op}
}

// KindOf reports the kind of err when it carries one.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func IsKind(err error, k ErrorKind) bool {
	kind, ok := KindOf(err)
	return ok && kind == k
}

// IsTimeout reports whether err is a transport failure caused by the
// receive deadline expiring, as opposed to any other socket fault.
func IsTimeout(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindTransport && e.Timeout
}
