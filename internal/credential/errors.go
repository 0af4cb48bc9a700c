package credential

import "errors"

// Kind categorizes credential failures so callers can branch without matching strings.
type Kind string

const (
	// KindStructural means a PEM header was found without its matching footer.
	KindStructural Kind = "Structural"
	// KindMalformed means the PEM block is well-formed text but not a usable private key.
	KindMalformed Kind = "Malformed"
)

// Error is the structured error returned by Normalize and ParsePrivateKey.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return "credential: " + e.Message + ": " + e.Cause.Error()
	}
	return "credential: " + e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newError(kind Kind, msg string, cause error) error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// IsKind reports whether err is (or wraps) an *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
