package jsongen

import "fmt"

// Kind classifies the errors this package can return.
type Kind int

const (
	// SchemaInvalid means the input schema failed self-validation.
	SchemaInvalid Kind = iota
	// OutputInvalid means the generated instance failed validation
	// against the input schema.
	OutputInvalid
	// UnresolvableRef means a $ref target could not be fetched or
	// pointed to.
	UnresolvableRef
	// TypeMismatch means merge/difference/subtract found a key present
	// with incompatible kinds (map vs list vs scalar).
	TypeMismatch
	// ConfigError means a static misconfiguration: multipleOf <= 0, or
	// an unknown formats provider name.
	ConfigError
	// UnsupportedKeyword is informational: a Draft-04 keyword outside
	// the recognized set was encountered.
	UnsupportedKeyword
)

func (k Kind) String() string {
	switch k {
	case SchemaInvalid:
		return "SchemaInvalid"
	case OutputInvalid:
		return "OutputInvalid"
	case UnresolvableRef:
		return "UnresolvableRef"
	case TypeMismatch:
		return "TypeMismatch"
	case ConfigError:
		return "ConfigError"
	case UnsupportedKeyword:
		return "UnsupportedKeyword"
	default:
		return "Unknown"
	}
}

// Error is the single error type returned by this package. Callers can
// errors.As a *Error and switch on its Kind.
type Error struct {
	Kind    Kind
	Path    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s at %s: %s", e.Kind, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newErr(kind Kind, path string, format string, args ...any) *Error {
	return &Error{Kind: kind, Path: path, Message: fmt.Sprintf(format, args...)}
}

func wrapErr(kind Kind, path string, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Path: path, Message: fmt.Sprintf(format, args...), Cause: cause}
}
