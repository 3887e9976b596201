// Package crypterr defines the unified error taxonomy shared by every
// component of the Paillier/Catalano-Fiore/ExactMatch toolkit.
package crypterr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies the category of a domain error. It is a closed set:
// callers should switch on Kind rather than compare error strings.
type Kind int

const (
	// MessageOutOfRange is returned when a plaintext m is not in [0, n).
	MessageOutOfRange Kind = iota
	// CiphertextOutOfRange is returned when a ciphertext c is not in [0, n^2).
	CiphertextOutOfRange
	// KeySizeTooSmall is returned when a requested key size is below the
	// configured minimum.
	KeySizeTooSmall
	// NoModularInverse is returned when gcd(a, n) != 1.
	NoModularInverse
	// NegativeConversion is returned when an intermediate signed value
	// could not be converted back to a non-negative BigNat.
	NegativeConversion
	// HexParseError is returned when a hex field could not be parsed.
	HexParseError
	// HexFieldTooLong is returned when a hex field exceeds the maximum
	// permitted length. keyfile.Load also returns it when the key file
	// itself exceeds its size bound.
	HexFieldTooLong
	// KeyCoherenceError is returned when loaded key material fails an
	// internal consistency check (e.g. n_squared != n*n).
	KeyCoherenceError
	// KeaImVerFailed is returned when KEA image verification fails; the
	// corresponding plaintext must never be returned alongside this error.
	KeaImVerFailed
	// InvalidInput covers malformed caller input that doesn't fit a more
	// specific Kind.
	InvalidInput
)

func (k Kind) String() string {
	switch k {
	case MessageOutOfRange:
		return "message out of range"
	case CiphertextOutOfRange:
		return "ciphertext out of range"
	case KeySizeTooSmall:
		return "key size too small"
	case NoModularInverse:
		return "no modular inverse"
	case NegativeConversion:
		return "negative conversion"
	case HexParseError:
		return "hex parse error"
	case HexFieldTooLong:
		return "hex field too long"
	case KeyCoherenceError:
		return "key coherence error"
	case KeaImVerFailed:
		return "KEA image verification failed"
	case InvalidInput:
		return "invalid input"
	default:
		return "unknown error"
	}
}

// Error is the concrete error type returned by every component in this
// module. It carries a Kind plus optional structured context and an
// optional wrapped cause.
type Error struct {
	Kind Kind
	// Requested/Minimum are populated for KeySizeTooSmall.
	Requested, Minimum int
	// Actual/Maximum are populated for HexFieldTooLong.
	Actual, Maximum int
	// Message carries a free-form detail for InvalidInput.
	Message string
	cause   error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KeySizeTooSmall:
		return fmt.Sprintf("%s: requested %d bits, minimum %d", e.Kind, e.Requested, e.Minimum)
	case HexFieldTooLong:
		return fmt.Sprintf("%s: field is %d characters, maximum %d", e.Kind, e.Actual, e.Maximum)
	case InvalidInput:
		if e.Message != "" {
			return fmt.Sprintf("%s: %s", e.Kind, e.Message)
		}
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.cause.Error())
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Cause() error { return e.cause }

// New builds a bare Error of the given Kind.
func New(kind Kind) *Error {
	return &Error{Kind: kind}
}

// Wrap builds an Error of the given Kind around a lower-level cause,
// retaining a stack trace via github.com/pkg/errors.
func Wrap(kind Kind, cause error) *Error {
	return &Error{Kind: kind, cause: errors.WithStack(cause)}
}

// Invalid builds an InvalidInput error with a free-form message.
func Invalid(message string) *Error {
	return &Error{Kind: InvalidInput, Message: message}
}

// TooSmall builds a KeySizeTooSmall error.
func TooSmall(requested, minimum int) *Error {
	return &Error{Kind: KeySizeTooSmall, Requested: requested, Minimum: minimum}
}

// FieldTooLong builds a HexFieldTooLong error.
func FieldTooLong(actual, maximum int) *Error {
	return &Error{Kind: HexFieldTooLong, Actual: actual, Maximum: maximum}
}

// Is allows errors.Is(err, crypterr.New(Kind)) to match on Kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// RegistryKind identifies the disjoint set of key-registry errors.
type RegistryKind int

const (
	// NoPaillierKey is returned when a Paillier slot is requested but empty.
	NoPaillierKey RegistryKind = iota
	// NoKeaKey is returned when a KEA slot is requested but empty.
	NoKeaKey
	// LockPoisoned is returned when the registry's guard is unrecoverable.
	LockPoisoned
)

func (k RegistryKind) String() string {
	switch k {
	case NoPaillierKey:
		return "no Paillier key loaded"
	case NoKeaKey:
		return "no KEA key loaded"
	case LockPoisoned:
		return "registry lock poisoned"
	default:
		return "unknown registry error"
	}
}

// RegistryError is returned by keyring.Registry operations.
type RegistryError struct {
	Kind RegistryKind
}

func (e *RegistryError) Error() string { return e.Kind.String() }

// NewRegistryError builds a RegistryError of the given Kind.
func NewRegistryError(kind RegistryKind) *RegistryError {
	return &RegistryError{Kind: kind}
}

// AsDomainError maps a RegistryError into the main Error kind, for API
// boundaries that only want to expose the unified taxonomy.
func AsDomainError(err error) *Error {
	re, ok := err.(*RegistryError)
	if !ok {
		return nil
	}
	return &Error{Kind: InvalidInput, Message: re.Error(), cause: re}
}
