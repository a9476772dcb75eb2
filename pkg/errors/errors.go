// Package errors provides structured error handling for Keyfort.
// It defines sentinel errors, exit codes, and helpers for adding
// context and suggestions to errors.
//
//nolint:revive // Package name intentionally shadows stdlib for domain-specific error handling
package errors

import (
	"errors"
	"fmt"
)

// Exit codes.
const (
	ExitSuccess = 0 // Successful execution
	ExitGeneral = 1 // General/unknown error
	ExitInput   = 2 // Invalid input
	ExitAuth    = 3 // Authentication failed
	ExitAbort   = 4 // User aborted the workflow
	ExitDevice  = 5 // Device left in indeterminate state
)

// KeyfortError is the structured error type for Keyfort.
type KeyfortError struct {
	Code       string // Machine-readable error code
	Message    string // Human-readable message
	Suggestion string // Actionable suggestion for user
	Cause      error  // Underlying error
	ExitCode   int    // Exit code for CLI
}

func (e *KeyfortError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *KeyfortError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for KeyfortError. Two KeyfortErrors match
// when their codes match, regardless of wrapped context.
func (e *KeyfortError) Is(target error) bool {
	var t *KeyfortError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors.
var (
	// ErrUserAbort indicates the user cancelled or declined a step of a
	// workflow. The whole workflow may be retried from scratch.
	ErrUserAbort = &KeyfortError{
		Code:     "USER_ABORT",
		Message:  "aborted by user",
		ExitCode: ExitAbort,
	}

	// ErrInvalidMnemonic indicates the entered recovery words failed
	// BIP39 checksum validation.
	ErrInvalidMnemonic = &KeyfortError{
		Code:     "INVALID_MNEMONIC",
		Message:  "invalid recovery words",
		ExitCode: ExitInput,
	}

	// ErrPasswordMismatch indicates the repeated password did not match
	// the first entry.
	ErrPasswordMismatch = &KeyfortError{
		Code:     "PASSWORD_MISMATCH",
		Message:  "passwords do not match",
		ExitCode: ExitInput,
	}

	// ErrStoreFailed indicates the seed could not be encrypted and
	// persisted.
	ErrStoreFailed = &KeyfortError{
		Code:     "STORE_FAILED",
		Message:  "could not store the recovered seed",
		ExitCode: ExitGeneral,
	}

	// ErrWrongPassword indicates an unlock attempt with a password that
	// does not decrypt the stored seed.
	ErrWrongPassword = &KeyfortError{
		Code:     "WRONG_PASSWORD",
		Message:  "wrong password",
		ExitCode: ExitAuth,
	}

	// ErrKeystoreFatal indicates the keystore is in an unrecoverable
	// state (corrupt storage, attempt budget exhausted).
	ErrKeystoreFatal = &KeyfortError{
		Code:     "KEYSTORE_FATAL",
		Message:  "keystore failure",
		ExitCode: ExitGeneral,
	}

	// ErrDeviceState indicates the device could not be marked
	// initialized and is left in an indeterminate state.
	ErrDeviceState = &KeyfortError{
		Code:       "DEVICE_STATE",
		Message:    "could not finalize device state",
		Suggestion: "retry the recovery; if the problem persists the data directory may be damaged",
		ExitCode:   ExitDevice,
	}

	// ErrWordlistUnavailable indicates a wordlist entry could not be
	// retrieved from the keystore.
	ErrWordlistUnavailable = &KeyfortError{
		Code:     "WORDLIST_UNAVAILABLE",
		Message:  "wordlist entry unavailable",
		ExitCode: ExitGeneral,
	}

	// ErrUnsupportedScript indicates a script type that has no
	// representation in the requested xpub family.
	ErrUnsupportedScript = &KeyfortError{
		Code:     "UNSUPPORTED_SCRIPT",
		Message:  "script type not representable in the requested xpub format",
		ExitCode: ExitInput,
	}

	// ErrInvalidXPub indicates a cosigner extended public key that
	// could not be decoded or re-encoded.
	ErrInvalidXPub = &KeyfortError{
		Code:     "INVALID_XPUB",
		Message:  "invalid extended public key",
		ExitCode: ExitInput,
	}

	// ErrInvalidMultisig indicates a multisig configuration violating
	// its invariants.
	ErrInvalidMultisig = &KeyfortError{
		Code:     "INVALID_MULTISIG",
		Message:  "invalid multisig configuration",
		ExitCode: ExitInput,
	}

	// ErrInvalidInput indicates malformed user or file input.
	ErrInvalidInput = &KeyfortError{
		Code:     "INVALID_INPUT",
		Message:  "invalid input",
		ExitCode: ExitInput,
	}

	// ErrConfigInvalid indicates an unreadable or malformed
	// configuration file.
	ErrConfigInvalid = &KeyfortError{
		Code:     "CONFIG_INVALID",
		Message:  "configuration file is invalid",
		ExitCode: ExitInput,
	}
)

// New creates a new KeyfortError with the given code and message.
func New(code, message string) *KeyfortError {
	return &KeyfortError{
		Code:     code,
		Message:  message,
		ExitCode: ExitGeneral,
	}
}

// Wrap wraps an error with additional context. KeyfortErrors keep
// their code, suggestion, and exit code.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)

	var ke *KeyfortError
	if errors.As(err, &ke) {
		return &KeyfortError{
			Code:       ke.Code,
			Message:    fmt.Sprintf("%s: %s", msg, ke.Message),
			Suggestion: ke.Suggestion,
			Cause:      ke.Cause,
			ExitCode:   ke.ExitCode,
		}
	}

	return &KeyfortError{
		Code:     "GENERAL_ERROR",
		Message:  msg,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithSuggestion attaches an actionable suggestion to an error.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}

	var ke *KeyfortError
	if errors.As(err, &ke) {
		return &KeyfortError{
			Code:       ke.Code,
			Message:    ke.Message,
			Suggestion: suggestion,
			Cause:      ke.Cause,
			ExitCode:   ke.ExitCode,
		}
	}

	return &KeyfortError{
		Code:       "GENERAL_ERROR",
		Message:    err.Error(),
		Suggestion: suggestion,
		Cause:      err,
		ExitCode:   ExitGeneral,
	}
}

// ExitCode returns the exit code for an error, ExitGeneral when the
// error carries none, and ExitSuccess for nil.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ke *KeyfortError
	if errors.As(err, &ke) {
		return ke.ExitCode
	}
	return ExitGeneral
}

// Code returns the machine-readable code for an error, or
// "GENERAL_ERROR" for plain errors.
func Code(err error) string {
	var ke *KeyfortError
	if errors.As(err, &ke) {
		return ke.Code
	}
	return "GENERAL_ERROR"
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain matching target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
