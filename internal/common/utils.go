package common

import (
	"errors"
	"strings"
)

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// userFacing lists errors whose text is safe to show to an end user as is.
var userFacing = []error{
	ErrNoFile, ErrWrongExtension, ErrTooLarge,
	ErrMissingFields, ErrPasswordMismatch, ErrPasswordTooShort, ErrInvalidEmail, ErrEmailTaken, ErrInvalidCredentials,
	ErrUnauthenticated, ErrEmptySelection,
	ErrStorageNotConfigured,
}

// UserMessage renders err as a single line for the end user. Known errors keep
// their full wrapped text (which may carry details such as the size ceiling);
// anything else collapses to a generic message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	for _, known := range userFacing {
		if errors.Is(err, known) {
			return strings.TrimSpace(err.Error())
		}
	}
	return "unexpected error, please try again"
}
