package scanner

import (
	"errors"

	"github.com/amirkabiri/google-authenticator-exporter/pkg/otpauth"
)

var (
	// ErrNotOTP is the normal outcome for text that holds no credential. It
	// matches otpauth.ErrUnrecognized.
	ErrNotOTP = errors.Join(otpauth.ErrUnrecognized, errors.New("no OTP credential in scanned text"))

	// ErrInvalidPayload means the text looked like a migration export but
	// could not be decoded. It is joined with the codec or framing error.
	ErrInvalidPayload = errors.New("invalid migration payload")
)
