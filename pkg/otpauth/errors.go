package otpauth

import "errors"

var (
	// ErrUnrecognized means the input is not a valid TOTP or HOTP definition.
	// It is an expected outcome for arbitrary scans, not a failure.
	ErrUnrecognized = errors.New("not a recognizable OTP credential")
)
