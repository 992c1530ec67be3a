package otp

import "errors"

var (
	ErrUnsupportedKind      = errors.New("unsupported OTP kind")
	ErrBadSecret            = errors.New("secret is not valid base32")
	ErrUnsupportedAlgorithm = errors.New("unsupported HMAC algorithm")
	ErrInvalidCode          = errors.New("invalid code format")
	ErrFailedToGenerate     = errors.New("failed to generate code")
)
