// Package otp generates and checks HOTP (RFC 4226) and TOTP (RFC 6238)
// codes for otpauth credentials.
//
// Generation is a pure function of the credential and a point in time; the
// package keeps no state and never advances HOTP counters. The HMAC and
// truncation steps are delegated to github.com/pquerna/otp, which supports
// SHA1, SHA256, SHA512 and MD5.
//
// # Usage
//
//	code, err := otp.Generate(cred, time.Now())
//	left := otp.RemainingSeconds(cred.Period, time.Now())
//
//	// or both at once
//	c, err := otp.At(cred, time.Now())
//	fmt.Printf("%s (%ds)\n", c.Value, c.Remaining)
//
//	// check a typed code, accepting one period of clock drift
//	ok, err := otp.Verify(cred, input, time.Now(), 1)
//
// # Error Handling
//
// ErrBadSecret is returned when the stored secret is not decodable base32
// and ErrUnsupportedAlgorithm when the hash is not one of the four above.
// Verify reports malformed input with ErrInvalidCode.
package otp
