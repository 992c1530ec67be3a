// Package basen implements the binary-to-text transcoding used by scanned OTP
// payloads: base32 for shared secrets and base64url for the data parameter of
// migration URIs.
//
// Both directions are lenient about the shapes real scanners produce. The
// base32 decoder accepts lower case and missing padding, and drops a trailing
// partial group the way a bit-stream decoder does. The base64url decoder also
// accepts percent-encoded '/', '+' and '=' that leak through from URL
// contexts.
//
// # Usage
//
//	secret := basen.EncodeBase32(raw)          // "GEZDGNBV..." padded to 8
//	raw, err := basen.DecodeBase32("gezdgnbv") // case-insensitive
//	data, err := basen.DecodeBase64URL("CjEKCkhlbGxvId6tvu8SGEV4YW1w")
//
// # Error Handling
//
// Every decoding failure is reported as ErrMalformed joined with the
// underlying cause, so callers can match with errors.Is.
package basen
