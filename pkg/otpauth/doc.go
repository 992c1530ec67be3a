// Package otpauth holds the canonical credential model and converts it to and
// from the otpauth URI format understood by authenticator apps:
//
//	otpauth://{totp|hotp}/[{issuer}:]{account}?secret={base32}&issuer={issuer}&[counter={n}|period={n}]&algorithm={alg}&digits={6|8}
//
// Parse turns a URI into a Credential and Render does the reverse. Parse never
// returns a partially filled Credential: anything that is not a complete TOTP
// or HOTP definition is reported as ErrUnrecognized.
//
// # Usage
//
//	cred, err := otpauth.Parse("otpauth://totp/Acme:alice?secret=JBSWY3DPEHPK3PXP&issuer=Acme")
//	if errors.Is(err, otpauth.ErrUnrecognized) {
//		// not an OTP definition
//	}
//	uri := otpauth.Render(cred)
//
// Parameter order in rendered URIs is fixed (secret, issuer, period or
// counter, algorithm, digits) so output is deterministic.
//
// # See Also
//
// https://github.com/google/google-authenticator/wiki/Key-Uri-Format
package otpauth
