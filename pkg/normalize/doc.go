// Package normalize turns arbitrary scanned text into a canonical otpauth
// URI.
//
// Scanners see many shapes besides plain otpauth URIs: links that carry the
// URI in a data parameter, vendor JSON blobs and bare base32 secrets. Each
// shape is recognized by a Probe, a pure function tried in order by a Chain.
// The first probe that matches wins:
//
//  1. otpauth://...                       returned unchanged
//  2. otpauth-migration://offline?data=   ErrMigration, decode separately
//  3. any URL with data=otpauth://...     the nested URI
//  4. {"secret": ...} JSON                a synthesized URI
//  5. a bare base32 string                otpauth://totp/Default:Account?...
//
// Anything else yields ErrRejected. Probes only reshape text; the resulting
// URI is validated by otpauth.Parse.
//
// # Usage
//
//	uri, err := normalize.Normalize(raw)
//	switch {
//	case errors.Is(err, normalize.ErrMigration):
//		// hand raw to the migration decoder
//	case errors.Is(err, otpauth.ErrUnrecognized):
//		// not an OTP code
//	}
package normalize
