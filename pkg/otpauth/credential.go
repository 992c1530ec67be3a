package otpauth

import (
	"strings"

	"github.com/amirkabiri/google-authenticator-exporter/pkg/basen"
)

// Scheme is the URI scheme of a single OTP credential.
const Scheme = "otpauth"

const (
	DefaultAlgorithm = SHA1 // RFC 6238 default
	DefaultDigits    = 6
	DefaultPeriod    = 30 // seconds
)

// Kind selects the one-time password algorithm family.
type Kind string

const (
	KindTOTP Kind = "totp"
	KindHOTP Kind = "hotp"
)

// Valid reports whether k is TOTP or HOTP.
func (k Kind) Valid() bool {
	return k == KindTOTP || k == KindHOTP
}

// Algorithm is the HMAC hash function name as used in otpauth URIs.
type Algorithm string

const (
	SHA1   Algorithm = "SHA1"
	SHA256 Algorithm = "SHA256"
	SHA512 Algorithm = "SHA512"
	MD5    Algorithm = "MD5"
)

// Valid reports whether a is one of the supported hash functions.
func (a Algorithm) Valid() bool {
	switch a {
	case SHA1, SHA256, SHA512, MD5:
		return true
	}
	return false
}

// ParseAlgorithm normalizes an algorithm name. An empty name yields the
// default algorithm.
func ParseAlgorithm(s string) (Algorithm, bool) {
	if strings.TrimSpace(s) == "" {
		return DefaultAlgorithm, true
	}
	a := Algorithm(strings.ToUpper(strings.TrimSpace(s)))
	return a, a.Valid()
}

// Credential is the canonical OTP credential. Values produced by Parse or
// Canonical satisfy all invariants: a supported kind and algorithm, digits of
// 6 or 8, a non-empty base32 secret, a positive period for TOTP only and a
// counter for HOTP only.
type Credential struct {
	Kind      Kind
	Issuer    string
	Account   string
	Secret    string // upper case base32, padded to a multiple of 8
	Algorithm Algorithm
	Digits    int
	Period    int    // TOTP only
	Counter   uint64 // HOTP only
	URI       string // normalized otpauth URI this credential was built from
}

// SecretBytes decodes the base32 secret.
func (c Credential) SecretBytes() ([]byte, error) {
	return basen.DecodeBase32(c.Secret)
}

// Label returns the human readable "issuer:account" form, or whichever part
// is present.
func (c Credential) Label() string {
	switch {
	case c.Issuer != "" && c.Account != "":
		return c.Issuer + ":" + c.Account
	case c.Account != "":
		return c.Account
	default:
		return c.Issuer
	}
}

// Equivalent reports whether two credentials describe the same generator,
// ignoring the URI they were built from.
func (c Credential) Equivalent(o Credential) bool {
	c.URI, o.URI = "", ""
	return c == o
}

// Canonical validates c by rendering and re-parsing it. The result carries
// the rendered URI and a normalized secret.
func Canonical(c Credential) (Credential, error) {
	if c.Algorithm == "" {
		c.Algorithm = DefaultAlgorithm
	}
	if c.Digits == 0 {
		c.Digits = DefaultDigits
	}
	if c.Kind == KindTOTP && c.Period == 0 {
		c.Period = DefaultPeriod
	}
	out, err := Parse(Render(c))
	if err != nil {
		return Credential{}, err
	}
	out.URI = Render(out)
	return out, nil
}
