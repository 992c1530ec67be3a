package migration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amirkabiri/google-authenticator-exporter/pkg/basen"
	"github.com/amirkabiri/google-authenticator-exporter/pkg/otpauth"
)

// Algorithm is the wire code of the HMAC hash function.
type Algorithm int32

const (
	AlgorithmUnspecified Algorithm = iota
	AlgorithmSHA1
	AlgorithmSHA256
	AlgorithmSHA512
	AlgorithmMD5
)

// DigitCount is the wire code of the code length.
type DigitCount int32

const (
	DigitsUnspecified DigitCount = iota
	DigitsSix
	DigitsEight
)

// Type is the wire code of the OTP family.
type Type int32

const (
	TypeUnspecified Type = iota
	TypeHOTP
	TypeTOTP
)

// Record mirrors one otp_parameters element. Enum fields hold the raw wire
// codes, including codes this package does not know.
type Record struct {
	Secret    []byte
	Name      string
	Issuer    string
	Algorithm Algorithm
	Digits    DigitCount
	Type      Type
	Counter   uint64
}

// Payload is a decoded migration message: the records in wire order plus the
// batch header.
type Payload struct {
	Records    []Record
	Version    int32
	BatchSize  int32
	BatchIndex int32
	BatchID    int32
}

func (a Algorithm) known() bool  { return a >= AlgorithmUnspecified && a <= AlgorithmMD5 }
func (d DigitCount) known() bool { return d >= DigitsUnspecified && d <= DigitsEight }
func (t Type) known() bool       { return t >= TypeUnspecified && t <= TypeTOTP }

func (a Algorithm) otpauth() otpauth.Algorithm {
	switch a {
	case AlgorithmSHA256:
		return otpauth.SHA256
	case AlgorithmSHA512:
		return otpauth.SHA512
	case AlgorithmMD5:
		return otpauth.MD5
	default:
		return otpauth.SHA1
	}
}

func (d DigitCount) otpauth() int {
	if d == DigitsEight {
		return 8
	}
	return 6
}

func (t Type) otpauth() otpauth.Kind {
	if t == TypeHOTP {
		return otpauth.KindHOTP
	}
	return otpauth.KindTOTP
}

// Credential translates r into a canonical credential. Unknown or
// unspecified enum codes fall back to SHA1, 6 digits and TOTP. A TOTP
// record gets the default 30 second period; a HOTP record keeps its counter.
//
// A Name that starts with "Issuer:" has that prefix stripped from the
// account, so the label is not doubled. Authenticator apps keep the name
// verbatim as the account instead.
func (r Record) Credential() (otpauth.Credential, error) {
	if len(r.Secret) == 0 {
		return otpauth.Credential{}, errMissingSecret
	}

	c := otpauth.Credential{
		Kind:      r.Type.otpauth(),
		Issuer:    r.Issuer,
		Account:   r.Name,
		Secret:    basen.EncodeBase32(r.Secret),
		Algorithm: r.Algorithm.otpauth(),
		Digits:    r.Digits.otpauth(),
	}
	if r.Issuer != "" {
		c.Account = strings.TrimPrefix(r.Name, r.Issuer+":")
	}
	switch c.Kind {
	case otpauth.KindTOTP:
		c.Period = otpauth.DefaultPeriod
	case otpauth.KindHOTP:
		c.Counter = r.Counter
	}
	return otpauth.Canonical(c)
}

// FromCredential builds the wire record for c. The migration format has no
// period, so a TOTP credential with a period other than the default fails
// with ErrUnsupportedPeriod.
func FromCredential(c otpauth.Credential) (Record, error) {
	if c.Kind == otpauth.KindTOTP && c.Period != 0 && c.Period != otpauth.DefaultPeriod {
		return Record{}, errors.Join(ErrUnsupportedPeriod, fmt.Errorf("period %ds", c.Period))
	}

	secret, err := c.SecretBytes()
	if err != nil {
		return Record{}, err
	}

	r := Record{
		Secret:  secret,
		Name:    c.Account,
		Issuer:  c.Issuer,
		Digits:  DigitsSix,
		Type:    TypeTOTP,
		Counter: c.Counter,
	}
	switch c.Algorithm {
	case otpauth.SHA256:
		r.Algorithm = AlgorithmSHA256
	case otpauth.SHA512:
		r.Algorithm = AlgorithmSHA512
	case otpauth.MD5:
		r.Algorithm = AlgorithmMD5
	default:
		r.Algorithm = AlgorithmSHA1
	}
	if c.Digits == 8 {
		r.Digits = DigitsEight
	}
	if c.Kind == otpauth.KindHOTP {
		r.Type = TypeHOTP
	}
	return r, nil
}

// NewPayload builds a single-batch payload holding creds in order.
func NewPayload(creds ...otpauth.Credential) (Payload, error) {
	p := Payload{Version: 1, BatchSize: 1}
	for _, c := range creds {
		r, err := FromCredential(c)
		if err != nil {
			return Payload{}, err
		}
		p.Records = append(p.Records, r)
	}
	return p, nil
}
