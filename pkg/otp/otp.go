package otp

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"
	"github.com/pquerna/otp/totp"

	"github.com/amirkabiri/google-authenticator-exporter/pkg/basen"
	"github.com/amirkabiri/google-authenticator-exporter/pkg/otpauth"
)

// Code is a generated code together with its refresh window.
type Code struct {
	Value     string
	Period    int // 0 for HOTP
	Remaining int // seconds until Value changes; 0 for HOTP
}

// Generate computes the code of c at time t.
//
// For TOTP the counter is floor(unix(t) / period). For HOTP the stored
// counter is used as is; it is never advanced here.
func Generate(c otpauth.Credential, t time.Time) (string, error) {
	secret, opts, err := prepare(c)
	if err != nil {
		return "", err
	}

	counter := c.Counter
	if c.Kind != otpauth.KindHOTP {
		counter = timeCounter(t, period(c))
	}

	code, err := hotp.GenerateCodeCustom(secret, counter, opts)
	if err != nil {
		return "", errors.Join(ErrFailedToGenerate, err)
	}
	return code, nil
}

// At generates the code of c at t along with its countdown.
func At(c otpauth.Credential, t time.Time) (Code, error) {
	value, err := Generate(c, t)
	if err != nil {
		return Code{}, err
	}
	if c.Kind == otpauth.KindHOTP {
		return Code{Value: value}, nil
	}
	p := period(c)
	return Code{Value: value, Period: p, Remaining: RemainingSeconds(p, t)}, nil
}

// RemainingSeconds returns how many seconds the TOTP code valid at t has
// left, in the range [1, period]. A non-positive period means the default.
func RemainingSeconds(period int, t time.Time) int {
	if period <= 0 {
		period = otpauth.DefaultPeriod
	}
	p := int64(period)
	elapsed := ((t.Unix() % p) + p) % p
	return period - int(elapsed)
}

// Verify reports whether code is valid for c at t. For TOTP, skew extra
// periods on each side of t are accepted to tolerate clock drift. For HOTP,
// counters from the stored one up to skew ahead are accepted.
func Verify(c otpauth.Credential, code string, t time.Time, skew uint) (bool, error) {
	secret, opts, err := prepare(c)
	if err != nil {
		return false, err
	}

	code = strings.TrimSpace(code)
	if len(code) != opts.Digits.Length() || strings.IndexFunc(code, notDigit) >= 0 {
		return false, ErrInvalidCode
	}

	if c.Kind == otpauth.KindHOTP {
		for i := uint64(0); i <= uint64(skew); i++ {
			ok, err := hotp.ValidateCustom(code, c.Counter+i, secret, opts)
			if err != nil {
				return false, errors.Join(ErrInvalidCode, err)
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	}

	ok, err := totp.ValidateCustom(code, secret, t, totp.ValidateOpts{
		Period:    uint(period(c)),
		Skew:      skew,
		Digits:    opts.Digits,
		Algorithm: opts.Algorithm,
	})
	if err != nil {
		return false, errors.Join(ErrInvalidCode, err)
	}
	return ok, nil
}

// prepare validates c and returns its secret re-encoded in the canonical
// padded form together with the engine options.
func prepare(c otpauth.Credential) (string, hotp.ValidateOpts, error) {
	if !c.Kind.Valid() {
		return "", hotp.ValidateOpts{}, errors.Join(ErrUnsupportedKind, fmt.Errorf("kind %q", c.Kind))
	}

	alg, err := algorithm(c.Algorithm)
	if err != nil {
		return "", hotp.ValidateOpts{}, err
	}

	key, err := c.SecretBytes()
	if err != nil {
		return "", hotp.ValidateOpts{}, errors.Join(ErrBadSecret, err)
	}
	if len(key) == 0 {
		return "", hotp.ValidateOpts{}, ErrBadSecret
	}

	digits := c.Digits
	if digits <= 0 {
		digits = otpauth.DefaultDigits
	}
	return basen.EncodeBase32(key), hotp.ValidateOpts{
		Digits:    otp.Digits(digits),
		Algorithm: alg,
	}, nil
}

func algorithm(a otpauth.Algorithm) (otp.Algorithm, error) {
	switch a {
	case otpauth.SHA1, "":
		return otp.AlgorithmSHA1, nil
	case otpauth.SHA256:
		return otp.AlgorithmSHA256, nil
	case otpauth.SHA512:
		return otp.AlgorithmSHA512, nil
	case otpauth.MD5:
		return otp.AlgorithmMD5, nil
	}
	return 0, errors.Join(ErrUnsupportedAlgorithm, fmt.Errorf("algorithm %q", a))
}

func period(c otpauth.Credential) int {
	if c.Period <= 0 {
		return otpauth.DefaultPeriod
	}
	return c.Period
}

func timeCounter(t time.Time, period int) uint64 {
	unix := t.Unix()
	if unix < 0 {
		return 0
	}
	return uint64(unix) / uint64(period)
}

func notDigit(r rune) bool {
	return r < '0' || r > '9'
}
