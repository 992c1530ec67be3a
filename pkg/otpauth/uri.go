package otpauth

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/amirkabiri/google-authenticator-exporter/pkg/basen"
)

// Parse builds a Credential from an otpauth URI.
//
// The host selects the kind. The label splits on its first ':' into issuer
// and account; an issuer query parameter takes priority over the label.
// Missing parameters get the package defaults. Any violation is reported as
// ErrUnrecognized joined with the reason.
func Parse(uri string) (Credential, error) {
	uri = strings.TrimSpace(uri)
	u, err := url.Parse(uri)
	if err != nil {
		return Credential{}, errors.Join(ErrUnrecognized, err)
	}
	if !strings.EqualFold(u.Scheme, Scheme) {
		return Credential{}, unrecognized("unexpected scheme %q", u.Scheme)
	}

	c := Credential{
		Kind:      Kind(strings.ToLower(u.Host)),
		Algorithm: DefaultAlgorithm,
		Digits:    DefaultDigits,
		URI:       uri,
	}
	if !c.Kind.Valid() {
		return Credential{}, unrecognized("unknown type %q", u.Host)
	}

	if c.Issuer, c.Account, err = parseLabel(u.EscapedPath()); err != nil {
		return Credential{}, errors.Join(ErrUnrecognized, err)
	}

	q := u.Query()

	key, err := basen.DecodeBase32(strings.TrimSpace(q.Get("secret")))
	if err != nil {
		return Credential{}, errors.Join(ErrUnrecognized, err)
	}
	if len(key) == 0 {
		return Credential{}, unrecognized("missing secret")
	}
	c.Secret = basen.EncodeBase32(key)

	if issuer := q.Get("issuer"); issuer != "" {
		c.Issuer = issuer
	}

	var ok bool
	if c.Algorithm, ok = ParseAlgorithm(q.Get("algorithm")); !ok {
		return Credential{}, unrecognized("unsupported algorithm %q", q.Get("algorithm"))
	}

	if v := q.Get("digits"); v != "" {
		if c.Digits, err = strconv.Atoi(v); err != nil || (c.Digits != 6 && c.Digits != 8) {
			return Credential{}, unrecognized("invalid digits %q", v)
		}
	}

	switch c.Kind {
	case KindTOTP:
		c.Period = DefaultPeriod
		if v := q.Get("period"); v != "" {
			if c.Period, err = strconv.Atoi(v); err != nil || c.Period <= 0 {
				return Credential{}, unrecognized("invalid period %q", v)
			}
		}
	case KindHOTP:
		if v := q.Get("counter"); v != "" {
			if c.Counter, err = strconv.ParseUint(v, 10, 64); err != nil {
				return Credential{}, unrecognized("invalid counter %q", v)
			}
		}
	}

	return c, nil
}

// Render produces the otpauth URI for c. Issuer and account are
// percent-encoded, and parameters are written in a fixed order.
func Render(c Credential) string {
	var sb strings.Builder
	sb.WriteString(Scheme)
	sb.WriteString("://")
	sb.WriteString(string(c.Kind))
	sb.WriteByte('/')
	sb.WriteString(FormatLabel(c.Issuer, c.Account))

	sb.WriteString("?secret=")
	sb.WriteString(c.Secret)
	if c.Issuer != "" {
		sb.WriteString("&issuer=")
		sb.WriteString(escape(c.Issuer))
	}

	switch c.Kind {
	case KindHOTP:
		sb.WriteString("&counter=")
		sb.WriteString(strconv.FormatUint(c.Counter, 10))
	case KindTOTP:
		period := c.Period
		if period == 0 {
			period = DefaultPeriod
		}
		sb.WriteString("&period=")
		sb.WriteString(strconv.Itoa(period))
	}

	alg := c.Algorithm
	if alg == "" {
		alg = DefaultAlgorithm
	}
	sb.WriteString("&algorithm=")
	sb.WriteString(string(alg))

	digits := c.Digits
	if digits == 0 {
		digits = DefaultDigits
	}
	sb.WriteString("&digits=")
	sb.WriteString(strconv.Itoa(digits))

	return sb.String()
}

// FormatLabel renders the escaped label path segment: "issuer:account", or
// just the account when there is no issuer.
func FormatLabel(issuer, account string) string {
	if issuer == "" {
		return escape(account)
	}
	return escape(issuer) + ":" + escape(account)
}

// parseLabel splits the escaped label path on its first literal ':'.
// An escaped colon (%3A) belongs to the segment it appears in.
func parseLabel(escapedPath string) (issuer, account string, err error) {
	raw := strings.TrimPrefix(escapedPath, "/")
	if i := strings.IndexByte(raw, ':'); i >= 0 {
		if issuer, err = url.PathUnescape(raw[:i]); err != nil {
			return "", "", fmt.Errorf("invalid issuer in label: %w", err)
		}
		raw = raw[i+1:]
	}
	if account, err = url.PathUnescape(raw); err != nil {
		return "", "", fmt.Errorf("invalid account in label: %w", err)
	}
	return issuer, account, nil
}

// escape percent-encodes s the way encodeURIComponent does: spaces become
// %20 and reserved characters such as ':' and '&' are escaped.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func unrecognized(format string, args ...any) error {
	return errors.Join(ErrUnrecognized, fmt.Errorf(format, args...))
}
