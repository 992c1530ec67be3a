package normalize

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/amirkabiri/google-authenticator-exporter/pkg/basen"
	"github.com/amirkabiri/google-authenticator-exporter/pkg/otpauth"
)

const otpauthPrefix = otpauth.Scheme + "://"

// Probe inspects raw text and returns an otpauth URI when it recognizes the
// shape. Probes are pure and never fail; a non-match is ("", false).
type Probe func(raw string) (string, bool)

// Direct accepts text that already is an otpauth URI.
func Direct(raw string) (string, bool) {
	if hasPrefixFold(raw, otpauthPrefix) {
		return raw, true
	}
	return "", false
}

// Wrapped accepts a URL whose data query parameter holds an otpauth URI.
func Wrapped(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return "", false
	}
	if data := u.Query().Get("data"); hasPrefixFold(data, otpauthPrefix) {
		return data, true
	}
	return "", false
}

type jsonCredential struct {
	Secret    string       `json:"secret"`
	Type      string       `json:"type"`
	Issuer    string       `json:"issuer"`
	Account   string       `json:"account"`
	Algorithm string       `json:"algorithm"`
	Digits    json.Number  `json:"digits"`
	Period    json.Number  `json:"period"`
	Counter   *json.Number `json:"counter"`
}

// JSON accepts a JSON object with at least a secret and synthesizes a URI
// from it. The type defaults to totp. Numbers may be given as JSON numbers
// or numeric strings.
func JSON(raw string) (string, bool) {
	if !strings.HasPrefix(raw, "{") {
		return "", false
	}
	var j jsonCredential
	if err := json.Unmarshal([]byte(raw), &j); err != nil || j.Secret == "" {
		return "", false
	}

	kind := strings.ToLower(j.Type)
	if kind == "" {
		kind = string(otpauth.KindTOTP)
	}

	var sb strings.Builder
	sb.WriteString(otpauthPrefix)
	sb.WriteString(url.PathEscape(kind))
	sb.WriteByte('/')
	sb.WriteString(otpauth.FormatLabel(j.Issuer, j.Account))
	sb.WriteString("?secret=")
	sb.WriteString(url.QueryEscape(j.Secret))

	q := url.Values{}
	if j.Issuer != "" {
		q.Set("issuer", j.Issuer)
	}
	switch otpauth.Kind(kind) {
	case otpauth.KindTOTP:
		if j.Period != "" && j.Period != "0" {
			q.Set("period", j.Period.String())
		}
	case otpauth.KindHOTP:
		if j.Counter != nil {
			q.Set("counter", j.Counter.String())
		}
	}
	if j.Algorithm != "" {
		q.Set("algorithm", j.Algorithm)
	}
	if j.Digits != "" && j.Digits != "0" {
		q.Set("digits", j.Digits.String())
	}
	if len(q) > 0 {
		sb.WriteByte('&')
		sb.WriteString(q.Encode())
	}
	return sb.String(), true
}

// Label given to bare secrets.
const (
	DefaultIssuer  = "Default"
	DefaultAccount = "Account"
)

// BareSecret accepts a lone base32 secret and wraps it in a TOTP URI under
// the Default:Account label.
func BareSecret(raw string) (string, bool) {
	if !basen.IsBase32(raw) {
		return "", false
	}
	return otpauthPrefix + string(otpauth.KindTOTP) + "/" +
		otpauth.FormatLabel(DefaultIssuer, DefaultAccount) +
		"?secret=" + raw + "&issuer=" + DefaultIssuer, true
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
