package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/amirkabiri/google-authenticator-exporter/pkg/otpauth"
)

// Format selects the serialization of an export.
type Format string

const (
	FormatJSON      Format = "json"
	FormatYAML      Format = "yaml"
	FormatPNG       Format = "png"       // one QR image per credential
	FormatMigration Format = "migration" // one migration QR image for all credentials
)

// ParseFormat accepts a format name in any case. "yml" is an alias of yaml.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML, FormatPNG, FormatMigration:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", errors.Join(ErrUnknownFormat, fmt.Errorf("format %q", s))
}

// Ext returns the file extension used for f.
func (f Format) Ext() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatPNG, FormatMigration:
		return "png"
	}
	return "json"
}

// Record is the exported form of one credential. Kind specific fields are
// pointers so an absent value is omitted rather than written as zero.
type Record struct {
	Type      string  `json:"type" yaml:"type"`
	Account   string  `json:"account,omitempty" yaml:"account,omitempty"`
	Issuer    string  `json:"issuer,omitempty" yaml:"issuer,omitempty"`
	Secret    string  `json:"secret" yaml:"secret"`
	Algorithm string  `json:"algorithm" yaml:"algorithm"`
	Digits    int     `json:"digits" yaml:"digits"`
	Period    *int    `json:"period,omitempty" yaml:"period,omitempty"`
	Counter   *uint64 `json:"counter,omitempty" yaml:"counter,omitempty"`
	URI       string  `json:"uri" yaml:"uri"`
}

// FromCredential converts c. Period is set for TOTP and Counter for HOTP. The
// uri field is always the canonical rendering, not the scanned text.
func FromCredential(c otpauth.Credential) Record {
	r := Record{
		Type:      string(c.Kind),
		Account:   c.Account,
		Issuer:    c.Issuer,
		Secret:    c.Secret,
		Algorithm: string(c.Algorithm),
		Digits:    c.Digits,
		URI:       otpauth.Render(c),
	}
	switch c.Kind {
	case otpauth.KindTOTP:
		period := c.Period
		r.Period = &period
	case otpauth.KindHOTP:
		counter := c.Counter
		r.Counter = &counter
	}
	return r
}

// Credential validates r and converts it back. The structured fields win
// over the uri field, which is regenerated.
func (r Record) Credential() (otpauth.Credential, error) {
	c := otpauth.Credential{
		Kind:      otpauth.Kind(strings.ToLower(r.Type)),
		Account:   r.Account,
		Issuer:    r.Issuer,
		Secret:    r.Secret,
		Algorithm: otpauth.Algorithm(strings.ToUpper(r.Algorithm)),
		Digits:    r.Digits,
	}
	if r.Period != nil {
		c.Period = *r.Period
	}
	if r.Counter != nil {
		c.Counter = *r.Counter
	}
	return otpauth.Canonical(c)
}

// Marshal encodes creds as a JSON or YAML document. A single credential is
// written as an object, several as an array.
func Marshal(creds []otpauth.Credential, f Format) ([]byte, error) {
	if len(creds) == 0 {
		return nil, ErrEmptyDocument
	}

	records := make([]Record, len(creds))
	for i, c := range creds {
		records[i] = FromCredential(c)
	}
	var doc any = records
	if len(records) == 1 {
		doc = records[0]
	}

	switch f {
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, errors.Join(ErrUnknownFormat, fmt.Errorf("format %q cannot be marshaled", f))
}

// Unmarshal decodes a document produced by Marshal. Both the object and the
// array shape are accepted, in JSON or YAML.
func Unmarshal(data []byte) ([]otpauth.Credential, error) {
	var records []Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		var single Record
		if err := yaml.Unmarshal(data, &single); err != nil {
			return nil, errors.Join(ErrInvalidDocument, err)
		}
		records = []Record{single}
	}
	if len(records) == 0 {
		return nil, ErrEmptyDocument
	}

	creds := make([]otpauth.Credential, 0, len(records))
	for i, r := range records {
		c, err := r.Credential()
		if err != nil {
			return nil, errors.Join(ErrInvalidDocument, fmt.Errorf("record %d: %w", i, err))
		}
		creds = append(creds, c)
	}
	return creds, nil
}
