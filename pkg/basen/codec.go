package basen

import (
	"encoding/base32"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// Base32Alphabet is the RFC 4648 base32 alphabet without extensions.
const Base32Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

// URL contexts sometimes leave the reserved characters percent-encoded.
var base64URLReplacer = strings.NewReplacer(
	"-", "+",
	"_", "/",
	"%2F", "/", "%2f", "/",
	"%2B", "+", "%2b", "+",
	"%3D", "=", "%3d", "=",
)

// EncodeBase32 encodes data as upper case base32 padded with '=' to a multiple
// of 8 characters. Empty input yields an empty string.
func EncodeBase32(data []byte) string {
	return base32.StdEncoding.EncodeToString(data)
}

// DecodeBase32 decodes base32 text. Case is ignored, trailing '=' is ignored
// and a trailing group too short to fill a byte is dropped.
func DecodeBase32(text string) ([]byte, error) {
	clean := strings.ToUpper(strings.TrimRight(text, "="))
	if i := strings.IndexFunc(clean, notBase32); i >= 0 {
		return nil, errors.Join(ErrMalformed,
			fmt.Errorf("illegal base32 character %q at offset %d", clean[i], i))
	}

	// 1, 3 and 6 leftover characters carry no complete extra byte.
	switch len(clean) % 8 {
	case 1, 3, 6:
		clean = clean[:len(clean)-1]
	}

	out, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(clean)
	if err != nil {
		return nil, errors.Join(ErrMalformed, err)
	}
	return out, nil
}

// DecodeBase64URL decodes base64url text, tolerating percent-encoded '/', '+'
// and '=' as well as missing padding.
func DecodeBase64URL(text string) ([]byte, error) {
	std := base64URLReplacer.Replace(strings.TrimSpace(text))
	if n := len(std) % 4; n != 0 {
		std += strings.Repeat("=", 4-n)
	}

	out, err := base64.StdEncoding.DecodeString(std)
	if err != nil {
		return nil, errors.Join(ErrMalformed, err)
	}
	return out, nil
}

// IsBase32 reports whether text consists only of base32 alphabet characters
// (any case) optionally followed by '=' padding.
func IsBase32(text string) bool {
	body := strings.TrimRight(text, "=")
	if body == "" {
		return false
	}
	return strings.IndexFunc(body, func(r rune) bool {
		return notBase32(r) && !(r >= 'a' && r <= 'z')
	}) < 0
}

func notBase32(r rune) bool {
	return !(r >= 'A' && r <= 'Z') && !(r >= '2' && r <= '7')
}
