package refresh

import (
	"time"

	"github.com/amirkabiri/google-authenticator-exporter/pkg/otp"
	"github.com/amirkabiri/google-authenticator-exporter/pkg/otpauth"
)

// Entry is the displayed state of one credential.
type Entry struct {
	Credential otpauth.Credential
	Code       otp.Code
	Err        error // set when no code can be generated
}

// Board keeps the live codes of a list of credentials. It is meant to be
// updated from a single Ticker callback and is not safe for concurrent use.
type Board struct {
	entries []Entry
}

// NewBoard creates a board for creds in the given order.
func NewBoard(creds []otpauth.Credential) *Board {
	b := &Board{entries: make([]Entry, len(creds))}
	for i, c := range creds {
		b.entries[i].Credential = c
	}
	return b
}

// Update recomputes every entry at now and reports whether any code value
// changed. Countdowns change every second; codes change when a TOTP window
// rolls over.
func (b *Board) Update(now time.Time) bool {
	changed := false
	for i := range b.entries {
		e := &b.entries[i]
		code, err := otp.At(e.Credential, now)
		if code.Value != e.Code.Value || (err == nil) != (e.Err == nil) {
			changed = true
		}
		e.Code, e.Err = code, err
	}
	return changed
}

// Entries returns a copy of the current state.
func (b *Board) Entries() []Entry {
	return append([]Entry(nil), b.entries...)
}
