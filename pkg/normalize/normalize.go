package normalize

import (
	"strings"

	"github.com/amirkabiri/google-authenticator-exporter/pkg/migration"
)

// Step is a named probe.
type Step struct {
	Name  string
	Probe Probe
}

// Chain is an ordered list of probes. The first match wins.
type Chain []Step

// DefaultChain holds the probes in the order scanners should try them.
var DefaultChain = Chain{
	{Name: "otpauth", Probe: Direct},
	{Name: "wrapped", Probe: Wrapped},
	{Name: "json", Probe: JSON},
	{Name: "bare_secret", Probe: BareSecret},
}

// Normalize runs the chain over raw. Surrounding whitespace is ignored.
// Migration URIs are reported with ErrMigration before any probe runs.
func (c Chain) Normalize(raw string) (string, error) {
	_, uri, err := c.Match(raw)
	return uri, err
}

// Match is Normalize that also returns the name of the matching step.
func (c Chain) Match(raw string) (step, uri string, err error) {
	raw = strings.TrimSpace(raw)
	if migration.IsMigration(raw) {
		return "", "", ErrMigration
	}
	for _, s := range c {
		if uri, ok := s.Probe(raw); ok {
			return s.Name, uri, nil
		}
	}
	return "", "", ErrRejected
}

// Normalize runs DefaultChain over raw.
func Normalize(raw string) (string, error) {
	return DefaultChain.Normalize(raw)
}

// IsMigration reports whether raw must be routed to the migration decoder.
func IsMigration(raw string) bool {
	return migration.IsMigration(raw)
}
