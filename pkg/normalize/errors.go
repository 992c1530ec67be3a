package normalize

import (
	"errors"

	"github.com/amirkabiri/google-authenticator-exporter/pkg/otpauth"
)

var (
	// ErrRejected means no probe recognized the input. It matches
	// otpauth.ErrUnrecognized with errors.Is.
	ErrRejected = errors.Join(otpauth.ErrUnrecognized, errors.New("no probe matched"))

	// ErrMigration means the input is a migration URI. It carries many
	// credentials and must go through the migration decoder instead.
	ErrMigration = errors.New("migration payload")
)
