package migration

import "errors"

var (
	// ErrTruncated means a top-level field boundary could not be located in
	// the buffer. Nothing from such a payload is trusted.
	ErrTruncated = errors.New("migration payload truncated")

	// ErrNotMigration is returned by Data for URIs without the migration prefix.
	ErrNotMigration = errors.New("not a migration URI")

	// ErrUnsupportedPeriod is returned by FromCredential for a TOTP period
	// other than 30 seconds. The migration format has no period field, so
	// such a credential would be imported with the wrong period.
	ErrUnsupportedPeriod = errors.New("migration format only carries 30 second TOTP periods")

	errMissingSecret = errors.New("record has no secret")
)
