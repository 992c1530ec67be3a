package export

import "errors"

var (
	ErrUnknownFormat       = errors.New("unknown export format")
	ErrEmptyDocument       = errors.New("document holds no credentials")
	ErrInvalidDocument     = errors.New("invalid export document")
	ErrEmptyPassphrase     = errors.New("passphrase cannot be empty")
	ErrFailedToSeal        = errors.New("failed to seal export")
	ErrFailedToOpen        = errors.New("failed to open sealed export")
	ErrUnsupportedEnvelope = errors.New("unsupported sealed envelope")
	ErrFailedToWrite       = errors.New("failed to write export file")
)
