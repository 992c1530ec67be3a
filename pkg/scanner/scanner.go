package scanner

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/amirkabiri/google-authenticator-exporter/pkg/logger"
	"github.com/amirkabiri/google-authenticator-exporter/pkg/migration"
	"github.com/amirkabiri/google-authenticator-exporter/pkg/normalize"
	"github.com/amirkabiri/google-authenticator-exporter/pkg/otpauth"
)

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger for scan outcomes and for the migration decoder.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) {
		if l != nil {
			s.log = l
		}
	}
}

// WithChain replaces the probe chain used for single-credential text.
func WithChain(c normalize.Chain) Option {
	return func(s *Scanner) {
		if len(c) > 0 {
			s.chain = c
		}
	}
}

// Scanner turns decoded QR text into credentials. It is safe for concurrent
// use.
type Scanner struct {
	log     *slog.Logger
	chain   normalize.Chain
	decoder *migration.Decoder
}

// New creates a Scanner with the default probe chain.
func New(opts ...Option) *Scanner {
	s := &Scanner{
		log:   logger.Noop(),
		chain: normalize.DefaultChain,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.decoder = migration.NewDecoder(migration.WithLogger(s.log))
	s.log = s.log.With(logger.Component("scanner"))
	return s
}

// Scan recognizes the credentials in raw.
//
// A migration URI yields its records in payload order, minus records that
// cannot form a valid credential. Any other input yields exactly one
// credential. Text that holds no credential returns ErrNotOTP; a migration
// payload that cannot be decoded returns ErrInvalidPayload.
//
// Every log record written during the scan carries a scan id, taken from ctx
// when present.
func (s *Scanner) Scan(ctx context.Context, raw string) ([]otpauth.Credential, error) {
	if ScanIDFromContext(ctx) == "" {
		ctx = WithScanID(ctx, uuid.New().String())
	}

	if migration.IsMigration(raw) {
		return s.scanMigration(ctx, raw)
	}

	step, uri, err := s.chain.Match(raw)
	if err != nil {
		s.log.DebugContext(ctx, "scan rejected", logger.Error(err))
		return nil, errors.Join(ErrNotOTP, err)
	}

	cred, err := otpauth.Parse(uri)
	if err != nil {
		s.log.DebugContext(ctx, "normalized uri rejected", logger.Probe(step), logger.Error(err))
		return nil, errors.Join(ErrNotOTP, err)
	}

	s.log.InfoContext(ctx, "credential recognized",
		logger.Probe(step),
		logger.Kind(string(cred.Kind)),
		logger.Issuer(cred.Issuer),
	)
	return []otpauth.Credential{cred}, nil
}

func (s *Scanner) scanMigration(ctx context.Context, raw string) ([]otpauth.Credential, error) {
	data, err := migration.Data(raw)
	if err != nil {
		s.log.WarnContext(ctx, "migration data undecodable", logger.Error(err))
		return nil, errors.Join(ErrInvalidPayload, err)
	}

	payload, err := s.decoder.Decode(ctx, data)
	if err != nil {
		s.log.WarnContext(ctx, "migration payload undecodable", logger.Error(err))
		return nil, errors.Join(ErrInvalidPayload, err)
	}

	creds := make([]otpauth.Credential, 0, len(payload.Records))
	for i, rec := range payload.Records {
		cred, err := rec.Credential()
		if err != nil {
			s.log.WarnContext(ctx, "skipping migration record",
				logger.RecordIndex(i),
				logger.Error(err),
			)
			continue
		}
		creds = append(creds, cred)
	}
	if len(creds) == 0 {
		s.log.DebugContext(ctx, "migration payload holds no credentials")
		return nil, ErrNotOTP
	}

	s.log.InfoContext(ctx, "migration payload recognized", logger.Count(len(creds)))
	return creds, nil
}

var defaultScanner = New()

// Scan runs raw through a Scanner that does not log.
func Scan(ctx context.Context, raw string) ([]otpauth.Credential, error) {
	return defaultScanner.Scan(ctx, raw)
}
