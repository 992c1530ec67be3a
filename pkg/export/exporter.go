package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/amirkabiri/google-authenticator-exporter/pkg/logger"
	"github.com/amirkabiri/google-authenticator-exporter/pkg/migration"
	"github.com/amirkabiri/google-authenticator-exporter/pkg/otpauth"
	"github.com/amirkabiri/google-authenticator-exporter/pkg/qrcode"
)

// MigrationFileName is the single file written for FormatMigration.
const MigrationFileName = "migration.png"

const sealedExt = ".sealed"

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Exporter) {
		if l != nil {
			e.log = l
		}
	}
}

// WithQRSize sets the edge length in pixels of generated QR images.
func WithQRSize(px int) Option {
	return func(e *Exporter) {
		if px > 0 {
			e.qrSize = px
		}
	}
}

// WithPassphrase seals every json or yaml file with the given passphrase.
// Image formats are never sealed.
func WithPassphrase(p string) Option {
	return func(e *Exporter) {
		e.passphrase = p
	}
}

// Exporter writes credentials into a directory, one file per credential or a
// single migration image.
type Exporter struct {
	log        *slog.Logger
	qrSize     int
	passphrase string
}

// NewExporter creates an Exporter.
func NewExporter(opts ...Option) *Exporter {
	e := &Exporter{
		log:    logger.Noop(),
		qrSize: qrcode.DefaultSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With(logger.Component("export"))
	return e
}

// Write exports creds into dir in format f and returns the written paths.
// The directory is created when missing. Existing files are never replaced:
// a numeric suffix is added instead.
func (e *Exporter) Write(ctx context.Context, dir string, f Format, creds []otpauth.Credential) ([]string, error) {
	if len(creds) == 0 {
		return nil, ErrEmptyDocument
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Join(ErrFailedToWrite, err)
	}

	if f == FormatMigration {
		p, err := e.writeMigration(dir, creds)
		if err != nil {
			return nil, err
		}
		e.log.InfoContext(ctx, "migration export written", slog.String("path", p), logger.Count(len(creds)))
		return []string{p}, nil
	}

	paths := make([]string, 0, len(creds))
	for _, c := range creds {
		data, ext, err := e.render(c, f)
		if err != nil {
			return paths, err
		}
		p, err := writeUnique(dir, FileName(c, ext), data)
		if err != nil {
			return paths, err
		}
		e.log.DebugContext(ctx, "credential exported",
			logger.Kind(string(c.Kind)),
			logger.Issuer(c.Issuer),
			slog.String("path", p),
		)
		paths = append(paths, p)
	}
	e.log.InfoContext(ctx, "export written", slog.String("format", string(f)), logger.Count(len(paths)))
	return paths, nil
}

func (e *Exporter) render(c otpauth.Credential, f Format) ([]byte, string, error) {
	switch f {
	case FormatPNG:
		png, err := qrcode.Generate(otpauth.Render(c), e.qrSize)
		return png, f.Ext(), err
	case FormatJSON, FormatYAML:
		data, err := Marshal([]otpauth.Credential{c}, f)
		if err != nil {
			return nil, "", err
		}
		if e.passphrase == "" {
			return data, f.Ext(), nil
		}
		sealed, err := Seal(data, e.passphrase)
		return sealed, f.Ext() + sealedExt, err
	}
	return nil, "", errors.Join(ErrUnknownFormat, fmt.Errorf("format %q", f))
}

func (e *Exporter) writeMigration(dir string, creds []otpauth.Credential) (string, error) {
	payload, err := migration.NewPayload(creds...)
	if err != nil {
		return "", err
	}
	png, err := qrcode.Generate(migration.URI(payload), e.qrSize)
	if err != nil {
		return "", err
	}
	return writeUnique(dir, MigrationFileName, png)
}

// writeUnique creates name in dir, or name-2, name-3 and so on when taken.
func writeUnique(dir, name string, data []byte) (string, error) {
	ext := filepath.Ext(name)
	if strings.HasSuffix(name, sealedExt) {
		ext = filepath.Ext(strings.TrimSuffix(name, sealedExt)) + sealedExt
	}
	base := strings.TrimSuffix(name, ext)

	for i := 1; ; i++ {
		candidate := name
		if i > 1 {
			candidate = fmt.Sprintf("%s-%d%s", base, i, ext)
		}
		p := filepath.Join(dir, candidate)
		f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", errors.Join(ErrFailedToWrite, err)
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			return "", errors.Join(ErrFailedToWrite, err)
		}
		if err := f.Close(); err != nil {
			return "", errors.Join(ErrFailedToWrite, err)
		}
		return p, nil
	}
}

// Read decodes a document written by Exporter. Sealed documents need the
// passphrase they were sealed with; plain ones ignore it.
func Read(data []byte, passphrase string) ([]otpauth.Credential, error) {
	if IsSealed(data) {
		var err error
		if data, err = Open(data, passphrase); err != nil {
			return nil, err
		}
	}
	return Unmarshal(data)
}
