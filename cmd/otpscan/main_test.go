package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirkabiri/google-authenticator-exporter/pkg/logger"
	"github.com/amirkabiri/google-authenticator-exporter/pkg/qrcode"
)

const (
	totpURI   = "otpauth://totp/Example:alice@google.com?secret=JBSWY3DPEHPK3PXP&issuer=Example"
	rfcSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"
)

type harness struct {
	app    *app
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newHarness(stdin string) *harness {
	h := &harness{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	h.app = newApp(defaultConfig(), strings.NewReader(stdin), h.stdout, h.stderr)
	h.app.log = logger.Noop()
	return h
}

func (h *harness) withPassphrase(p string) *harness {
	h.app.passphrase = func(string, bool) (string, error) { return p, nil }
	return h
}

func (h *harness) run(args ...string) int {
	return h.app.run(context.Background(), args)
}

func TestScanCommand(t *testing.T) {
	t.Parallel()

	t.Run("text argument", func(t *testing.T) {
		t.Parallel()
		h := newHarness("")
		require.Equal(t, exitOK, h.run("scan", totpURI))
		out := h.stdout.String()
		assert.Contains(t, out, "Issuer:    Example")
		assert.Contains(t, out, "Account:   alice@google.com")
		assert.Contains(t, out, "Secret:    JBSWY3DPEHPK3PXP")
		assert.Contains(t, out, "Period:    30s")
	})

	t.Run("stdin", func(t *testing.T) {
		t.Parallel()
		h := newHarness(totpURI + "\n")
		require.Equal(t, exitOK, h.run("scan", "-"))
		assert.Contains(t, h.stdout.String(), "Type:      totp")
	})

	t.Run("json output", func(t *testing.T) {
		t.Parallel()
		h := newHarness("")
		require.Equal(t, exitOK, h.run("scan", "-format", "json", totpURI))
		var doc map[string]any
		require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &doc))
		assert.Equal(t, "Example", doc["issuer"])
	})

	t.Run("image", func(t *testing.T) {
		t.Parallel()
		png, err := qrcode.Generate(totpURI, 512)
		require.NoError(t, err)
		path := filepath.Join(t.TempDir(), "code.png")
		require.NoError(t, os.WriteFile(path, png, 0o600))

		h := newHarness("")
		require.Equal(t, exitOK, h.run("scan", "-image", path))
		assert.Contains(t, h.stdout.String(), "JBSWY3DPEHPK3PXP")
	})

	t.Run("terminal qr", func(t *testing.T) {
		t.Parallel()
		plain, drawn := newHarness(""), newHarness("")
		require.Equal(t, exitOK, plain.run("scan", totpURI))
		require.Equal(t, exitOK, drawn.run("scan", "-qr", totpURI))
		assert.Greater(t, strings.Count(drawn.stdout.String(), "\n"), strings.Count(plain.stdout.String(), "\n")+10)
	})

	t.Run("not an OTP", func(t *testing.T) {
		t.Parallel()
		h := newHarness("")
		require.Equal(t, exitNotOTP, h.run("scan", "WIFI:S:home;T:WPA;P:secret;;"))
		assert.Contains(t, h.stdout.String(), "does not hold an OTP credential")
		assert.Contains(t, h.stdout.String(), "WIFI:S:home;T:WPA;P:secret;;")
	})

	t.Run("invalid migration", func(t *testing.T) {
		t.Parallel()
		h := newHarness("")
		require.Equal(t, exitError, h.run("scan", "otpauth-migration://offline?data=!!!"))
		assert.Contains(t, h.stderr.String(), "Error:")
	})
}

func TestCodeCommand(t *testing.T) {
	t.Parallel()

	t.Run("once", func(t *testing.T) {
		t.Parallel()
		h := newHarness("")
		uri := "otpauth://totp/RFC:test?secret=" + rfcSecret + "&issuer=RFC"
		require.Equal(t, exitOK, h.run("code", "-once", "-at", "59", uri))
		assert.Contains(t, h.stdout.String(), "RFC:test")
		assert.Contains(t, h.stdout.String(), "287082   1s")
	})

	t.Run("hotp", func(t *testing.T) {
		t.Parallel()
		h := newHarness("")
		uri := "otpauth://hotp/RFC:h?secret=" + rfcSecret + "&counter=1"
		require.Equal(t, exitOK, h.run("code", "-once", uri))
		assert.Contains(t, h.stdout.String(), "287082  counter 1")
	})

	t.Run("live until cancelled", func(t *testing.T) {
		t.Parallel()
		h := newHarness("")
		h.app.cfg.RefreshInterval = 10 * time.Millisecond

		ctx, cancel := context.WithTimeout(context.Background(), 55*time.Millisecond)
		defer cancel()
		code := h.app.run(ctx, []string{"code", totpURI})
		require.Equal(t, exitOK, code)
		assert.GreaterOrEqual(t, strings.Count(h.stdout.String(), "Example:alice@google.com"), 2)
	})
}

func TestExportAndOpen(t *testing.T) {
	t.Parallel()

	t.Run("plain yaml", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		h := newHarness("")
		require.Equal(t, exitOK, h.run("export", "-format", "yaml", "-out", dir, totpURI))
		path := filepath.Join(dir, "example-alice-google-com.yaml")
		assert.Equal(t, path, strings.TrimSpace(h.stdout.String()))

		o := newHarness("")
		require.Equal(t, exitOK, o.run("open", path))
		var doc map[string]any
		require.NoError(t, json.Unmarshal(o.stdout.Bytes(), &doc))
		assert.Equal(t, "JBSWY3DPEHPK3PXP", doc["secret"])
	})

	t.Run("sealed json", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		h := newHarness("").withPassphrase("pw")
		require.Equal(t, exitOK, h.run("export", "-seal", "-out", dir, totpURI))
		path := strings.TrimSpace(h.stdout.String())
		assert.True(t, strings.HasSuffix(path, ".json.sealed"))

		bad := newHarness("").withPassphrase("nope")
		assert.Equal(t, exitError, bad.run("open", path))

		good := newHarness("").withPassphrase("pw")
		require.Equal(t, exitOK, good.run("open", "-format", "yaml", path))
		assert.Contains(t, good.stdout.String(), "secret: JBSWY3DPEHPK3PXP")
	})

	t.Run("migration image", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		h := newHarness("")
		require.Equal(t, exitOK, h.run("export", "-format", "migration", "-out", dir, totpURI))
		assert.FileExists(t, filepath.Join(dir, "migration.png"))
	})

	t.Run("seal rejects images", func(t *testing.T) {
		t.Parallel()
		h := newHarness("").withPassphrase("pw")
		assert.Equal(t, exitError, h.run("export", "-seal", "-format", "png", "-out", t.TempDir(), totpURI))
	})

	t.Run("open needs a file", func(t *testing.T) {
		t.Parallel()
		h := newHarness("")
		assert.Equal(t, exitError, h.run("open"))
	})
}

func TestServeCommand(t *testing.T) {
	t.Parallel()

	h := newHarness("")
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	assert.Equal(t, exitOK, h.app.run(ctx, []string{"serve", "-addr", "127.0.0.1:0"}))
}

func TestDispatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no command", nil, exitError},
		{"unknown command", []string{"frobnicate"}, exitError},
		{"help", []string{"help"}, exitOK},
		{"flag help", []string{"scan", "-h"}, exitOK},
		{"bad flag", []string{"scan", "-nope"}, exitError},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, newHarness("").run(tt.args...))
		})
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*appConfig)
		ok     bool
	}{
		{"defaults", func(*appConfig) {}, true},
		{"level and format", func(c *appConfig) { c.LogLevel, c.LogFormat = "debug", "json" }, true},
		{"qr size", func(c *appConfig) { c.QRSize = 0 }, false},
		{"interval", func(c *appConfig) { c.RefreshInterval = time.Millisecond }, false},
		{"export dir", func(c *appConfig) { c.ExportDir = "" }, false},
		{"level", func(c *appConfig) { c.LogLevel = "loud" }, false},
		{"format", func(c *appConfig) { c.LogFormat = "xml" }, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := newLogger(defaultConfig(), buf, true)
	log.Info("hidden")
	assert.Empty(t, buf.String())
	log.Warn("shown")
	assert.Contains(t, buf.String(), "service=otpscan")

	cfg := defaultConfig()
	cfg.LogLevel, cfg.LogFormat = "debug", "json"
	buf.Reset()
	newLogger(cfg, buf, true).Debug("shown")
	assert.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}
