package export_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/amirkabiri/google-authenticator-exporter/pkg/export"
	"github.com/amirkabiri/google-authenticator-exporter/pkg/otpauth"
)

func totpCred(t *testing.T) otpauth.Credential {
	t.Helper()
	c, err := otpauth.Parse("otpauth://totp/Example:alice@google.com?secret=JBSWY3DPEHPK3PXP&issuer=Example")
	require.NoError(t, err)
	return c
}

func hotpCred(t *testing.T) otpauth.Credential {
	t.Helper()
	c, err := otpauth.Parse("otpauth://hotp/Acme:bob?secret=GEZDGNBVGY3TQOJQ&issuer=Acme&counter=7&digits=8")
	require.NoError(t, err)
	return c
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want export.Format
		err  bool
	}{
		{"json", export.FormatJSON, false},
		{"YAML", export.FormatYAML, false},
		{"yml", export.FormatYAML, false},
		{" png ", export.FormatPNG, false},
		{"migration", export.FormatMigration, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := export.ParseFormat(tt.in)
			if tt.err {
				assert.ErrorIs(t, err, export.ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromCredential(t *testing.T) {
	t.Parallel()

	r := export.FromCredential(totpCred(t))
	assert.Equal(t, "totp", r.Type)
	assert.Equal(t, "Example", r.Issuer)
	assert.Equal(t, "alice@google.com", r.Account)
	require.NotNil(t, r.Period)
	assert.Equal(t, 30, *r.Period)
	assert.Nil(t, r.Counter)
	assert.NotEmpty(t, r.URI)

	h := export.FromCredential(hotpCred(t))
	assert.Nil(t, h.Period)
	require.NotNil(t, h.Counter)
	assert.Equal(t, uint64(7), *h.Counter)
	assert.Equal(t, 8, h.Digits)
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	t.Run("single credential is an object", func(t *testing.T) {
		t.Parallel()
		data, err := export.Marshal([]otpauth.Credential{totpCred(t)}, export.FormatJSON)
		require.NoError(t, err)

		var obj map[string]any
		require.NoError(t, json.Unmarshal(data, &obj))
		assert.Equal(t, "JBSWY3DPEHPK3PXP", obj["secret"])
		assert.Equal(t, "SHA1", obj["algorithm"])
		assert.NotContains(t, obj, "counter")
	})

	t.Run("several credentials are an array", func(t *testing.T) {
		t.Parallel()
		data, err := export.Marshal([]otpauth.Credential{totpCred(t), hotpCred(t)}, export.FormatJSON)
		require.NoError(t, err)

		var arr []map[string]any
		require.NoError(t, json.Unmarshal(data, &arr))
		require.Len(t, arr, 2)
		assert.Equal(t, "hotp", arr[1]["type"])
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()
		data, err := export.Marshal([]otpauth.Credential{hotpCred(t)}, export.FormatYAML)
		require.NoError(t, err)

		var obj map[string]any
		require.NoError(t, yaml.Unmarshal(data, &obj))
		assert.Equal(t, "Acme", obj["issuer"])
		assert.Equal(t, 7, obj["counter"])
	})

	t.Run("errors", func(t *testing.T) {
		t.Parallel()
		_, err := export.Marshal(nil, export.FormatJSON)
		assert.ErrorIs(t, err, export.ErrEmptyDocument)

		_, err = export.Marshal([]otpauth.Credential{totpCred(t)}, export.FormatPNG)
		assert.ErrorIs(t, err, export.ErrUnknownFormat)
	})
}

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	creds := []otpauth.Credential{totpCred(t), hotpCred(t)}
	for _, f := range []export.Format{export.FormatJSON, export.FormatYAML} {
		f := f
		t.Run(string(f), func(t *testing.T) {
			t.Parallel()
			data, err := export.Marshal(creds, f)
			require.NoError(t, err)

			got, err := export.Unmarshal(data)
			require.NoError(t, err)
			require.Len(t, got, 2)
			for i := range creds {
				assert.True(t, creds[i].Equivalent(got[i]))
				assert.Equal(t, otpauth.Render(creds[i]), got[i].URI)
			}
		})
	}

	t.Run("single object", func(t *testing.T) {
		t.Parallel()
		got, err := export.Unmarshal([]byte(`{"type":"totp","secret":"jbswy3dpehpk3pxp","algorithm":"sha256","digits":8}`))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "JBSWY3DPEHPK3PXP", got[0].Secret)
		assert.Equal(t, otpauth.SHA256, got[0].Algorithm)
		assert.Equal(t, 30, got[0].Period)
	})

	t.Run("invalid record", func(t *testing.T) {
		t.Parallel()
		_, err := export.Unmarshal([]byte(`[{"type":"totp","secret":"!!!"}]`))
		assert.ErrorIs(t, err, export.ErrInvalidDocument)
	})

	t.Run("not a document", func(t *testing.T) {
		t.Parallel()
		_, err := export.Unmarshal([]byte("just text"))
		assert.ErrorIs(t, err, export.ErrInvalidDocument)
	})

	t.Run("empty array", func(t *testing.T) {
		t.Parallel()
		_, err := export.Unmarshal([]byte("[]"))
		assert.ErrorIs(t, err, export.ErrEmptyDocument)
	})
}

func TestFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cred otpauth.Credential
		want string
	}{
		{"issuer and account", otpauth.Credential{Issuer: "Acme Corp", Account: "bob@example.com"}, "acme-corp-bob-example-com.json"},
		{"accents folded", otpauth.Credential{Issuer: "Café", Account: "zoë"}, "cafe-zoe.json"},
		{"missing parts", otpauth.Credential{}, "unknown-account.json"},
		{"only symbols", otpauth.Credential{Issuer: "!!!", Account: "@"}, "unknown-account.json"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, export.FileName(tt.cred, "json"))
		})
	}
}
