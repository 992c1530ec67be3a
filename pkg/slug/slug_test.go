package slug_test

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/amirkabiri/google-authenticator-exporter/pkg/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		opts     []slug.Option
		expected string
	}{
		{name: "simple text", input: "Hello World", expected: "hello-world"},
		{name: "with punctuation", input: "Hello, World!", expected: "hello-world"},
		{name: "email account", input: "alice@example.com", expected: "alice-example-com"},
		{name: "issuer with colon", input: "Acme:Corp", expected: "acme-corp"},
		{name: "multiple spaces", input: "Too    Many     Spaces", expected: "too-many-spaces"},
		{name: "leading and trailing spaces", input: "  Trim Me  ", expected: "trim-me"},
		{name: "empty string", input: "", expected: ""},
		{name: "only special characters", input: "!@#$%^&*()", expected: ""},
		{name: "unicode diacritics", input: "Café résumé naïve", expected: "cafe-resume-naive"},
		{name: "letters without decomposition", input: "Øresund Straße Łódź", expected: "oresund-strasse-lodz"},
		{name: "compatibility ligature", input: "ﬁle", expected: "file"},
		{name: "non latin script dropped", input: "Google 谷歌", expected: "google"},
		{name: "keep case", input: "Hello World", opts: []slug.Option{slug.Lowercase(false)}, expected: "Hello-World"},
		{name: "custom separator", input: "Hello World", opts: []slug.Option{slug.Separator("_")}, expected: "hello_world"},
		{
			name:     "max length",
			input:    "This is a very long title that should be truncated",
			opts:     []slug.Option{slug.MaxLength(20)},
			expected: "this-is-a-very-long",
		},
		{
			name:     "max length does not end on separator",
			input:    "abc def",
			opts:     []slug.Option{slug.MaxLength(4)},
			expected: "abc",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, slug.Make(tt.input, tt.opts...))
		})
	}
}

func TestMake_Properties(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		in := rapid.String().Draw(t, "input")
		limit := rapid.IntRange(0, 40).Draw(t, "max")
		got := slug.Make(in, slug.MaxLength(limit))

		if limit > 0 && utf8.RuneCountInString(got) > limit {
			t.Fatalf("slug %q longer than %d", got, limit)
		}
		for _, r := range got {
			if !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r != '-' {
				t.Fatalf("unexpected rune %q in %q", r, got)
			}
		}
		if len(got) > 0 && (got[0] == '-' || got[len(got)-1] == '-') {
			t.Fatalf("slug %q has a leading or trailing separator", got)
		}
	})
}
