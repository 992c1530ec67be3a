package qrcode_test

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirkabiri/google-authenticator-exporter/pkg/qrcode"
)

const testURI = "otpauth://totp/Acme:alice%40example.com?secret=JBSWY3DPEHPK3PXP&issuer=Acme&period=30&algorithm=SHA1&digits=6"

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("returns error when content is empty", func(t *testing.T) {
		t.Parallel()
		for _, content := range []string{"", "   \t\n"} {
			result, err := qrcode.Generate(content, 256)
			require.Nil(t, result)
			assert.ErrorIs(t, err, qrcode.ErrEmptyContent)
		}
	})

	t.Run("generates png of the requested size", func(t *testing.T) {
		t.Parallel()
		for _, size := range []int{256, 400} {
			result, err := qrcode.Generate(testURI, size)
			require.NoError(t, err)

			img, err := png.Decode(bytes.NewReader(result))
			require.NoError(t, err)
			assert.Equal(t, size, img.Bounds().Dx())
			assert.Equal(t, size, img.Bounds().Dy())
		}
	})

	t.Run("uses default size when size is not positive", func(t *testing.T) {
		t.Parallel()
		for _, size := range []int{0, -10} {
			result, err := qrcode.Generate(testURI, size)
			require.NoError(t, err)

			img, err := png.Decode(bytes.NewReader(result))
			require.NoError(t, err)
			assert.Equal(t, qrcode.DefaultSize, img.Bounds().Dx())
		}
	})

	t.Run("content too large", func(t *testing.T) {
		t.Parallel()
		_, err := qrcode.Generate(strings.Repeat("x", 8000), 256)
		assert.ErrorIs(t, err, qrcode.ErrorFailedToGenerateQRCode)
	})
}

func TestGenerateBase64Image(t *testing.T) {
	t.Parallel()

	_, err := qrcode.GenerateBase64Image("", 256)
	assert.ErrorIs(t, err, qrcode.ErrEmptyContent)

	result, err := qrcode.GenerateBase64Image(testURI, 256)
	require.NoError(t, err)

	const prefix = "data:image/png;base64,"
	require.True(t, strings.HasPrefix(result, prefix))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(result, prefix))
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
}

func TestTerminal(t *testing.T) {
	t.Parallel()

	out, err := qrcode.Terminal(testURI)
	require.NoError(t, err)
	assert.Greater(t, strings.Count(out, "\n"), 10)

	_, err = qrcode.Terminal(" ")
	assert.ErrorIs(t, err, qrcode.ErrEmptyContent)
}

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		img, err := qrcode.Generate(testURI, 512)
		require.NoError(t, err)

		text, err := qrcode.Decode(bytes.NewReader(img))
		require.NoError(t, err)
		assert.Equal(t, testURI, text)
	})

	t.Run("not an image", func(t *testing.T) {
		t.Parallel()
		_, err := qrcode.Decode(strings.NewReader("definitely not a png"))
		assert.ErrorIs(t, err, qrcode.ErrUnreadableImage)
	})

	t.Run("image without qr code", func(t *testing.T) {
		t.Parallel()
		blank := image.NewGray(image.Rect(0, 0, 64, 64))
		for i := range blank.Pix {
			blank.Pix[i] = 0xff
		}
		_, err := qrcode.DecodeImage(blank)
		assert.ErrorIs(t, err, qrcode.ErrNoQRCode)
	})
}
