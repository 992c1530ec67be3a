// Package qrcode is the boundary to QR images in both directions.
//
// The writer side wraps github.com/skip2/go-qrcode: Generate returns PNG
// bytes, GenerateBase64Image a data URI and Terminal a text rendering for
// the console. All of them encode at the highest error correction level.
//
// The reader side wraps github.com/makiuchi-d/gozxing: Decode accepts a PNG,
// JPEG or GIF stream and returns the decoded text, which is what the
// scanner consumes.
//
// # Usage
//
//	img, err := qrcode.Generate(cred.URI, 256)
//
//	f, _ := os.Open("export.png")
//	text, err := qrcode.Decode(f)
//
// # Error Handling
//
//   - ErrEmptyContent: the content argument was empty.
//   - ErrorFailedToGenerateQRCode: the content does not fit a QR code.
//   - ErrUnreadableImage: the input is not a supported image.
//   - ErrNoQRCode: the image holds no readable QR code.
package qrcode
