package qrcode

import "errors"

var (
	// ErrEmptyContent is returned when content string is empty or only whitespace
	ErrEmptyContent = errors.New("content cannot be empty")
	// ErrorFailedToGenerateQRCode is returned when the QR code generation fails.
	ErrorFailedToGenerateQRCode = errors.New("failed to generate QR code")
	// ErrUnreadableImage is returned when the input is not a PNG, JPEG or GIF.
	ErrUnreadableImage = errors.New("unreadable image")
	// ErrNoQRCode is returned when the image holds no decodable QR symbol.
	ErrNoQRCode = errors.New("no QR code found in image")
)
