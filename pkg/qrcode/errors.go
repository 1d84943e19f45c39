package qrcode

import "errors"

var (
	// ErrEmptyContent is returned when content string is empty or only whitespace.
	ErrEmptyContent = errors.New("content cannot be empty")
	// ErrFailedToGenerateQRCode is returned when the QR code generation fails.
	ErrFailedToGenerateQRCode = errors.New("failed to generate QR code")
	// ErrInvalidOption is returned for an unknown level, bad color or size.
	ErrInvalidOption = errors.New("invalid render option")
	// ErrContentTooLong is returned when the text exceeds the capacity of the
	// largest QR version at the chosen level.
	ErrContentTooLong = errors.New("content too long for a QR code")
)
