// Package qrcode renders encoded QR payloads as PNG images or as data-URI
// strings that can be embedded directly into HTML pages.
//
// The package is a thin wrapper around github.com/skip2/go-qrcode that adds
// defaults, input validation and render settings (error correction level,
// pixel size, quiet zone, colors).
//
// # Usage
//
//	img, err := qrcode.Render("https://example.com",
//		qrcode.WithLevel(qrcode.LevelH),
//		qrcode.WithSize(512),
//		qrcode.WithMargin(2),
//	)
//
//	uri, err := qrcode.RenderDataURI("https://example.com")
//	// <img src="{{.Image}}">
//
// Settings is the serialisable form of the options, suitable for request
// bodies and persisted records:
//
//	opts, err := qrcode.Settings{Level: "Q", Foreground: "#112233"}.Options()
//
// # Error Handling
//
//   - ErrEmptyContent: the text was empty or whitespace only.
//   - ErrInvalidOption: an unknown level, a malformed color or a negative size.
//   - ErrFailedToGenerateQRCode: the underlying library rejected the text,
//     usually because it does not fit into any QR version.
package qrcode
