// Package qrcontent turns typed QR code content into the exact text embedded
// in a QR matrix, and checks that content before it is encoded.
//
// Eleven content types are supported (url, text, wifi, vcard, sms, whatsapp,
// email, phone, location, event, pix). Each one is a struct implementing the
// sealed Content interface, so Encode and Validate switch over a closed set
// of variants.
//
// # Usage
//
//	c := &qrcontent.WiFi{SSID: "Net", Password: "pw123", Security: qrcontent.WiFiWPA}
//	if res := qrcontent.Validate(c); !res.Valid {
//	    // show res.Errors to the user
//	}
//	payload, err := qrcontent.Encode(c) // "WIFI:T:WPA;S:Net;P:pw123;H:false;;"
//
// Loosely typed input (JSON bodies, CLI flags) is converted with Decode:
//
//	c, err := qrcontent.Decode(qrcontent.TypeEmail, qrcontent.Fields{"email": "a@b.com"})
//
// # Error Handling
//
// Validate never fails; it returns a Result listing every violated rule in a
// stable order. Result.Err wraps the failures in a *ValidationError matching
// ErrValidation. Encode fails only for content outside the known variants,
// with an *UnsupportedTypeError matching ErrUnsupportedType. Encode does not
// re-validate: missing fields produce degraded output, not errors.
//
// # Compatibility
//
// Encoded payloads are persisted and printed, so the output must stay
// byte-identical across releases. Two known gaps are kept on purpose:
//
//   - WIFI: SSID, password and security are inserted without escaping ';',
//     ':', ',' or '\'.
//   - pix: the payload is a simplified EMV-like string with no CRC field and
//     fixed merchant category and currency segments. It is not a certified
//     EMV Merchant-Presented QR payload.
//
// All functions are pure and safe for concurrent use.
package qrcontent
