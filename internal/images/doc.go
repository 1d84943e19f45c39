// Package images turns uploaded pictures into shareable QR codes.
//
// Upload stores the picture, then creates a url QR code (through the
// qrcodes service) that points at the public view page for the picture,
// /view/{id}. View-only pages carry the mode and background colour in the
// query string:
//
//	https://qr.example/view/6f1c...?mode=view-only&bg=3b82f6
//
// The upload record links the stored picture with its QR code, so deleting
// an upload removes both.
package images
