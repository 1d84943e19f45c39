package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// imageExtensions maps the raster types browsers render inline to the
// extension used in storage keys. SVG is left out: it can carry scripts.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

// Detect sniffs the MIME type from the first 512 bytes of data.
func Detect(data []byte) string {
	mt := http.DetectContentType(data)
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return strings.TrimSpace(mt)
}

// IsImageType reports whether mimeType is an accepted image type.
func IsImageType(mimeType string) bool {
	_, ok := imageExtensions[mimeType]
	return ok
}

// Extension returns the storage extension for an accepted image type, or
// ".bin" for anything else.
func Extension(mimeType string) string {
	if ext, ok := imageExtensions[mimeType]; ok {
		return ext
	}
	return ".bin"
}

// ValidateSize checks the size reported in the multipart header.
// Streamed parts may report 0; ReadAll enforces the limit on the bytes.
func ValidateSize(fh *multipart.FileHeader, maxBytes int64) error {
	if fh == nil {
		return ErrNilFileHeader
	}
	if fh.Size > maxBytes {
		return fmt.Errorf("file size %d bytes exceeds %d bytes limit: %w", fh.Size, maxBytes, ErrFileTooLarge)
	}
	return nil
}

// ReadAll reads the uploaded part into memory, failing with ErrFileTooLarge
// past maxBytes and ErrEmptyFile for an empty part.
func ReadAll(fh *multipart.FileHeader, maxBytes int64) ([]byte, error) {
	if fh == nil {
		return nil, ErrNilFileHeader
	}

	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	switch {
	case int64(len(data)) > maxBytes:
		return nil, fmt.Errorf("file exceeds %d bytes limit: %w", maxBytes, ErrFileTooLarge)
	case len(data) == 0:
		return nil, ErrEmptyFile
	}
	return data, nil
}

// SanitizeFilename removes any path components and NUL bytes from a client
// supplied filename. Returns "unnamed" for empty or special directory names.
//
//	upload.SanitizeFilename("../../../etc/passwd")   // "passwd"
//	upload.SanitizeFilename("C:\\Users\\me\\cat.png") // "cat.png"
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}
	return filename
}
