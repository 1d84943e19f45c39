package upload

import "errors"

var (
	// ErrNilFileHeader is returned when a nil file header is provided.
	ErrNilFileHeader = errors.New("file header is nil")
	// ErrEmptyFile is returned for a zero-byte upload.
	ErrEmptyFile = errors.New("file is empty")
	// ErrFileTooLarge is returned when a file exceeds the maximum allowed size.
	ErrFileTooLarge = errors.New("file size exceeds maximum allowed size")
	// ErrNotAnImage is returned when the sniffed type is not a supported image.
	ErrNotAnImage = errors.New("file is not a supported image")
	// ErrFailedToOpenFile is returned when an uploaded part cannot be opened.
	ErrFailedToOpenFile = errors.New("failed to open file")
	// ErrFailedToReadFile is returned when an uploaded part cannot be read.
	ErrFailedToReadFile = errors.New("failed to read file")
)
