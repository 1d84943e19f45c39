package storage

import "errors"

var (
	ErrInvalidPath   = errors.New("invalid path")
	ErrInvalidConfig = errors.New("invalid configuration")

	ErrObjectNotFound = errors.New("object not found")
	ErrIsDirectory    = errors.New("path is a directory")

	ErrFailedToReadObject   = errors.New("failed to read object")
	ErrFailedToWriteObject  = errors.New("failed to write object")
	ErrFailedToDeleteObject = errors.New("failed to delete object")
	ErrFailedToCreateDir    = errors.New("failed to create directory")
	ErrFailedToStatPath     = errors.New("failed to stat path")
	ErrFailedToLoadConfig   = errors.New("failed to load AWS config")

	// S3 errors
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrRequestTimeout     = errors.New("request timed out")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")

	ErrOperationTimeout  = errors.New("operation timed out")
	ErrOperationCanceled = errors.New("operation canceled")
)
