package images

import "errors"

var (
	ErrNotFound       = errors.New("image not found")
	ErrAlreadyExists  = errors.New("image already exists")
	ErrFileRequired   = errors.New("image file is required")
	ErrFailedToStore  = errors.New("failed to store image")
	ErrRepository     = errors.New("image repository failure")
	ErrInvalidBaseURL = errors.New("invalid public base url")
)
