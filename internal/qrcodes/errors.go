package qrcodes

import "errors"

var (
	ErrNotFound       = errors.New("qr code not found")
	ErrAlreadyExists  = errors.New("qr code already exists")
	ErrOwnerRequired  = errors.New("owner id is required")
	ErrInvalidOwner   = errors.New("invalid owner id")
	ErrFailedToRender = errors.New("failed to render qr code")
	ErrFailedToStore  = errors.New("failed to store qr code image")
	ErrRepository     = errors.New("qr code repository failure")
)
