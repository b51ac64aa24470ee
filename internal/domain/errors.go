package domain

import "errors"

var (
	ErrMissingDocument = errors.New("documentBase64 required")
	ErrInvalidBase64   = errors.New("invalid base64")
)
