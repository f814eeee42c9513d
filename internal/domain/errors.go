package domain

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("not found")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)
