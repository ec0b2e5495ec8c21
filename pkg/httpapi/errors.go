package httpapi

import "errors"

var (
	ErrUnsupportedMediaType = errors.New("unsupported content type")
	ErrBodyTooLarge         = errors.New("request body too large")
)
