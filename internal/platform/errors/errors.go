package apperrors

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrMissingAPIKey = errors.New("pagespeed api key is not configured")
)
