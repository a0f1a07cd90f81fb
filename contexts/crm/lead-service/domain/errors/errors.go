package errors

import "errors"

var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrLeadNotFound     = errors.New("lead not found")
	ErrInvalidLeadInput = errors.New("invalid lead input")
	ErrInvalidPage      = errors.New("page and page size must be positive")
)
