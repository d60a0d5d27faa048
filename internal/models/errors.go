package models

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidURL   = errors.New("url must use http or https")
	ErrEngineClosed = errors.New("sync engine disposed")
)
