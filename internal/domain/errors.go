package domain

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrUnknownDecade = errors.New("unknown decade")
)
