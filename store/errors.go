package store

import "errors"

var (
	ErrNotFound = errors.New("store: not found")
	ErrEmptyKey = errors.New("store: empty key")
)

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
