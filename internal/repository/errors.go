package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist in the store.
var ErrNotFound = errors.New("not found")

// ErrUnavailable is returned when the data source cannot be read or parsed.
var ErrUnavailable = errors.New("data source unavailable")
