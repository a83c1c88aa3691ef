package types

import "errors"

var (
	// ErrIO reports a failed seek or read against the container source.
	ErrIO = errors.New("dat: i/o error")

	// ErrFormat reports a structural violation in the container.
	ErrFormat = errors.New("dat: format error")

	// ErrNotFound reports an id absent from a well-formed directory.
	ErrNotFound = errors.New("dat: resource not found")
)
