package io

import "errors"

var (
	// ErrUnknownFormat is returned when a format name or file extension is
	// neither Pajek nor JSON.
	ErrUnknownFormat = errors.New("unknown network format")

	// ErrMalformed is returned by the readers for lines or documents they
	// cannot interpret.
	ErrMalformed = errors.New("malformed network")
)
