package config

import "errors"

var (
	// ErrParsingConfig indicates environment variables could not be parsed into the struct.
	ErrParsingConfig = errors.New("config.parse_failed")

	// ErrNilPointer indicates a nil pointer was passed to Load.
	ErrNilPointer = errors.New("config.nil_pointer")
)
