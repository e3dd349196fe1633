package sdk

import "errors"

// Sentinel errors for common SDK error conditions.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrInvalidConfig indicates the provided configuration is invalid
	// or incomplete: no host, no API key, or an unreadable config file.
	ErrInvalidConfig = errors.New("invalid configuration")
)
