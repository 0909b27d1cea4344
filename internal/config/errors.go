package config

import "errors"

// Sentinel error kinds returned by Load. Callers fall back to Default() on
// any of them.
var (
	ErrNotFound = errors.New("config file not found")
	ErrParse    = errors.New("parse config failed")
	ErrInvalid  = errors.New("invalid config")
)
