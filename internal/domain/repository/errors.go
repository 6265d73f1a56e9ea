package repository

import "errors"

// Sentinel errors every store implementation returns (optionally wrapped)
// so services can translate them into domain errors.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)
