package models

import "errors"

// Sentinel errors shared by the repositories, storage and the coordinator.
// Handlers map ErrNotFound to 404 and ErrInvalidCategory to 400; anything
// else is an unexpected failure.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidCategory = errors.New("invalid category")
)
