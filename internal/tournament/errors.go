package tournament

import "errors"

var (
	// ErrNotFound is returned when a referenced id does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyDrafted is returned when a player is already claimed by a draft pick.
	ErrAlreadyDrafted = errors.New("player already drafted")
	// ErrReferenceNotFound is returned when an upserted record names a foreign entity
	// (player or game) that is not in the store.
	ErrReferenceNotFound = errors.New("referenced entity not found")
	// ErrValidation is returned when a required field is missing or malformed.
	ErrValidation = errors.New("validation error")
)
