package services

import "errors"

var (
	// ErrInvalidInput marks a game definition rejected by validation.
	ErrInvalidInput = errors.New("invalid game definition")
	// ErrDuplicateName marks a create with an already-used game name.
	ErrDuplicateName = errors.New("game name must be unique")
)
