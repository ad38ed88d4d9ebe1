package usecase

import (
	"errors"

	"mindwell/analysis"
	"mindwell/repository"
)

var (
	ErrMissingUser        = errors.New("user ID is required")
	ErrNotFound           = errors.New("not found")
	ErrInvalidIntensity   = errors.New("Intensity must be between 1-5")
	ErrUnknownMood        = errors.New("unknown mood")
	ErrDuplicateActivity  = errors.New("activities must not repeat")
	ErrEmptyPatch         = errors.New("no fields to update")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotEnoughData      = analysis.ErrNotEnoughData
)

func translate(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
