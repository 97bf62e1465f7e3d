package models

import "errors"

// Custom errors
var (
	ErrNotFound        = errors.New("record not found")
	ErrTrackNotFound   = errors.New("track not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrLapTimeFormat   = errors.New("invalid lap time format")
	ErrInvalidInput    = errors.New("invalid input")
	ErrDuplicateKey    = errors.New("duplicate key violation")
)
