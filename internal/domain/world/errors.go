package world

import "errors"

var (
	// ErrWorldNotFound is returned when the map service has no world at a hex
	ErrWorldNotFound = errors.New("world not found")

	// ErrInvalidUWP is returned when a UWP code cannot be parsed
	ErrInvalidUWP = errors.New("invalid UWP")

	// ErrSnapshotNotFound is returned when no trade snapshot exists for a world
	ErrSnapshotNotFound = errors.New("trade snapshot not found")
)
