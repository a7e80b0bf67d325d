package model

import "errors"

// Sentinel errors for the model package.
var (
	// ErrBadMagic is returned when the input does not start with "SPEC".
	ErrBadMagic = errors.New("model: not a coefficient table")

	// ErrResolution is returned for resolutions outside [2, MaxResolution].
	ErrResolution = errors.New("model: invalid resolution")

	// ErrTruncated is returned when the input ends before the table does.
	ErrTruncated = errors.New("model: truncated table")

	// ErrScale is returned when the scale axis is not strictly increasing.
	ErrScale = errors.New("model: scale not strictly increasing")

	// ErrSize is returned by New when slice lengths do not match res.
	ErrSize = errors.New("model: data size mismatch")
)
