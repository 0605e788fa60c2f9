package models

import "errors"

var (
	// ErrInvalidCoordinate is returned for non-finite or out of range lat/lon.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	// ErrDegenerateGeometry is returned when a polygon has fewer than 3 usable points.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
	ErrInvalidParameter   = errors.New("invalid parameter")
	ErrNoValidShelters    = errors.New("no valid shelters")
	// ErrRankingUnavailable marks an unusable ranker result. It is recovered by
	// the fallback path and never returned from Recommend.
	ErrRankingUnavailable = errors.New("ranking unavailable")
)
