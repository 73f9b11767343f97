package service

import "errors"

// Sentinel kinds for service level validation failures.
var (
	// ErrInvalidPopulationSize marks a generation request outside the
	// allowed range.
	ErrInvalidPopulationSize = errors.New("invalid population size")

	// ErrUnknownScenario marks a population scenario the generator
	// does not know.
	ErrUnknownScenario = errors.New("unknown population scenario")

	// ErrInvalidProbability marks a probability outside [0, 1].
	ErrInvalidProbability = errors.New("probability must be between 0 and 1")

	// ErrInvalidSwipeCount marks a simulation request over the
	// configured swipe limit.
	ErrInvalidSwipeCount = errors.New("invalid simulation swipe count")
)
