package types

import "cosmossdk.io/errors"

// Codespace groups all simulation errors under one registry namespace.
const Codespace = "astrosim"

// Registered sentinel errors for the simulation core. Callers match them
// with the standard errors.Is; packages attach context via errors.Wrapf.
var (
	// ErrValidation covers invalid orbital elements, body parameters and
	// negative time scales rejected at construction time.
	ErrValidation = errors.Register(Codespace, 2, "validation error")

	// ErrNumericDivergence is returned when the Kepler solver fails to
	// converge within its iteration cap or its derivative term collapses.
	ErrNumericDivergence = errors.Register(Codespace, 3, "numerical divergence")

	// ErrDegenerateGeometry is returned for zero-separation gravity
	// calculations and other geometrically undefined inputs.
	ErrDegenerateGeometry = errors.Register(Codespace, 4, "degenerate geometry")

	// ErrConfiguration is returned for unsupported integration methods and
	// invalid configuration values.
	ErrConfiguration = errors.Register(Codespace, 5, "configuration error")

	// ErrDataLoad is returned when planet catalog files cannot be read or
	// parsed.
	ErrDataLoad = errors.Register(Codespace, 6, "data load error")
)
