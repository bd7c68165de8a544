package orbital

import (
	"math"

	"cosmossdk.io/errors"

	"github.com/orbitforge/astrosim/internal/types"
)

const (
	// keplerTolerance is the Newton-Raphson convergence threshold on the
	// eccentric-anomaly correction.
	keplerTolerance = 1e-12

	// keplerMaxIterations bounds the solver; exceeding it is a numerical
	// divergence, never a silently returned approximation.
	keplerMaxIterations = 50

	// derivativeFloor guards against the near-parabolic collapse of
	// 1 - e*cos(E).
	derivativeFloor = 1e-15
)

// SolveKepler solves Kepler's equation M = E - e*sin(E) for the eccentric
// anomaly E using Newton-Raphson iteration. The mean anomaly is in radians.
func SolveKepler(meanAnomaly, eccentricity float64) (float64, error) {
	if eccentricity < 0 || eccentricity >= 1 {
		return 0, errors.Wrapf(types.ErrValidation,
			"eccentricity must be in [0, 1), got %g", eccentricity)
	}

	E := meanAnomaly
	if eccentricity > 0.8 {
		// Better initial guess for highly eccentric orbits.
		E = math.Pi
	}

	for i := 0; i < keplerMaxIterations; i++ {
		f := E - eccentricity*math.Sin(E) - meanAnomaly
		fPrime := 1 - eccentricity*math.Cos(E)

		if math.Abs(fPrime) < derivativeFloor {
			return 0, errors.Wrapf(types.ErrNumericDivergence,
				"kepler derivative collapsed (|1 - e*cos E| = %g) at iteration %d", math.Abs(fPrime), i)
		}

		deltaE := f / fPrime
		E -= deltaE

		if math.Abs(deltaE) < keplerTolerance {
			return E, nil
		}
	}

	return 0, errors.Wrapf(types.ErrNumericDivergence,
		"kepler equation did not converge within %d iterations (M=%g, e=%g)",
		keplerMaxIterations, meanAnomaly, eccentricity)
}

// TrueAnomalyFromEccentric converts an eccentric anomaly to the true anomaly.
func TrueAnomalyFromEccentric(eccentricAnomaly, eccentricity float64) float64 {
	sinE := math.Sin(eccentricAnomaly)
	cosE := math.Cos(eccentricAnomaly)
	return math.Atan2(math.Sqrt(1-eccentricity*eccentricity)*sinE, cosE-eccentricity)
}

// normalizeRadians wraps an angle into [0, 2π).
func normalizeRadians(angle float64) float64 {
	wrapped := math.Mod(angle, 2*math.Pi)
	if wrapped < 0 {
		wrapped += 2 * math.Pi
	}
	return wrapped
}
