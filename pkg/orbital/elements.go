package orbital

import (
	"math"

	"cosmossdk.io/errors"

	"github.com/orbitforge/astrosim/internal/types"
)

// GMSun is the heliocentric gravitational parameter in AU³/day².
const GMSun = 2.959122082855911e-4

// Elements holds the six Keplerian orbital elements plus their epoch.
// Angles are degrees normalized to [0, 360), the semi-major axis is in AU
// and the epoch is a Julian date. Values are validated by NewElements and
// treated as immutable afterwards.
type Elements struct {
	SemiMajorAxis            float64 // a - semi-major axis (AU)
	Eccentricity             float64 // e - eccentricity, 0 <= e < 1
	Inclination              float64 // i - inclination (degrees)
	LongitudeOfAscendingNode float64 // Ω - longitude of ascending node (degrees)
	ArgumentOfPerihelion     float64 // ω - argument of perihelion (degrees)
	MeanAnomalyAtEpoch       float64 // M - mean anomaly at epoch (degrees)
	Epoch                    float64 // JD - Julian date of epoch
}

// NewElements validates and normalizes a set of orbital elements.
// The semi-major axis must be positive and the eccentricity must describe
// a closed elliptical orbit (0 <= e < 1); all angles are wrapped to
// [0, 360) degrees.
func NewElements(semiMajorAxis, eccentricity, inclination, ascendingNode,
	argumentPerihelion, meanAnomaly, epoch float64) (Elements, error) {

	if semiMajorAxis <= 0 {
		return Elements{}, errors.Wrapf(types.ErrValidation,
			"semi-major axis must be positive, got %g AU", semiMajorAxis)
	}
	if eccentricity < 0 || eccentricity >= 1 {
		return Elements{}, errors.Wrapf(types.ErrValidation,
			"eccentricity must be in [0, 1) for an elliptical orbit, got %g", eccentricity)
	}

	return Elements{
		SemiMajorAxis:            semiMajorAxis,
		Eccentricity:             eccentricity,
		Inclination:              NormalizeDegrees(inclination),
		LongitudeOfAscendingNode: NormalizeDegrees(ascendingNode),
		ArgumentOfPerihelion:     NormalizeDegrees(argumentPerihelion),
		MeanAnomalyAtEpoch:       NormalizeDegrees(meanAnomaly),
		Epoch:                    epoch,
	}, nil
}

// NormalizeDegrees wraps an angle into [0, 360).
func NormalizeDegrees(angle float64) float64 {
	wrapped := math.Mod(angle, 360.0)
	if wrapped < 0 {
		wrapped += 360.0
	}
	return wrapped
}

// OrbitalPeriod returns the orbital period in days from Kepler's third law,
// assuming a solar-mass central body.
func (e Elements) OrbitalPeriod() float64 {
	periodSquared := 4 * math.Pi * math.Pi * math.Pow(e.SemiMajorAxis, 3) / GMSun
	return math.Sqrt(periodSquared)
}

// PerihelionDistance returns the closest approach to the focus in AU.
func (e Elements) PerihelionDistance() float64 {
	return e.SemiMajorAxis * (1 - e.Eccentricity)
}

// AphelionDistance returns the farthest distance from the focus in AU.
func (e Elements) AphelionDistance() float64 {
	return e.SemiMajorAxis * (1 + e.Eccentricity)
}

// ToRecord converts the elements to their canonical persistence shape.
func (e Elements) ToRecord() types.ElementsRecord {
	return types.ElementsRecord{
		SemiMajorAxis:            e.SemiMajorAxis,
		Eccentricity:             e.Eccentricity,
		Inclination:              e.Inclination,
		LongitudeOfAscendingNode: e.LongitudeOfAscendingNode,
		ArgumentOfPerihelion:     e.ArgumentOfPerihelion,
		MeanAnomalyAtEpoch:       e.MeanAnomalyAtEpoch,
		Epoch:                    e.Epoch,
	}
}

// ElementsFromRecord validates a persisted record into Elements.
func ElementsFromRecord(rec types.ElementsRecord) (Elements, error) {
	return NewElements(
		rec.SemiMajorAxis,
		rec.Eccentricity,
		rec.Inclination,
		rec.LongitudeOfAscendingNode,
		rec.ArgumentOfPerihelion,
		rec.MeanAnomalyAtEpoch,
		rec.Epoch,
	)
}

// Equal reports whether two element sets match within tol on every field.
func (e Elements) Equal(other Elements, tol float64) bool {
	return math.Abs(e.SemiMajorAxis-other.SemiMajorAxis) < tol &&
		math.Abs(e.Eccentricity-other.Eccentricity) < tol &&
		math.Abs(e.Inclination-other.Inclination) < tol &&
		math.Abs(e.LongitudeOfAscendingNode-other.LongitudeOfAscendingNode) < tol &&
		math.Abs(e.ArgumentOfPerihelion-other.ArgumentOfPerihelion) < tol &&
		math.Abs(e.MeanAnomalyAtEpoch-other.MeanAnomalyAtEpoch) < tol &&
		math.Abs(e.Epoch-other.Epoch) < tol
}
