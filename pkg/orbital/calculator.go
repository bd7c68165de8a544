package orbital

import (
	"math"

	"cosmossdk.io/errors"

	"github.com/orbitforge/astrosim/internal/types"
	"github.com/orbitforge/astrosim/pkg/astromath"
)

// Physical constants in SI-adjacent units used throughout the simulation:
// positions in km, velocities in km/s, masses in kg.
const (
	GravitationalConstant = 6.67430e-11   // m³ kg⁻¹ s⁻²
	AUToKm                = 149597870.7   // astronomical unit in km
	SolarMass             = 1.989e30      // kg
	SecondsPerDay         = 86400.0
)

// Calculator converts orbital elements and time into heliocentric state
// vectors and back. Results are memoized in a bounded cache keyed by
// (elements, julian date, central mass). A Calculator instance is not safe
// for concurrent use.
type Calculator struct {
	cache *stateCache
}

// NewCalculator returns a calculator with the default cache configuration.
func NewCalculator() *Calculator {
	return &Calculator{cache: newStateCache(defaultCacheCapacity, defaultTimeTolerance)}
}

// PositionVelocity computes the heliocentric position (km) and velocity
// (km/s) of a body on the given orbit at the given Julian date. A zero
// centralMass defaults to one solar mass.
func (c *Calculator) PositionVelocity(el Elements, julianDate, centralMass float64) (astromath.Vector3, astromath.Vector3, error) {
	if centralMass == 0 {
		centralMass = SolarMass
	}
	if centralMass < 0 {
		return astromath.Vector3{}, astromath.Vector3{}, errors.Wrapf(types.ErrValidation,
			"central mass must be positive, got %g kg", centralMass)
	}

	if pos, vel, ok := c.cache.get(el, julianDate, centralMass); ok {
		return pos, vel, nil
	}

	meanAnomaly := c.meanAnomalyAt(el, julianDate, centralMass)

	eccentricAnomaly, err := SolveKepler(meanAnomaly, el.Eccentricity)
	if err != nil {
		return astromath.Vector3{}, astromath.Vector3{}, err
	}

	trueAnomaly := TrueAnomalyFromEccentric(eccentricAnomaly, el.Eccentricity)

	radiusKm := orbitalRadiusKm(trueAnomaly, el)
	planeX := radiusKm * math.Cos(trueAnomaly)
	planeY := radiusKm * math.Sin(trueAnomaly)

	planeVX, planeVY := orbitalPlaneVelocity(trueAnomaly, el, centralMass)

	position := transformToHeliocentric(planeX, planeY, el)
	velocity := transformToHeliocentric(planeVX, planeVY, el)

	c.cache.put(el, julianDate, centralMass, position, velocity)
	return position, velocity, nil
}

// meanAnomalyAt propagates the epoch mean anomaly to the requested date,
// in radians wrapped to [0, 2π).
func (c *Calculator) meanAnomalyAt(el Elements, julianDate, centralMass float64) float64 {
	daysSinceEpoch := julianDate - el.Epoch
	meanMotion := meanMotionRadPerDay(el, centralMass)
	return normalizeRadians(el.MeanAnomalyAtEpoch*math.Pi/180 + meanMotion*daysSinceEpoch)
}

// meanMotionRadPerDay returns n = sqrt(GM/a³) converted to rad/day.
func meanMotionRadPerDay(el Elements, centralMass float64) float64 {
	aMeters := el.SemiMajorAxis * AUToKm * 1000
	radPerSec := math.Sqrt(GravitationalConstant * centralMass / (aMeters * aMeters * aMeters))
	return radPerSec * SecondsPerDay
}

// orbitalRadiusKm evaluates the conic equation r = a(1-e²)/(1+e·cos ν) in km.
func orbitalRadiusKm(trueAnomaly float64, el Elements) float64 {
	a := el.SemiMajorAxis * AUToKm
	e := el.Eccentricity
	return a * (1 - e*e) / (1 + e*math.Cos(trueAnomaly))
}

// orbitalPlaneVelocity derives the in-plane velocity components (km/s) from
// the orbit's angular momentum: radial v_r = (μ/h)·e·sin ν and transverse
// v_θ = h/r.
func orbitalPlaneVelocity(trueAnomaly float64, el Elements, centralMass float64) (float64, float64) {
	aMeters := el.SemiMajorAxis * AUToKm * 1000
	e := el.Eccentricity
	mu := GravitationalConstant * centralMass

	h := math.Sqrt(mu * aMeters * (1 - e*e))
	r := aMeters * (1 - e*e) / (1 + e*math.Cos(trueAnomaly))

	vRadial := (mu / h) * e * math.Sin(trueAnomaly)
	vTransverse := h / r

	vx := vRadial*math.Cos(trueAnomaly) - vTransverse*math.Sin(trueAnomaly)
	vy := vRadial*math.Sin(trueAnomaly) + vTransverse*math.Cos(trueAnomaly)

	return vx / 1000, vy / 1000
}

// transformToHeliocentric rotates an orbital-plane vector (x toward
// perihelion, z normal to the plane) into the heliocentric frame using the
// fixed Euler rotation by (Ω, i, ω).
func transformToHeliocentric(planeX, planeY float64, el Elements) astromath.Vector3 {
	i := el.Inclination * math.Pi / 180
	node := el.LongitudeOfAscendingNode * math.Pi / 180
	w := el.ArgumentOfPerihelion * math.Pi / 180

	cosNode, sinNode := math.Cos(node), math.Sin(node)
	cosI, sinI := math.Cos(i), math.Sin(i)
	cosW, sinW := math.Cos(w), math.Sin(w)

	r11 := cosNode*cosW - sinNode*sinW*cosI
	r12 := -cosNode*sinW - sinNode*cosW*cosI
	r21 := sinNode*cosW + cosNode*sinW*cosI
	r22 := -sinNode*sinW + cosNode*cosW*cosI
	r31 := sinW * sinI
	r32 := cosW * sinI

	return astromath.Vector3{
		X: r11*planeX + r12*planeY,
		Y: r21*planeX + r22*planeY,
		Z: r31*planeX + r32*planeY,
	}
}

// ElementsFromState derives Keplerian elements from a heliocentric state
// vector (position km, velocity km/s). Degenerate geometries keep documented
// defaults instead of failing: a zero-inclination orbit has no ascending
// node and reports Ω = 0, and a circular orbit has no perihelion direction
// and reports ω = 0.
func (c *Calculator) ElementsFromState(position, velocity astromath.Vector3, centralMass float64) (Elements, error) {
	if centralMass == 0 {
		centralMass = SolarMass
	}
	if position.IsZero() {
		return Elements{}, errors.Wrap(types.ErrDegenerateGeometry,
			"state vector coincides with the central body")
	}

	r := position.Scale(1000) // km -> m
	v := velocity.Scale(1000) // km/s -> m/s
	mu := GravitationalConstant * centralMass

	rMag := r.Magnitude()
	vMag := v.Magnitude()

	hVec := r.Cross(v)
	hMag := hVec.Magnitude()
	if hMag == 0 {
		return Elements{}, errors.Wrap(types.ErrDegenerateGeometry,
			"zero angular momentum: trajectory is radial, not an orbit")
	}

	eVec := v.Cross(hVec).Scale(1 / mu).Sub(r.Scale(1 / rMag))
	eMag := eVec.Magnitude()

	// Semi-major axis from the vis-viva energy equation.
	a := 1 / (2/rMag - vMag*vMag/mu)

	inclination := math.Acos(hVec.Z / hMag)

	nVec := astromath.Vector3{X: 0, Y: 0, Z: 1}.Cross(hVec)
	nMag := nVec.Magnitude()

	var ascendingNode float64
	if nMag > degeneracyThreshold {
		ascendingNode = math.Acos(nVec.X / nMag)
		if nVec.Y < 0 {
			ascendingNode = 2*math.Pi - ascendingNode
		}
	}

	var argumentPerihelion float64
	if nMag > degeneracyThreshold && eMag > degeneracyThreshold {
		cosW := nVec.Dot(eVec) / (nMag * eMag)
		if cosW > 1 {
			cosW = 1
		} else if cosW < -1 {
			cosW = -1
		}
		argumentPerihelion = math.Acos(cosW)
		if eVec.Z < 0 {
			argumentPerihelion = 2*math.Pi - argumentPerihelion
		}
	}

	var trueAnomaly float64
	if eMag > degeneracyThreshold {
		cosNu := eVec.Dot(r) / (eMag * rMag)
		if cosNu > 1 {
			cosNu = 1
		} else if cosNu < -1 {
			cosNu = -1
		}
		trueAnomaly = math.Acos(cosNu)
		if r.Dot(v) < 0 {
			trueAnomaly = 2*math.Pi - trueAnomaly
		}
	}

	eccentricAnomaly := 2 * math.Atan(math.Sqrt((1-eMag)/(1+eMag))*math.Tan(trueAnomaly/2))
	meanAnomaly := eccentricAnomaly - eMag*math.Sin(eccentricAnomaly)

	return NewElements(
		a/(AUToKm*1000), // m -> AU
		eMag,
		inclination*180/math.Pi,
		ascendingNode*180/math.Pi,
		argumentPerihelion*180/math.Pi,
		meanAnomaly*180/math.Pi,
		0, // epoch is the caller's to assign
	)
}

// degeneracyThreshold separates genuinely undefined angles from round-off.
const degeneracyThreshold = 1e-10

// OrbitalPeriod returns the orbital period in days around a body of the
// given mass (kg); zero defaults to one solar mass.
func (c *Calculator) OrbitalPeriod(el Elements, centralMass float64) float64 {
	if centralMass == 0 {
		centralMass = SolarMass
	}
	aMeters := el.SemiMajorAxis * AUToKm * 1000
	mu := GravitationalConstant * centralMass
	periodSeconds := 2 * math.Pi * math.Sqrt(aMeters*aMeters*aMeters/mu)
	return periodSeconds / SecondsPerDay
}

// CacheStats reports hit/miss counters and occupancy of the result cache.
func (c *Calculator) CacheStats() CacheStats {
	return c.cache.stats()
}

// ClearCache drops every cached state vector and resets the counters.
func (c *Calculator) ClearCache() {
	c.cache.clear()
}
