// Package physics provides pairwise gravity, orbital-energy utilities and
// an N-body Runge-Kutta integrator. It is invoked only when perturbation
// analysis is explicitly requested; the per-tick loop uses pure Keplerian
// propagation instead.
package physics

import (
	"math"

	"cosmossdk.io/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/orbitforge/astrosim/internal/types"
	"github.com/orbitforge/astrosim/pkg/astromath"
	"github.com/orbitforge/astrosim/pkg/body"
	"github.com/orbitforge/astrosim/pkg/orbital"
)

// IntegrationMethod names a numerical integration scheme.
type IntegrationMethod string

const (
	MethodRK4    IntegrationMethod = "rk4"
	MethodEuler  IntegrationMethod = "euler"
	MethodVerlet IntegrationMethod = "verlet"
)

// Engine performs N-body gravitational computation over celestial bodies.
// Positions are km and velocities km/s as everywhere else; accelerations
// are exchanged in m/s². An Engine instance is not safe for concurrent use.
type Engine struct {
	method IntegrationMethod
}

// NewEngine returns an engine configured for RK4 integration.
func NewEngine() *Engine {
	return &Engine{method: MethodRK4}
}

// SetIntegrationMethod selects the integration scheme. Only rk4, euler and
// verlet are recognized names; of those, only rk4 is implemented and the
// others fail at integration time.
func (e *Engine) SetIntegrationMethod(method string) error {
	switch IntegrationMethod(method) {
	case MethodRK4, MethodEuler, MethodVerlet:
		e.method = IntegrationMethod(method)
		return nil
	default:
		return errors.Wrapf(types.ErrConfiguration,
			"unsupported integration method %q (valid: rk4, euler, verlet)", method)
	}
}

// Method returns the currently selected integration scheme.
func (e *Engine) Method() IntegrationMethod { return e.method }

// GravitationalAcceleration returns the acceleration (m/s²) induced on
// target by source, pointing from target toward source. Co-located bodies
// have no defined direction and raise a degenerate-geometry error.
func (e *Engine) GravitationalAcceleration(target, source body.CelestialBody) (astromath.Vector3, error) {
	rVec := source.Position().Sub(target.Position()).Scale(1000) // km -> m
	rMag := rVec.Magnitude()

	if rMag == 0 {
		return astromath.Vector3{}, errors.Wrapf(types.ErrDegenerateGeometry,
			"bodies %s and %s are co-located, gravity is undefined", target.Name(), source.Name())
	}

	magnitude := orbital.GravitationalConstant * source.Mass() / (rMag * rMag)
	return rVec.Scale(magnitude / rMag), nil
}

// TotalAcceleration sums the gravitational acceleration on target from
// every other body. O(N) per body, O(N²) over a full system pass.
func (e *Engine) TotalAcceleration(target body.CelestialBody, bodies []body.CelestialBody) (astromath.Vector3, error) {
	total := astromath.Vector3{}
	for _, other := range bodies {
		if other == target {
			continue
		}
		acc, err := e.GravitationalAcceleration(target, other)
		if err != nil {
			return astromath.Vector3{}, err
		}
		total = total.Add(acc)
	}
	return total, nil
}

// IntegrateMotion advances the joint state of all bodies by dt seconds
// using the selected scheme. Euler and verlet are accepted names that are
// not implemented; requesting them is a configuration error rather than a
// silent fallback.
func (e *Engine) IntegrateMotion(bodies []body.CelestialBody, dt float64) error {
	switch e.method {
	case MethodRK4:
		return e.integrateRK4(bodies, dt)
	default:
		return errors.Wrapf(types.ErrConfiguration,
			"integration method %q is recognized but not implemented, use rk4", e.method)
	}
}

// integrateRK4 performs one classic 4-stage Runge-Kutta step over the
// joint (position, velocity) state. Every stage recomputes all pairwise
// forces at the stage-advanced positions, so each stage costs O(N²); the
// final update blends the stage derivatives with weights (1,2,2,1)/6.
func (e *Engine) integrateRK4(bodies []body.CelestialBody, dt float64) error {
	n := len(bodies)

	positions := make([]astromath.Vector3, n)
	velocities := make([]astromath.Vector3, n)
	for i, b := range bodies {
		positions[i] = b.Position()
		velocities[i] = b.Velocity()
	}

	// stageAccelerations samples all pairwise forces at the bodies'
	// current (stage-advanced) positions, in km/s².
	stageAccelerations := func() ([]astromath.Vector3, error) {
		acc := make([]astromath.Vector3, n)
		for i, b := range bodies {
			a, err := e.TotalAcceleration(b, bodies)
			if err != nil {
				return nil, err
			}
			acc[i] = a.Scale(1.0 / 1000) // m/s² -> km/s²
		}
		return acc, nil
	}

	advance := func(posStep, velStep []astromath.Vector3, factor float64) {
		for i, b := range bodies {
			b.SetState(
				positions[i].Add(posStep[i].Scale(factor*dt)),
				velocities[i].Add(velStep[i].Scale(factor*dt)),
			)
		}
	}

	restore := func() {
		for i, b := range bodies {
			b.SetState(positions[i], velocities[i])
		}
	}

	k1v := velocities
	k1a, err := stageAccelerations()
	if err != nil {
		return err
	}

	advance(k1v, k1a, 0.5)
	k2v := make([]astromath.Vector3, n)
	for i, b := range bodies {
		k2v[i] = b.Velocity()
	}
	k2a, err := stageAccelerations()
	if err != nil {
		restore()
		return err
	}

	advance(k2v, k2a, 0.5)
	k3v := make([]astromath.Vector3, n)
	for i, b := range bodies {
		k3v[i] = b.Velocity()
	}
	k3a, err := stageAccelerations()
	if err != nil {
		restore()
		return err
	}

	advance(k3v, k3a, 1.0)
	k4v := make([]astromath.Vector3, n)
	for i, b := range bodies {
		k4v[i] = b.Velocity()
	}
	k4a, err := stageAccelerations()
	if err != nil {
		restore()
		return err
	}

	for i, b := range bodies {
		posBlend := k1v[i].Add(k2v[i].Scale(2)).Add(k3v[i].Scale(2)).Add(k4v[i]).Scale(dt / 6)
		velBlend := k1a[i].Add(k2a[i].Scale(2)).Add(k3a[i].Scale(2)).Add(k4a[i]).Scale(dt / 6)
		b.SetState(positions[i].Add(posBlend), velocities[i].Add(velBlend))
	}
	return nil
}

// OrbitalVelocity returns the circular orbital speed (km/s) at the given
// heliocentric position around a central mass (kg).
func (e *Engine) OrbitalVelocity(position astromath.Vector3, centralMass float64) (float64, error) {
	r := position.Magnitude() * 1000 // km -> m
	if r == 0 {
		return 0, errors.Wrap(types.ErrDegenerateGeometry,
			"orbital velocity is undefined at the central body")
	}
	return math.Sqrt(orbital.GravitationalConstant*centralMass/r) / 1000, nil
}

// EscapeVelocity returns the escape speed (km/s) at the given position.
func (e *Engine) EscapeVelocity(position astromath.Vector3, centralMass float64) (float64, error) {
	r := position.Magnitude() * 1000
	if r == 0 {
		return 0, errors.Wrap(types.ErrDegenerateGeometry,
			"escape velocity is undefined at the central body")
	}
	return math.Sqrt(2*orbital.GravitationalConstant*centralMass/r) / 1000, nil
}

// OrbitalEnergy returns the body's specific orbital energy (J): kinetic
// plus potential against the central mass at the origin.
func (e *Engine) OrbitalEnergy(b body.CelestialBody, centralMass float64) (float64, error) {
	r := b.Position().Magnitude() * 1000
	if r == 0 {
		return 0, errors.Wrapf(types.ErrDegenerateGeometry,
			"body %s coincides with the central body", b.Name())
	}
	vMeters := b.Velocity().Scale(1000)
	kinetic := 0.5 * b.Mass() * vMeters.MagnitudeSquared()
	potential := -orbital.GravitationalConstant * b.Mass() * centralMass / r
	return kinetic + potential, nil
}

// HillSphereRadius returns the radius (km) inside which a body's gravity
// dominates over its primary: r_H = a·(m/3M)^(1/3).
func (e *Engine) HillSphereRadius(bodyMass, centralMass, semiMajorAxisAU float64) float64 {
	aKm := semiMajorAxisAU * orbital.AUToKm
	return aKm * math.Cbrt(bodyMass/(3*centralMass))
}

// TidalForceGradient returns the 3×3 tidal tensor GM/r³·(3·r̂r̂ᵀ - I) in
// (m/s²)/m exerted on target by source: differential acceleration per unit
// displacement, stretching along the separation axis and compressing
// across it. Co-located bodies exert a zero gradient.
func (e *Engine) TidalForceGradient(target, source body.CelestialBody) *mat.Dense {
	gradient := mat.NewDense(3, 3, nil)

	rVec := source.Position().Sub(target.Position()).Scale(1000)
	r := rVec.Magnitude()
	if r == 0 {
		return gradient
	}

	unit := []float64{rVec.X / r, rVec.Y / r, rVec.Z / r}
	scale := orbital.GravitationalConstant * source.Mass() / (r * r * r)

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v := 3 * unit[i] * unit[j]
			if i == j {
				v -= 1
			}
			gradient.Set(i, j, scale*v)
		}
	}
	return gradient
}

// SystemTotalEnergy returns the kinetic plus pairwise potential energy (J)
// of an arbitrary body set.
func (e *Engine) SystemTotalEnergy(bodies []body.CelestialBody) float64 {
	kinetic := 0.0
	for _, b := range bodies {
		vMeters := b.Velocity().Scale(1000)
		kinetic += 0.5 * b.Mass() * vMeters.MagnitudeSquared()
	}

	potential := 0.0
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			r := bodies[i].Position().Distance(bodies[j].Position()) * 1000
			if r > 0 {
				potential -= orbital.GravitationalConstant * bodies[i].Mass() * bodies[j].Mass() / r
			}
		}
	}
	return kinetic + potential
}

// SystemAngularMomentum returns Σ r×p (kg·m²/s) of an arbitrary body set.
func (e *Engine) SystemAngularMomentum(bodies []body.CelestialBody) astromath.Vector3 {
	total := astromath.Vector3{}
	for _, b := range bodies {
		r := b.Position().Scale(1000)
		p := b.Velocity().Scale(1000 * b.Mass())
		total = total.Add(r.Cross(p))
	}
	return total
}
