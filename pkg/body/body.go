// Package body models the celestial bodies of the simulation: a central
// Sun pinned at the origin and Planets whose state vectors are derived
// from their Keplerian orbital elements on every tick.
package body

import (
	"cosmossdk.io/errors"

	"github.com/orbitforge/astrosim/internal/types"
	"github.com/orbitforge/astrosim/pkg/astromath"
)

// CelestialBody is the closed set of objects a SolarSystem manages.
// Positions are km in the heliocentric frame, velocities km/s, masses kg.
type CelestialBody interface {
	Name() string
	Mass() float64
	Radius() float64
	Position() astromath.Vector3
	Velocity() astromath.Vector3

	// SetState overwrites the state vector; only N-body integration uses
	// this, per-tick Keplerian propagation goes through UpdatePosition.
	SetState(position, velocity astromath.Vector3)

	// UpdatePosition recomputes the state vector for the given Julian date.
	UpdatePosition(julianDate float64) error

	VisualProperties() VisualProperties
}

// VisualProperties carries everything a renderer needs that is derived
// from physical state rather than stored by it.
type VisualProperties struct {
	Color         [3]float64
	Radius        float64
	RotationAngle float64
	IsLightSource bool
	Temperature   float64
	Luminosity    float64
}

// baseBody holds the state shared by every body kind.
type baseBody struct {
	name     string
	mass     float64 // kg
	radius   float64 // km
	position astromath.Vector3
	velocity astromath.Vector3
}

func newBaseBody(name string, mass, radius float64) (baseBody, error) {
	if mass <= 0 {
		return baseBody{}, errors.Wrapf(types.ErrValidation,
			"body %q: mass must be positive, got %g kg", name, mass)
	}
	if radius <= 0 {
		return baseBody{}, errors.Wrapf(types.ErrValidation,
			"body %q: radius must be positive, got %g km", name, radius)
	}
	return baseBody{name: name, mass: mass, radius: radius}, nil
}

func (b *baseBody) Name() string                 { return b.name }
func (b *baseBody) Mass() float64                { return b.mass }
func (b *baseBody) Radius() float64              { return b.radius }
func (b *baseBody) Position() astromath.Vector3  { return b.position }
func (b *baseBody) Velocity() astromath.Vector3  { return b.velocity }

func (b *baseBody) SetState(position, velocity astromath.Vector3) {
	b.position = position
	b.velocity = velocity
}

// KineticEnergy returns ½mv² in joules.
func (b *baseBody) KineticEnergy() float64 {
	vMeters := b.velocity.Scale(1000) // km/s -> m/s
	return 0.5 * b.mass * vMeters.MagnitudeSquared()
}

// Momentum returns the linear momentum vector in kg·m/s.
func (b *baseBody) Momentum() astromath.Vector3 {
	return b.velocity.Scale(1000 * b.mass)
}

// DistanceTo returns the separation between two bodies in km.
func (b *baseBody) DistanceTo(other CelestialBody) float64 {
	return b.position.Distance(other.Position())
}
