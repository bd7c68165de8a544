package body

import (
	"math"

	"github.com/orbitforge/astrosim/internal/types"
	"github.com/orbitforge/astrosim/pkg/orbital"
)

// Planet orbits the central body on a fixed Keplerian orbit. Its position
// and velocity are derived state: they are recomputed from the orbital
// elements on every UpdatePosition call and never persisted as independent
// truth.
type Planet struct {
	baseBody
	elements       orbital.Elements
	color          [3]float64
	rotationPeriod float64 // hours
	axialTilt      float64 // degrees

	calc        *orbital.Calculator
	centralMass float64 // kg
	currentDate float64 // JD of the last UpdatePosition
}

// NewPlanet validates and constructs a planet on the given orbit. The
// calculator is the explicitly owned instance used for propagation; nil
// falls back to a private one so a Planet is always usable standalone.
func NewPlanet(name string, mass, radius float64, elements orbital.Elements,
	color [3]float64, rotationPeriod, axialTilt float64,
	calc *orbital.Calculator) (*Planet, error) {

	base, err := newBaseBody(name, mass, radius)
	if err != nil {
		return nil, err
	}
	if calc == nil {
		calc = orbital.NewCalculator()
	}
	if rotationPeriod == 0 {
		rotationPeriod = 24.0
	}
	return &Planet{
		baseBody:       base,
		elements:       elements,
		color:          color,
		rotationPeriod: rotationPeriod,
		axialTilt:      axialTilt,
		calc:           calc,
		centralMass:    orbital.SolarMass,
		currentDate:    elements.Epoch,
	}, nil
}

// UpdatePosition recomputes the heliocentric state vector for the given
// Julian date from the planet's orbital elements. On a solver error the
// previous state is left untouched and the error is raised to the caller.
func (p *Planet) UpdatePosition(julianDate float64) error {
	position, velocity, err := p.calc.PositionVelocity(p.elements, julianDate, p.centralMass)
	if err != nil {
		return err
	}
	p.position = position
	p.velocity = velocity
	p.currentDate = julianDate
	return nil
}

// Elements returns the planet's immutable orbital elements.
func (p *Planet) Elements() orbital.Elements { return p.elements }

// SetCentralMass overrides the mass (kg) used for propagation; the default
// is one solar mass.
func (p *Planet) SetCentralMass(mass float64) { p.centralMass = mass }

func (p *Planet) Color() [3]float64      { return p.color }
func (p *Planet) RotationPeriod() float64 { return p.rotationPeriod }
func (p *Planet) AxialTilt() float64      { return p.axialTilt }
func (p *Planet) CurrentDate() float64    { return p.currentDate }

// RotationAngle derives the current spin angle in degrees from the time
// elapsed since the orbit epoch.
func (p *Planet) RotationAngle() float64 {
	elapsedHours := (p.currentDate - p.elements.Epoch) * 24.0
	angle := elapsedHours / p.rotationPeriod * 360.0
	return math.Mod(math.Mod(angle, 360.0)+360.0, 360.0)
}

func (p *Planet) VisualProperties() VisualProperties {
	return VisualProperties{
		Color:         p.color,
		Radius:        p.radius,
		RotationAngle: p.RotationAngle(),
	}
}

// ToRecord converts the planet to its canonical persistence shape.
func (p *Planet) ToRecord() types.BodyRecord {
	return types.BodyRecord{
		Name:            p.name,
		Mass:            p.mass,
		Radius:          p.radius,
		Color:           p.color,
		RotationPeriod:  p.rotationPeriod,
		AxialTilt:       p.axialTilt,
		OrbitalElements: p.elements.ToRecord(),
	}
}

// PlanetFromRecord validates a persisted record into a Planet bound to the
// given calculator.
func PlanetFromRecord(rec types.BodyRecord, calc *orbital.Calculator) (*Planet, error) {
	elements, err := orbital.ElementsFromRecord(rec.OrbitalElements)
	if err != nil {
		return nil, err
	}
	return NewPlanet(rec.Name, rec.Mass, rec.Radius, elements,
		rec.Color, rec.RotationPeriod, rec.AxialTilt, calc)
}
