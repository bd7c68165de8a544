package body

import (
	"math"

	"github.com/orbitforge/astrosim/internal/types"
	"github.com/orbitforge/astrosim/pkg/astromath"
	"github.com/orbitforge/astrosim/pkg/orbital"
)

// Sun is the central star, pinned to the origin of the heliocentric frame.
type Sun struct {
	baseBody
	temperature float64 // K
	luminosity  float64 // W
}

// NewSun validates and constructs a central star.
func NewSun(name string, mass, radius, temperature, luminosity float64) (*Sun, error) {
	base, err := newBaseBody(name, mass, radius)
	if err != nil {
		return nil, err
	}
	return &Sun{baseBody: base, temperature: temperature, luminosity: luminosity}, nil
}

// DefaultSun returns the Sun with its catalog physical parameters.
func DefaultSun() *Sun {
	s, _ := NewSun("Sun", orbital.SolarMass, 695700.0, 5778.0, 3.828e26)
	return s
}

// UpdatePosition keeps the Sun at the system origin; its state vector is
// always zero regardless of the date.
func (s *Sun) UpdatePosition(julianDate float64) error {
	s.position = astromath.Vector3{}
	s.velocity = astromath.Vector3{}
	return nil
}

func (s *Sun) Temperature() float64 { return s.temperature }
func (s *Sun) Luminosity() float64  { return s.luminosity }

// SurfaceEscapeVelocity returns the escape velocity at the photosphere in km/s.
func (s *Sun) SurfaceEscapeVelocity() float64 {
	radiusMeters := s.radius * 1000
	return math.Sqrt(2*orbital.GravitationalConstant*s.mass/radiusMeters) / 1000
}

// GravitationalInfluenceRadius returns the heliosphere radius in AU.
func (s *Sun) GravitationalInfluenceRadius() float64 {
	return 100.0
}

// VisualProperties derives the display color from a coarse blackbody
// approximation of the surface temperature.
func (s *Sun) VisualProperties() VisualProperties {
	return VisualProperties{
		Color:         temperatureToColor(s.temperature),
		Radius:        s.radius,
		IsLightSource: true,
		Temperature:   s.temperature,
		Luminosity:    s.luminosity,
	}
}

// temperatureToColor maps a stellar surface temperature onto an RGB triple.
func temperatureToColor(temperature float64) [3]float64 {
	switch {
	case temperature < 3500:
		return [3]float64{1.0, 0.3, 0.0} // red dwarf
	case temperature < 5000:
		return [3]float64{1.0, 0.7, 0.4} // orange
	case temperature < 6000:
		return [3]float64{1.0, 1.0, 0.8} // yellow
	case temperature < 7500:
		return [3]float64{1.0, 1.0, 1.0} // white
	default:
		return [3]float64{0.8, 0.9, 1.0} // blue-white
	}
}

// ToRecord converts the Sun to its canonical persistence shape.
func (s *Sun) ToRecord() types.SunRecord {
	return types.SunRecord{
		Name:        s.name,
		Mass:        s.mass,
		Radius:      s.radius,
		Temperature: s.temperature,
		Luminosity:  s.luminosity,
	}
}

// SunFromRecord validates a persisted record into a Sun.
func SunFromRecord(rec types.SunRecord) (*Sun, error) {
	return NewSun(rec.Name, rec.Mass, rec.Radius, rec.Temperature, rec.Luminosity)
}
