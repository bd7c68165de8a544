package body

import (
	"fmt"
	"math"
	"sort"

	"cosmossdk.io/errors"

	"github.com/orbitforge/astrosim/internal/types"
	"github.com/orbitforge/astrosim/pkg/astromath"
	"github.com/orbitforge/astrosim/pkg/orbital"
)

// SolarSystem owns at most one Sun and a uniquely named set of Planets,
// and drives the per-tick Keplerian position refresh. It is the
// authoritative model for real-time ticking; N-body perturbation through
// the physics engine is a separate, explicitly requested pass that never
// feeds back into this model.
type SolarSystem struct {
	sun         *Sun
	planets     map[string]*Planet
	currentDate float64 // JD of the last UpdateAllPositions
}

// NewSolarSystem returns an empty system starting at the given Julian date.
func NewSolarSystem(julianDate float64) *SolarSystem {
	return &SolarSystem{
		planets:     make(map[string]*Planet),
		currentDate: julianDate,
	}
}

// AddBody registers a body. The Sun slot holds exactly one star and planet
// names must be unique; violations are errors, never silent overwrites.
func (s *SolarSystem) AddBody(b CelestialBody) error {
	switch v := b.(type) {
	case *Sun:
		if s.sun != nil {
			return errors.Wrapf(types.ErrValidation,
				"system already has a central body (%s)", s.sun.Name())
		}
		s.sun = v
		for _, p := range s.planets {
			p.SetCentralMass(v.Mass())
		}
	case *Planet:
		if _, exists := s.planets[v.Name()]; exists {
			return errors.Wrapf(types.ErrValidation,
				"planet %q already exists", v.Name())
		}
		if s.sun != nil {
			v.SetCentralMass(s.sun.Mass())
		}
		s.planets[v.Name()] = v
	default:
		return errors.Wrapf(types.ErrValidation,
			"unsupported body type %T: only Sun and Planet can join a solar system", b)
	}
	return nil
}

// PlanetByName returns the named planet, or nil if absent.
func (s *SolarSystem) PlanetByName(name string) *Planet {
	return s.planets[name]
}

// UpdateAllPositions recomputes every body's state vector for the given
// Julian date by pure Keplerian propagation; no inter-planet gravity is
// applied here. The first propagation failure is returned and leaves that
// planet at its last-known position; whether to continue or halt is the
// caller's policy.
func (s *SolarSystem) UpdateAllPositions(julianDate float64) error {
	s.currentDate = julianDate

	if s.sun != nil {
		if err := s.sun.UpdatePosition(julianDate); err != nil {
			return err
		}
	}

	for _, name := range s.planetNames() {
		if err := s.planets[name].UpdatePosition(julianDate); err != nil {
			return fmt.Errorf("updating %s: %w", name, err)
		}
	}
	return nil
}

// planetNames returns the planet keys in sorted order so each tick visits
// bodies deterministically.
func (s *SolarSystem) planetNames() []string {
	names := make([]string, 0, len(s.planets))
	for name := range s.planets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bodies returns the Sun (if present) followed by the planets in name order.
func (s *SolarSystem) Bodies() []CelestialBody {
	bodies := make([]CelestialBody, 0, len(s.planets)+1)
	if s.sun != nil {
		bodies = append(bodies, s.sun)
	}
	for _, name := range s.planetNames() {
		bodies = append(bodies, s.planets[name])
	}
	return bodies
}

// Planets returns the planets in name order.
func (s *SolarSystem) Planets() []*Planet {
	planets := make([]*Planet, 0, len(s.planets))
	for _, name := range s.planetNames() {
		planets = append(planets, s.planets[name])
	}
	return planets
}

func (s *SolarSystem) Sun() *Sun            { return s.sun }
func (s *SolarSystem) HasSun() bool         { return s.sun != nil }
func (s *SolarSystem) CurrentDate() float64 { return s.currentDate }
func (s *SolarSystem) PlanetCount() int     { return len(s.planets) }

// Len returns the total number of bodies including the Sun.
func (s *SolarSystem) Len() int {
	n := len(s.planets)
	if s.sun != nil {
		n++
	}
	return n
}

// TotalEnergy returns the system's kinetic plus pairwise gravitational
// potential energy in joules. The pair sum is O(N²).
func (s *SolarSystem) TotalEnergy() float64 {
	bodies := s.Bodies()

	kinetic := 0.0
	for _, b := range bodies {
		vMeters := b.Velocity().Scale(1000)
		kinetic += 0.5 * b.Mass() * vMeters.MagnitudeSquared()
	}

	potential := 0.0
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			r := bodies[i].Position().Distance(bodies[j].Position()) * 1000 // km -> m
			if r > 0 {
				potential -= orbital.GravitationalConstant * bodies[i].Mass() * bodies[j].Mass() / r
			}
		}
	}

	return kinetic + potential
}

// AngularMomentum returns the system's total angular momentum Σ r×p in
// kg·m²/s.
func (s *SolarSystem) AngularMomentum() astromath.Vector3 {
	total := astromath.Vector3{}
	for _, b := range s.Bodies() {
		r := b.Position().Scale(1000)          // km -> m
		p := b.Velocity().Scale(1000 * b.Mass()) // momentum, kg·m/s
		total = total.Add(r.Cross(p))
	}
	return total
}

// CenterOfMass returns the mass-weighted mean position in km.
func (s *SolarSystem) CenterOfMass() astromath.Vector3 {
	totalMass := 0.0
	weighted := astromath.Vector3{}
	for _, b := range s.Bodies() {
		totalMass += b.Mass()
		weighted = weighted.Add(b.Position().Scale(b.Mass()))
	}
	if totalMass == 0 {
		return astromath.Vector3{}
	}
	return weighted.Scale(1 / totalMass)
}

// Bounds is the axis-aligned bounding box of the planets' positions in km.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
	MinZ, MaxZ float64
}

// SystemBounds computes the bounding box over all planets; an empty system
// reports a zero box.
func (s *SolarSystem) SystemBounds() Bounds {
	if len(s.planets) == 0 {
		return Bounds{}
	}

	b := Bounds{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
		MinZ: math.Inf(1), MaxZ: math.Inf(-1),
	}
	for _, p := range s.planets {
		pos := p.Position()
		b.MinX = math.Min(b.MinX, pos.X)
		b.MaxX = math.Max(b.MaxX, pos.X)
		b.MinY = math.Min(b.MinY, pos.Y)
		b.MaxY = math.Max(b.MaxY, pos.Y)
		b.MinZ = math.Min(b.MinZ, pos.Z)
		b.MaxZ = math.Max(b.MaxZ, pos.Z)
	}
	return b
}

// Clear removes every body and resets the clock.
func (s *SolarSystem) Clear() {
	s.sun = nil
	s.planets = make(map[string]*Planet)
	s.currentDate = 0
}

// ToRecord converts the full system to its canonical persistence shape.
func (s *SolarSystem) ToRecord() types.SystemRecord {
	rec := types.SystemRecord{CurrentDate: s.currentDate}
	if s.sun != nil {
		sun := s.sun.ToRecord()
		rec.Sun = &sun
	}
	for _, p := range s.Planets() {
		rec.Planets = append(rec.Planets, p.ToRecord())
	}
	return rec
}

// SystemFromRecord rebuilds a solar system from its persisted shape, binding
// every planet to the given calculator.
func SystemFromRecord(rec types.SystemRecord, calc *orbital.Calculator) (*SolarSystem, error) {
	s := NewSolarSystem(rec.CurrentDate)

	if rec.Sun != nil {
		sun, err := SunFromRecord(*rec.Sun)
		if err != nil {
			return nil, err
		}
		if err := s.AddBody(sun); err != nil {
			return nil, err
		}
	}
	for _, planetRec := range rec.Planets {
		planet, err := PlanetFromRecord(planetRec, calc)
		if err != nil {
			return nil, fmt.Errorf("planet %s: %w", planetRec.Name, err)
		}
		if err := s.AddBody(planet); err != nil {
			return nil, err
		}
	}
	return s, nil
}
