package body

import (
	"errors"
	"math"
	"testing"

	"github.com/orbitforge/astrosim/internal/types"
	"github.com/orbitforge/astrosim/pkg/orbital"
)

const j2000 = 2451545.0

func testPlanet(t *testing.T, name string, a float64) *Planet {
	t.Helper()
	el, err := orbital.NewElements(a, 0.05, 1.5, 50, 100, 0, j2000)
	if err != nil {
		t.Fatalf("elements for %s: %v", name, err)
	}
	p, err := NewPlanet(name, 5.9722e24, 6371, el, [3]float64{0.5, 0.5, 0.5}, 24, 0, nil)
	if err != nil {
		t.Fatalf("planet %s: %v", name, err)
	}
	return p
}

func TestAddBodyRules(t *testing.T) {
	s := NewSolarSystem(j2000)

	if err := s.AddBody(DefaultSun()); err != nil {
		t.Fatalf("first sun: %v", err)
	}
	if err := s.AddBody(DefaultSun()); !errors.Is(err, types.ErrValidation) {
		t.Errorf("second sun: expected validation error, got %v", err)
	}

	if err := s.AddBody(testPlanet(t, "Earth", 1.0)); err != nil {
		t.Fatalf("first planet: %v", err)
	}
	if err := s.AddBody(testPlanet(t, "Earth", 1.5)); !errors.Is(err, types.ErrValidation) {
		t.Errorf("duplicate planet name: expected validation error, got %v", err)
	}

	if s.PlanetCount() != 1 || !s.HasSun() || s.Len() != 2 {
		t.Errorf("unexpected composition: planets=%d hasSun=%v len=%d",
			s.PlanetCount(), s.HasSun(), s.Len())
	}
}

func TestBodyValidation(t *testing.T) {
	el, _ := orbital.NewElements(1, 0, 0, 0, 0, 0, j2000)
	if _, err := NewPlanet("X", -1, 100, el, [3]float64{}, 24, 0, nil); !errors.Is(err, types.ErrValidation) {
		t.Errorf("negative mass: expected validation error, got %v", err)
	}
	if _, err := NewPlanet("X", 1e24, 0, el, [3]float64{}, 24, 0, nil); !errors.Is(err, types.ErrValidation) {
		t.Errorf("zero radius: expected validation error, got %v", err)
	}
	if _, err := NewSun("S", 0, 695700, 5778, 3.8e26); !errors.Is(err, types.ErrValidation) {
		t.Errorf("zero mass sun: expected validation error, got %v", err)
	}
}

func TestUpdateAllPositions(t *testing.T) {
	s := NewSolarSystem(j2000)
	if err := s.AddBody(DefaultSun()); err != nil {
		t.Fatalf("sun: %v", err)
	}
	earth := testPlanet(t, "Earth", 1.0)
	mars := testPlanet(t, "Mars", 1.52)
	for _, p := range []*Planet{earth, mars} {
		if err := s.AddBody(p); err != nil {
			t.Fatalf("adding %s: %v", p.Name(), err)
		}
	}

	if err := s.UpdateAllPositions(j2000 + 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.CurrentDate() != j2000+100 {
		t.Errorf("current date not tracked: %f", s.CurrentDate())
	}

	if !s.Sun().Position().IsZero() {
		t.Error("sun must stay pinned at the origin")
	}
	for _, p := range []*Planet{earth, mars} {
		r := p.Position().Magnitude()
		el := p.Elements()
		lo := el.PerihelionDistance() * orbital.AUToKm
		hi := el.AphelionDistance() * orbital.AUToKm
		if r < lo-1 || r > hi+1 {
			t.Errorf("%s range %g km outside [%g, %g]", p.Name(), r, lo, hi)
		}
	}
}

func TestPlanetUpdateKeepsStateOnError(t *testing.T) {
	earth := testPlanet(t, "Earth", 1.0)
	if err := earth.UpdatePosition(j2000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := earth.Position()

	// A negative central mass makes propagation fail.
	earth.SetCentralMass(-1)
	if err := earth.UpdatePosition(j2000 + 1); err == nil {
		t.Fatal("expected propagation error")
	}
	if earth.Position() != before {
		t.Error("failed update must leave the previous state untouched")
	}
}

func TestCenterOfMassSunDominated(t *testing.T) {
	s := NewSolarSystem(j2000)
	if err := s.AddBody(DefaultSun()); err != nil {
		t.Fatalf("sun: %v", err)
	}
	if err := s.AddBody(testPlanet(t, "Earth", 1.0)); err != nil {
		t.Fatalf("planet: %v", err)
	}
	if err := s.UpdateAllPositions(j2000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The Sun outweighs a planet by ~3e5, so the barycenter hugs the origin.
	com := s.CenterOfMass()
	if com.Magnitude() > 1000 {
		t.Errorf("center of mass %g km from origin", com.Magnitude())
	}
}

func TestSystemBounds(t *testing.T) {
	s := NewSolarSystem(j2000)
	if err := s.AddBody(DefaultSun()); err != nil {
		t.Fatalf("sun: %v", err)
	}
	if err := s.AddBody(testPlanet(t, "Mars", 1.52)); err != nil {
		t.Fatalf("planet: %v", err)
	}
	if err := s.UpdateAllPositions(j2000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b := s.SystemBounds()
	if b.MaxX < b.MinX || b.MaxY < b.MinY || b.MaxZ < b.MinZ {
		t.Errorf("degenerate bounds: %+v", b)
	}
}

func TestSunProperties(t *testing.T) {
	sun := DefaultSun()

	if err := sun.UpdatePosition(j2000 + 500); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sun.Position().IsZero() || !sun.Velocity().IsZero() {
		t.Error("sun state must stay zero after updates")
	}

	v := sun.SurfaceEscapeVelocity()
	if math.Abs(v-617.5)/617.5 > 0.01 {
		t.Errorf("solar escape velocity: got %g km/s, want ~617.5", v)
	}

	props := sun.VisualProperties()
	if !props.IsLightSource {
		t.Error("sun must be a light source")
	}
}

func TestSystemRecordRoundTrip(t *testing.T) {
	s := NewSolarSystem(j2000)
	if err := s.AddBody(DefaultSun()); err != nil {
		t.Fatalf("sun: %v", err)
	}
	if err := s.AddBody(testPlanet(t, "Earth", 1.0)); err != nil {
		t.Fatalf("planet: %v", err)
	}

	restored, err := SystemFromRecord(s.ToRecord(), orbital.NewCalculator())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restored.PlanetCount() != 1 || !restored.HasSun() {
		t.Errorf("round trip lost bodies: planets=%d hasSun=%v",
			restored.PlanetCount(), restored.HasSun())
	}
	if restored.CurrentDate() != s.CurrentDate() {
		t.Errorf("current date lost: %f vs %f", restored.CurrentDate(), s.CurrentDate())
	}
	p := restored.PlanetByName("Earth")
	if p == nil {
		t.Fatal("Earth missing after round trip")
	}
	if !p.Elements().Equal(s.PlanetByName("Earth").Elements(), 1e-9) {
		t.Error("orbital elements changed in round trip")
	}
}
