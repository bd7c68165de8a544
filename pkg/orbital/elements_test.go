package orbital

import (
	"errors"
	"math"
	"testing"

	"github.com/orbitforge/astrosim/internal/types"
)

func TestNewElementsValidation(t *testing.T) {
	if _, err := NewElements(-1, 0.1, 0, 0, 0, 0, 2451545.0); !errors.Is(err, types.ErrValidation) {
		t.Fatalf("expected validation error for negative semi-major axis, got %v", err)
	}
	if _, err := NewElements(0, 0.1, 0, 0, 0, 0, 2451545.0); !errors.Is(err, types.ErrValidation) {
		t.Fatalf("expected validation error for zero semi-major axis, got %v", err)
	}
	if _, err := NewElements(1, 1.0, 0, 0, 0, 0, 2451545.0); !errors.Is(err, types.ErrValidation) {
		t.Fatalf("expected validation error for parabolic eccentricity, got %v", err)
	}
	if _, err := NewElements(1, -0.01, 0, 0, 0, 0, 2451545.0); !errors.Is(err, types.ErrValidation) {
		t.Fatalf("expected validation error for negative eccentricity, got %v", err)
	}
}

func TestNewElementsNormalizesAngles(t *testing.T) {
	el, err := NewElements(1.5, 0.2, 450, -90, 720.5, -0.5, 2451545.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name string
		got  float64
		want float64
	}{
		{"inclination", el.Inclination, 90},
		{"ascending node", el.LongitudeOfAscendingNode, 270},
		{"argument of perihelion", el.ArgumentOfPerihelion, 0.5},
		{"mean anomaly", el.MeanAnomalyAtEpoch, 359.5},
	}
	for _, c := range cases {
		if math.Abs(c.got-c.want) > 1e-12 {
			t.Errorf("%s: got %g, want %g", c.name, c.got, c.want)
		}
	}
}

func TestOrbitalPeriodEarth(t *testing.T) {
	el, err := NewElements(1.0, 0.0167, 0, 0, 0, 0, 2451545.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	period := el.OrbitalPeriod()
	if math.Abs(period-365.25) > 0.1 {
		t.Errorf("Earth period: got %.3f days, want ~365.25", period)
	}
}

func TestPerihelionAphelion(t *testing.T) {
	el, err := NewElements(2.0, 0.5, 0, 0, 0, 0, 2451545.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if q := el.PerihelionDistance(); math.Abs(q-1.0) > 1e-12 {
		t.Errorf("perihelion: got %g AU, want 1.0", q)
	}
	if q := el.AphelionDistance(); math.Abs(q-3.0) > 1e-12 {
		t.Errorf("aphelion: got %g AU, want 3.0", q)
	}
}

func TestElementsRecordRoundTrip(t *testing.T) {
	el, err := NewElements(5.2, 0.048, 1.3, 100.5, 274.2, 19.6, 2451545.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	restored, err := ElementsFromRecord(el.ToRecord())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !el.Equal(restored, 1e-12) {
		t.Errorf("round trip mismatch: %+v vs %+v", el, restored)
	}
}
