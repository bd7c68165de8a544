package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/orbitforge/astrosim/internal/types"
	"github.com/orbitforge/astrosim/pkg/body"
	"github.com/orbitforge/astrosim/pkg/data"
	"github.com/orbitforge/astrosim/pkg/orbital"
)

func TestAnalyzeSystem(t *testing.T) {
	calc := orbital.NewCalculator()
	system, err := data.BuildDefaultSolarSystem(calc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := system.UpdateAllPositions(2451545.0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report, err := NewAnalyzer().AnalyzeSystem(system)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.PlanetCount != 8 || len(report.Planets) != 8 {
		t.Fatalf("planet count %d/%d, want 8", report.PlanetCount, len(report.Planets))
	}

	// Major-planet eccentricities are small and spread tightly.
	if report.MeanEccentricity <= 0 || report.MeanEccentricity > 0.25 {
		t.Errorf("mean eccentricity %g", report.MeanEccentricity)
	}
	if report.StdEccentricity <= 0 {
		t.Errorf("eccentricity spread %g", report.StdEccentricity)
	}

	if report.TotalEnergy >= 0 {
		t.Errorf("bound system must have negative total energy, got %g", report.TotalEnergy)
	}
	if report.AngularMomentum <= 0 {
		t.Errorf("angular momentum magnitude %g", report.AngularMomentum)
	}

	c := report.Clustering
	if c.SampleSize != 8 || c.PValue < 0 || c.PValue > 1 {
		t.Errorf("clustering result %+v", c)
	}

	for _, p := range report.Planets {
		if p.PeriodDays <= 0 {
			t.Errorf("%s period %g", p.Name, p.PeriodDays)
		}
		if p.PerihelionDistance >= p.AphelionDistance {
			t.Errorf("%s perihelion %g >= aphelion %g", p.Name, p.PerihelionDistance, p.AphelionDistance)
		}
		if p.OrbitalSpeed <= 0 {
			t.Errorf("%s speed %g", p.Name, p.OrbitalSpeed)
		}
	}
}

func TestAnalyzeEmptySystem(t *testing.T) {
	system := body.NewSolarSystem(2451545.0)
	if _, err := NewAnalyzer().AnalyzeSystem(system); !errors.Is(err, types.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRayleighTest(t *testing.T) {
	clustered := rayleighTest([]float64{10, 12, 14, 16})
	if !clustered.Clustered {
		t.Errorf("tight angles should cluster: %+v", clustered)
	}
	if math.Abs(clustered.MeanLongitude-13) > 1 {
		t.Errorf("mean longitude %g, want ~13", clustered.MeanLongitude)
	}
	if clustered.ResultantLength < 0.99 {
		t.Errorf("resultant length %g, want near 1", clustered.ResultantLength)
	}

	uniform := rayleighTest([]float64{0, 90, 180, 270})
	if uniform.Clustered {
		t.Errorf("uniform angles must not cluster: %+v", uniform)
	}
	if uniform.ResultantLength > 1e-9 {
		t.Errorf("uniform resultant length %g, want 0", uniform.ResultantLength)
	}

	single := rayleighTest([]float64{42})
	if single.Clustered || single.PValue != 1 {
		t.Errorf("degenerate sample: %+v", single)
	}
}
