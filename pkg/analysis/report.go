// Package analysis produces statistical summaries of a solar system state:
// per-planet orbit figures, element statistics and a Rayleigh test for
// perihelion-longitude clustering.
package analysis

import (
	"log"
	"math"
	"time"

	"cosmossdk.io/errors"
	"gonum.org/v1/gonum/stat"

	"github.com/orbitforge/astrosim/internal/types"
	"github.com/orbitforge/astrosim/pkg/body"
	"github.com/orbitforge/astrosim/pkg/physics"
)

// clusteringAlpha is the significance level for the Rayleigh test.
const clusteringAlpha = 0.05

// Analyzer builds system reports. It shares a physics engine for the
// energy and momentum figures.
type Analyzer struct {
	engine *physics.Engine
}

// NewAnalyzer creates an analyzer with a fresh physics engine.
func NewAnalyzer() *Analyzer {
	return &Analyzer{engine: physics.NewEngine()}
}

// AnalyzeSystem computes a full report for the system at its current date.
func (a *Analyzer) AnalyzeSystem(system *body.SolarSystem) (*types.SystemReport, error) {
	start := time.Now()

	planets := system.Planets()
	if len(planets) == 0 {
		return nil, errors.Wrap(types.ErrValidation, "system has no planets to analyze")
	}

	log.Printf("Analyzing system of %d planets at JD %.2f", len(planets), system.CurrentDate())

	infos := make([]types.PlanetOrbitInfo, 0, len(planets))
	eccentricities := make([]float64, 0, len(planets))
	inclinations := make([]float64, 0, len(planets))
	perihelionLongitudes := make([]float64, 0, len(planets))

	for _, planet := range planets {
		info := planetOrbitInfo(planet)
		infos = append(infos, info)
		eccentricities = append(eccentricities, info.Eccentricity)
		inclinations = append(inclinations, info.Inclination)
		perihelionLongitudes = append(perihelionLongitudes, info.PerihelionLongitude)
	}

	clustering := rayleighTest(perihelionLongitudes)
	log.Printf("Perihelion clustering: R=%.3f, p=%.4f, clustered=%v",
		clustering.ResultantLength, clustering.PValue, clustering.Clustered)

	report := &types.SystemReport{
		JulianDate:       system.CurrentDate(),
		PlanetCount:      len(planets),
		Planets:          infos,
		MeanEccentricity: stat.Mean(eccentricities, nil),
		MeanInclination:  stat.Mean(inclinations, nil),
		Clustering:       clustering,
		TotalEnergy:      a.engine.SystemTotalEnergy(system.Bodies()),
		AngularMomentum:  a.engine.SystemAngularMomentum(system.Bodies()).Magnitude(),
		GeneratedAt:      time.Now(),
	}
	if len(planets) > 1 {
		report.StdEccentricity = stat.StdDev(eccentricities, nil)
		report.StdInclination = stat.StdDev(inclinations, nil)
	}
	report.ComputeDuration = time.Since(start)

	log.Printf("System analysis completed in %v", report.ComputeDuration)
	return report, nil
}

// planetOrbitInfo derives per-planet orbit figures from the planet's
// elements and current state.
func planetOrbitInfo(planet *body.Planet) types.PlanetOrbitInfo {
	el := planet.Elements()
	speed := planet.Velocity().Magnitude()

	return types.PlanetOrbitInfo{
		Name:                planet.Name(),
		SemiMajorAxis:       el.SemiMajorAxis,
		Eccentricity:        el.Eccentricity,
		Inclination:         el.Inclination,
		PeriodDays:          el.OrbitalPeriod(),
		PerihelionDistance:  el.PerihelionDistance(),
		AphelionDistance:    el.AphelionDistance(),
		HeliocentricRange:   planet.Position().Magnitude(),
		OrbitalSpeed:        speed,
		PerihelionLongitude: math.Mod(el.LongitudeOfAscendingNode+el.ArgumentOfPerihelion, 360),
	}
}

// rayleighTest runs the Rayleigh test for circular uniformity on a set of
// angles in degrees. A small p-value rejects uniformity, indicating the
// perihelion longitudes cluster around a common direction.
func rayleighTest(anglesDeg []float64) types.ClusteringResult {
	n := len(anglesDeg)
	result := types.ClusteringResult{SampleSize: n, PValue: 1.0}
	if n < 2 {
		return result
	}

	sumSin, sumCos := 0.0, 0.0
	for _, deg := range anglesDeg {
		rad := deg * math.Pi / 180
		sumSin += math.Sin(rad)
		sumCos += math.Cos(rad)
	}

	r := math.Hypot(sumSin, sumCos) / float64(n)
	meanRad := math.Atan2(sumSin, sumCos)
	meanDeg := math.Mod(meanRad*180/math.Pi+360, 360)

	// Rayleigh statistic Z = nR² with the small-sample corrected p-value.
	z := float64(n) * r * r
	p := math.Exp(-z) * (1 + (2*z-z*z)/(4*float64(n)) -
		(24*z-132*z*z+76*z*z*z-9*z*z*z*z)/(288*float64(n)*float64(n)))
	p = math.Max(0, math.Min(1, p))

	result.MeanLongitude = meanDeg
	result.ResultantLength = r
	result.PValue = p
	result.Clustered = p < clusteringAlpha
	return result
}
