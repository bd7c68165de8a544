package types

import "time"

// PlanetOrbitInfo summarizes one planet's orbit for a system report.
type PlanetOrbitInfo struct {
	Name                string  `json:"name"`
	SemiMajorAxis       float64 `json:"semi_major_axis"`
	Eccentricity        float64 `json:"eccentricity"`
	Inclination         float64 `json:"inclination"`
	PeriodDays          float64 `json:"period_days"`
	PerihelionDistance  float64 `json:"perihelion_distance"`
	AphelionDistance    float64 `json:"aphelion_distance"`
	HeliocentricRange   float64 `json:"heliocentric_range"`
	OrbitalSpeed        float64 `json:"orbital_speed"`
	PerihelionLongitude float64 `json:"perihelion_longitude"`
}

// ClusteringResult holds a Rayleigh test of perihelion longitudes.
type ClusteringResult struct {
	SampleSize      int     `json:"sample_size"`
	MeanLongitude   float64 `json:"mean_longitude"`
	ResultantLength float64 `json:"resultant_length"`
	PValue          float64 `json:"p_value"`
	Clustered       bool    `json:"clustered"`
}

// SystemReport is the full statistical summary of a solar system state.
type SystemReport struct {
	JulianDate       float64           `json:"julian_date"`
	PlanetCount      int               `json:"planet_count"`
	Planets          []PlanetOrbitInfo `json:"planets"`
	MeanEccentricity float64           `json:"mean_eccentricity"`
	StdEccentricity  float64           `json:"std_eccentricity"`
	MeanInclination  float64           `json:"mean_inclination"`
	StdInclination   float64           `json:"std_inclination"`
	Clustering       ClusteringResult  `json:"clustering"`
	TotalEnergy      float64           `json:"total_energy"`
	AngularMomentum  float64           `json:"angular_momentum"`
	GeneratedAt      time.Time         `json:"generated_at"`
	ComputeDuration  time.Duration     `json:"compute_duration"`
}
