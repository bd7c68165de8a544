package types

// ElementsRecord is the canonical on-disk shape of a set of Keplerian
// orbital elements. Angles are degrees, the semi-major axis is in AU and
// the epoch is a Julian date.
type ElementsRecord struct {
	SemiMajorAxis            float64 `json:"semi_major_axis" yaml:"semi_major_axis"`
	Eccentricity             float64 `json:"eccentricity" yaml:"eccentricity"`
	Inclination              float64 `json:"inclination" yaml:"inclination"`
	LongitudeOfAscendingNode float64 `json:"longitude_of_ascending_node" yaml:"longitude_of_ascending_node"`
	ArgumentOfPerihelion     float64 `json:"argument_of_perihelion" yaml:"argument_of_perihelion"`
	MeanAnomalyAtEpoch       float64 `json:"mean_anomaly_at_epoch" yaml:"mean_anomaly_at_epoch"`
	Epoch                    float64 `json:"epoch" yaml:"epoch"`
}

// BodyRecord is the canonical on-disk shape of a planet entry. Mass is kg,
// radius km, rotation period hours and axial tilt degrees.
type BodyRecord struct {
	Name            string         `json:"name" yaml:"name"`
	Mass            float64        `json:"mass" yaml:"mass"`
	Radius          float64        `json:"radius" yaml:"radius"`
	Color           [3]float64     `json:"color" yaml:"color"`
	RotationPeriod  float64        `json:"rotation_period" yaml:"rotation_period"`
	AxialTilt       float64        `json:"axial_tilt" yaml:"axial_tilt"`
	OrbitalElements ElementsRecord `json:"orbital_elements" yaml:"orbital_elements"`
}

// SunRecord is the canonical on-disk shape of the central star.
type SunRecord struct {
	Name        string  `json:"name" yaml:"name"`
	Mass        float64 `json:"mass" yaml:"mass"`
	Radius      float64 `json:"radius" yaml:"radius"`
	Temperature float64 `json:"temperature" yaml:"temperature"`
	Luminosity  float64 `json:"luminosity" yaml:"luminosity"`
}

// SystemRecord bundles a full solar system snapshot for persistence.
type SystemRecord struct {
	CurrentDate float64      `json:"current_date" yaml:"current_date"`
	Sun         *SunRecord   `json:"sun,omitempty" yaml:"sun,omitempty"`
	Planets     []BodyRecord `json:"planets" yaml:"planets"`
}
