package data

import (
	"cosmossdk.io/errors"

	"github.com/orbitforge/astrosim/internal/types"
	"github.com/orbitforge/astrosim/pkg/body"
	"github.com/orbitforge/astrosim/pkg/orbital"
)

// j2000Epoch is the Julian date the built-in catalog elements refer to.
const j2000Epoch = 2451545.0

// builtinPlanets holds J2000 osculating elements, masses (kg) and radii
// (km) for the eight major planets.
var builtinPlanets = []types.BodyRecord{
	{
		Name: "Mercury", Mass: 3.3011e23, Radius: 2439.7,
		Color:          [3]float64{0.55, 0.55, 0.55},
		RotationPeriod: 1407.6, AxialTilt: 0.034,
		OrbitalElements: types.ElementsRecord{
			SemiMajorAxis: 0.38709893, Eccentricity: 0.20563069,
			Inclination: 7.00487, LongitudeOfAscendingNode: 48.33167,
			ArgumentOfPerihelion: 29.12478, MeanAnomalyAtEpoch: 174.79439,
			Epoch: j2000Epoch,
		},
	},
	{
		Name: "Venus", Mass: 4.8675e24, Radius: 6051.8,
		Color:          [3]float64{0.90, 0.80, 0.55},
		RotationPeriod: 5832.5, AxialTilt: 177.4,
		OrbitalElements: types.ElementsRecord{
			SemiMajorAxis: 0.72333199, Eccentricity: 0.00677323,
			Inclination: 3.39471, LongitudeOfAscendingNode: 76.68069,
			ArgumentOfPerihelion: 54.85229, MeanAnomalyAtEpoch: 50.44675,
			Epoch: j2000Epoch,
		},
	},
	{
		Name: "Earth", Mass: 5.9722e24, Radius: 6371.0,
		Color:          [3]float64{0.25, 0.45, 0.85},
		RotationPeriod: 23.9345, AxialTilt: 23.44,
		OrbitalElements: types.ElementsRecord{
			SemiMajorAxis: 1.00000011, Eccentricity: 0.01671022,
			Inclination: 0.00005, LongitudeOfAscendingNode: 348.73936,
			ArgumentOfPerihelion: 114.20783, MeanAnomalyAtEpoch: 357.51716,
			Epoch: j2000Epoch,
		},
	},
	{
		Name: "Mars", Mass: 6.4171e23, Radius: 3389.5,
		Color:          [3]float64{0.80, 0.40, 0.25},
		RotationPeriod: 24.6229, AxialTilt: 25.19,
		OrbitalElements: types.ElementsRecord{
			SemiMajorAxis: 1.52366231, Eccentricity: 0.09341233,
			Inclination: 1.85061, LongitudeOfAscendingNode: 49.57854,
			ArgumentOfPerihelion: 286.46230, MeanAnomalyAtEpoch: 19.41248,
			Epoch: j2000Epoch,
		},
	},
	{
		Name: "Jupiter", Mass: 1.8982e27, Radius: 69911,
		Color:          [3]float64{0.80, 0.65, 0.50},
		RotationPeriod: 9.925, AxialTilt: 3.13,
		OrbitalElements: types.ElementsRecord{
			SemiMajorAxis: 5.20336301, Eccentricity: 0.04839266,
			Inclination: 1.30530, LongitudeOfAscendingNode: 100.55615,
			ArgumentOfPerihelion: 274.19770, MeanAnomalyAtEpoch: 19.65053,
			Epoch: j2000Epoch,
		},
	},
	{
		Name: "Saturn", Mass: 5.6834e26, Radius: 58232,
		Color:          [3]float64{0.90, 0.80, 0.60},
		RotationPeriod: 10.656, AxialTilt: 26.73,
		OrbitalElements: types.ElementsRecord{
			SemiMajorAxis: 9.53707032, Eccentricity: 0.05415060,
			Inclination: 2.48446, LongitudeOfAscendingNode: 113.71504,
			ArgumentOfPerihelion: 338.71690, MeanAnomalyAtEpoch: 317.51238,
			Epoch: j2000Epoch,
		},
	},
	{
		Name: "Uranus", Mass: 8.6810e25, Radius: 25362,
		Color:          [3]float64{0.60, 0.85, 0.90},
		RotationPeriod: 17.24, AxialTilt: 97.77,
		OrbitalElements: types.ElementsRecord{
			SemiMajorAxis: 19.19126393, Eccentricity: 0.04716771,
			Inclination: 0.76986, LongitudeOfAscendingNode: 74.22988,
			ArgumentOfPerihelion: 96.73436, MeanAnomalyAtEpoch: 142.26794,
			Epoch: j2000Epoch,
		},
	},
	{
		Name: "Neptune", Mass: 1.02413e26, Radius: 24622,
		Color:          [3]float64{0.30, 0.40, 0.90},
		RotationPeriod: 16.11, AxialTilt: 28.32,
		OrbitalElements: types.ElementsRecord{
			SemiMajorAxis: 30.06896348, Eccentricity: 0.00858587,
			Inclination: 1.76917, LongitudeOfAscendingNode: 131.72169,
			ArgumentOfPerihelion: 273.24966, MeanAnomalyAtEpoch: 259.90868,
			Epoch: j2000Epoch,
		},
	},
}

// PlanetCatalog returns a copy of the built-in eight-planet catalog.
func PlanetCatalog() []types.BodyRecord {
	catalog := make([]types.BodyRecord, len(builtinPlanets))
	copy(catalog, builtinPlanets)
	return catalog
}

// PlanetRecord looks up a catalog planet by name.
func PlanetRecord(name string) (types.BodyRecord, error) {
	for _, rec := range builtinPlanets {
		if rec.Name == name {
			return rec, nil
		}
	}
	return types.BodyRecord{}, errors.Wrapf(types.ErrDataLoad, "planet %q is not in the built-in catalog", name)
}

// BuildSolarSystem assembles a solar system from body records around a
// default Sun, sharing the given calculator across all planets.
func BuildSolarSystem(records []types.BodyRecord, calc *orbital.Calculator) (*body.SolarSystem, error) {
	system := body.NewSolarSystem(j2000Epoch)
	if err := system.AddBody(body.DefaultSun()); err != nil {
		return nil, err
	}

	for _, rec := range records {
		planet, err := body.PlanetFromRecord(rec, calc)
		if err != nil {
			return nil, errors.Wrapf(err, "building planet %s", rec.Name)
		}
		if err := system.AddBody(planet); err != nil {
			return nil, err
		}
	}
	return system, nil
}

// BuildDefaultSolarSystem assembles the built-in eight-planet system.
func BuildDefaultSolarSystem(calc *orbital.Calculator) (*body.SolarSystem, error) {
	return BuildSolarSystem(builtinPlanets, calc)
}
