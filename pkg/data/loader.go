// Package data loads and persists celestial body definitions and system
// snapshots. JSON is the primary interchange format; CSV is supported for
// flat per-body element tables.
package data

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cosmossdk.io/errors"

	"github.com/orbitforge/astrosim/internal/types"
)

// LoadBodies reads body records from a JSON or CSV file, dispatching on
// the file extension.
func LoadBodies(path string) ([]types.BodyRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return loadBodiesJSON(path)
	case ".csv":
		return loadBodiesCSV(path)
	default:
		return nil, errors.Wrapf(types.ErrDataLoad, "unsupported body file format %q", filepath.Ext(path))
	}
}

func loadBodiesJSON(path string) ([]types.BodyRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(types.ErrDataLoad, "reading %s: %v", path, err)
	}

	var records []types.BodyRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, errors.Wrapf(types.ErrDataLoad, "parsing %s: %v", path, err)
	}
	return records, nil
}

// loadBodiesCSV parses rows of the form
// name,mass,radius,a,e,i,node,peri,mean_anomaly,epoch. Malformed rows are
// logged and skipped so one bad line does not discard a whole catalog.
func loadBodiesCSV(path string) ([]types.BodyRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(types.ErrDataLoad, "opening %s: %v", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var records []types.BodyRecord
	line := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(types.ErrDataLoad, "reading %s: %v", path, err)
		}
		line++

		if line == 1 && strings.EqualFold(strings.TrimSpace(row[0]), "name") {
			continue
		}
		if len(row) < 10 {
			log.Printf("skipping %s line %d: expected 10 fields, got %d", path, line, len(row))
			continue
		}

		values := make([]float64, 9)
		ok := true
		for i := 0; i < 9; i++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(row[i+1]), 64)
			if err != nil {
				log.Printf("skipping %s line %d: bad numeric field %q", path, line, row[i+1])
				ok = false
				break
			}
			values[i] = v
		}
		if !ok {
			continue
		}

		records = append(records, types.BodyRecord{
			Name:   strings.TrimSpace(row[0]),
			Mass:   values[0],
			Radius: values[1],
			OrbitalElements: types.ElementsRecord{
				SemiMajorAxis:            values[2],
				Eccentricity:             values[3],
				Inclination:              values[4],
				LongitudeOfAscendingNode: values[5],
				ArgumentOfPerihelion:     values[6],
				MeanAnomalyAtEpoch:       values[7],
				Epoch:                    values[8],
			},
		})
	}

	if len(records) == 0 {
		return nil, errors.Wrapf(types.ErrDataLoad, "no usable body records in %s", path)
	}
	return records, nil
}

// SaveBodies writes body records as indented JSON.
func SaveBodies(path string, records []types.BodyRecord) error {
	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errors.Wrapf(types.ErrDataLoad, "encoding bodies: %v", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return errors.Wrapf(types.ErrDataLoad, "writing %s: %v", path, err)
	}
	return nil
}

// LoadSystem reads a full system record (sun, planets, current date) from
// a JSON file.
func LoadSystem(path string) (*types.SystemRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(types.ErrDataLoad, "reading %s: %v", path, err)
	}

	var record types.SystemRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, errors.Wrapf(types.ErrDataLoad, "parsing %s: %v", path, err)
	}
	return &record, nil
}

// SaveSystem writes a full system record as indented JSON.
func SaveSystem(path string, record *types.SystemRecord) error {
	raw, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return errors.Wrapf(types.ErrDataLoad, "encoding system: %v", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return errors.Wrapf(types.ErrDataLoad, "writing %s: %v", path, err)
	}
	return nil
}
