package data

import (
	"bufio"
	"encoding/json"
	"os"

	"cosmossdk.io/errors"

	"github.com/orbitforge/astrosim/internal/types"
	"github.com/orbitforge/astrosim/pkg/astromath"
	"github.com/orbitforge/astrosim/pkg/body"
)

// BodyState is the instantaneous state of one body in a snapshot.
type BodyState struct {
	Name     string            `json:"name"`
	Position astromath.Vector3 `json:"position"`
	Velocity astromath.Vector3 `json:"velocity"`
}

// Snapshot captures the whole system at one Julian date.
type Snapshot struct {
	JulianDate float64     `json:"julian_date"`
	Bodies     []BodyState `json:"bodies"`
}

// TakeSnapshot captures the current state of every body in the system.
func TakeSnapshot(system *body.SolarSystem) Snapshot {
	bodies := system.Bodies()
	snap := Snapshot{
		JulianDate: system.CurrentDate(),
		Bodies:     make([]BodyState, 0, len(bodies)),
	}
	for _, b := range bodies {
		snap.Bodies = append(snap.Bodies, BodyState{
			Name:     b.Name(),
			Position: b.Position(),
			Velocity: b.Velocity(),
		})
	}
	return snap
}

// SnapshotSink receives simulation snapshots as they are produced.
type SnapshotSink interface {
	WriteSnapshot(snap Snapshot) error
	Close() error
}

// JSONLSnapshotWriter streams snapshots to a file, one JSON object per
// line, through a buffered writer. Close flushes and syncs.
type JSONLSnapshotWriter struct {
	file    *os.File
	writer  *bufio.Writer
	encoder *json.Encoder
	count   int
}

// NewJSONLSnapshotWriter creates (or truncates) the output file.
func NewJSONLSnapshotWriter(path string) (*JSONLSnapshotWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(types.ErrDataLoad, "creating snapshot file %s: %v", path, err)
	}
	writer := bufio.NewWriterSize(file, 1<<16)
	return &JSONLSnapshotWriter{
		file:    file,
		writer:  writer,
		encoder: json.NewEncoder(writer),
	}, nil
}

// WriteSnapshot appends one snapshot line.
func (w *JSONLSnapshotWriter) WriteSnapshot(snap Snapshot) error {
	if err := w.encoder.Encode(snap); err != nil {
		return errors.Wrapf(types.ErrDataLoad, "encoding snapshot: %v", err)
	}
	w.count++
	return nil
}

// Count returns the number of snapshots written so far.
func (w *JSONLSnapshotWriter) Count() int { return w.count }

// Close flushes buffered snapshots and closes the file.
func (w *JSONLSnapshotWriter) Close() error {
	if err := w.writer.Flush(); err != nil {
		w.file.Close()
		return errors.Wrapf(types.ErrDataLoad, "flushing snapshots: %v", err)
	}
	if err := w.file.Close(); err != nil {
		return errors.Wrapf(types.ErrDataLoad, "closing snapshot file: %v", err)
	}
	return nil
}

// discardSink drops snapshots, for runs where output is not wanted.
type discardSink struct{}

func (discardSink) WriteSnapshot(Snapshot) error { return nil }
func (discardSink) Close() error                 { return nil }

// DiscardSink returns a sink that ignores every snapshot.
func DiscardSink() SnapshotSink { return discardSink{} }
