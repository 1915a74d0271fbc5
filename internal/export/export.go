// Package export writes trajectories as CSV or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/physim/internal/trajectory"
)

// DefaultColumns is the CSV header used when none is given.
var DefaultColumns = []string{"time", "x", "y"}

type Meta struct {
	Model      string             `json:"model"`
	Integrator string             `json:"integrator,omitempty"`
	Dt         float64            `json:"dt"`
	Params     map[string]float64 `json:"params,omitempty"`
	Summary    map[string]float64 `json:"summary,omitempty"`
}

type exportData struct {
	Meta
	Samples int       `json:"samples"`
	Times   []float64 `json:"times"`
	X       []float64 `json:"x"`
	Y       []float64 `json:"y"`
}

// WriteCSV writes one row per sample: time, x, y. cols names the three
// header fields.
func WriteCSV(w io.Writer, traj trajectory.Trajectory, cols []string) error {
	if len(cols) == 0 {
		cols = DefaultColumns
	}
	if len(cols) != 3 {
		return fmt.Errorf("export: expected 3 column names, got %d", len(cols))
	}
	if err := traj.CheckAligned(); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return err
	}
	for i := range traj.Times {
		row := []string{
			strconv.FormatFloat(traj.Times[i], 'f', 6, 64),
			strconv.FormatFloat(traj.X[i], 'f', 6, 64),
			strconv.FormatFloat(traj.Y[i], 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteJSON(w io.Writer, meta Meta, traj trajectory.Trajectory) error {
	if err := traj.CheckAligned(); err != nil {
		return err
	}
	data := exportData{
		Meta:    meta,
		Samples: traj.Len(),
		Times:   traj.Times,
		X:       traj.X,
		Y:       traj.Y,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
