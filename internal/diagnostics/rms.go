// Package diagnostics reads the RMS beam-size dumps produced by the
// external particle-tracking simulator. The integrator core never
// touches files; this package is the boundary where simulator output
// enters, either to seed the initial slope of an analytic run or to be
// overlaid against one.
package diagnostics

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// RMSData holds simulated RMS beam sizes versus longitudinal position:
// z in meters, XStd/YStd the transverse RMS sizes in meters.
type RMSData struct {
	Z    []float64
	XStd []float64
	YStd []float64
}

// Load reads a simulator dump with header z,xstd,ystd. Rows must parse
// cleanly and z must be strictly increasing; seeding an analytic run
// from a corrupt dump is worse than failing.
func Load(path string) (*RMSData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("diagnostics: reading %s: %w", path, err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("diagnostics: %s has no data rows", path)
	}

	d := &RMSData{
		Z:    make([]float64, 0, len(records)-1),
		XStd: make([]float64, 0, len(records)-1),
		YStd: make([]float64, 0, len(records)-1),
	}

	for i, record := range records[1:] {
		if len(record) < 3 {
			return nil, fmt.Errorf("diagnostics: row %d has %d columns, want 3", i+2, len(record))
		}
		vals := make([]float64, 3)
		for j := 0; j < 3; j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("diagnostics: row %d column %d: %w", i+2, j+1, err)
			}
			vals[j] = v
		}
		d.Z = append(d.Z, vals[0])
		d.XStd = append(d.XStd, vals[1])
		d.YStd = append(d.YStd, vals[2])
	}

	if err := d.validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *RMSData) validate() error {
	for i := 1; i < len(d.Z); i++ {
		if d.Z[i] <= d.Z[i-1] {
			return fmt.Errorf("diagnostics: z not strictly increasing at sample %d (%g -> %g)", i, d.Z[i-1], d.Z[i])
		}
	}
	return nil
}

func (d *RMSData) Len() int { return len(d.Z) }

// MeanRadius is the average transverse RMS size at sample i, used as
// the round-beam envelope radius.
func (d *RMSData) MeanRadius(i int) float64 {
	return 0.5 * (d.XStd[i] + d.YStd[i])
}

// SeedSlope estimates the initial envelope slope rp0 by finite
// difference over the first two simulated samples.
func (d *RMSData) SeedSlope() (float64, error) {
	if d.Len() < 2 {
		return 0, fmt.Errorf("diagnostics: need at least 2 samples to seed a slope, have %d", d.Len())
	}
	return (d.MeanRadius(1) - d.MeanRadius(0)) / (d.Z[1] - d.Z[0]), nil
}
