package storage

import (
	"encoding/json"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/rdsim/internal/sim"
)

type ExportData struct {
	RunMetadata
	Samples []sim.Sample `json:"samples"`
}

// ExportJSON writes the metadata and samples of a run as one JSON document.
func (s *Store) ExportJSON(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{RunMetadata: *meta, Samples: samples})
}

// ExportCSV writes the samples of a run, optionally restricted to one
// species, as CSV with a header row.
func (s *Store) ExportCSV(runID, species string, w io.Writer) error {
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}
	if species != "" {
		kept := samples[:0]
		for _, sm := range samples {
			if sm.Species == species {
				kept = append(kept, sm)
			}
		}
		samples = kept
	}
	return gocsv.Marshal(&samples, w)
}
