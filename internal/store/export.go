package store

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	Run       RunMetadata `json:"run"`
	TimingsMs []float64   `json:"timings_ms"`
	Frames    [][]string  `json:"frames"`
}

// ExportJSON writes a run, its timings and all of its frames as one JSON
// document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}
	timings, err := s.LoadTimings(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		Run:       *meta,
		TimingsMs: timings,
		Frames:    frames,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
