package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/spinlab/internal/sim"
)

type ExportData struct {
	ID             string             `json:"id"`
	Size           int                `json:"size"`
	Temperature    float64            `json:"temperature"`
	Coupling       float64            `json:"coupling"`
	Field          float64            `json:"field"`
	Steps          int                `json:"steps"`
	Seed           int64              `json:"seed"`
	Samples        []sim.Sample       `json:"samples"`
	FinalGrid      [][]int8           `json:"final_grid,omitempty"`
	Metrics        map[string]float64 `json:"metrics"`
	AcceptanceRate float64            `json:"acceptance_rate"`
}

// ExportJSON writes a full run (metadata, series, final grid) as a
// single JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, samples []sim.Sample, grid [][]int8) error {
	data := ExportData{
		ID:             meta.ID,
		Size:           meta.Size,
		Temperature:    meta.Temperature,
		Coupling:       meta.Coupling,
		Field:          meta.Field,
		Steps:          meta.Steps,
		Seed:           meta.Seed,
		Samples:        samples,
		FinalGrid:      grid,
		Metrics:        meta.Metrics,
		AcceptanceRate: meta.Acceptance,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func ExportJSONStdout(meta *RunMetadata, samples []sim.Sample, grid [][]int8) error {
	return ExportJSON(os.Stdout, meta, samples, grid)
}
