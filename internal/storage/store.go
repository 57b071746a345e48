package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/spinlab/internal/lattice"
	"github.com/san-kum/spinlab/internal/sim"
)

// Store archives simulation runs as flat files under a base directory.
// Each run gets its own directory holding metadata.json, series.csv
// (the sampled time series) and grid.csv (the final spin configuration).
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Timestamp   time.Time          `json:"timestamp"`
	Size        int                `json:"size"`
	Temperature float64            `json:"temperature"`
	Coupling    float64            `json:"coupling"`
	Field       float64            `json:"field"`
	Steps       int                `json:"steps"`
	ReportEvery int                `json:"report_every"`
	Seed        int64              `json:"seed"`
	Acceptance  float64            `json:"acceptance"`
	Metrics     map[string]float64 `json:"metrics"`
}

func (s *Store) Save(p lattice.Params, cfg sim.Config, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("ising_L%d_%d", p.L, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Timestamp:   time.Now(),
		Size:        p.L,
		Temperature: p.T,
		Coupling:    p.J,
		Field:       p.H,
		Steps:       result.StepsTaken,
		ReportEvery: cfg.ReportEvery,
		Seed:        cfg.Seed,
		Acceptance:  result.AcceptanceRate(),
		Metrics:     result.Metrics,
	}

	if err := s.writeMetadata(runDir, meta); err != nil {
		return "", err
	}
	if err := s.writeSeries(runDir, result.Samples); err != nil {
		return "", err
	}
	if err := s.writeGrid(runDir, result.FinalGrid); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) writeMetadata(runDir string, meta RunMetadata) error {
	file, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func (s *Store) writeSeries(runDir string, samples []sim.Sample) error {
	file, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"step", "magnetization", "energy", "acceptance"}); err != nil {
		return err
	}
	for _, sample := range samples {
		row := []string{
			strconv.Itoa(sample.Step),
			strconv.Itoa(sample.Magnetization),
			strconv.FormatFloat(sample.Energy, 'f', 6, 64),
			strconv.FormatFloat(sample.Acceptance, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) writeGrid(runDir string, grid [][]lattice.Spin) error {
	file, err := os.Create(filepath.Join(runDir, "grid.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	for _, row := range grid {
		record := make([]string, len(row))
		for i, spin := range row {
			record[i] = strconv.Itoa(int(spin))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSeries reads back the sampled time series of a stored run.
func (s *Store) LoadSeries(runID string) ([]sim.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	samples := make([]sim.Sample, 0, len(records))
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 4 {
			return nil, fmt.Errorf("series row %d: want 4 fields, got %d", i, len(record))
		}

		step, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("series row %d: bad step %q: %w", i, record[0], err)
		}
		m, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("series row %d: bad magnetization %q: %w", i, record[1], err)
		}
		e, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("series row %d: bad energy %q: %w", i, record[2], err)
		}
		acc, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			return nil, fmt.Errorf("series row %d: bad acceptance %q: %w", i, record[3], err)
		}

		samples = append(samples, sim.Sample{Step: step, Magnetization: m, Energy: e, Acceptance: acc})
	}

	return samples, nil
}

// LoadGrid reads back the final spin configuration of a stored run.
func (s *Store) LoadGrid(runID string) ([][]lattice.Spin, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "grid.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	grid := make([][]lattice.Spin, 0, len(records))
	for _, record := range records {
		row := make([]lattice.Spin, 0, len(record))
		for _, field := range record {
			v, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("bad grid cell %q: %w", field, err)
			}
			row = append(row, lattice.Spin(v))
		}
		grid = append(grid, row)
	}

	return grid, nil
}
