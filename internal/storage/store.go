package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/rdsim/internal/sim"
	"github.com/san-kum/rdsim/internal/turing"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

// Store keeps a log of finished runs: one directory per run holding the
// run settings, final metric values and the sampled field statistics. It
// never holds field data, so a run cannot be resumed from it.
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
	Model       string             `json:"model"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Size        int                `json:"size"`
	Dx          float64            `json:"dx"`
	Dy          float64            `json:"dy"`
	Dt          float64            `json:"dt"`
	Steps       int                `json:"steps"`
	Time        float64            `json:"time"`
	SampleEvery int                `json:"sample_every"`
	Params      map[string]float64 `json:"params"`
	Metrics     map[string]float64 `json:"metrics"`
	Errors      []string           `json:"errors,omitempty"`
}

// NewRunMetadata fills the metadata of a finished run of p.
func NewRunMetadata(p *turing.Pattern, seed int64, sampleEvery int, result *sim.Result) RunMetadata {
	meta := RunMetadata{
		Model:       p.Name(),
		Seed:        seed,
		Size:        p.Size(),
		Dx:          p.Dx(),
		Dy:          p.Dy(),
		Dt:          p.Dt(),
		Steps:       result.Steps,
		Time:        result.Time,
		SampleEvery: sampleEvery,
		Params:      p.Params(),
		Metrics:     result.Metrics,
	}
	for _, err := range result.Errors {
		meta.Errors = append(meta.Errors, err.Error())
	}
	return meta
}

// Save writes a new run and returns its id. ID and Timestamp of meta are
// assigned here. Non-finite metric values cannot be encoded as JSON and are
// left out of the metadata. A failed save removes the run directory.
func (s *Store) Save(meta RunMetadata, samples []sim.Sample) (id string, err error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Model, now.UnixNano())
	meta.Timestamp = now
	meta.Metrics = finiteMetrics(meta.ID, meta.Metrics)

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}
	if samples == nil {
		samples = []sim.Sample{}
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(runDir)
		}
	}()

	if err := os.WriteFile(filepath.Join(runDir, metadataFile), append(data, '\n'), 0644); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, samplesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := gocsv.MarshalFile(&samples, csvFile); err != nil {
		return "", fmt.Errorf("write samples: %w", err)
	}

	slog.Debug("run saved", "id", meta.ID, "dir", runDir, "samples", len(samples))
	return meta.ID, nil
}

func finiteMetrics(id string, in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for name, v := range in {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			slog.Warn("dropping non-finite metric", "id", id, "metric", name, "value", v)
			continue
		}
		out[name] = v
	}
	return out
}

// List returns every readable run, oldest first.
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
			slog.Warn("skipping run directory", "dir", entry.Name(), "err", err)
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]sim.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	samples := []sim.Sample{}
	if err := gocsv.UnmarshalFile(file, &samples); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return samples, nil
		}
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return samples, nil
}
