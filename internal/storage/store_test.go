package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/rdsim/internal/metrics"
	"github.com/san-kum/rdsim/internal/models"
	"github.com/san-kum/rdsim/internal/sim"
	"github.com/san-kum/rdsim/internal/turing"
)

func testSamples() []sim.Sample {
	return []sim.Sample{
		{Step: 0, Time: 0, Species: "U", Mean: 1, Std: 0, Min: 1, Max: 1},
		{Step: 0, Time: 0, Species: "V", Mean: 0, Std: 0.1, Min: 0, Max: 0.9},
		{Step: 10, Time: 10, Species: "U", Mean: 0.95, Std: 0.02, Min: 0.5, Max: 1},
		{Step: 10, Time: 10, Species: "V", Mean: 0.03, Std: 0.05, Min: 0, Max: 0.4},
	}
}

func testMeta() RunMetadata {
	return RunMetadata{
		Model:       "GrayScott",
		Seed:        42,
		Size:        32,
		Dx:          1,
		Dy:          1,
		Dt:          1,
		Steps:       10,
		Time:        10,
		SampleEvery: 10,
		Params:      map[string]float64{"F": 0.055, "k": 0.062},
		Metrics:     map[string]float64{"contrast_V": 0.05},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(testMeta(), testSamples())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "GrayScott_") {
		t.Errorf("unexpected run id %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.ID != runID || meta.Model != "GrayScott" || meta.Seed != 42 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Params["k"] != 0.062 || meta.Metrics["contrast_V"] != 0.05 {
		t.Errorf("params or metrics lost: %+v", meta)
	}
	if meta.Timestamp.IsZero() {
		t.Error("expected timestamp")
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}
	want := testSamples()
	if len(samples) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(samples))
	}
	for i := range want {
		if samples[i] != want[i] {
			t.Errorf("sample %d: got %+v, want %+v", i, samples[i], want[i])
		}
	}
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	first, _ := st.Save(testMeta(), testSamples())
	second, _ := st.Save(testMeta(), nil)
	if err := os.MkdirAll(filepath.Join(dir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != first || runs[1].ID != second {
		t.Errorf("expected oldest first, got %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))
	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v, %v", runs, err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runID, err := st.Save(testMeta(), testSamples())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{"metadata.json", "samples.csv"} {
		if _, err := os.Stat(filepath.Join(dir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, runID, "samples.csv"))
	if err != nil {
		t.Fatal(err)
	}
	header := strings.SplitN(string(data), "\n", 2)[0]
	if header != "step,time,species,mean,std,min,max" {
		t.Errorf("unexpected header %q", header)
	}
}

func TestExport(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(testMeta(), testSamples())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var buf bytes.Buffer
	if err := st.ExportCSV(runID, "V", &buf); err != nil {
		t.Fatalf("export csv failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Errorf("expected header and 2 rows, got %d lines", len(lines))
	}
	for _, l := range lines[1:] {
		if !strings.Contains(l, ",V,") {
			t.Errorf("unexpected row %q", l)
		}
	}

	buf.Reset()
	if err := st.ExportJSON(runID, &buf); err != nil {
		t.Fatalf("export json failed: %v", err)
	}
	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data.ID != runID || len(data.Samples) != 4 {
		t.Errorf("unexpected export %+v", data)
	}

	if err := st.ExportCSV("missing", "", &buf); err == nil {
		t.Error("expected error for unknown run")
	}
}

func TestNewRunMetadata(t *testing.T) {
	p, err := models.NewGrayScott(turing.WithSize(8), turing.WithSeed(5))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	result, err := sim.New(p).Run(context.Background(), sim.Config{Steps: 4, SampleEvery: 2})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	meta := NewRunMetadata(p, 5, 2, result)
	if meta.Model != "GrayScott" || meta.Size != 8 || meta.Steps != 4 || meta.Time != 4 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Params["F"] != 0.055 || len(meta.Errors) != 0 {
		t.Errorf("unexpected params or errors %+v", meta)
	}

	st := New(t.TempDir())
	runID, err := st.Save(meta, result.Samples)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	samples, err := st.LoadSamples(runID)
	if err != nil || len(samples) != len(result.Samples) {
		t.Errorf("expected %d samples, got %d (%v)", len(result.Samples), len(samples), err)
	}
}

func TestSaveDropsNonFiniteMetrics(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	meta := testMeta()
	meta.Metrics = map[string]float64{"contrast_V": 0.05, "mean_U": math.NaN(), "activity_U": math.Inf(1)}
	runID, err := st.Save(meta, testSamples())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded.Metrics) != 1 || loaded.Metrics["contrast_V"] != 0.05 {
		t.Errorf("expected only the finite metric, got %v", loaded.Metrics)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected one run directory, got %d", len(entries))
	}
}

func TestSaveDivergedRun(t *testing.T) {
	// dt far beyond the explicit stability limit blows the fields up.
	p, err := models.NewBrusselator(turing.WithSize(8), turing.WithTimeStep(5), turing.WithSeed(2))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	s := sim.New(p)
	for _, m := range metrics.Standard(p.Species()) {
		s.AddMetric(m)
	}
	result, err := s.Run(context.Background(), sim.Config{Steps: 500, SampleEvery: 1, ValidateState: true})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(result.Errors) == 0 {
		t.Fatal("expected the run to diverge")
	}

	dir := t.TempDir()
	st := New(dir)
	runID, err := st.Save(NewRunMetadata(p, 2, 1, result), result.Samples)
	if err != nil {
		t.Fatalf("save diverged run: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(meta.Errors) == 0 {
		t.Error("expected the divergence error to be recorded")
	}
	if len(meta.Metrics) == 0 {
		t.Error("expected metrics to survive")
	}
	for name, v := range meta.Metrics {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("metric %s is not finite: %v", name, v)
		}
	}

	samples, err := st.LoadSamples(runID)
	if err != nil || len(samples) != len(result.Samples) {
		t.Errorf("expected %d samples, got %d (%v)", len(result.Samples), len(samples), err)
	}

	runs, err := st.List()
	if err != nil || len(runs) != 1 {
		t.Errorf("expected one listed run, got %d (%v)", len(runs), err)
	}
}
