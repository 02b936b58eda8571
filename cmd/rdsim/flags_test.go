package main

import (
	"math"
	"testing"
)

func TestParseParams(t *testing.T) {
	got, err := parseParams([]string{"F=0.03", " k = 0.06 ", "nb_pos=10"})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got["F"] != 0.03 || got["k"] != 0.06 || got["nb_pos"] != 10 {
		t.Errorf("unexpected params %v", got)
	}

	for _, bad := range []string{"F", "=1", "F=abc", "F="} {
		if _, err := parseParams([]string{bad}); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestParseGrid(t *testing.T) {
	names, ranges, err := parseGrid([]string{"F=0.02:0.06:3", "k=0.06:0.06:1"})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(names) != 2 || names[0] != "F" || names[1] != "k" {
		t.Errorf("unexpected names %v", names)
	}
	if len(ranges[0]) != 3 || math.Abs(ranges[0][2]-0.06) > 1e-12 || len(ranges[1]) != 1 {
		t.Errorf("unexpected ranges %v", ranges)
	}

	for _, bad := range []string{"F", "F=1:2", "F=a:2:3", "F=1:2:0", "=1:2:3"} {
		if _, _, err := parseGrid([]string{bad}); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestSetupLogging(t *testing.T) {
	if err := setupLogging("debug", "json"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := setupLogging("loud", "text"); err == nil {
		t.Error("expected invalid level to fail")
	}
	if err := setupLogging("info", "xml"); err == nil {
		t.Error("expected invalid format to fail")
	}
}
