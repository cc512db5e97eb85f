package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/rankwidth/pkg/cache"
	"github.com/matzehuels/rankwidth/pkg/errors"
	"github.com/matzehuels/rankwidth/pkg/pipeline"
	"github.com/matzehuels/rankwidth/pkg/search"
)

const dot = "graph decomposition {\n  \"leaf_1\" -- \"node_0\" [label=1];\n}\n"

func sampleResult() *pipeline.Result {
	return &pipeline.Result{
		Function:      "rank-width",
		Vertices:      25,
		Width:         5,
		Score:         410,
		Decomposition: dot,
		Iterations:    12800,
		Elapsed:       842 * time.Millisecond,
		Progress: []search.Progress{
			{Elapsed: 0, Width: 8},
			{Elapsed: 120 * time.Millisecond, Width: 5},
		},
		Stats: search.ScoreStats{Rescores: 31, Skipped: 220, Hits: 900, Misses: 310},
		Cache: cache.Stats{Evictions: 4},
	}
}

func TestExportImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "best.json")
	if err := ExportJSON(NewReport("run-1", sampleResult()), path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	r, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if r.Run != "run-1" || r.Width != 5 || r.Score != 410 || r.Decomposition != dot {
		t.Errorf("imported report = %+v", r)
	}
	if r.Elapsed() != 842*time.Millisecond {
		t.Errorf("Elapsed() = %v, want 842ms", r.Elapsed())
	}
	if len(r.Progress) != 2 || r.Progress[1].ElapsedMS != 120 || r.Progress[1].Width != 5 {
		t.Errorf("Progress = %+v", r.Progress)
	}
	if r.Stats == nil || r.Stats.Evictions != 4 || r.Stats.Hits != 900 {
		t.Errorf("Stats = %+v", r.Stats)
	}
}

func TestTrivialReport(t *testing.T) {
	res := &pipeline.Result{Function: "rank-width", Vertices: 1, Trivial: true, Reason: "Graph has fewer than 2 vertices"}

	var buf bytes.Buffer
	if err := WriteJSON(NewReport("", res), &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, absent := range []string{`"stats"`, `"decomposition"`, `"run"`} {
		if strings.Contains(out, absent) {
			t.Errorf("trivial report contains %s:\n%s", absent, out)
		}
	}

	r, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if !r.Trivial || r.Reason != res.Reason {
		t.Errorf("report = %+v", r)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", `{"function":`},
		{"unknown field", `{"function":"rank-width","decomposition":"graph {}","nodes":[]}`},
		{"no function", `{"width":3,"decomposition":"graph {}"}`},
		{"no decomposition", `{"function":"rank-width","width":3}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("ReadJSON() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestImportJSONMissing(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportJSON() error = %v, want FILE_NOT_FOUND", err)
	}
}
