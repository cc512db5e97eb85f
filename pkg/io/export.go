package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/matzehuels/rankwidth/pkg/pipeline"
)

// Report is the JSON form of a pipeline result.
type Report struct {
	Run           string     `json:"run,omitempty"`
	Function      string     `json:"function"`
	Vertices      int        `json:"vertices"`
	Width         int        `json:"width"`
	Score         int64      `json:"score"`
	Trivial       bool       `json:"trivial,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	Iterations    int64      `json:"iterations"`
	ElapsedMS     int64      `json:"elapsed_ms"`
	Progress      []progress `json:"progress,omitempty"`
	Stats         *stats     `json:"stats,omitempty"`
	Decomposition string     `json:"decomposition,omitempty"`
}

type progress struct {
	ElapsedMS int64 `json:"elapsed_ms"`
	Width     int   `json:"width"`
}

type stats struct {
	Rescores  int64 `json:"rescores"`
	Skipped   int64 `json:"skipped"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
}

// NewReport converts a pipeline result. run identifies the run and may be
// empty.
func NewReport(run string, res *pipeline.Result) *Report {
	r := &Report{
		Run:           run,
		Function:      res.Function,
		Vertices:      res.Vertices,
		Width:         res.Width,
		Score:         res.Score,
		Trivial:       res.Trivial,
		Reason:        res.Reason,
		Iterations:    res.Iterations,
		ElapsedMS:     res.Elapsed.Milliseconds(),
		Decomposition: res.Decomposition,
	}
	for _, p := range res.Progress {
		r.Progress = append(r.Progress, progress{ElapsedMS: p.Elapsed.Milliseconds(), Width: p.Width})
	}
	if !res.Trivial {
		r.Stats = &stats{
			Rescores:  res.Stats.Rescores,
			Skipped:   res.Stats.Skipped,
			Hits:      res.Stats.Hits,
			Misses:    res.Stats.Misses,
			Evictions: int64(res.Cache.Evictions),
		}
	}
	return r
}

// Elapsed returns the run time recorded in the report.
func (r *Report) Elapsed() time.Duration {
	return time.Duration(r.ElapsedMS) * time.Millisecond
}

// WriteJSON encodes a report as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(r *Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a report to a JSON file at path.
func ExportJSON(r *Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(r, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
