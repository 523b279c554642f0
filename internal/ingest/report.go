package ingest

import (
	"errors"
	"fmt"
	"time"
)

// StageResult is the outcome of one stage.
type StageResult struct {
	Name     string
	Table    string // destination table, "" for stages that load nothing
	Staged   int64
	Inserted int64
	Skipped  int // source files or directories left out of a catalogue
	Duration time.Duration
	Err      error
}

// OK reports whether the stage succeeded.
func (r StageResult) OK() bool {
	return r.Err == nil
}

// Report collects the stage results of a run.
type Report struct {
	Stages    []StageResult
	Committed bool
}

func (r *Report) add(res StageResult) {
	r.Stages = append(r.Stages, res)
}

// Failed returns the stages that failed, in run order.
func (r *Report) Failed() []StageResult {
	var out []StageResult
	for _, s := range r.Stages {
		if !s.OK() {
			out = append(out, s)
		}
	}
	return out
}

// Succeeded returns the stages that succeeded, in run order.
func (r *Report) Succeeded() []StageResult {
	var out []StageResult
	for _, s := range r.Stages {
		if s.OK() {
			out = append(out, s)
		}
	}
	return out
}

// Inserted returns the total number of new rows across all stages.
func (r *Report) Inserted() int64 {
	var n int64
	for _, s := range r.Stages {
		n += s.Inserted
	}
	return n
}

// Err joins the errors of all failed stages, or returns nil.
func (r *Report) Err() error {
	var errs []error
	for _, s := range r.Failed() {
		errs = append(errs, fmt.Errorf("stage %s: %w", s.Name, s.Err))
	}
	return errors.Join(errs...)
}
