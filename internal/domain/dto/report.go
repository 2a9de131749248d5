package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/model"
)

// EntityRecord is a simple vendor entity ready for upsert
type EntityRecord struct {
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
}

// ItemResult is the outcome of one independent item of a batch
type ItemResult struct {
	Reference string `json:"reference"`
	Name      string `json:"name,omitempty"`
	LocalID   int64  `json:"local_id,omitempty"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	Err       error  `json:"-"`
}

// Succeeded builds a successful result
func Succeeded(reference, name string, localID int64) ItemResult {
	return ItemResult{Reference: reference, Name: name, LocalID: localID, Success: true}
}

// Failed builds a failed result
func Failed(reference, name string, err error) ItemResult {
	return ItemResult{Reference: reference, Name: name, Error: err.Error(), Err: err}
}

// SyncReport summarizes an entity batch
type SyncReport struct {
	EntityType model.EntityType `json:"entity_type"`
	Succeeded  int              `json:"succeeded"`
	Failed     int              `json:"failed"`
	Results    []ItemResult     `json:"results"`
}

// Add records one item result
func (r *SyncReport) Add(result ItemResult) {
	r.Results = append(r.Results, result)
	if result.Success {
		r.Succeeded++
	} else {
		r.Failed++
	}
}

// ImportReport summarizes one catalog import run
type ImportReport struct {
	RunID      uuid.UUID         `json:"run_id"`
	State      model.ImportState `json:"state"`
	Processed  int               `json:"processed"`
	Succeeded  int               `json:"succeeded"`
	Failed     int               `json:"failed"`
	Results    []ItemResult      `json:"results,omitempty"`
	Error      string            `json:"error,omitempty"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at,omitempty"`
}

// Add records one product result
func (r *ImportReport) Add(result ItemResult) {
	r.Results = append(r.Results, result)
	r.Processed++
	if result.Success {
		r.Succeeded++
	} else {
		r.Failed++
	}
}

// Failures returns the failed product results
func (r *ImportReport) Failures() []ItemResult {
	var failures []ItemResult
	for _, res := range r.Results {
		if !res.Success {
			failures = append(failures, res)
		}
	}
	return failures
}

// ImportRunEvent announces the end of an import run
type ImportRunEvent struct {
	RunID      uuid.UUID         `json:"run_id"`
	State      model.ImportState `json:"state"`
	Processed  int               `json:"processed"`
	Succeeded  int               `json:"succeeded"`
	Failed     int               `json:"failed"`
	Error      string            `json:"error,omitempty"`
	FinishedAt time.Time         `json:"finished_at"`
}

// Event summarizes the report without the per-record results
func (r *ImportReport) Event() ImportRunEvent {
	return ImportRunEvent{
		RunID:      r.RunID,
		State:      r.State,
		Processed:  r.Processed,
		Succeeded:  r.Succeeded,
		Failed:     r.Failed,
		Error:      r.Error,
		FinishedAt: r.FinishedAt,
	}
}
