package sync

import (
	"context"
	"encoding/json"

	"github.com/dom/lol-extension-backend/internal/domain"
	"github.com/dom/lol-extension-backend/internal/repository"
	"gorm.io/datatypes"
)

// Sync result statuses returned by the orchestrator.
const (
	StatusSuccess = "success"
	StatusSkipped = "skipped"
	StatusStarted = "started"
)

// Result is the API-facing outcome of one sync request.
type Result struct {
	Status          string        `json:"status"`
	EntityType      domain.Family `json:"entity_type"`
	PreviousVersion string        `json:"previous_version,omitempty"`
	CurrentVersion  string        `json:"current_version,omitempty"`
	LatestVersion   string        `json:"latest_version,omitempty"`
	Synced          int           `json:"synced"`
	Failed          int           `json:"failed"`
}

// EntityFailure records one entity that was rolled back and skipped.
type EntityFailure struct {
	ID  string `json:"id"`
	Err string `json:"error"`
}

// Report is the internal outcome of applying one family batch.
type Report struct {
	Family   domain.Family
	Version  string
	Synced   int
	Failed   int
	Failures []EntityFailure
	Graph    *GraphResult // items only
}

func (r *Report) fail(id string, err error) {
	r.Failed++
	r.Failures = append(r.Failures, EntityFailure{ID: id, Err: err.Error()})
}

// Reconciler fetches one family's upstream documents and produces a batch
// that can be applied inside a transaction. Fetch does all network I/O so
// the transaction never waits on the CDN.
type Reconciler interface {
	Family() domain.Family
	Fetch(ctx context.Context, version string) (Batch, error)
}

// Batch applies fetched documents against transaction-scoped repositories.
// observe reports pipeline state transitions (reconciling, graph repair).
type Batch interface {
	Apply(ctx context.Context, tx repository.Store, observe func(State)) (*Report, error)
}

func toJSON(v interface{}) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}
