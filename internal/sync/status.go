package sync

import (
	stdsync "sync"
	"time"

	"github.com/dom/lol-extension-backend/internal/domain"
)

// State is one step of the per-family sync pipeline.
type State string

const (
	StateIdle        State = "idle"
	StateChecking    State = "checking"
	StateFetching    State = "fetching"
	StateReconciling State = "reconciling"
	StateGraphRepair State = "graph_repair"
	StateValidating  State = "validating"
	StateCommitting  State = "committing"
	StateFailed      State = "failed"
)

// FamilyStatus is the externally visible sync state of one family.
type FamilyStatus struct {
	Family     domain.Family `json:"family"`
	State      State         `json:"state"`
	Version    string        `json:"version,omitempty"`
	StartedAt  *time.Time    `json:"startedAt,omitempty"`
	FinishedAt *time.Time    `json:"finishedAt,omitempty"`
	LastError  string        `json:"lastError,omitempty"`
	Synced     int           `json:"synced"`
	Failed     int           `json:"failed"`
}

// Registry tracks per-family pipeline state and doubles as the in-process
// running guard: TryStart refuses a second concurrent sync of the same
// family. Transitions are fanned out to the publisher.
type Registry struct {
	mu       stdsync.Mutex
	statuses map[domain.Family]*FamilyStatus
	pub      Publisher
	now      func() time.Time
}

func NewRegistry(pub Publisher) *Registry {
	if pub == nil {
		pub = NopPublisher{}
	}
	statuses := make(map[domain.Family]*FamilyStatus, len(domain.AllFamilies))
	for _, family := range domain.AllFamilies {
		statuses[family] = &FamilyStatus{Family: family, State: StateIdle}
	}
	return &Registry{
		statuses: statuses,
		pub:      pub,
		now:      time.Now,
	}
}

// TryStart moves an idle (or previously failed) family into Checking.
// Returns false when a sync for the family is already underway.
func (r *Registry) TryStart(family domain.Family) bool {
	r.mu.Lock()
	status := r.statuses[family]
	if status.State != StateIdle && status.State != StateFailed {
		r.mu.Unlock()
		return false
	}
	started := r.now()
	status.State = StateChecking
	status.StartedAt = &started
	status.FinishedAt = nil
	status.LastError = ""
	status.Synced = 0
	status.Failed = 0
	r.mu.Unlock()

	r.publish(EventStateChanged, family, StateChecking, "", 0, 0, "")
	return true
}

// Transition records an intermediate pipeline state.
func (r *Registry) Transition(family domain.Family, state State, version string) {
	r.mu.Lock()
	status := r.statuses[family]
	status.State = state
	if version != "" {
		status.Version = version
	}
	r.mu.Unlock()

	r.publish(EventStateChanged, family, state, version, 0, 0, "")
}

// Finish returns the family to Idle after a successful (or skipped) run.
func (r *Registry) Finish(family domain.Family, version string, synced, failed int) {
	r.mu.Lock()
	status := r.statuses[family]
	finished := r.now()
	status.State = StateIdle
	status.FinishedAt = &finished
	if version != "" {
		status.Version = version
	}
	status.Synced = synced
	status.Failed = failed
	r.mu.Unlock()

	r.publish(EventSyncFinished, family, StateIdle, version, synced, failed, "")
}

// Fail records a family-level error. The family can be retried immediately.
func (r *Registry) Fail(family domain.Family, err error) {
	r.mu.Lock()
	status := r.statuses[family]
	finished := r.now()
	status.State = StateFailed
	status.FinishedAt = &finished
	status.LastError = err.Error()
	r.mu.Unlock()

	r.publish(EventSyncFailed, family, StateFailed, "", 0, 0, err.Error())
}

// Snapshot returns a copy of every family's status in sync order.
func (r *Registry) Snapshot() []FamilyStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]FamilyStatus, 0, len(domain.AllFamilies))
	for _, family := range domain.AllFamilies {
		out = append(out, *r.statuses[family])
	}
	return out
}

func (r *Registry) publish(eventType string, family domain.Family, state State, version string, synced, failed int, message string) {
	r.pub.Publish(Event{
		Type:      eventType,
		Family:    family,
		State:     state,
		Version:   version,
		Message:   message,
		Synced:    synced,
		Failed:    failed,
		Timestamp: r.now(),
	})
}
