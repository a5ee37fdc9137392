package sync

import (
	"errors"
	stdsync "sync"
	"testing"

	"github.com/dom/lol-extension-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	mu     stdsync.Mutex
	events []Event
}

func (p *capturePublisher) Publish(event Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *capturePublisher) all() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Event(nil), p.events...)
}

func TestRegistry_RunningGuard(t *testing.T) {
	r := NewRegistry(nil)

	require.True(t, r.TryStart(domain.FamilyItems))
	assert.False(t, r.TryStart(domain.FamilyItems), "second start must be refused")
	// Other families stay independent.
	assert.True(t, r.TryStart(domain.FamilyRunes))

	r.Finish(domain.FamilyItems, "14.1.1", 10, 0)
	assert.True(t, r.TryStart(domain.FamilyItems), "idle family can start again")
}

func TestRegistry_FailedFamilyCanRetry(t *testing.T) {
	r := NewRegistry(nil)

	require.True(t, r.TryStart(domain.FamilyChampions))
	r.Fail(domain.FamilyChampions, errors.New("cdn down"))

	for _, status := range r.Snapshot() {
		if status.Family == domain.FamilyChampions {
			assert.Equal(t, StateFailed, status.State)
			assert.Equal(t, "cdn down", status.LastError)
		}
	}

	assert.True(t, r.TryStart(domain.FamilyChampions))
}

func TestRegistry_SnapshotOrderAndCounts(t *testing.T) {
	r := NewRegistry(nil)

	require.True(t, r.TryStart(domain.FamilyItems))
	r.Transition(domain.FamilyItems, StateReconciling, "14.1.1")
	r.Finish(domain.FamilyItems, "14.1.1", 200, 3)

	snapshot := r.Snapshot()
	require.Len(t, snapshot, len(domain.AllFamilies))
	for i, family := range domain.AllFamilies {
		assert.Equal(t, family, snapshot[i].Family)
	}

	for _, status := range snapshot {
		if status.Family == domain.FamilyItems {
			assert.Equal(t, StateIdle, status.State)
			assert.Equal(t, "14.1.1", status.Version)
			assert.Equal(t, 200, status.Synced)
			assert.Equal(t, 3, status.Failed)
			assert.NotNil(t, status.FinishedAt)
		}
	}
}

func TestRegistry_PublishesTransitions(t *testing.T) {
	pub := &capturePublisher{}
	r := NewRegistry(pub)

	require.True(t, r.TryStart(domain.FamilyRunes))
	r.Transition(domain.FamilyRunes, StateFetching, "14.1.1")
	r.Finish(domain.FamilyRunes, "14.1.1", 5, 0)

	events := pub.all()
	require.Len(t, events, 3)
	assert.Equal(t, EventStateChanged, events[0].Type)
	assert.Equal(t, StateChecking, events[0].State)
	assert.Equal(t, StateFetching, events[1].State)
	assert.Equal(t, EventSyncFinished, events[2].Type)
	assert.Equal(t, 5, events[2].Synced)
}
