package watcher

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/backend"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/hermes"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/ranking"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/scoring"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/session"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/store"
)

type fakeBackend struct {
	backend.Client
	mu      sync.Mutex
	results []scoring.RawResult
	err     error
	calls   int
}

func (f *fakeBackend) ListResults(_ context.Context, _ session.Session, _ int64) ([]scoring.RawResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.results, f.err
}

func (f *fakeBackend) ListAlternatives(_ context.Context, _ session.Session, _ int64) ([]store.Alternative, error) {
	return []store.Alternative{{ID: 1, Name: "Dina"}, {ID: 2, Name: "Raka"}}, nil
}

func (f *fakeBackend) set(results []scoring.RawResult, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results, f.err = results, err
}

func (f *fakeBackend) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newWatcher(b *fakeBackend, s store.Store, h hermes.Client, interval time.Duration) *Watcher {
	logger := discardLogger()
	svc := ranking.NewService(b, scoring.NewReconciler(scoring.ModeFallbackToAny, logger), scoring.DefaultClassPolicy(), logger)
	return New(svc, s, h, session.Service("svc"), []int64{1}, interval, logger)
}

var initial = []scoring.RawResult{
	{"alternative_id": 1, "final_score": 0.8, "rank": 1},
	{"alternative_id": 2, "final_score": 0.6, "rank": 2},
}

func TestCheck_SnapshotsOnlyOnChange(t *testing.T) {
	b := &fakeBackend{results: initial}
	s := store.NewMemoryStore()
	events := hermes.NewRecorder()
	w := newWatcher(b, s, events, time.Hour)
	ctx := context.Background()

	snap, changed, err := w.Check(ctx, 1)
	require.NoError(t, err)
	require.True(t, changed)
	assert.Equal(t, 2, snap.EntryCount)
	var entries []scoring.RankedEntry
	require.NoError(t, json.Unmarshal(snap.Entries, &entries))
	assert.Equal(t, "Dina", entries[0].Name)

	_, changed, err = w.Check(ctx, 1)
	require.NoError(t, err)
	assert.False(t, changed)

	b.set([]scoring.RawResult{
		{"alternative_id": 2, "final_score": 0.9, "rank": 1},
		{"alternative_id": 1, "final_score": 0.7, "rank": 2},
	}, nil)
	snap, changed, err = w.Check(ctx, 1)
	require.NoError(t, err)
	require.True(t, changed)

	snaps, err := s.ListSnapshots(ctx, 1, 10)
	require.NoError(t, err)
	assert.Len(t, snaps, 2)
	assert.Equal(t, snap.ID, snaps[0].ID)

	msgs := events.Messages(hermes.SubjectRankingUpdated(1))
	require.Len(t, msgs, 2)
	var ev hermes.RankingUpdatedEvent
	require.NoError(t, json.Unmarshal(msgs[1].Data, &ev))
	assert.Equal(t, "Raka", ev.TopName)
}

func TestCheck_SkipsIncompleteFetch(t *testing.T) {
	b := &fakeBackend{results: initial}
	s := store.NewMemoryStore()
	w := newWatcher(b, s, nil, time.Hour)
	ctx := context.Background()

	_, changed, err := w.Check(ctx, 1)
	require.NoError(t, err)
	require.True(t, changed)

	b.set(nil, errors.New("connection refused"))
	_, changed, err = w.Check(ctx, 1)
	require.NoError(t, err)
	assert.False(t, changed)

	latest, err := s.LatestSnapshot(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, latest.EntryCount)
}

func TestStartStop_Ticks(t *testing.T) {
	b := &fakeBackend{results: initial}
	s := store.NewMemoryStore()
	w := newWatcher(b, s, nil, 10*time.Millisecond)

	w.Start(context.Background())
	require.Eventually(t, func() bool { return b.callCount() >= 2 }, time.Second, 5*time.Millisecond)
	w.Stop()
	w.Stop()

	snaps, err := s.ListSnapshots(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Len(t, snaps, 1)
}

func TestSubscriptionsTriggerRefresh(t *testing.T) {
	b := &fakeBackend{results: initial}
	s := store.NewMemoryStore()
	events := hermes.NewRecorder()
	w := newWatcher(b, s, events, time.Hour)
	w.SetupSubscriptions()
	w.Start(context.Background())
	defer w.Stop()

	require.NoError(t, events.Publish(hermes.SubjectWeightsSubmitted(5), hermes.WeightsSubmittedEvent{ProjectID: 5}))
	require.Eventually(t, func() bool {
		snap, _ := s.LatestSnapshot(context.Background(), 5)
		return snap != nil
	}, time.Second, 5*time.Millisecond)
}

func TestProjectFromSubject(t *testing.T) {
	id, err := projectFromSubject("gdss.calculation.42.requested")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = projectFromSubject("gdss.ranking")
	assert.Error(t, err)
}
