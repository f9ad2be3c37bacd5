package watcher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/hermes"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/metrics"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/ranking"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/scoring"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/session"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/store"
)

const defaultInterval = 30 * time.Second

// Watcher periodically rebuilds the ranking of each watched project and
// stores a snapshot whenever its content changes.
type Watcher struct {
	rankings *ranking.Service
	store    store.Store
	hermes   hermes.Client
	sess     session.Session
	projects []int64
	interval time.Duration
	logger   *slog.Logger

	refreshCh chan int64

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func New(rankings *ranking.Service, s store.Store, h hermes.Client, sess session.Session, projects []int64, interval time.Duration, logger *slog.Logger) *Watcher {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Watcher{
		rankings:  rankings,
		store:     s,
		hermes:    h,
		sess:      sess,
		projects:  projects,
		interval:  interval,
		logger:    logger,
		refreshCh: make(chan int64, 64),
		stopCh:    make(chan struct{}),
	}
}

func (w *Watcher) Start(ctx context.Context) {
	w.wg.Add(1)
	go w.loop(ctx)
}

func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	w.wg.Wait()
}

// Refresh queues an out-of-cycle check for one project. It never blocks; a
// full queue drops the request since the next tick covers it.
func (w *Watcher) Refresh(projectID int64) {
	select {
	case w.refreshCh <- projectID:
	default:
		w.logger.Debug("refresh queue full, dropping", "project_id", projectID)
	}
}

// SetupSubscriptions refreshes a project as soon as new weights are accepted
// or a calculation is requested for it.
func (w *Watcher) SetupSubscriptions() {
	if w.hermes == nil {
		return
	}
	handler := func(subject string, _ []byte) {
		id, err := projectFromSubject(subject)
		if err != nil {
			w.logger.Warn("ignoring event", "subject", subject, "error", err)
			return
		}
		w.Refresh(id)
	}
	for _, subject := range []string{"gdss.weights.*.submitted", "gdss.calculation.*.requested"} {
		if err := w.hermes.Subscribe(subject, handler); err != nil {
			w.logger.Error("subscribe failed", "subject", subject, "error", err)
		}
	}
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ctx.Done():
			return
		case id := <-w.refreshCh:
			if _, _, err := w.Check(ctx, id); err != nil {
				w.logger.Warn("ranking check failed", "project_id", id, "error", err)
			}
		case <-ticker.C:
			w.CheckAll(ctx)
		}
	}
}

func (w *Watcher) CheckAll(ctx context.Context) {
	changed := 0
	for _, id := range w.projects {
		_, ok, err := w.Check(ctx, id)
		if err != nil {
			w.logger.Warn("ranking check failed", "project_id", id, "error", err)
			continue
		}
		if ok {
			changed++
		}
	}
	w.logger.Info("ranking watch cycle", "projects", len(w.projects), "changed", changed)
}

// Check rebuilds one project's ranking and stores a snapshot when it differs
// from the latest one. Incomplete fetches are skipped so a backend outage
// never overwrites a good snapshot with an empty ranking.
func (w *Watcher) Check(ctx context.Context, projectID int64) (*store.RankingSnapshot, bool, error) {
	r := w.rankings.Build(ctx, w.sess, projectID, "")
	if !r.Complete() {
		w.logger.Warn("skipping snapshot, ranking incomplete", "project_id", projectID, "errors", r.FetchErrors)
		return nil, false, nil
	}

	fp := scoring.Fingerprint(r.Entries)
	latest, err := w.store.LatestSnapshot(ctx, projectID)
	if err != nil {
		return nil, false, fmt.Errorf("latest snapshot: %w", err)
	}
	if latest != nil && latest.Fingerprint == fp && latest.Mode == string(r.Mode) {
		return latest, false, nil
	}

	entries, err := json.Marshal(r.Entries)
	if err != nil {
		return nil, false, fmt.Errorf("encode entries: %w", err)
	}
	snap := &store.RankingSnapshot{
		ProjectID:   projectID,
		Mode:        string(r.Mode),
		Fingerprint: fp,
		EntryCount:  len(r.Entries),
		Entries:     entries,
	}
	if err := w.store.SaveSnapshot(ctx, snap); err != nil {
		return nil, false, fmt.Errorf("save snapshot: %w", err)
	}
	metrics.SnapshotsRecorded.Inc()

	ev := hermes.RankingUpdatedEvent{
		ProjectID:    projectID,
		Mode:         snap.Mode,
		Fingerprint:  fp,
		EntryCount:   snap.EntryCount,
		UsedFallback: r.Diagnostics.UsedFallback,
		Placeholders: len(r.Diagnostics.Placeholders),
		SnapshotID:   snap.ID.String(),
		Timestamp:    snap.CreatedAt,
	}
	if r.Summary.Top != nil {
		ev.TopName = r.Summary.Top.Name
	}
	hermes.Emit(w.hermes, w.logger, hermes.SubjectRankingUpdated(projectID), ev)
	w.logger.Info("ranking changed", "project_id", projectID, "entries", snap.EntryCount, "snapshot_id", snap.ID)
	return snap, true, nil
}

// projectFromSubject extracts the project id from gdss.<kind>.<id>.<event>.
func projectFromSubject(subject string) (int64, error) {
	parts := strings.Split(subject, ".")
	if len(parts) != 4 {
		return 0, fmt.Errorf("unexpected subject %q", subject)
	}
	return strconv.ParseInt(parts[2], 10, 64)
}
