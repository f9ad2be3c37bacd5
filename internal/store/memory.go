package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is the audit store used when no database is configured. Its
// contents are lost on restart.
type MemoryStore struct {
	mu          sync.RWMutex
	submissions []*WeightSubmission
	snapshots   []*RankingSnapshot
	now         func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (m *MemoryStore) RecordSubmission(_ context.Context, s *WeightSubmission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = m.now()
	cp := *s
	m.submissions = append(m.submissions, &cp)
	return nil
}

func (m *MemoryStore) ListSubmissions(_ context.Context, filter SubmissionFilter) ([]*WeightSubmission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*WeightSubmission
	for i := len(m.submissions) - 1; i >= 0; i-- {
		s := m.submissions[i]
		if filter.ProjectID != 0 && s.ProjectID != filter.ProjectID {
			continue
		}
		if filter.DecisionMakerID != 0 && s.DecisionMakerID != filter.DecisionMakerID {
			continue
		}
		if filter.Accepted != nil && s.Accepted != *filter.Accepted {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) GetSubmissionStats(_ context.Context, projectID int64) (*SubmissionStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := &SubmissionStats{}
	for _, s := range m.submissions {
		if projectID != 0 && s.ProjectID != projectID {
			continue
		}
		stats.Total++
		if s.Accepted {
			stats.Accepted++
		} else {
			stats.Rejected++
		}
	}
	return stats, nil
}

func (m *MemoryStore) SaveSnapshot(_ context.Context, snap *RankingSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if snap.ID == uuid.Nil {
		snap.ID = uuid.New()
	}
	snap.CreatedAt = m.now()
	cp := *snap
	m.snapshots = append(m.snapshots, &cp)
	return nil
}

func (m *MemoryStore) GetSnapshot(_ context.Context, id uuid.UUID) (*RankingSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.snapshots {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MemoryStore) LatestSnapshot(ctx context.Context, projectID int64) (*RankingSnapshot, error) {
	snaps, err := m.ListSnapshots(ctx, projectID, 1)
	if err != nil || len(snaps) == 0 {
		return nil, err
	}
	return snaps[0], nil
}

func (m *MemoryStore) ListSnapshots(_ context.Context, projectID int64, limit int) ([]*RankingSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*RankingSnapshot
	for i := len(m.snapshots) - 1; i >= 0; i-- {
		s := m.snapshots[i]
		if s.ProjectID == projectID {
			cp := *s
			out = append(out, &cp)
		}
	}
	if limit <= 0 {
		limit = 20
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }
