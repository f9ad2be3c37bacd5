package store

import (
	"context"

	"github.com/google/uuid"
)

type SubmissionFilter struct {
	ProjectID       int64
	DecisionMakerID int64
	Accepted        *bool
	Limit           int
	Offset          int
}

type SubmissionStats struct {
	Total    int `json:"total"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}

// Store keeps the service's local audit trail. Projects, criteria,
// alternatives, scores and results live in the GDSS backend and are never
// persisted here.
type Store interface {
	RecordSubmission(ctx context.Context, s *WeightSubmission) error
	ListSubmissions(ctx context.Context, filter SubmissionFilter) ([]*WeightSubmission, error)
	GetSubmissionStats(ctx context.Context, projectID int64) (*SubmissionStats, error)

	SaveSnapshot(ctx context.Context, snap *RankingSnapshot) error
	GetSnapshot(ctx context.Context, id uuid.UUID) (*RankingSnapshot, error)
	LatestSnapshot(ctx context.Context, projectID int64) (*RankingSnapshot, error)
	ListSnapshots(ctx context.Context, projectID int64, limit int) ([]*RankingSnapshot, error)

	Close() error
}
