package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const submissionColumns = `id, project_id, decision_maker_id, weights, total, accepted, reason, created_at`

func (s *PostgresStore) RecordSubmission(ctx context.Context, sub *WeightSubmission) error {
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	weightsJSON, err := json.Marshal(sub.Weights)
	if err != nil {
		return fmt.Errorf("encode weights: %w", err)
	}
	return s.pool.QueryRow(ctx, `
		INSERT INTO gdss_weight_submissions (id, project_id, decision_maker_id, weights, total, accepted, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		sub.ID, sub.ProjectID, sub.DecisionMakerID, weightsJSON, sub.Total, sub.Accepted, sub.Reason,
	).Scan(&sub.CreatedAt)
}

func (s *PostgresStore) ListSubmissions(ctx context.Context, filter SubmissionFilter) ([]*WeightSubmission, error) {
	query := `SELECT ` + submissionColumns + ` FROM gdss_weight_submissions WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.ProjectID != 0 {
		n++
		query += fmt.Sprintf(" AND project_id = $%d", n)
		args = append(args, filter.ProjectID)
	}
	if filter.DecisionMakerID != 0 {
		n++
		query += fmt.Sprintf(" AND decision_maker_id = $%d", n)
		args = append(args, filter.DecisionMakerID)
	}
	if filter.Accepted != nil {
		n++
		query += fmt.Sprintf(" AND accepted = $%d", n)
		args = append(args, *filter.Accepted)
	}

	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, limit)

	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*WeightSubmission
	for rows.Next() {
		sub := &WeightSubmission{}
		var weightsJSON []byte
		if err := rows.Scan(
			&sub.ID, &sub.ProjectID, &sub.DecisionMakerID, &weightsJSON,
			&sub.Total, &sub.Accepted, &sub.Reason, &sub.CreatedAt,
		); err != nil {
			return nil, err
		}
		if weightsJSON != nil {
			_ = json.Unmarshal(weightsJSON, &sub.Weights)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (s *PostgresStore) GetSubmissionStats(ctx context.Context, projectID int64) (*SubmissionStats, error) {
	stats := &SubmissionStats{}
	err := s.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE accepted),
			COUNT(*) FILTER (WHERE NOT accepted)
		FROM gdss_weight_submissions
		WHERE ($1 = 0 OR project_id = $1)`, projectID,
	).Scan(&stats.Total, &stats.Accepted, &stats.Rejected)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

const snapshotColumns = `id, project_id, mode, fingerprint, entry_count, entries, created_at`

func (s *PostgresStore) SaveSnapshot(ctx context.Context, snap *RankingSnapshot) error {
	if snap.ID == uuid.Nil {
		snap.ID = uuid.New()
	}
	entries := snap.Entries
	if entries == nil {
		entries = json.RawMessage("[]")
	}
	return s.pool.QueryRow(ctx, `
		INSERT INTO gdss_ranking_snapshots (id, project_id, mode, fingerprint, entry_count, entries)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		snap.ID, snap.ProjectID, snap.Mode, snap.Fingerprint, snap.EntryCount, []byte(entries),
	).Scan(&snap.CreatedAt)
}

func (s *PostgresStore) GetSnapshot(ctx context.Context, id uuid.UUID) (*RankingSnapshot, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+snapshotColumns+` FROM gdss_ranking_snapshots WHERE id = $1`, id)
	return scanSnapshot(row)
}

func (s *PostgresStore) LatestSnapshot(ctx context.Context, projectID int64) (*RankingSnapshot, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+snapshotColumns+`
		FROM gdss_ranking_snapshots
		WHERE project_id = $1
		ORDER BY created_at DESC
		LIMIT 1`, projectID)
	return scanSnapshot(row)
}

func (s *PostgresStore) ListSnapshots(ctx context.Context, projectID int64, limit int) ([]*RankingSnapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+snapshotColumns+`
		FROM gdss_ranking_snapshots
		WHERE project_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, projectID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []*RankingSnapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

func scanSnapshot(row pgx.Row) (*RankingSnapshot, error) {
	snap := &RankingSnapshot{}
	var entries []byte
	var createdAt time.Time
	err := row.Scan(&snap.ID, &snap.ProjectID, &snap.Mode, &snap.Fingerprint, &snap.EntryCount, &entries, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	snap.Entries = json.RawMessage(entries)
	snap.CreatedAt = createdAt
	return snap, nil
}
