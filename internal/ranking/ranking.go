package ranking

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/backend"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/metrics"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/scoring"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/session"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/store"
)

// Ranking is the display-ready result for one project.
type Ranking struct {
	ProjectID      int64                     `json:"project_id"`
	Mode           scoring.Mode              `json:"mode"`
	Entries        []scoring.RankedEntry     `json:"entries"`
	Summary        scoring.Summary           `json:"summary"`
	Classification []scoring.ClassifiedEntry `json:"classification"`
	ClassCounts    map[scoring.Class]int     `json:"class_counts"`
	Diagnostics    scoring.Diagnostics       `json:"diagnostics"`
	FetchErrors    []string                  `json:"fetch_errors,omitempty"`
}

// Complete reports whether both results and alternatives were fetched.
func (r *Ranking) Complete() bool { return len(r.FetchErrors) == 0 }

type Service struct {
	backend    backend.Client
	reconciler *scoring.Reconciler
	policy     scoring.ClassPolicy
	logger     *slog.Logger
}

func NewService(b backend.Client, r *scoring.Reconciler, policy scoring.ClassPolicy, logger *slog.Logger) *Service {
	return &Service{backend: b, reconciler: r, policy: policy, logger: logger}
}

func (s *Service) DefaultMode() scoring.Mode { return s.reconciler.Mode() }

// Build fetches results and alternatives concurrently and reconciles them.
// A failed fetch is logged and treated as an empty collection, so Build
// always returns a ranking; FetchErrors records what was missing.
func (s *Service) Build(ctx context.Context, sess session.Session, projectID int64, mode scoring.Mode) *Ranking {
	var (
		results      []scoring.RawResult
		alternatives []store.Alternative
		resultsErr   error
		altsErr      error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		results, resultsErr = s.backend.ListResults(gctx, sess, projectID)
		return nil
	})
	g.Go(func() error {
		alternatives, altsErr = s.backend.ListAlternatives(gctx, sess, projectID)
		return nil
	})
	_ = g.Wait()

	out := &Ranking{ProjectID: projectID}
	if resultsErr != nil {
		s.logger.Warn("fetch results failed, treating as empty", "project_id", projectID, "error", resultsErr)
		out.FetchErrors = append(out.FetchErrors, "results: "+resultsErr.Error())
		results = nil
	}
	if altsErr != nil {
		s.logger.Warn("fetch alternatives failed, treating as empty", "project_id", projectID, "error", altsErr)
		out.FetchErrors = append(out.FetchErrors, "alternatives: "+altsErr.Error())
		alternatives = nil
	}

	rec := s.reconciler.Reconcile(results, alternatives, mode)
	metrics.Reconciliations.WithLabelValues(string(rec.Mode)).Inc()
	metrics.ReconcilePlaceholders.Add(float64(len(rec.Diagnostics.Placeholders)))
	metrics.ReconcileDropped.Add(float64(rec.Diagnostics.Invalid))

	out.Mode = rec.Mode
	out.Entries = rec.Entries
	out.Diagnostics = rec.Diagnostics
	out.Summary = scoring.Summarize(rec.Entries)
	out.Classification = scoring.Classify(rec.Entries, s.policy)
	out.ClassCounts = scoring.CountByClass(out.Classification)
	return out
}
