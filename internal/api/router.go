package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/backend"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/config"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/hermes"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/ranking"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/scoring"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/store"
)

func NewRouter(b backend.Client, s store.Store, h hermes.Client, rankings *ranking.Service, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(cfg.Server.RateLimitRPS, cfg.Server.RateBurst))

	projects := NewProjectsHandler(b, logger)
	rankingHandler := NewRankingHandler(rankings)
	weights := NewWeightsHandler(b, s, h, scoring.NewWeightNormalizer(cfg.Scoring.WeightTolerance), logger)
	admin := NewAdminHandler(b, s, h, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(SessionMiddleware(cfg.Server.AdminToken))

		r.Get("/projects", projects.List)
		r.Get("/projects/{id}", projects.Get)
		r.Get("/projects/{id}/criteria", projects.Criteria)
		r.Get("/projects/{id}/alternatives", projects.Alternatives)
		r.Get("/projects/{id}/ranking", rankingHandler.Get)
		r.Post("/projects/{id}/weights", weights.Submit)

		r.Post("/weights/equal", weights.Equal)
		r.Post("/weights/normalize", weights.Normalize)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware)
			r.Post("/projects/{id}/calculate", admin.Calculate)
			r.Get("/projects/{id}/snapshots", admin.Snapshots)
			r.Get("/snapshots/{snapshotId}", admin.Snapshot)
			r.Get("/projects/{id}/submissions", admin.Submissions)
			r.Get("/users", admin.Users)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
