package api

import (
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/backend"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/scoring"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/session"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/store"
)

type ProjectsHandler struct {
	backend backend.Client
	logger  *slog.Logger
}

func NewProjectsHandler(b backend.Client, logger *slog.Logger) *ProjectsHandler {
	return &ProjectsHandler{backend: b, logger: logger}
}

func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	projects, err := h.backend.ListProjects(r.Context(), sess)
	if err != nil {
		writeBackendError(w, err)
		return
	}
	if projects == nil {
		projects = []store.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	projectID, err := projectIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sess, _ := session.FromContext(r.Context())
	project, err := h.backend.GetProject(r.Context(), sess, projectID)
	if err != nil {
		writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectsHandler) Criteria(w http.ResponseWriter, r *http.Request) {
	projectID, err := projectIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sess, _ := session.FromContext(r.Context())
	criteria, err := h.backend.ListCriteria(r.Context(), sess, projectID)
	if err != nil {
		writeBackendError(w, err)
		return
	}
	if criteria == nil {
		criteria = []store.Criterion{}
	}
	writeJSON(w, http.StatusOK, criteria)
}

type AlternativeView struct {
	store.Alternative
	Status scoring.EvaluationStatus `json:"status"`
	Detail map[string]string        `json:"detail"`
}

// Alternatives lists the project's alternatives with their evaluation status
// and decoded detail. Scores are optional: when they cannot be fetched every
// alternative is reported as pending.
func (h *ProjectsHandler) Alternatives(w http.ResponseWriter, r *http.Request) {
	projectID, err := projectIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sess, _ := session.FromContext(r.Context())

	var (
		alternatives []store.Alternative
		scores       []store.Score
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		alternatives, err = h.backend.ListAlternatives(ctx, sess, projectID)
		return err
	})
	g.Go(func() error {
		var err error
		scores, err = h.backend.ListScores(ctx, sess, projectID)
		if err != nil {
			h.logger.Warn("fetch scores failed, reporting all alternatives pending", "project_id", projectID, "error", err)
			scores = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		writeBackendError(w, err)
		return
	}

	status := scoring.DeriveStatus(alternatives, scores)
	views := make([]AlternativeView, 0, len(alternatives))
	for _, a := range alternatives {
		views = append(views, AlternativeView{
			Alternative: a,
			Status:      status[a.ID],
			Detail:      a.Detail(),
		})
	}
	writeJSON(w, http.StatusOK, views)
}
