package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/backend"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/hermes"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/session"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/store"
)

type AdminHandler struct {
	backend backend.Client
	store   store.Store
	hermes  hermes.Client
	logger  *slog.Logger
}

func NewAdminHandler(b backend.Client, s store.Store, h hermes.Client, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{backend: b, store: s, hermes: h, logger: logger}
}

type CalculateRequest struct {
	Method string `json:"method" validate:"required,oneof=ahp topsis borda copeland"`
}

func (h *AdminHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	projectID, err := projectIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req CalculateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sess, _ := session.FromContext(r.Context())
	if err := h.backend.TriggerCalculation(r.Context(), sess, projectID, req.Method); err != nil {
		writeBackendError(w, err)
		return
	}
	hermes.Emit(h.hermes, h.logger, hermes.SubjectCalculationRequested(projectID), hermes.CalculationRequestedEvent{
		ProjectID:   projectID,
		Method:      req.Method,
		RequestedBy: sess.UserID,
	})
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "requested", "method": req.Method})
}

func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	users, err := h.backend.ListUsers(r.Context(), sess)
	if err != nil {
		writeBackendError(w, err)
		return
	}
	if users == nil {
		users = []store.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *AdminHandler) Snapshots(w http.ResponseWriter, r *http.Request) {
	projectID, err := projectIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	snaps, err := h.store.ListSnapshots(r.Context(), projectID, queryInt(r, "limit", 20))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if snaps == nil {
		snaps = []*store.RankingSnapshot{}
	}
	writeJSON(w, http.StatusOK, snaps)
}

func (h *AdminHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "snapshotId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid snapshot id")
		return
	}
	snap, err := h.store.GetSnapshot(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if snap == nil {
		writeError(w, http.StatusNotFound, "snapshot not found")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

type SubmissionsResponse struct {
	Submissions []*store.WeightSubmission `json:"submissions"`
	Stats       *store.SubmissionStats    `json:"stats"`
}

func (h *AdminHandler) Submissions(w http.ResponseWriter, r *http.Request) {
	projectID, err := projectIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	filter := store.SubmissionFilter{
		ProjectID: projectID,
		Limit:     queryInt(r, "limit", 100),
		Offset:    queryInt(r, "offset", 0),
	}
	if v := r.URL.Query().Get("accepted"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "accepted must be a boolean")
			return
		}
		filter.Accepted = &b
	}
	if v := r.URL.Query().Get("dm_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "dm_id must be an integer")
			return
		}
		filter.DecisionMakerID = id
	}

	subs, err := h.store.ListSubmissions(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	stats, err := h.store.GetSubmissionStats(r.Context(), projectID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if subs == nil {
		subs = []*store.WeightSubmission{}
	}
	writeJSON(w, http.StatusOK, SubmissionsResponse{Submissions: subs, Stats: stats})
}
