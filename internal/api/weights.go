package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/backend"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/hermes"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/metrics"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/scoring"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/session"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/store"
)

type WeightsHandler struct {
	backend    backend.Client
	store      store.Store
	hermes     hermes.Client
	normalizer *scoring.WeightNormalizer
	logger     *slog.Logger
}

func NewWeightsHandler(b backend.Client, s store.Store, h hermes.Client, n *scoring.WeightNormalizer, logger *slog.Logger) *WeightsHandler {
	return &WeightsHandler{backend: b, store: s, hermes: h, normalizer: n, logger: logger}
}

type SubmitWeightsRequest struct {
	DecisionMakerID int64           `json:"decision_maker_id" validate:"gte=0"`
	Weights         scoring.Weights `json:"weights" validate:"required,min=1"`
}

type EqualWeightsRequest struct {
	CriterionIDs []int64 `json:"criterion_ids" validate:"required,min=1,dive,gt=0"`
}

type NormalizeWeightsRequest struct {
	Weights scoring.Weights `json:"weights" validate:"required,min=1"`
}

type WeightsResponse struct {
	Weights scoring.Weights `json:"weights"`
	Total   float64         `json:"total"`
}

// Submit validates a decision maker's weights locally and forwards them to
// the backend only when they sum to 1.0 within tolerance.
func (h *WeightsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	projectID, err := projectIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req SubmitWeightsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, _ := session.FromContext(r.Context())
	dmID := req.DecisionMakerID
	if dmID == 0 {
		dmID = sess.UserID
	}
	if dmID != sess.UserID && !sess.IsAdmin() {
		writeError(w, http.StatusForbidden, "cannot submit weights for another decision maker")
		return
	}

	criteria, err := h.backend.ListCriteria(r.Context(), sess, projectID)
	if err != nil {
		writeBackendError(w, err)
		return
	}
	if unknown := scoring.UnknownCriteria(req.Weights, criteria); len(unknown) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":    "weights reference unknown or non top-level criteria",
			"criteria": unknown,
		})
		return
	}
	if missing := scoring.MissingCriteria(req.Weights, criteria); len(missing) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":    "weights missing for top-level criteria",
			"criteria": missing,
		})
		return
	}

	total := scoring.ComputeTotal(req.Weights)
	if err := h.normalizer.Validate(req.Weights); err != nil {
		metrics.WeightValidations.WithLabelValues("rejected").Inc()
		h.audit(r, &store.WeightSubmission{
			ProjectID:       projectID,
			DecisionMakerID: dmID,
			Weights:         req.Weights,
			Total:           total,
			Reason:          err.Error(),
		})
		hermes.Emit(h.hermes, h.logger, hermes.SubjectWeightsRejected(projectID), hermes.WeightsRejectedEvent{
			ProjectID:       projectID,
			DecisionMakerID: dmID,
			Total:           total,
			Required:        scoring.RequiredTotal,
			Reason:          err.Error(),
		})

		var totalErr *scoring.WeightTotalError
		if errors.As(err, &totalErr) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"error":    totalErr.Error(),
				"total":    scoring.Round(totalErr.Total),
				"required": totalErr.Required,
			})
			return
		}
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	assignment := store.WeightAssignment{ProjectID: projectID, DecisionMakerID: dmID, Weights: req.Weights}
	if err := h.backend.SubmitWeights(r.Context(), sess, assignment); err != nil {
		metrics.WeightValidations.WithLabelValues("backend_error").Inc()
		h.logger.Error("submit weights failed", "project_id", projectID, "dm_id", dmID, "error", err)
		writeBackendError(w, err)
		return
	}
	metrics.WeightValidations.WithLabelValues("accepted").Inc()

	sub := &store.WeightSubmission{
		ProjectID:       projectID,
		DecisionMakerID: dmID,
		Weights:         req.Weights,
		Total:           total,
		Accepted:        true,
	}
	h.audit(r, sub)
	hermes.Emit(h.hermes, h.logger, hermes.SubjectWeightsSubmitted(projectID), hermes.WeightsSubmittedEvent{
		ProjectID:       projectID,
		DecisionMakerID: dmID,
		Weights:         req.Weights,
		Total:           total,
		SubmissionID:    sub.ID.String(),
	})
	writeJSON(w, http.StatusCreated, sub)
}

// audit records a submission. The audit trail never blocks a response.
func (h *WeightsHandler) audit(r *http.Request, sub *store.WeightSubmission) {
	if err := h.store.RecordSubmission(r.Context(), sub); err != nil {
		h.logger.Warn("failed to record weight submission", "project_id", sub.ProjectID, "error", err)
	}
}

func (h *WeightsHandler) Equal(w http.ResponseWriter, r *http.Request) {
	var req EqualWeightsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	weights := scoring.DistributeEqually(req.CriterionIDs)
	writeJSON(w, http.StatusOK, WeightsResponse{Weights: weights, Total: scoring.Round(scoring.ComputeTotal(weights))})
}

// Normalize rescales weights to sum to 1.0. An all-zero assignment is
// returned unchanged.
func (h *WeightsHandler) Normalize(w http.ResponseWriter, r *http.Request) {
	var req NormalizeWeightsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	weights := scoring.NormalizeProportionally(req.Weights)
	writeJSON(w, http.StatusOK, WeightsResponse{Weights: weights, Total: scoring.Round(scoring.ComputeTotal(weights))})
}
