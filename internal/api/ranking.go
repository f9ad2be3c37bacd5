package api

import (
	"net/http"

	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/ranking"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/scoring"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/session"
)

type RankingHandler struct {
	rankings *ranking.Service
}

func NewRankingHandler(svc *ranking.Service) *RankingHandler {
	return &RankingHandler{rankings: svc}
}

// Get returns the reconciled ranking. Backend failures degrade to an empty
// ranking rather than an error status.
func (h *RankingHandler) Get(w http.ResponseWriter, r *http.Request) {
	projectID, err := projectIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	mode, err := scoring.ParseMode(r.URL.Query().Get("mode"), h.rankings.DefaultMode())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sess, _ := session.FromContext(r.Context())
	writeJSON(w, http.StatusOK, h.rankings.Build(r.Context(), sess, projectID, mode))
}
