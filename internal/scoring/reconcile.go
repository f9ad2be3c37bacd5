package scoring

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/store"
)

// Mode selects which result rows feed the ranking.
type Mode string

const (
	// ModeConsensusOnly keeps only rows without a decision maker.
	ModeConsensusOnly Mode = "consensus-only"
	// ModeFallbackToAny uses every row when no consensus row exists, which is
	// the case for single-DM projects.
	ModeFallbackToAny Mode = "fallback-to-any"
)

// ParseMode accepts the canonical mode names plus the short forms
// "consensus" and "any". An empty string yields def.
func ParseMode(s string, def Mode) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return def, nil
	case string(ModeConsensusOnly), "consensus":
		return ModeConsensusOnly, nil
	case string(ModeFallbackToAny), "any", "fallback":
		return ModeFallbackToAny, nil
	}
	return "", fmt.Errorf("unknown reconcile mode %q", s)
}

// RankedEntry is one row of the display ranking.
type RankedEntry struct {
	Rank          int     `json:"rank"`
	Name          string  `json:"name"`
	Score         float64 `json:"score"`
	AlternativeID int64   `json:"alternative_id"`
	Placeholder   bool    `json:"placeholder,omitempty"`
}

// Diagnostics counts the soft conditions met while reconciling.
type Diagnostics struct {
	Received     int     `json:"received"`
	Individual   int     `json:"individual"`
	Invalid      int     `json:"invalid"`
	UsedFallback bool    `json:"used_fallback"`
	Placeholders []int64 `json:"placeholders,omitempty"`
}

// Degraded reports whether anything was dropped or substituted.
func (d Diagnostics) Degraded() bool {
	return d.Invalid > 0 || len(d.Placeholders) > 0
}

// Reconciliation is the output of Reconcile.
type Reconciliation struct {
	Mode        Mode          `json:"mode"`
	Entries     []RankedEntry `json:"entries"`
	Diagnostics Diagnostics   `json:"diagnostics"`
}

// PlaceholderName is the display name used when a result references an
// alternative that was not supplied.
func PlaceholderName(id int64) string {
	return fmt.Sprintf("Alternative #%d", id)
}

// Reconcile merges raw result rows with the project's alternatives into a
// ranking sorted by the backend-assigned rank. Rows with a non-positive score
// or rank are placeholders for not-yet-computed results and are dropped.
// Ranks are never recomputed; equal ranks keep their input order.
func Reconcile(results []RawResult, alternatives []store.Alternative, mode Mode) Reconciliation {
	out := Reconciliation{Mode: mode, Entries: []RankedEntry{}}
	out.Diagnostics.Received = len(results)

	records := make([]Record, 0, len(results))
	for _, r := range results {
		records = append(records, r.Resolve())
	}

	selected := make([]Record, 0, len(records))
	for _, rec := range records {
		if rec.IsConsensus() {
			selected = append(selected, rec)
		}
	}
	out.Diagnostics.Individual = len(records) - len(selected)
	if len(selected) == 0 && mode == ModeFallbackToAny && len(records) > 0 {
		selected = records
		out.Diagnostics.Individual = 0
		out.Diagnostics.UsedFallback = true
	}

	names := make(map[int64]string, len(alternatives))
	for _, a := range alternatives {
		names[a.ID] = a.Name
	}

	for _, rec := range selected {
		if !rec.Valid() {
			out.Diagnostics.Invalid++
			continue
		}
		entry := RankedEntry{
			Rank:          rec.Rank,
			Score:         rec.FinalScore,
			AlternativeID: rec.AlternativeID,
		}
		if name, ok := names[rec.AlternativeID]; ok {
			entry.Name = name
		} else {
			entry.Name = PlaceholderName(rec.AlternativeID)
			entry.Placeholder = true
			out.Diagnostics.Placeholders = append(out.Diagnostics.Placeholders, rec.AlternativeID)
		}
		out.Entries = append(out.Entries, entry)
	}

	sort.SliceStable(out.Entries, func(i, j int) bool {
		return out.Entries[i].Rank < out.Entries[j].Rank
	})
	return out
}

// Reconciler applies Reconcile with a default mode and logs soft conditions.
type Reconciler struct {
	mode   Mode
	logger *slog.Logger
}

func NewReconciler(mode Mode, logger *slog.Logger) *Reconciler {
	if mode == "" {
		mode = ModeFallbackToAny
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{mode: mode, logger: logger}
}

func (r *Reconciler) Mode() Mode { return r.mode }

// Reconcile uses mode, or the reconciler's default when mode is empty.
func (r *Reconciler) Reconcile(results []RawResult, alternatives []store.Alternative, mode Mode) Reconciliation {
	if mode == "" {
		mode = r.mode
	}
	rec := Reconcile(results, alternatives, mode)
	if rec.Diagnostics.Degraded() {
		r.logger.Warn("ranking reconciled with gaps",
			"mode", rec.Mode,
			"received", rec.Diagnostics.Received,
			"invalid", rec.Diagnostics.Invalid,
			"placeholders", rec.Diagnostics.Placeholders,
		)
	}
	return rec
}
