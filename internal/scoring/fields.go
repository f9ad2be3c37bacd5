package scoring

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// RawResult is a result record as decoded from the backend. Key casing is not
// consistent across backend versions, so fields are read through the alias
// table below.
type RawResult map[string]any

// Field names a logical result attribute.
type Field string

const (
	FieldAlternativeID Field = "alternative_id"
	FieldFinalScore    Field = "final_score"
	FieldRank          Field = "rank"
	FieldDecisionMaker Field = "decision_maker"
)

// fieldAliases lists the accepted keys per field in lookup priority order.
var fieldAliases = map[Field][]string{
	FieldAlternativeID: {"alternative_id", "AlternativeID", "alternativeId"},
	FieldFinalScore:    {"final_score", "FinalScore", "finalScore"},
	FieldRank:          {"rank", "Rank"},
	FieldDecisionMaker: {"decision_maker_id", "DecisionMakerID", "decisionMakerId", "dm_id", "user_id", "UserID"},
}

// Aliases returns the accepted keys for f in priority order.
func Aliases(f Field) []string {
	return append([]string(nil), fieldAliases[f]...)
}

// Fields returns every field that has an alias list.
func Fields() []Field {
	return []Field{FieldAlternativeID, FieldFinalScore, FieldRank, FieldDecisionMaker}
}

// Lookup returns the first non-null value stored under one of f's aliases.
// A key that is present with a null value is treated as absent.
func (r RawResult) Lookup(f Field) (any, string, bool) {
	for _, key := range fieldAliases[f] {
		v, ok := r[key]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		return v, key, true
	}
	return nil, "", false
}

// Record is a result with its fields resolved.
type Record struct {
	AlternativeID   int64
	FinalScore      float64
	Rank            int
	DecisionMakerID *int64

	HasAlternativeID bool
	HasFinalScore    bool
	HasRank          bool
	// UnreadableMarker is set when a DM marker is present but not numeric.
	UnreadableMarker bool
}

// IsConsensus reports whether the record carries no decision maker. An
// explicit zero marker also means consensus.
func (rec Record) IsConsensus() bool {
	if rec.UnreadableMarker {
		return false
	}
	return rec.DecisionMakerID == nil || *rec.DecisionMakerID == 0
}

// Valid reports whether the record is a computed result: it names an
// alternative and has a positive score and rank.
func (rec Record) Valid() bool {
	return rec.HasAlternativeID && rec.HasFinalScore && rec.HasRank &&
		rec.FinalScore > 0 && rec.Rank > 0
}

// Resolve reads every field of r through the alias table. It never fails;
// unreadable fields are reported through the Has* flags.
func (r RawResult) Resolve() Record {
	var rec Record
	if v, _, ok := r.Lookup(FieldAlternativeID); ok {
		rec.AlternativeID, rec.HasAlternativeID = toInt64(v)
	}
	if v, _, ok := r.Lookup(FieldFinalScore); ok {
		rec.FinalScore, rec.HasFinalScore = toFloat(v)
	}
	if v, _, ok := r.Lookup(FieldRank); ok {
		var rank int64
		rank, rec.HasRank = toInt64(v)
		rec.Rank = int(rank)
	}
	if v, _, ok := r.Lookup(FieldDecisionMaker); ok {
		if id, ok := toInt64(v); ok {
			rec.DecisionMakerID = &id
		} else {
			rec.UnreadableMarker = true
		}
	}
	return rec
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case int32:
		f = float64(t)
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func toInt64(v any) (int64, bool) {
	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}
