package store

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CriterionType string

const (
	CriterionBenefit CriterionType = "benefit"
	CriterionCost    CriterionType = "cost"
)

type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

type Criterion struct {
	ID        int64         `json:"id"`
	ProjectID int64         `json:"project_id,omitempty"`
	Name      string        `json:"name"`
	Type      CriterionType `json:"type"`
	Weight    float64       `json:"weight"`
	ParentID  *int64        `json:"parent_id,omitempty"`
}

// IsTopLevel reports whether the criterion has no parent. Only top-level
// criteria take part in a decision maker's weight assignment.
func (c Criterion) IsTopLevel() bool {
	return c.ParentID == nil || *c.ParentID == 0
}

type Alternative struct {
	ID          int64  `json:"id"`
	ProjectID   int64  `json:"project_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Score struct {
	ID              int64   `json:"id,omitempty"`
	ProjectID       int64   `json:"project_id,omitempty"`
	DecisionMakerID int64   `json:"decision_maker_id,omitempty"`
	AlternativeID   int64   `json:"alternative_id"`
	CriterionID     int64   `json:"criterion_id"`
	Value           float64 `json:"score"`
}

type Role string

const (
	RoleAdmin         Role = "admin"
	RoleDecisionMaker Role = "dm"
)

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  Role   `json:"role"`
}

// WeightAssignment is one decision maker's criterion weights for a project.
type WeightAssignment struct {
	ProjectID       int64             `json:"project_id"`
	DecisionMakerID int64             `json:"decision_maker_id"`
	Weights         map[int64]float64 `json:"weights"`
}

// --- Local audit records ---

type WeightSubmission struct {
	ID              uuid.UUID         `json:"id"`
	ProjectID       int64             `json:"project_id"`
	DecisionMakerID int64             `json:"decision_maker_id"`
	Weights         map[int64]float64 `json:"weights"`
	Total           float64           `json:"total"`
	Accepted        bool              `json:"accepted"`
	Reason          string            `json:"reason,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// RankingSnapshot is a reconciled ranking captured at a point in time.
// Entries holds the JSON-encoded ranked list; Fingerprint identifies its content.
type RankingSnapshot struct {
	ID          uuid.UUID       `json:"id"`
	ProjectID   int64           `json:"project_id"`
	Mode        string          `json:"mode"`
	Fingerprint string          `json:"fingerprint"`
	EntryCount  int             `json:"entry_count"`
	Entries     json.RawMessage `json:"entries"`
	CreatedAt   time.Time       `json:"created_at"`
}
