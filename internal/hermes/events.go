package hermes

import "time"

type WeightsSubmittedEvent struct {
	ProjectID       int64             `json:"project_id"`
	DecisionMakerID int64             `json:"decision_maker_id"`
	Weights         map[int64]float64 `json:"weights"`
	Total           float64           `json:"total"`
	SubmissionID    string            `json:"submission_id,omitempty"`
}

type WeightsRejectedEvent struct {
	ProjectID       int64   `json:"project_id"`
	DecisionMakerID int64   `json:"decision_maker_id"`
	Total           float64 `json:"total"`
	Required        float64 `json:"required"`
	Reason          string  `json:"reason"`
}

type RankingUpdatedEvent struct {
	ProjectID    int64     `json:"project_id"`
	Mode         string    `json:"mode"`
	Fingerprint  string    `json:"fingerprint"`
	EntryCount   int       `json:"entry_count"`
	TopName      string    `json:"top_name,omitempty"`
	UsedFallback bool      `json:"used_fallback"`
	Placeholders int       `json:"placeholders"`
	SnapshotID   string    `json:"snapshot_id"`
	Timestamp    time.Time `json:"timestamp"`
}

type CalculationRequestedEvent struct {
	ProjectID   int64  `json:"project_id"`
	Method      string `json:"method"`
	RequestedBy int64  `json:"requested_by"`
}
