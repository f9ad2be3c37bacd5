package hermes

import "strconv"

const (
	StreamName   = "GDSS_EVENTS"
	StreamMaxAge = "720h" // 30 days

	// SubjectAll matches every subject the service publishes.
	SubjectAll = "gdss.>"
)

func project(id int64) string { return strconv.FormatInt(id, 10) }

func SubjectWeightsSubmitted(projectID int64) string {
	return "gdss.weights." + project(projectID) + ".submitted"
}

func SubjectWeightsRejected(projectID int64) string {
	return "gdss.weights." + project(projectID) + ".rejected"
}

func SubjectRankingUpdated(projectID int64) string {
	return "gdss.ranking." + project(projectID) + ".updated"
}

func SubjectCalculationRequested(projectID int64) string {
	return "gdss.calculation." + project(projectID) + ".requested"
}
