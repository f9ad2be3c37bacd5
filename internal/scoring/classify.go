package scoring

// Class is the hiring outcome attached to a ranked candidate.
type Class string

const (
	ClassAccepted  Class = "accepted"
	ClassInterview Class = "interview"
	ClassRejected  Class = "rejected"
)

// ClassPolicy sets how many top-ranked candidates are accepted and how many of
// the following ones are invited to interview. The rest are rejected.
type ClassPolicy struct {
	Accepted  int `yaml:"accepted" json:"accepted"`
	Interview int `yaml:"interview" json:"interview"`
}

func DefaultClassPolicy() ClassPolicy {
	return ClassPolicy{Accepted: 3, Interview: 3}
}

type ClassifiedEntry struct {
	RankedEntry
	Class Class `json:"class"`
}

// Classify labels entries by list position, not by rank value, so shared ranks
// do not widen a bucket.
func Classify(entries []RankedEntry, p ClassPolicy) []ClassifiedEntry {
	accepted := max(p.Accepted, 0)
	interview := max(p.Interview, 0)

	out := make([]ClassifiedEntry, 0, len(entries))
	for i, e := range entries {
		class := ClassRejected
		switch {
		case i < accepted:
			class = ClassAccepted
		case i < accepted+interview:
			class = ClassInterview
		}
		out = append(out, ClassifiedEntry{RankedEntry: e, Class: class})
	}
	return out
}

// CountByClass tallies a classification.
func CountByClass(entries []ClassifiedEntry) map[Class]int {
	counts := map[Class]int{ClassAccepted: 0, ClassInterview: 0, ClassRejected: 0}
	for _, e := range entries {
		counts[e.Class]++
	}
	return counts
}
