package store

import (
	"testing"
)

func TestCriterionTypeValues(t *testing.T) {
	if CriterionBenefit != "benefit" || CriterionCost != "cost" {
		t.Errorf("unexpected criterion types %q %q", CriterionBenefit, CriterionCost)
	}
}

func TestRoleValues(t *testing.T) {
	if RoleAdmin != "admin" {
		t.Errorf("expected admin, got %s", RoleAdmin)
	}
	if RoleDecisionMaker != "dm" {
		t.Errorf("expected dm, got %s", RoleDecisionMaker)
	}
}

func TestSubmissionFilterDefaults(t *testing.T) {
	f := SubmissionFilter{}
	if f.Limit != 0 {
		t.Errorf("expected 0 default limit, got %d", f.Limit)
	}
	if f.Accepted != nil {
		t.Error("expected nil accepted filter")
	}
}
