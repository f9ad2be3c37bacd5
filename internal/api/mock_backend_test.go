package api

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/scoring"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/session"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/store"
)

// MockBackend implements backend.Client for testing
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) ListProjects(ctx context.Context, sess session.Session) ([]store.Project, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Project), args.Error(1)
}

func (m *MockBackend) GetProject(ctx context.Context, sess session.Session, projectID int64) (*store.Project, error) {
	args := m.Called(ctx, sess, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Project), args.Error(1)
}

func (m *MockBackend) ListCriteria(ctx context.Context, sess session.Session, projectID int64) ([]store.Criterion, error) {
	args := m.Called(ctx, sess, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Criterion), args.Error(1)
}

func (m *MockBackend) ListAlternatives(ctx context.Context, sess session.Session, projectID int64) ([]store.Alternative, error) {
	args := m.Called(ctx, sess, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Alternative), args.Error(1)
}

func (m *MockBackend) ListScores(ctx context.Context, sess session.Session, projectID int64) ([]store.Score, error) {
	args := m.Called(ctx, sess, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Score), args.Error(1)
}

func (m *MockBackend) ListResults(ctx context.Context, sess session.Session, projectID int64) ([]scoring.RawResult, error) {
	args := m.Called(ctx, sess, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]scoring.RawResult), args.Error(1)
}

func (m *MockBackend) ListUsers(ctx context.Context, sess session.Session) ([]store.User, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.User), args.Error(1)
}

func (m *MockBackend) SubmitWeights(ctx context.Context, sess session.Session, a store.WeightAssignment) error {
	args := m.Called(ctx, sess, a)
	return args.Error(0)
}

func (m *MockBackend) TriggerCalculation(ctx context.Context, sess session.Session, projectID int64, method string) error {
	args := m.Called(ctx, sess, projectID, method)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
