package session

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/store"
)

func TestFromRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer abc123")
	req.Header.Set("X-User-ID", "42")

	s, err := FromRequest(req, "secret")
	require.NoError(t, err)
	assert.Equal(t, "abc123", s.Token)
	assert.Equal(t, int64(42), s.UserID)
	assert.Equal(t, store.RoleDecisionMaker, s.Role)
	assert.False(t, s.IsAdmin())
}

func TestFromRequest_AdminToken(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer secret")

	s, err := FromRequest(req, "secret")
	require.NoError(t, err)
	assert.True(t, s.IsAdmin())
}

func TestFromRequest_IgnoresRoleHeader(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer abc123")
	req.Header.Set("X-User-Role", "admin")

	s, err := FromRequest(req, "secret")
	require.NoError(t, err)
	assert.False(t, s.IsAdmin())

	// With no admin token configured nobody is admin.
	req.Header.Set("Authorization", "Bearer ")
	_, err = FromRequest(req, "")
	assert.ErrorIs(t, err, ErrNoSession)

	req.Header.Set("Authorization", "Bearer anything")
	s, err = FromRequest(req, "")
	require.NoError(t, err)
	assert.False(t, s.IsAdmin())
}

func TestFromRequest_Errors(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	_, err := FromRequest(req, "")
	assert.ErrorIs(t, err, ErrNoSession)

	req.Header.Set("Authorization", "Basic xyz")
	_, err = FromRequest(req, "")
	assert.ErrorIs(t, err, ErrNoSession)

	req.Header.Set("Authorization", "Bearer abc")
	req.Header.Set("X-User-ID", "dina")
	_, err = FromRequest(req, "")
	assert.Error(t, err)
}

func TestContextRoundTrip(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithSession(context.Background(), Session{Token: "t", UserID: 7})
	s, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(7), s.UserID)
}
