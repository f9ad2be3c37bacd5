package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("GDSS_RECONCILE_MODE", "")
	t.Setenv("GDSS_WEIGHT_TOLERANCE", "")
	t.Setenv("GDSS_DATABASE_URL", "")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestWeightsEqual(t *testing.T) {
	out, err := run(t, "weights", "equal", "3", "1", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "0.3334")
	assert.Contains(t, out, "Total: 1.0000")
}

func TestWeightsCheck(t *testing.T) {
	out, err := run(t, "weights", "check", "1=0.5", "2=0.5")
	require.NoError(t, err)
	assert.Contains(t, out, "Valid")

	out, err = run(t, "weights", "check", "1=2", "2=6")
	assert.ErrorIs(t, err, errInvalidWeights)
	assert.Contains(t, out, "Invalid")
	assert.Contains(t, out, "0.7500")

	_, err = run(t, "weights", "check", "1:0.5")
	assert.Error(t, err)
}

func TestRanking(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/projects/1/results":
			_, _ = w.Write([]byte(`[{"alternative_id":1,"final_score":0.8,"rank":1},{"alternative_id":2,"final_score":0.5,"rank":2}]`))
		case "/projects/1/alternatives":
			_, _ = w.Write([]byte(`{"data":[{"id":1,"name":"Dina"},{"id":2,"name":"Raka"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	out, err := run(t, "--backend-url", srv.URL, "ranking", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Dina")
	assert.Contains(t, out, "accepted")
	assert.Contains(t, out, "average score: 0.6500")
	assert.Contains(t, out, "Accepted: 2, interview: 0, rejected: 0")

	_, err = run(t, "--backend-url", srv.URL, "ranking", "1", "--mode", "majority")
	assert.Error(t, err)
}

func TestRanking_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	out, err := run(t, "--backend-url", srv.URL, "ranking", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "No results yet.")
}

func TestMigrate_RequiresDatabase(t *testing.T) {
	_, err := run(t, "migrate")
	assert.Error(t, err)
}
