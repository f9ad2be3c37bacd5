package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/metrics"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/scoring"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/session"
	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/store"
)

var ErrNotFound = errors.New("not found")

// Aggregation methods the backend knows how to run.
var Methods = []string{"ahp", "topsis", "borda", "copeland"}

// Client is the GDSS backend. Every call acts on behalf of the given session.
type Client interface {
	ListProjects(ctx context.Context, sess session.Session) ([]store.Project, error)
	GetProject(ctx context.Context, sess session.Session, projectID int64) (*store.Project, error)
	ListCriteria(ctx context.Context, sess session.Session, projectID int64) ([]store.Criterion, error)
	ListAlternatives(ctx context.Context, sess session.Session, projectID int64) ([]store.Alternative, error)
	ListScores(ctx context.Context, sess session.Session, projectID int64) ([]store.Score, error)
	ListResults(ctx context.Context, sess session.Session, projectID int64) ([]scoring.RawResult, error)
	ListUsers(ctx context.Context, sess session.Session) ([]store.User, error)
	SubmitWeights(ctx context.Context, sess session.Session, a store.WeightAssignment) error
	TriggerCalculation(ctx context.Context, sess session.Session, projectID int64, method string) error
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// doReq sends one request. endpoint is the route template used as a metrics
// label; path is the concrete path.
func (c *HTTPClient) doReq(ctx context.Context, sess session.Session, method, endpoint, path string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.BackendRequestDuration.WithLabelValues(method, endpoint, "error").Observe(time.Since(start).Seconds())
		return nil, err
	}
	defer resp.Body.Close()
	metrics.BackendRequestDuration.WithLabelValues(method, endpoint, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("backend %s %s: %w", method, path, ErrNotFound)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("backend %s %s: %d %s", method, path, resp.StatusCode, string(data))
	}
	return data, nil
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

// decodeList accepts both a bare JSON array and a {"data": [...]} envelope.
func decodeList(data []byte, out interface{}) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			return err
		}
		data = env.Data
	}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(out)
}

func projectPath(projectID int64, suffix string) string {
	return "/projects/" + strconv.FormatInt(projectID, 10) + suffix
}

func (c *HTTPClient) ListProjects(ctx context.Context, sess session.Session) ([]store.Project, error) {
	data, err := c.doReq(ctx, sess, "GET", "/projects", "/projects", nil)
	if err != nil {
		return nil, err
	}
	var projects []store.Project
	if err := decodeList(data, &projects); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}
	return projects, nil
}

func (c *HTTPClient) GetProject(ctx context.Context, sess session.Session, projectID int64) (*store.Project, error) {
	data, err := c.doReq(ctx, sess, "GET", "/projects/{id}", projectPath(projectID, ""), nil)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	var env envelope
	if err := json.Unmarshal(data, &env); err == nil && len(env.Data) > 0 {
		data = env.Data
	}
	var p store.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode project: %w", err)
	}
	return &p, nil
}

func (c *HTTPClient) ListCriteria(ctx context.Context, sess session.Session, projectID int64) ([]store.Criterion, error) {
	data, err := c.doReq(ctx, sess, "GET", "/projects/{id}/criteria", projectPath(projectID, "/criteria"), nil)
	if err != nil {
		return nil, err
	}
	var criteria []store.Criterion
	if err := decodeList(data, &criteria); err != nil {
		return nil, fmt.Errorf("decode criteria: %w", err)
	}
	return criteria, nil
}

func (c *HTTPClient) ListAlternatives(ctx context.Context, sess session.Session, projectID int64) ([]store.Alternative, error) {
	data, err := c.doReq(ctx, sess, "GET", "/projects/{id}/alternatives", projectPath(projectID, "/alternatives"), nil)
	if err != nil {
		return nil, err
	}
	var alternatives []store.Alternative
	if err := decodeList(data, &alternatives); err != nil {
		return nil, fmt.Errorf("decode alternatives: %w", err)
	}
	return alternatives, nil
}

func (c *HTTPClient) ListScores(ctx context.Context, sess session.Session, projectID int64) ([]store.Score, error) {
	data, err := c.doReq(ctx, sess, "GET", "/projects/{id}/scores", projectPath(projectID, "/scores"), nil)
	if err != nil {
		return nil, err
	}
	var scores []store.Score
	if err := decodeList(data, &scores); err != nil {
		return nil, fmt.Errorf("decode scores: %w", err)
	}
	return scores, nil
}

// ListResults returns result rows undecoded; their key casing varies and is
// resolved by the reconciler.
func (c *HTTPClient) ListResults(ctx context.Context, sess session.Session, projectID int64) ([]scoring.RawResult, error) {
	data, err := c.doReq(ctx, sess, "GET", "/projects/{id}/results", projectPath(projectID, "/results"), nil)
	if err != nil {
		return nil, err
	}
	var results []scoring.RawResult
	if err := decodeList(data, &results); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	return results, nil
}

func (c *HTTPClient) ListUsers(ctx context.Context, sess session.Session) ([]store.User, error) {
	data, err := c.doReq(ctx, sess, "GET", "/users", "/users", nil)
	if err != nil {
		return nil, err
	}
	var users []store.User
	if err := decodeList(data, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

type weightItem struct {
	CriterionID int64   `json:"criterion_id"`
	Weight      float64 `json:"weight"`
}

type submitWeightsRequest struct {
	DecisionMakerID int64        `json:"decision_maker_id"`
	Weights         []weightItem `json:"weights"`
}

func (c *HTTPClient) SubmitWeights(ctx context.Context, sess session.Session, a store.WeightAssignment) error {
	req := submitWeightsRequest{DecisionMakerID: a.DecisionMakerID}
	for _, id := range sortedIDs(a.Weights) {
		req.Weights = append(req.Weights, weightItem{CriterionID: id, Weight: a.Weights[id]})
	}
	_, err := c.doReq(ctx, sess, "POST", "/projects/{id}/weights", projectPath(a.ProjectID, "/weights"), req)
	return err
}

func (c *HTTPClient) TriggerCalculation(ctx context.Context, sess session.Session, projectID int64, method string) error {
	_, err := c.doReq(ctx, sess, "POST", "/projects/{id}/calculate", projectPath(projectID, "/calculate"),
		map[string]string{"method": method})
	return err
}

func sortedIDs(w map[int64]float64) []int64 {
	return slices.Sorted(maps.Keys(w))
}
