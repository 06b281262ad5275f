package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sherpa-labs/sherpa/internal/cache"
	"github.com/sherpa-labs/sherpa/internal/monitoring"
	"github.com/sherpa-labs/sherpa/internal/questionnaire"
	"github.com/sherpa-labs/sherpa/internal/ratelimit"
	"github.com/sherpa-labs/sherpa/internal/scoring"
	"github.com/sherpa-labs/sherpa/internal/store"
	"github.com/sherpa-labs/sherpa/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestApp(t *testing.T) *app {
	t.Helper()

	db, err := store.NewMemoryDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	scorer, err := scoring.NewScorer(questionnaire.Default())
	require.NoError(t, err)

	return &app{
		scorer:  scorer,
		repo:    store.NewRepository(db),
		db:      db,
		cache:   cache.NewCache(time.Minute),
		metrics: monitoring.NewMetrics(),
		logger:  monitoring.NewLogger(),
		limiter: ratelimit.NewRateLimiter(ratelimit.Config{IPLimitPerMin: 1000, BurstMultiplier: 2}),
	}
}

func perform(r *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// answersByPrefix assigns one answer value per question ID prefix, so a
// test can drive whole poles to an extreme in one line.
func answersByPrefix(q *questionnaire.Questionnaire, values map[string]float64) map[string]float64 {
	answers := make(map[string]float64)
	for _, axis := range q.Axes {
		for _, question := range axis.Questions() {
			for prefix, v := range values {
				if strings.HasPrefix(question.ID, prefix) {
					answers[question.ID] = v
				}
			}
		}
	}
	return answers
}

func allRatings(q *questionnaire.Questionnaire, value float64) map[string]float64 {
	ratings := make(map[string]float64, len(q.Criteria))
	for _, c := range q.Criteria {
		ratings[c.ID] = value
	}
	return ratings
}

func evaluateBody(t *testing.T, req types.EvaluateRequest) []byte {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	return body
}

func TestHealth(t *testing.T) {
	r := setupRouter(newTestApp(t))

	w := perform(r, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, version, resp["version"])
}

func TestGetQuestionnaire(t *testing.T) {
	r := setupRouter(newTestApp(t))

	w := perform(r, http.MethodGet, "/questionnaire", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var q questionnaire.Questionnaire
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
	assert.Len(t, q.Axes, 2)
	assert.NotEmpty(t, q.Criteria)
}

func TestEvaluate(t *testing.T) {
	a := newTestApp(t)
	r := setupRouter(a)
	q := a.scorer.Questionnaire()

	answers := answersByPrefix(q, map[string]float64{
		"research_":     1.0,
		"service_":      0.0,
		"intelligence_": 1.0,
		"resource_":     0.0,
	})

	body := evaluateBody(t, types.EvaluateRequest{
		Netuid:  18,
		Name:    "cortex",
		Answers: answers,
		Ratings: allRatings(q, 0.0),
	})

	w := perform(r, http.MethodPost, "/evaluate", body)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp types.EvaluateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.EvaluationID)
	assert.Equal(t, 18, resp.Netuid)
	assert.Equal(t, "cortex", resp.Name)
	assert.Equal(t, scoring.QuadrantResearchIntelligence, resp.Quadrant)

	require.Len(t, resp.Results, 2)
	for _, res := range resp.Results {
		assert.InDelta(t, 10.0, res.Position, 1e-9, "axis %s", res.AxisID)
	}

	require.NotNil(t, resp.Quality)
	assert.InDelta(t, 0.0, resp.Quality.Score, 1e-9)
}

func TestEvaluate_WithoutRatings(t *testing.T) {
	a := newTestApp(t)
	r := setupRouter(a)
	q := a.scorer.Questionnaire()

	answers := answersByPrefix(q, map[string]float64{
		"research_":     0.5,
		"service_":      0.5,
		"intelligence_": 0.5,
		"resource_":     0.5,
	})

	body := evaluateBody(t, types.EvaluateRequest{Netuid: 1, Name: "alpha", Answers: answers})
	w := perform(r, http.MethodPost, "/evaluate", body)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp types.EvaluateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp.Quality)
	for _, res := range resp.Results {
		assert.InDelta(t, 0.0, res.Position, 1e-9)
	}
}

func TestEvaluate_Errors(t *testing.T) {
	a := newTestApp(t)
	q := a.scorer.Questionnaire()

	complete := func() map[string]float64 {
		return answersByPrefix(q, map[string]float64{
			"research_":     0.5,
			"service_":      0.5,
			"intelligence_": 0.5,
			"resource_":     0.5,
		})
	}

	tests := []struct {
		name     string
		body     []byte
		category string
	}{
		{
			name: "malformed json",
			body: []byte("{not json"),
		},
		{
			name: "missing answers",
			body: func() []byte {
				answers := complete()
				delete(answers, "research_deep_problems")
				return evaluateBody(t, types.EvaluateRequest{Netuid: 1, Name: "alpha", Answers: answers})
			}(),
			category: "incomplete_input",
		},
		{
			name: "answer out of range",
			body: func() []byte {
				answers := complete()
				answers["service_working_product"] = 1.5
				return evaluateBody(t, types.EvaluateRequest{Netuid: 1, Name: "alpha", Answers: answers})
			}(),
			category: "out_of_range_answer",
		},
		{
			name: "unknown question",
			body: func() []byte {
				answers := complete()
				answers["nonexistent_question"] = 0.5
				return evaluateBody(t, types.EvaluateRequest{Netuid: 1, Name: "alpha", Answers: answers})
			}(),
			category: "validation",
		},
		{
			name: "unknown subnet without name",
			body: evaluateBody(t, types.EvaluateRequest{Netuid: 99, Answers: complete()}),
			category: "validation",
		},
		{
			name: "partial ratings",
			body: func() []byte {
				ratings := allRatings(q, 0.0)
				delete(ratings, "token_economics")
				return evaluateBody(t, types.EvaluateRequest{Netuid: 1, Name: "alpha", Answers: complete(), Ratings: ratings})
			}(),
			category: "incomplete_input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(a)
			w := perform(r, http.MethodPost, "/evaluate", tt.body)

			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			if tt.category != "" {
				var resp struct {
					Category string `json:"category"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.category, resp.Category)
			}
		})
	}
}

func TestGetSubnet_AfterEvaluate(t *testing.T) {
	a := newTestApp(t)
	r := setupRouter(a)
	q := a.scorer.Questionnaire()

	answers := answersByPrefix(q, map[string]float64{
		"research_":     0.0,
		"service_":      1.0,
		"intelligence_": 0.0,
		"resource_":     1.0,
	})
	body := evaluateBody(t, types.EvaluateRequest{Netuid: 27, Name: "compute", Answers: answers})
	require.Equal(t, http.StatusOK, perform(r, http.MethodPost, "/evaluate", body).Code)

	w := perform(r, http.MethodGet, "/subnets/27", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Subnet           store.Subnet      `json:"subnet"`
		LatestEvaluation *store.Evaluation `json:"latest_evaluation"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "compute", resp.Subnet.Name)
	assert.Equal(t, scoring.QuadrantServiceResource, resp.Subnet.Quadrant)
	require.NotNil(t, resp.Subnet.ServiceResearch)
	assert.InDelta(t, -10.0, *resp.Subnet.ServiceResearch, 1e-9)
	require.NotNil(t, resp.LatestEvaluation)
	assert.Equal(t, 27, resp.LatestEvaluation.Netuid)
}

func TestGetSubnet_NotFound(t *testing.T) {
	r := setupRouter(newTestApp(t))

	w := perform(r, http.MethodGet, "/subnets/404", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = perform(r, http.MethodGet, "/subnets/notanumber", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImportAndList(t *testing.T) {
	a := newTestApp(t)
	r := setupRouter(a)

	csv := "Netuid;Name;Service-Research;Intelligence-Resource;custom-eval\n" +
		"1;alpha;1,5;2,0;3,0\n" +
		"2;beta;-4,0;1,0;7,5\n"

	w := perform(r, http.MethodPost, "/subnets/import", []byte(csv))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var imported types.ImportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &imported))
	assert.Equal(t, 2, imported.Imported)

	w = perform(r, http.MethodGet, "/subnets?sort=quality", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Subnets []store.Subnet `json:"subnets"`
		Count   int            `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, 2, list.Count)
	// beta carries the higher quality score and ranks first
	assert.Equal(t, "beta", list.Subnets[0].Name)
}

func TestImport_BadPayload(t *testing.T) {
	r := setupRouter(newTestApp(t))

	w := perform(r, http.MethodPost, "/subnets/import", []byte("Name;Service-Research\nalpha;1,0\n"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListSubnets_InvalidLimit(t *testing.T) {
	r := setupRouter(newTestApp(t))

	w := perform(r, http.MethodGet, "/subnets?limit=-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsEndpoints(t *testing.T) {
	r := setupRouter(newTestApp(t))

	w := perform(r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Contains(t, stats, "request_count")

	w = perform(r, http.MethodGet, "/cache/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = perform(r, http.MethodGet, "/pools/database", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCachedQuestionnaire(t *testing.T) {
	a := newTestApp(t)
	r := setupRouter(a)

	first := perform(r, http.MethodGet, "/questionnaire", nil)
	second := perform(r, http.MethodGet, "/questionnaire", nil)

	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, a.cache.Size())
}
