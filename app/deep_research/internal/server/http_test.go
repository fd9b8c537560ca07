package server

import (
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/deep_research/app/deep_research/internal/service"
	"github.com/iWorld-y/deep_research/app/deep_research/pkg/config"
	"github.com/iWorld-y/deep_research/app/deep_research/pkg/engine"
	"github.com/iWorld-y/deep_research/app/deep_research/pkg/llm/llmtest"
)

func newTestServer(t *testing.T) nethttp.Handler {
	t.Helper()
	cfg := config.Default()
	cfg.Research.IterationDelay = -1
	eng, err := engine.New(llmtest.Reply("1. A\n2. B\n3. C"), cfg, nil)
	require.NoError(t, err)
	return NewHTTPServer(cfg.Server, service.NewResearchService(eng, log.DefaultLogger), log.DefaultLogger)
}

func post(t *testing.T, h nethttp.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(nethttp.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestResearchEndpoint(t *testing.T) {
	rec := post(t, newTestServer(t), "/v1/research", `{"query":"X","breadth":2,"depth":1}`)
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())

	var reply service.ResearchReply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.NotEmpty(t, reply.RunID)
	assert.Equal(t, 2, reply.Breadth)
	assert.Equal(t, 1, reply.Depth)
	assert.Contains(t, reply.Report, "### 2. B")
}

func TestQuickEndpoint(t *testing.T) {
	rec := post(t, newTestServer(t), "/v1/research/quick", `{"query":"X"}`)
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"depth":1`)
}

func TestRiskAndChatEndpoints(t *testing.T) {
	h := newTestServer(t)

	rec := post(t, h, "/v1/risk", `{"research_data":"D"}`)
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"assessment"`)

	rec = post(t, h, "/v1/chat", `{"message":"hi"}`)
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"reply"`)
}

func TestEmptyInputIsBadRequest(t *testing.T) {
	h := newTestServer(t)
	for path, body := range map[string]string{
		"/v1/research":       `{"query":""}`,
		"/v1/research/quick": `{}`,
		"/v1/risk":           `{"location":"L"}`,
		"/v1/chat":           `{"message":" "}`,
	} {
		rec := post(t, h, path, body)
		assert.Equal(t, nethttp.StatusBadRequest, rec.Code, path)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	req := httptest.NewRequest(nethttp.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	newTestServer(t).ServeHTTP(rec, req)

	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
