package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/realtime-ai/textseg/pkg/tokenizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestServer(t *testing.T, cfg *ServerConfig, tokCfg *tokenizer.RuleConfig) (*Server, *httptest.Server) {
	t.Helper()
	srv := NewServer(cfg, tokCfg, nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func post(t *testing.T, ts *httptest.Server, path, body string, header http.Header) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, ts.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestHandleTokenize(t *testing.T) {
	_, ts := newTestServer(t, nil, nil)

	tests := []struct {
		name     string
		body     string
		expected []string
	}{
		{
			name:     "normalizes by default",
			body:     `{"text": "Cæsar -- won."}`,
			expected: []string{"Caesar ", "- ", "won", "."},
		},
		{
			name:     "normalization switched off",
			body:     `{"text": "Cæsar -- won.", "normalize_ascii": false}`,
			expected: []string{"Cæsar ", "-- ", "won", "."},
		},
		{
			name:     "empty text",
			body:     `{"text": ""}`,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := post(t, ts, "/v1/tokenize", tt.body, nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

			var got tokenizeResponse
			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, tt.expected, got.Tokens)
			assert.Equal(t, resp.Header.Get(RequestIDHeader), got.RequestID)
		})
	}
}

func TestHandleTokenize_EmptyTextEncodesEmptyList(t *testing.T) {
	_, ts := newTestServer(t, nil, nil)

	_, data := post(t, ts, "/v1/tokenize", `{"text": ""}`, nil)
	assert.Contains(t, string(data), `"tokens":[]`)
}

func TestHandleSentences(t *testing.T) {
	_, ts := newTestServer(t, nil, nil)

	tests := []struct {
		name     string
		body     string
		expected [][]string
	}{
		{
			name:     "strips whitespace by default",
			body:     `{"text": "Hi. Bye."}`,
			expected: [][]string{{"Hi", "."}, {"Bye", "."}},
		},
		{
			name:     "keeps whitespace on request",
			body:     `{"text": "Hi. Bye.", "keep_whitespace": true}`,
			expected: [][]string{{"Hi", ". "}, {"Bye", "."}},
		},
		{
			name: "abbreviation does not end a sentence",
			body: `{"text": "Mr. Smith went home. He slept."}`,
			expected: [][]string{
				{"Mr.", "Smith", "went", "home", "."},
				{"He", "slept", "."},
			},
		},
		{
			name:     "empty text",
			body:     `{"text": ""}`,
			expected: [][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := post(t, ts, "/v1/sentences", tt.body, nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var got sentencesResponse
			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, tt.expected, got.Sentences)
		})
	}
}

func TestHandleSentences_ServerDefaults(t *testing.T) {
	_, ts := newTestServer(t, nil, &tokenizer.RuleConfig{NormalizeASCII: true, KeepWhitespace: true})

	_, data := post(t, ts, "/v1/sentences", `{"text": "Hi. Bye."}`, nil)
	var got sentencesResponse
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, [][]string{{"Hi", ". "}, {"Bye", "."}}, got.Sentences)

	// a request override still wins
	_, data = post(t, ts, "/v1/sentences", `{"text": "Hi. Bye.", "keep_whitespace": false}`, nil)
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, [][]string{{"Hi", "."}, {"Bye", "."}}, got.Sentences)
}

func TestHandleSentences_FollowsTokenizerConfigSwap(t *testing.T) {
	srv, ts := newTestServer(t, nil, nil)
	require.NoError(t, srv.Tokenizer().SetConfig(&tokenizer.RuleConfig{KeepWhitespace: true}))

	_, data := post(t, ts, "/v1/sentences", `{"text": "Hi. Bye."}`, nil)
	var got sentencesResponse
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, [][]string{{"Hi", ". "}, {"Bye", "."}}, got.Sentences)
}

func TestHandleBatch(t *testing.T) {
	_, ts := newTestServer(t, nil, nil)

	resp, data := post(t, ts, "/v1/batch",
		`{"texts": ["Hi. Bye.", "", "Mr. Smith went home. He slept."]}`, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got batchResponse
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, [][][]string{
		{{"Hi", "."}, {"Bye", "."}},
		{},
		{{"Mr.", "Smith", "went", "home", "."}, {"He", "slept", "."}},
	}, got.Results)
}

func TestHandleBatch_TooManyTexts(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.MaxBatchSize = 2
	_, ts := newTestServer(t, cfg, nil)

	resp, _ := post(t, ts, "/v1/batch", `{"texts": ["a", "b", "c"]}`, nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestBadRequests(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.MaxTextBytes = 64
	_, ts := newTestServer(t, cfg, nil)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{name: "malformed json", path: "/v1/tokenize", body: `{"text": `, status: http.StatusBadRequest},
		{name: "missing text", path: "/v1/tokenize", body: `{}`, status: http.StatusBadRequest},
		{name: "missing text in sentences", path: "/v1/sentences", body: `{"keep_whitespace": true}`, status: http.StatusBadRequest},
		{name: "missing texts", path: "/v1/batch", body: `{}`, status: http.StatusBadRequest},
		{name: "wrong type", path: "/v1/sentences", body: `{"text": 42}`, status: http.StatusBadRequest},
		{
			name:   "oversize body",
			path:   "/v1/sentences",
			body:   `{"text": "` + strings.Repeat("word ", 40) + `"}`,
			status: http.StatusRequestEntityTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := post(t, ts, tt.path, tt.body, nil)
			assert.Equal(t, tt.status, resp.StatusCode)

			var got errorResponse
			require.NoError(t, json.Unmarshal(data, &got))
			assert.NotEmpty(t, got.Error)
			assert.NotEmpty(t, got.RequestID)
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	_, ts := newTestServer(t, nil, nil)

	resp, err := ts.Client().Get(ts.URL + "/v1/tokenize")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRequestID(t *testing.T) {
	_, ts := newTestServer(t, nil, nil)

	resp, data := post(t, ts, "/v1/tokenize", `{"text": "hi"}`, http.Header{RequestIDHeader: {"req-42"}})
	assert.Equal(t, "req-42", resp.Header.Get(RequestIDHeader))
	assert.Contains(t, string(data), `"request_id":"req-42"`)

	resp, _ = post(t, ts, "/v1/tokenize", `{"text": "hi"}`, nil)
	_, err := uuid.Parse(resp.Header.Get(RequestIDHeader))
	assert.NoError(t, err)
}

func TestAuthToken(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.AuthToken = "secret"
	_, ts := newTestServer(t, cfg, nil)

	resp, _ := post(t, ts, "/v1/tokenize", `{"text": "hi"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = post(t, ts, "/v1/tokenize", `{"text": "hi"}`, http.Header{"Authorization": {"Bearer wrong"}})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = post(t, ts, "/v1/tokenize", `{"text": "hi"}`, http.Header{"Authorization": {"Bearer secret"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// health and metrics stay open
	health, err := ts.Client().Get(ts.URL + "/healthz")
	require.NoError(t, err)
	health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t, nil, nil)

	resp, err := ts.Client().Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestMetricsEndpoint(t *testing.T) {
	srv, ts := newTestServer(t, nil, nil)

	post(t, ts, "/v1/tokenize", `{"text": "Hi. Bye."}`, nil)
	post(t, ts, "/v1/tokenize", `{}`, nil)
	post(t, ts, "/v1/sentences", `{"text": "Hi. Bye."}`, nil)

	m := srv.Metrics()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/v1/tokenize", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/v1/tokenize", "400")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/v1/sentences", "200")))

	resp, err := ts.Client().Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "textseg_requests_total")
	assert.Contains(t, string(body), "textseg_sentences_per_text_count 1")
	assert.Contains(t, string(body), "textseg_tokens_per_text_count 2")
}

func TestWriteJSON_LogsEncodeFailure(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	srv := NewServer(nil, nil, zap.New(core))

	h := srv.withRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srv.writeJSON(w, r, http.StatusOK, map[string]any{"unencodable": make(chan int)})
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	entries := logs.FilterMessage("failed to write response").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "req-42", entries[0].ContextMap()["request_id"])
	assert.Contains(t, entries[0].ContextMap()["error"], "unsupported type")
}
