package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logiclue/logiclue/internal/analysis"
	"github.com/logiclue/logiclue/internal/llm"
)

// fakeService lets each test decide what the service returns.
type fakeService struct {
	analyze func(*analysis.Request) (*analysis.Result, error)
	extract func(*analysis.ExtractRequest) (*analysis.Extraction, error)
	attempt func(*analysis.AttemptRequest) (string, error)
	stats   func(string) (*analysis.Stats, error)
	health  analysis.Health
}

func (f *fakeService) Analyze(_ context.Context, req *analysis.Request) (*analysis.Result, error) {
	return f.analyze(req)
}

func (f *fakeService) Extract(_ context.Context, req *analysis.ExtractRequest) (*analysis.Extraction, error) {
	return f.extract(req)
}

func (f *fakeService) RecordAttempt(_ context.Context, req *analysis.AttemptRequest) (string, error) {
	return f.attempt(req)
}

func (f *fakeService) Stats(_ context.Context, userID string) (*analysis.Stats, error) {
	return f.stats(userID)
}

func (f *fakeService) Health(context.Context) analysis.Health { return f.health }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(svc Service) http.Handler {
	return New(DefaultConfig(), svc, quietLogger()).Handler()
}

type response struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	AttemptID  string          `json:"attemptId"`
	Error      string          `json:"error"`
	RawContent string          `json:"rawContent"`
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, response) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp response
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	}
	return rec, resp
}

const analyzeBody = `{
	"stimulus": "The council raised taxes, so revenue will rise.",
	"questionStem": "Which of the following most weakens the argument?",
	"options": {"A": "x", "B": "y"},
	"userChoice": "A"
}`

func TestAnalyze_Success(t *testing.T) {
	svc := &fakeService{analyze: func(req *analysis.Request) (*analysis.Result, error) {
		assert.Equal(t, "A", req.UserChoice)
		return &analysis.Result{Analysis: &analysis.Analysis{
			Method:        "river_crossing",
			CorrectAnswer: "B",
			QuestionID:    "q-1",
		}}, nil
	}}

	rec, resp := do(t, newTestServer(svc), http.MethodPost, "/api/analyze", analyzeBody)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.True(t, resp.Success)

	var a analysis.Analysis
	require.NoError(t, json.Unmarshal(resp.Data, &a))
	assert.Equal(t, "B", a.CorrectAnswer)
	assert.Equal(t, "q-1", a.QuestionID)
}

func TestAnalyze_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantError  string
		wantRaw    string
	}{
		{
			name:       "malformed json",
			body:       `{"stimulus":`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid JSON body",
		},
		{
			name:       "validation",
			body:       analyzeBody,
			err:        &analysis.ValidationError{Fields: []string{"stimulus"}, Message: analysis.MissingFieldsMessage},
			wantStatus: http.StatusBadRequest,
			wantError:  analysis.MissingFieldsMessage,
		},
		{
			name:       "provider status",
			body:       analyzeBody,
			err:        fmt.Errorf("analyze: %w", &llm.ErrHTTP{StatusCode: 502, Err: errors.New("bad gateway")}),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Analysis service error: bad gateway",
		},
		{
			name:       "empty completion",
			body:       analyzeBody,
			err:        &llm.ErrEmptyResponse{Model: "m"},
			wantStatus: http.StatusInternalServerError,
			wantError:  "Empty response from analysis service",
		},
		{
			name:       "unparseable completion",
			body:       analyzeBody,
			err:        &llm.ErrParse{Content: "not json", Err: errors.New("invalid character")},
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to parse analysis response",
			wantRaw:    "not json",
		},
		{
			name:       "other",
			body:       analyzeBody,
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Analysis failed: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{analyze: func(*analysis.Request) (*analysis.Result, error) {
				return nil, tt.err
			}}
			rec, resp := do(t, newTestServer(svc), http.MethodPost, "/api/analyze", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantError, resp.Error)
			assert.Equal(t, tt.wantRaw, resp.RawContent)
		})
	}
}

func TestAnalyze_WithMockProvider(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddResponse(llm.MockResponse{Content: "```json\n{\"method\":\"venn\",\"correctAnswer\":\"B\"}\n```"})
	svc := analysis.NewService(mock, analysis.Repos{}, analysis.Config{}, quietLogger())

	rec, resp := do(t, newTestServer(svc), http.MethodPost, "/api/analyze", analyzeBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, resp.Success)
	assert.JSONEq(t, `"B"`, string(mustField(t, resp.Data, "correctAnswer")))
	assert.Equal(t, 1, mock.CallCount())
}

func TestAnalyze_InvalidRequestSkipsProvider(t *testing.T) {
	mock := llm.NewMockProvider()
	svc := analysis.NewService(mock, analysis.Repos{}, analysis.Config{}, quietLogger())

	rec, resp := do(t, newTestServer(svc), http.MethodPost, "/api/analyze", `{"stimulus":"only this"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, analysis.MissingFieldsMessage, resp.Error)
	assert.Zero(t, mock.CallCount())
}

func mustField(t *testing.T, raw json.RawMessage, key string) json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &m))
	return m[key]
}

func TestExtract(t *testing.T) {
	svc := &fakeService{extract: func(req *analysis.ExtractRequest) (*analysis.Extraction, error) {
		if req.Text == "" {
			return nil, &analysis.ValidationError{Fields: []string{"text"}, Message: "Text is required"}
		}
		return &analysis.Extraction{Description: "d", Mode: req.Mode}, nil
	}}
	h := newTestServer(svc)

	rec, resp := do(t, h, http.MethodPost, "/api/extract", `{"text":"I picked C","mode":"review"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `"review"`, string(mustField(t, resp.Data, "mode")))

	rec, resp = do(t, h, http.MethodPost, "/api/extract", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Text is required", resp.Error)
}

func TestExtract_ProviderFailure(t *testing.T) {
	svc := &fakeService{extract: func(*analysis.ExtractRequest) (*analysis.Extraction, error) {
		return nil, context.DeadlineExceeded
	}}
	rec, resp := do(t, newTestServer(svc), http.MethodPost, "/api/extract", `{"text":"x"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Extraction failed: context deadline exceeded", resp.Error)
}

func TestExtract_ModelErrorsKeepExtractionMessage(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "provider status",
			err:        fmt.Errorf("extract: %w", &llm.ErrHTTP{StatusCode: 502, Err: errors.New("bad gateway")}),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Extraction failed: extract: LLM request failed with status 502: bad gateway",
		},
		{
			name:       "empty completion",
			err:        &llm.ErrEmptyResponse{Model: "m"},
			wantStatus: http.StatusInternalServerError,
			wantError:  `Extraction failed: empty response from model "m"`,
		},
		{
			name:       "unparseable completion",
			err:        &llm.ErrParse{Content: "not json", Err: errors.New("invalid character")},
			wantStatus: http.StatusInternalServerError,
			wantError:  "Extraction failed: invalid LLM response: invalid character",
		},
		{
			name:       "bad input",
			err:        &analysis.ValidationError{Message: "text is required"},
			wantStatus: http.StatusBadRequest,
			wantError:  "text is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{extract: func(*analysis.ExtractRequest) (*analysis.Extraction, error) {
				return nil, tt.err
			}}
			rec, resp := do(t, newTestServer(svc), http.MethodPost, "/api/extract", `{"text":"x"}`)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantError, resp.Error)
			assert.Empty(t, resp.RawContent)
		})
	}
}

func TestAttempt(t *testing.T) {
	svc := &fakeService{attempt: func(req *analysis.AttemptRequest) (string, error) {
		switch req.QuestionID {
		case "":
			return "", &analysis.ValidationError{Message: "questionId is required"}
		case "broken":
			return "", errors.New("database is locked")
		}
		return "att-1", nil
	}}
	h := newTestServer(svc)

	rec, resp := do(t, h, http.MethodPost, "/api/attempt", `{"questionId":"q1","userChoice":"A"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "att-1", resp.AttemptID)

	rec, resp = do(t, h, http.MethodPost, "/api/attempt", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "questionId is required", resp.Error)

	rec, resp = do(t, h, http.MethodPost, "/api/attempt", `{"questionId":"broken"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "database is locked", resp.Error)
}

func TestStats(t *testing.T) {
	svc := &fakeService{stats: func(userID string) (*analysis.Stats, error) {
		if userID == "" {
			return nil, &analysis.ValidationError{Message: "userId required"}
		}
		return analysis.ComputeStats(nil), nil
	}}
	h := newTestServer(svc)

	rec, resp := do(t, h, http.MethodGet, "/api/stats?userId=u1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(mustField(t, resp.Data, "byErrorType")))
	assert.NotEmpty(t, mustField(t, resp.Data, "overview"))

	rec, resp = do(t, h, http.MethodGet, "/api/stats", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "userId required", resp.Error)
}

func TestHealth(t *testing.T) {
	svc := &fakeService{health: analysis.Health{OK: true, Database: "ok", Provider: "openrouter", Model: "m"}}
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	newTestServer(svc).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"database":"ok","provider":"openrouter","model":"m"}`, rec.Body.String())

	svc.health = analysis.Health{OK: false, Database: "error: closed"}
	rec = httptest.NewRecorder()
	newTestServer(svc).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(&fakeService{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analyze", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRecoverer(t *testing.T) {
	svc := &fakeService{analyze: func(*analysis.Request) (*analysis.Result, error) {
		panic("nil map")
	}}
	rec, resp := do(t, newTestServer(svc), http.MethodPost, "/api/analyze", analyzeBody)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "Internal server error", resp.Error)
}

func TestCORS(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CORSOrigins = []string{"https://app.example.com"}
	h := New(cfg, &fakeService{}, quietLogger()).Handler()

	req := httptest.NewRequest(http.MethodOptions, "/api/analyze", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/analyze", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServe_GracefulShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	svc := &fakeService{health: analysis.Health{OK: true}}
	srv := New(DefaultConfig(), svc, quietLogger())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
