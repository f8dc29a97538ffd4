package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logiclue/logiclue/internal/classify"
	"github.com/logiclue/logiclue/internal/llm"
	"github.com/logiclue/logiclue/internal/prompt"
	"github.com/logiclue/logiclue/internal/store"
)

const analysisJSON = `{
  "method": "river_crossing",
  "diagram": "[X] ---gap--- [Y]",
  "analysis": {"X_bank": "taxes rose", "Y_bank": "revenue will rise", "gap": "people keep paying", "key_insight": "B cuts the bridge"},
  "correctAnswer": "B",
  "isCorrect": false,
  "correctAnswerExplanation": {"brief": "B shows people stop paying.", "flipTest": "If false, revenue still rises."},
  "userChoiceFeedback": {"errorType": "off_topic", "fork_point": "You read A as relevant.", "user_reasoning": "A mentions taxes.", "bridge_to_correct": "Ask what breaks the bridge."},
  "trapAnalysis": {"option": "A", "attraction": "Same topic", "flaw": "Does not touch the gap"},
  "takeaway": "Attack the bridge, not the banks."
}`

func sampleRequest() *Request {
	return &Request{
		Stimulus:     "The council raised taxes, so revenue will rise.",
		QuestionStem: "Which of the following, if true, most weakens the argument?",
		Options: map[string]string{
			"C": "Spending fell.",
			"A": "Taxes are unpopular.",
			"B": "Many residents stopped paying taxes.",
		},
		UserChoice: "A",
	}
}

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open(context.Background(), store.Config{
		Driver: store.DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestService(t *testing.T, provider llm.Provider) (*Service, *store.Store) {
	t.Helper()
	st := openTestStore(t)
	svc := NewService(provider, Repos{
		Analyses: st.AnalysisRepo(),
		Attempts: st.AttemptRepo(),
		DB:       st,
	}, Config{Provider: "mock"}, nil)
	return svc, st
}

// purposeRecorder wraps a provider and records the purpose of each call.
type purposeRecorder struct {
	llm.Provider
	mu       sync.Mutex
	purposes []string
}

func (p *purposeRecorder) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	p.mu.Lock()
	p.purposes = append(p.purposes, llm.PurposeFrom(ctx))
	p.mu.Unlock()
	return p.Provider.Generate(ctx, req)
}

type failingAnalysisRepo struct{}

func (failingAnalysisRepo) Save(context.Context, *store.AnalysisRecord) (string, error) {
	return "", errors.New("database is locked")
}

func (failingAnalysisRepo) GetByHash(context.Context, string) (*store.StoredAnalysis, error) {
	return nil, nil
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("connection refused") }

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		missing []string
	}{
		{"complete", sampleRequest(), nil},
		{"empty", &Request{}, []string{"stimulus", "questionStem", "options", "userChoice"}},
		{"nil", nil, []string{"stimulus", "questionStem", "options", "userChoice"}},
		{"whitespace stem", func() *Request { r := sampleRequest(); r.QuestionStem = "  "; return r }(), []string{"questionStem"}},
		{"no options", func() *Request { r := sampleRequest(); r.Options = nil; return r }(), []string{"options"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.missing == nil {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.missing, verr.Fields)
			assert.Equal(t, MissingFieldsMessage, verr.Error())
		})
	}
}

func TestAnalyze_HappyPath(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: analysisJSON})
	rec := &purposeRecorder{Provider: mock}
	svc, st := newTestService(t, rec)

	req := sampleRequest()
	res, err := svc.Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, classify.TypeWeaken, res.Classification.Type)
	assert.Equal(t, classify.FamilyRiverCrossing, res.Classification.Family)
	assert.Equal(t, classify.MethodRiverCrossing, res.SuggestedMethod)
	assert.Equal(t, "river_crossing", res.Analysis.Method)
	assert.Equal(t, "B", res.Analysis.CorrectAnswer)
	assert.Equal(t, "off_topic", res.Analysis.UserChoiceFeedback.ErrorType)
	assert.Equal(t, "people keep paying", res.Analysis.Analysis.Gap)
	assert.NotEmpty(t, res.Analysis.QuestionID)

	call, ok := mock.LastCall()
	require.True(t, ok)
	assert.Empty(t, call.System)
	require.Len(t, call.Messages, 1)
	assert.Equal(t, llm.RoleUser, call.Messages[0].Role)
	assert.Contains(t, call.Messages[0].Content, req.QuestionStem)
	assert.Contains(t, call.Messages[0].Content, "(B) Many residents stopped paying taxes.")
	assert.Equal(t, 4000, call.MaxTokens)
	assert.Equal(t, 0.3, call.Temperature)
	assert.True(t, call.JSON)
	assert.Equal(t, []string{llm.PurposeAnalysis}, rec.purposes)

	stored, err := st.AnalysisRepo().GetByHash(context.Background(), store.ContentHash(req.Stimulus, req.QuestionStem))
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, res.Analysis.QuestionID, stored.QuestionID)
	assert.Equal(t, "B", stored.CorrectAnswer)
	assert.Equal(t, store.SourceLLM, stored.SourceType)
	require.Len(t, stored.Options, 3)

	a, b, c := stored.Options[0], stored.Options[1], stored.Options[2]
	assert.Equal(t, "A", a.Letter)
	assert.False(t, a.IsCorrect)
	var optErr map[string]string
	require.NoError(t, json.Unmarshal(a.Error, &optErr))
	assert.Equal(t, "off_topic", optErr["error_type"])
	assert.Equal(t, "Ask what breaks the bridge.", optErr["bridge_to_correct"])

	assert.True(t, b.IsCorrect)
	assert.Equal(t, "B shows people stop paying.", b.ContentBrief)
	assert.Contains(t, string(b.WhyCorrect), "flipTest")

	assert.False(t, c.IsCorrect)
	assert.Empty(t, c.Error)
	assert.Empty(t, c.WhyCorrect)
}

func TestAnalyze_FencedResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: "```json\n" + analysisJSON + "\n```"})
	svc, _ := newTestService(t, mock)

	res, err := svc.Analyze(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "B", res.Analysis.CorrectAnswer)
}

func TestAnalyze_ValidationSkipsProvider(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: analysisJSON})
	svc, _ := newTestService(t, mock)

	_, err := svc.Analyze(context.Background(), &Request{Stimulus: "only this"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, mock.CallCount())
}

func TestAnalyze_ProviderFailures(t *testing.T) {
	tests := []struct {
		name  string
		resp  llm.MockResponse
		check func(t *testing.T, err error)
	}{
		{
			name: "http error",
			resp: llm.MockResponse{Err: &llm.ErrHTTP{StatusCode: 502, Err: errors.New("bad gateway")}},
			check: func(t *testing.T, err error) {
				var e *llm.ErrHTTP
				require.ErrorAs(t, err, &e)
				assert.Equal(t, 502, e.StatusCode)
			},
		},
		{
			name: "empty",
			resp: llm.MockResponse{Err: &llm.ErrEmptyResponse{Model: "mock"}},
			check: func(t *testing.T, err error) {
				var e *llm.ErrEmptyResponse
				require.ErrorAs(t, err, &e)
			},
		},
		{
			name: "not json",
			resp: llm.MockResponse{Content: "I cannot help with that."},
			check: func(t *testing.T, err error) {
				var e *llm.ErrParse
				require.ErrorAs(t, err, &e)
				assert.Equal(t, "I cannot help with that.", e.Content)
			},
		},
		{
			name: "missing correct answer",
			resp: llm.MockResponse{Content: `{"method":"venn","diagram":"x"}`},
			check: func(t *testing.T, err error) {
				var e *llm.ErrParse
				require.ErrorAs(t, err, &e)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, st := newTestService(t, llm.NewMockProvider(tt.resp))
			res, err := svc.Analyze(context.Background(), sampleRequest())
			require.Error(t, err)
			assert.Nil(t, res)
			tt.check(t, err)

			var n int
			require.NoError(t, st.DB().QueryRow("SELECT COUNT(*) FROM questions").Scan(&n))
			assert.Zero(t, n, "nothing may be stored for a failed analysis")
		})
	}
}

func TestAnalyze_PersistenceFailureIsNotFatal(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: analysisJSON})
	svc := NewService(mock, Repos{Analyses: failingAnalysisRepo{}}, Config{}, nil)

	res, err := svc.Analyze(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Empty(t, res.Analysis.QuestionID)
	assert.Equal(t, "river_crossing", res.Analysis.Method)
}

func TestAnalyze_ReusesQuestion(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: analysisJSON},
		llm.MockResponse{Content: analysisJSON},
	)
	svc, _ := newTestService(t, mock)

	first, err := svc.Analyze(context.Background(), sampleRequest())
	require.NoError(t, err)
	second, err := svc.Analyze(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, first.Analysis.QuestionID, second.Analysis.QuestionID)
}

func TestToRecord(t *testing.T) {
	var a Analysis
	require.NoError(t, json.Unmarshal([]byte(analysisJSON), &a))

	req := sampleRequest()
	req.CorrectAnswer = "C"
	req.SourceID = "PT90-S2-Q5"

	rec := toRecord(req, &a)
	assert.Equal(t, "C", rec.CorrectAnswer, "the user's answer key wins")
	assert.True(t, rec.AnswerConflict)
	assert.Equal(t, store.SourceUser, rec.SourceType)
	assert.Equal(t, "If false, revenue still rises.", rec.Summary)
	assert.Equal(t, a.Takeaway, rec.SkillPoint)
	assert.JSONEq(t, `{"X_bank":"taxes rose","Y_bank":"revenue will rise","gap":"people keep paying","key_insight":"B cuts the bridge"}`, string(rec.Steps))

	a.Method = ""
	a.CorrectAnswer = ""
	rec = toRecord(sampleRequest(), &a)
	assert.Equal(t, "unknown", rec.Method)
	assert.False(t, rec.AnswerConflict)
	assert.Empty(t, rec.OptionAnalyses, "options need a correct answer")
}

func TestExtract(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: `{"description":"Taxes rose so revenue rises.","questionStem":"What weakens it?","userReasoning":"A seemed related."}`,
	})
	rec := &purposeRecorder{Provider: mock}
	svc, _ := newTestService(t, rec)

	out, err := svc.Extract(context.Background(), &ExtractRequest{Text: "a long description", Mode: "review"})
	require.NoError(t, err)
	assert.Equal(t, "Taxes rose so revenue rises.", out.Description)
	assert.Equal(t, "review", out.Mode, "mode is echoed when the model omits it")

	call, _ := mock.LastCall()
	assert.Equal(t, prompt.ExtractSystem, call.System)
	assert.Equal(t, 1000, call.MaxTokens)
	assert.Contains(t, call.Messages[0].Content, "STUCK: Not provided")
	assert.Equal(t, []string{llm.PurposeExtract}, rec.purposes)
}

func TestExtract_RequiresText(t *testing.T) {
	mock := llm.NewMockProvider()
	svc, _ := newTestService(t, mock)

	_, err := svc.Extract(context.Background(), &ExtractRequest{Text: " "})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Text is required", verr.Error())
	assert.Zero(t, mock.CallCount())
}

func TestRecordAttempt(t *testing.T) {
	svc, st := newTestService(t, llm.NewMockProvider())
	fixed := time.UnixMilli(1_700_000_000_000)
	svc.now = func() time.Time { return fixed }

	id, err := svc.RecordAttempt(context.Background(), &AttemptRequest{
		QuestionID: "q1",
		UserChoice: "A",
		ErrorType:  "off_topic",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	attempts, err := st.AttemptRepo().ListByUser(context.Background(), "temp_1700000000000")
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, "off_topic", attempts[0].ErrorType)
	assert.Empty(t, attempts[0].UserNote)
}

func TestRecordAttempt_RequiresQuestionID(t *testing.T) {
	svc, _ := newTestService(t, llm.NewMockProvider())
	_, err := svc.RecordAttempt(context.Background(), &AttemptRequest{UserChoice: "A"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestHealth(t *testing.T) {
	svc, _ := newTestService(t, llm.NewMockProvider())
	h := svc.Health(context.Background())
	assert.True(t, h.OK)
	assert.Equal(t, "ok", h.Database)
	assert.Equal(t, "mock", h.Provider)
	assert.Equal(t, "mock", h.Model)

	down := NewService(llm.NewMockProvider(), Repos{DB: failingPinger{}}, Config{}, nil)
	h = down.Health(context.Background())
	assert.False(t, h.OK)
	assert.Contains(t, h.Database, "connection refused")
}
