package store

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	s, err := Open(context.Background(), Config{Driver: DriverSQLite, DSN: dsn})
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestOpen_Errors(t *testing.T) {
	ctx := context.Background()
	if _, err := Open(ctx, Config{Driver: "mysql", DSN: "x"}); err == nil {
		t.Error("expected error for unsupported driver")
	}
	if _, err := Open(ctx, Config{Driver: DriverSQLite}); err == nil {
		t.Error("expected error for empty DSN")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		s, err := Open(ctx, Config{DSN: dsn})
		if err != nil {
			t.Fatalf("open #%d: %v", i+1, err)
		}
		s.Close()
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestRebind(t *testing.T) {
	pg := &Store{driver: DriverPostgres}
	got := pg.rebind("SELECT * FROM t WHERE a = ? AND b = ?")
	if want := "SELECT * FROM t WHERE a = $1 AND b = $2"; got != want {
		t.Errorf("rebind = %q, want %q", got, want)
	}
	lite := &Store{driver: DriverSQLite}
	if got := lite.rebind("a = ?"); got != "a = ?" {
		t.Errorf("sqlite rebind changed query: %q", got)
	}
}

func TestContentHash(t *testing.T) {
	h := ContentHash("stim", "stem")
	if len(h) != 64 {
		t.Fatalf("hash length = %d, want 64", len(h))
	}
	if h != ContentHash("stim", "stem") {
		t.Error("hash not deterministic")
	}
	if h == ContentHash("stem", "stim") {
		t.Error("hash ignores order")
	}
	// sha256("abc")
	if got := ContentHash("a", "bc"); got != "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad" {
		t.Errorf("ContentHash(a, bc) = %s", got)
	}
}

func sampleRecord() *AnalysisRecord {
	return &AnalysisRecord{
		Stimulus:      "Sales rose after the campaign.",
		QuestionStem:  "Which most weakens the argument?",
		Options:       map[string]string{"A": "a", "B": "b"},
		CorrectAnswer: "B",
		SourceType:    SourceLLM,
		Method:        "river_crossing",
		Diagram:       "X ---> Y",
		Steps:         json.RawMessage(`{"gap":"timing"}`),
		Summary:       "flip",
		SkillPoint:    "check timing",
		Takeaway:      "check timing",
		OptionAnalyses: []OptionAnalysis{
			{Letter: "A", Error: json.RawMessage(`{"error_type":"too_strong"}`)},
			{Letter: "B", IsCorrect: true, ContentBrief: "closes the gap", WhyCorrect: json.RawMessage(`{"brief":"closes the gap"}`)},
		},
	}
}

func TestAnalysisRepo_SaveAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.AnalysisRepo()
	ctx := context.Background()

	rec := sampleRecord()
	id, err := repo.Save(ctx, rec)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if id == "" {
		t.Fatal("expected question id")
	}

	got, err := repo.GetByHash(ctx, ContentHash(rec.Stimulus, rec.QuestionStem))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected stored analysis")
	}
	if got.QuestionID != id {
		t.Errorf("question id = %q, want %q", got.QuestionID, id)
	}
	if got.Method != "river_crossing" || got.CorrectAnswer != "B" || got.SourceType != SourceLLM {
		t.Errorf("unexpected analysis: %+v", got)
	}
	if string(got.Steps) != `{"gap":"timing"}` {
		t.Errorf("steps = %s", got.Steps)
	}
	if len(got.Options) != 2 {
		t.Fatalf("got %d options, want 2", len(got.Options))
	}
	if got.Options[0].Letter != "A" || got.Options[0].IsCorrect || got.Options[0].Error == nil {
		t.Errorf("option A = %+v", got.Options[0])
	}
	if !got.Options[1].IsCorrect || got.Options[1].ContentBrief != "closes the gap" || got.Options[1].Error != nil {
		t.Errorf("option B = %+v", got.Options[1])
	}
}

func TestAnalysisRepo_UpsertReusesQuestion(t *testing.T) {
	s := openTestStore(t)
	repo := s.AnalysisRepo()
	ctx := context.Background()

	first, err := repo.Save(ctx, sampleRecord())
	if err != nil {
		t.Fatalf("save 1: %v", err)
	}

	rec := sampleRecord()
	rec.Method = "venn"
	rec.OptionAnalyses = []OptionAnalysis{{Letter: "A", IsCorrect: true}}
	second, err := repo.Save(ctx, rec)
	if err != nil {
		t.Fatalf("save 2: %v", err)
	}
	if first != second {
		t.Errorf("question ids differ: %q vs %q", first, second)
	}

	for table, want := range map[string]int{"questions": 1, "analyses": 1, "option_analyses": 2} {
		var n int
		if err := s.DB().QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if n != want {
			t.Errorf("%s rows = %d, want %d", table, n, want)
		}
	}

	got, err := repo.GetByHash(ctx, ContentHash(rec.Stimulus, rec.QuestionStem))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Method != "venn" {
		t.Errorf("method = %q, want venn", got.Method)
	}
	if !got.Options[0].IsCorrect {
		t.Error("option A should have been updated to correct")
	}
}

func TestAnalysisRepo_RollbackOnFailure(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := sampleRecord()
	// The trigger fails the option loop after the question row is written.
	rec.OptionAnalyses = append(rec.OptionAnalyses, OptionAnalysis{Letter: "C"})
	if _, err := s.DB().Exec(`CREATE TRIGGER reject_c BEFORE INSERT ON option_analyses
		WHEN NEW.option_letter = 'C' BEGIN SELECT RAISE(ABORT, 'rejected'); END`); err != nil {
		t.Fatalf("create trigger: %v", err)
	}

	if _, err := s.AnalysisRepo().Save(ctx, rec); err == nil {
		t.Fatal("expected save to fail")
	}

	for _, table := range []string{"questions", "analyses", "option_analyses"} {
		var n int
		if err := s.DB().QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if n != 0 {
			t.Errorf("%s has %d rows after rollback, want 0", table, n)
		}
	}
}

func TestAnalysisRepo_GetMissing(t *testing.T) {
	s := openTestStore(t)
	got, err := s.AnalysisRepo().GetByHash(context.Background(), "nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestAttemptRepo_RecordAndList(t *testing.T) {
	s := openTestStore(t)
	repo := s.AttemptRepo()
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	attempts := []*Attempt{
		{UserID: "u1", QuestionID: "q1", UserChoice: "A", IsCorrect: true, UserDifficulty: 3, CreatedAt: base},
		{UserID: "u1", QuestionID: "q2", UserChoice: "C", ErrorType: "too_strong", CreatedAt: base.Add(time.Minute)},
		{UserID: "u2", QuestionID: "q1", UserChoice: "B", CreatedAt: base},
	}
	for _, a := range attempts {
		id, err := repo.Record(ctx, a)
		if err != nil {
			t.Fatalf("record: %v", err)
		}
		if id == "" {
			t.Fatal("expected attempt id")
		}
	}

	got, err := repo.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d attempts, want 2", len(got))
	}
	if got[0].QuestionID != "q2" || got[0].ErrorType != "too_strong" || got[0].UserDifficulty != 0 {
		t.Errorf("newest attempt = %+v", got[0])
	}
	if got[1].QuestionID != "q1" || !got[1].IsCorrect || got[1].UserDifficulty != 3 || got[1].ErrorType != "" {
		t.Errorf("oldest attempt = %+v", got[1])
	}
	if !got[1].CreatedAt.Equal(base) {
		t.Errorf("created_at = %v, want %v", got[1].CreatedAt, base)
	}

	var nulls int
	if err := s.DB().QueryRow(`SELECT COUNT(*) FROM attempts WHERE alt_choice IS NULL AND user_note IS NULL`).Scan(&nulls); err != nil {
		t.Fatalf("count nulls: %v", err)
	}
	if nulls != 3 {
		t.Errorf("empty optional strings stored as NULL in %d rows, want 3", nulls)
	}
}

func TestEventRepo_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "openrouter", Model: "anthropic/claude-sonnet-4", Purpose: "analysis", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true, RequestBody: "req", ResponseBody: "resp"},
		{Provider: "openrouter", Model: "anthropic/claude-sonnet-4", Purpose: "extract", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: true},
		{Provider: "openrouter", Model: "openai/gpt-4o-mini", Purpose: "analysis", InputTokens: 20, OutputTokens: 0, LatencyMs: 400, ErrorMessage: "boom"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d events, want 3", len(all))
	}
	if all[0].ErrorMessage != "boom" {
		t.Errorf("expected newest first, got %+v", all[0])
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1, Purpose: "extract"})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 1 || limited[0].Purpose != "extract" {
		t.Errorf("limited = %+v", limited)
	}

	e, err := repo.GetLLMEvent(ctx, all[2].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil || e.RequestBody != "req" || e.ResponseBody != "resp" || !e.Success {
		t.Errorf("event = %+v", e)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing event")
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 || byPurpose[0].Purpose != "analysis" || byPurpose[0].Calls != 2 || byPurpose[0].InputTokens != 120 || byPurpose[0].AvgLatencyMs != 300 {
		t.Errorf("usage by purpose = %+v", byPurpose)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "anthropic/claude-sonnet-4" || byModel[0].OutputTokens != 55 {
		t.Errorf("usage by model = %+v", byModel)
	}
}

func TestDefaultDBPath_Env(t *testing.T) {
	p := filepath.Join(t.TempDir(), "sub", "x.db")
	t.Setenv("LOGICLUE_DB", p)
	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if got != p {
		t.Errorf("got %q, want %q", got, p)
	}
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LOGICLUE_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if want := filepath.Join(dir, "logiclue", "logiclue.db"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
