package store

import (
	"context"
	"encoding/json"
	"time"
)

// Question source types.
const (
	SourceUser = "user"
	SourceLLM  = "llm"
)

// AnalysisRecord is one analyzed question together with its analysis and
// per-option breakdown.
type AnalysisRecord struct {
	Stimulus       string
	QuestionStem   string
	Options        map[string]string
	CorrectAnswer  string
	SourceType     string
	AnswerConflict bool
	SourceID       string

	Method     string
	Diagram    string
	Steps      json.RawMessage
	Summary    string
	SkillPoint string
	Takeaway   string

	OptionAnalyses []OptionAnalysis
}

// OptionAnalysis is the stored breakdown of one answer option.
type OptionAnalysis struct {
	Letter       string
	IsCorrect    bool
	ContentBrief string
	WhyCorrect   json.RawMessage
	Error        json.RawMessage
}

// StoredAnalysis is an analysis row joined with its question.
type StoredAnalysis struct {
	QuestionID    string
	ContentHash   string
	CorrectAnswer string
	SourceType    string
	Method        string
	Diagram       string
	Steps         json.RawMessage
	Takeaway      string
	Options       []OptionAnalysis
}

// AnalysisRepo stores analyzed questions.
type AnalysisRepo interface {
	// Save finds or creates the question by content hash and upserts its
	// analysis and option analyses in one transaction. It returns the
	// question ID.
	Save(ctx context.Context, rec *AnalysisRecord) (string, error)

	// GetByHash returns the stored analysis for a content hash, or nil.
	GetByHash(ctx context.Context, hash string) (*StoredAnalysis, error)
}

// Attempt is one recorded answer by a user.
type Attempt struct {
	ID                string
	UserID            string
	QuestionID        string
	UserChoice        string
	IsCorrect         bool
	ErrorType         string
	UserDifficulty    int
	AltChoice         string
	AltRationaleTag   string
	AltRationaleText  string
	UserCorrectAnswer string
	UserNote          string
	CreatedAt         time.Time
}

// AttemptRepo stores user attempts.
type AttemptRepo interface {
	// Record inserts the attempt and returns its ID.
	Record(ctx context.Context, a *Attempt) (string, error)

	// ListByUser returns the user's attempts, newest first.
	ListByUser(ctx context.Context, userID string) ([]Attempt, error)
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // exact purpose match when set
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates token usage for one purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates token usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event, or nil when it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates successful and failed calls per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates calls per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
