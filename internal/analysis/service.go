package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/logiclue/logiclue/internal/classify"
	"github.com/logiclue/logiclue/internal/llm"
	"github.com/logiclue/logiclue/internal/prompt"
	"github.com/logiclue/logiclue/internal/store"
)

// Pinger reports database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Repos bundles the persistence the service writes to. DB may be nil, in
// which case health reports the database as not configured.
type Repos struct {
	Analyses store.AnalysisRepo
	Attempts store.AttemptRepo
	DB       Pinger
}

// Service analyzes questions and records attempts.
type Service struct {
	provider llm.Provider
	repos    Repos
	cfg      Config
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates an analysis service. Zero config values take their
// defaults.
func NewService(provider llm.Provider, repos Repos, cfg Config, logger *slog.Logger) *Service {
	def := DefaultConfig()
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = def.MaxTokens
	}
	if cfg.ExtractMaxTokens <= 0 {
		cfg.ExtractMaxTokens = def.ExtractMaxTokens
	}
	if cfg.BatchConcurrency <= 0 {
		cfg.BatchConcurrency = def.BatchConcurrency
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		provider: provider,
		repos:    repos,
		cfg:      cfg,
		logger:   logger.With("component", "analysis"),
		now:      time.Now,
	}
}

// Analyze validates, classifies and prompts for one question, then stores
// the result. Storage failures are logged and leave QuestionID empty.
func (s *Service) Analyze(ctx context.Context, req *Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	classification := classify.ClassifyWithStimulus(req.QuestionStem, req.Stimulus)
	suggested := classify.SelectMethod(req.QuestionStem, req.Stimulus)

	text, err := prompt.BuildAnalysis(prompt.AnalysisInput{
		Stimulus:      req.Stimulus,
		QuestionStem:  req.QuestionStem,
		Options:       req.Options,
		UserChoice:    req.UserChoice,
		CorrectAnswer: req.CorrectAnswer,
		Context: prompt.UserContext{
			AltChoice:     req.AltChoice,
			RationaleTag:  req.RationaleTag,
			RationaleText: req.RationaleText,
		},
		SuggestedMethod: suggested,
		Classification:  classification,
	})
	if err != nil {
		return nil, err
	}

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, llm.PurposeAnalysis), llm.Request{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: text}},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
		JSON:        true,
	})
	if err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}

	var a Analysis
	if err := llm.Decode(resp.Content, AnalysisSchema, &a); err != nil {
		s.logger.Warn("unparseable analysis response", "error", err, "model", resp.Model)
		return nil, fmt.Errorf("analysis: %w", err)
	}

	if s.repos.Analyses != nil {
		id, err := s.repos.Analyses.Save(ctx, toRecord(req, &a))
		if err != nil {
			s.logger.Error("failed to save analysis", "error", err)
		} else {
			a.QuestionID = id
		}
	}

	s.logger.Info("question analyzed",
		"type", classification.Type,
		"suggested", suggested,
		"method", a.Method,
		"question_id", a.QuestionID)

	return &Result{
		Analysis:        &a,
		Classification:  classification,
		SuggestedMethod: suggested,
	}, nil
}

// toRecord maps a request and its analysis onto the stored shape.
func toRecord(req *Request, a *Analysis) *store.AnalysisRecord {
	rec := &store.AnalysisRecord{
		Stimulus:       req.Stimulus,
		QuestionStem:   req.QuestionStem,
		Options:        req.Options,
		CorrectAnswer:  req.CorrectAnswer,
		SourceType:     store.SourceLLM,
		AnswerConflict: req.CorrectAnswer != "" && req.CorrectAnswer != a.CorrectAnswer,
		SourceID:       req.SourceID,
		Method:         a.Method,
		Diagram:        a.Diagram,
		Steps:          mustJSON(a.Analysis),
		Summary:        a.CorrectAnswerExplanation.FlipTest,
		SkillPoint:     a.Takeaway,
		Takeaway:       a.Takeaway,
	}
	if rec.CorrectAnswer == "" {
		rec.CorrectAnswer = a.CorrectAnswer
	}
	if req.SourceID != "" {
		rec.SourceType = store.SourceUser
	}
	if rec.Method == "" {
		rec.Method = "unknown"
	}

	if a.CorrectAnswer == "" {
		return rec
	}
	for _, opt := range prompt.SortedOptions(req.Options) {
		oa := store.OptionAnalysis{
			Letter:    opt.Letter,
			IsCorrect: opt.Letter == a.CorrectAnswer,
		}
		switch {
		case oa.IsCorrect:
			oa.ContentBrief = a.CorrectAnswerExplanation.Brief
			oa.WhyCorrect = mustJSON(a.CorrectAnswerExplanation)
		case opt.Letter == req.UserChoice:
			oa.Error = mustJSON(optionError{
				ErrorType:       a.UserChoiceFeedback.ErrorType,
				ForkPoint:       a.UserChoiceFeedback.ForkPoint,
				UserReasoning:   a.UserChoiceFeedback.UserReasoning,
				BridgeToCorrect: a.UserChoiceFeedback.BridgeToCorrect,
			})
		}
		rec.OptionAnalyses = append(rec.OptionAnalyses, oa)
	}
	return rec
}

type optionError struct {
	ErrorType       string `json:"error_type"`
	ForkPoint       string `json:"fork_point"`
	UserReasoning   string `json:"user_reasoning"`
	BridgeToCorrect string `json:"bridge_to_correct"`
}

// mustJSON marshals values that contain only strings.
func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("marshal %T: %v", v, err))
	}
	return b
}

// Extract turns a free-text description into structured question fields.
func (s *Service) Extract(ctx context.Context, req *ExtractRequest) (*Extraction, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, &ValidationError{Fields: []string{"text"}, Message: "Text is required"}
	}

	system, user := prompt.BuildExtract(prompt.ExtractInput{
		Text:  req.Text,
		Stuck: req.Stuck,
		Mode:  req.Mode,
	})

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, llm.PurposeExtract), llm.Request{
		System:    system,
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: user}},
		MaxTokens: s.cfg.ExtractMaxTokens,
		JSON:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("extraction: %w", err)
	}

	var out Extraction
	if err := llm.Decode(resp.Content, ExtractionSchema, &out); err != nil {
		return nil, fmt.Errorf("extraction: %w", err)
	}
	if out.Mode == "" {
		out.Mode = req.Mode
	}
	return &out, nil
}

// RecordAttempt stores one answer and returns the attempt ID. A missing
// user ID becomes a temporary one derived from the clock.
func (s *Service) RecordAttempt(ctx context.Context, req *AttemptRequest) (string, error) {
	if strings.TrimSpace(req.QuestionID) == "" {
		return "", &ValidationError{Fields: []string{"questionId"}, Message: "questionId is required"}
	}
	if s.repos.Attempts == nil {
		return "", errors.New("attempt storage is not configured")
	}

	now := s.now()
	userID := req.UserID
	if userID == "" {
		userID = fmt.Sprintf("temp_%d", now.UnixMilli())
	}

	id, err := s.repos.Attempts.Record(ctx, &store.Attempt{
		UserID:            userID,
		QuestionID:        req.QuestionID,
		UserChoice:        req.UserChoice,
		IsCorrect:         req.IsCorrect,
		ErrorType:         req.ErrorType,
		UserDifficulty:    req.UserDifficulty,
		AltChoice:         req.AltChoice,
		AltRationaleTag:   req.AltRationaleTag,
		AltRationaleText:  req.AltRationaleText,
		UserCorrectAnswer: req.UserCorrectAnswer,
		UserNote:          req.UserNote,
		CreatedAt:         now,
	})
	if err != nil {
		return "", fmt.Errorf("record attempt: %w", err)
	}
	return id, nil
}

// Health pings the database and reports the configured model.
func (s *Service) Health(ctx context.Context) Health {
	h := Health{
		OK:       true,
		Database: "ok",
		Provider: s.cfg.Provider,
		Model:    s.provider.ModelID(),
	}
	if s.repos.DB == nil {
		h.Database = "not configured"
		return h
	}
	if err := s.repos.DB.Ping(ctx); err != nil {
		h.OK = false
		h.Database = "error: " + err.Error()
	}
	return h
}
