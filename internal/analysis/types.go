// Package analysis orchestrates question analysis: it validates requests,
// classifies the question, prompts the LLM, decodes its answer and records
// the result. It also records attempts and aggregates per-user statistics.
package analysis

import (
	"strings"

	"github.com/logiclue/logiclue/internal/classify"
)

// Request is one question submitted for analysis.
type Request struct {
	Stimulus       string            `json:"stimulus" yaml:"stimulus"`
	QuestionStem   string            `json:"questionStem" yaml:"questionStem"`
	Options        map[string]string `json:"options" yaml:"options"`
	UserChoice     string            `json:"userChoice" yaml:"userChoice"`
	CorrectAnswer  string            `json:"correctAnswer,omitempty" yaml:"correctAnswer,omitempty"`
	SourceID       string            `json:"sourceId,omitempty" yaml:"sourceId,omitempty"`
	AltChoice      string            `json:"altChoice,omitempty" yaml:"altChoice,omitempty"`
	RationaleTag   string            `json:"rationaleTag,omitempty" yaml:"rationaleTag,omitempty"`
	RationaleText  string            `json:"rationaleText,omitempty" yaml:"rationaleText,omitempty"`
	UserDifficulty int               `json:"userDifficulty,omitempty" yaml:"userDifficulty,omitempty"`
}

// MissingFieldsMessage is reported for an incomplete analysis request.
const MissingFieldsMessage = "Missing required fields: stimulus, questionStem, options, userChoice"

// Validate checks the required fields. Whitespace-only values count as
// missing.
func (r *Request) Validate() error {
	if r == nil {
		r = &Request{}
	}
	var missing []string
	if strings.TrimSpace(r.Stimulus) == "" {
		missing = append(missing, "stimulus")
	}
	if strings.TrimSpace(r.QuestionStem) == "" {
		missing = append(missing, "questionStem")
	}
	if len(r.Options) == 0 {
		missing = append(missing, "options")
	}
	if strings.TrimSpace(r.UserChoice) == "" {
		missing = append(missing, "userChoice")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing, Message: MissingFieldsMessage}
	}
	return nil
}

// ValidationError reports a request rejected before any work was done.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Analysis is the structured explanation returned by the model.
type Analysis struct {
	Method                   string             `json:"method"`
	Diagram                  string             `json:"diagram"`
	Analysis                 Breakdown          `json:"analysis"`
	CorrectAnswer            string             `json:"correctAnswer"`
	IsCorrect                bool               `json:"isCorrect"`
	CorrectAnswerExplanation AnswerExplanation  `json:"correctAnswerExplanation"`
	UserChoiceFeedback       UserChoiceFeedback `json:"userChoiceFeedback"`
	TrapAnalysis             TrapAnalysis       `json:"trapAnalysis"`
	Takeaway                 string             `json:"takeaway"`
	QuestionID               string             `json:"questionId"`
}

// Breakdown is the river-crossing decomposition of the argument.
type Breakdown struct {
	XBank      string `json:"X_bank"`
	YBank      string `json:"Y_bank"`
	Gap        string `json:"gap"`
	KeyInsight string `json:"key_insight"`
}

// AnswerExplanation explains why the correct answer works.
type AnswerExplanation struct {
	Brief    string `json:"brief"`
	FlipTest string `json:"flipTest"`
}

// UserChoiceFeedback diagnoses a wrong pick. ErrorType is empty when the
// student was right.
type UserChoiceFeedback struct {
	ErrorType       string `json:"errorType"`
	ForkPoint       string `json:"fork_point"`
	UserReasoning   string `json:"user_reasoning"`
	BridgeToCorrect string `json:"bridge_to_correct"`
}

// TrapAnalysis describes the most tempting wrong option.
type TrapAnalysis struct {
	Option     string `json:"option"`
	Attraction string `json:"attraction"`
	Flaw       string `json:"flaw"`
}

// Result is an analysis together with the local classification that shaped
// its prompt.
type Result struct {
	Analysis        *Analysis               `json:"analysis"`
	Classification  classify.Classification `json:"classification"`
	SuggestedMethod classify.Method         `json:"suggestedMethod"`
}

// ExtractRequest is a free-text description of a question.
type ExtractRequest struct {
	Text  string `json:"text"`
	Stuck string `json:"stuck,omitempty"`
	Mode  string `json:"mode,omitempty"`
}

// Extraction is the structured form of an ExtractRequest.
type Extraction struct {
	Description   string `json:"description"`
	QuestionStem  string `json:"questionStem"`
	UserReasoning string `json:"userReasoning"`
	Mode          string `json:"mode"`
}

// AttemptRequest records the student's answer to an analyzed question.
type AttemptRequest struct {
	UserID            string `json:"userId,omitempty"`
	QuestionID        string `json:"questionId"`
	UserChoice        string `json:"userChoice"`
	IsCorrect         bool   `json:"isCorrect"`
	ErrorType         string `json:"errorType,omitempty"`
	UserDifficulty    int    `json:"userDifficulty,omitempty"`
	AltChoice         string `json:"altChoice,omitempty"`
	AltRationaleTag   string `json:"altRationaleTag,omitempty"`
	AltRationaleText  string `json:"altRationaleText,omitempty"`
	UserCorrectAnswer string `json:"userCorrectAnswer,omitempty"`
	UserNote          string `json:"userNote,omitempty"`
}

// Stats summarizes a user's attempts.
type Stats struct {
	Overview    Overview         `json:"overview"`
	ByErrorType []ErrorTypeCount `json:"byErrorType"`
}

// Overview holds the headline numbers. Accuracy is a percentage.
type Overview struct {
	TotalQuestions int     `json:"totalQuestions"`
	CorrectCount   int     `json:"correctCount"`
	Accuracy       float64 `json:"accuracy"`
	AvgDifficulty  float64 `json:"avgDifficulty"`
}

// ErrorTypeCount is how often one error type was recorded.
type ErrorTypeCount struct {
	ErrorType string `json:"errorType"`
	Display   string `json:"display"`
	Count     int    `json:"count"`
}

// Health reports whether the service can reach its dependencies.
type Health struct {
	OK       bool   `json:"ok"`
	Database string `json:"database"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}
