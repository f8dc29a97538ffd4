package analysis

import "github.com/logiclue/logiclue/internal/llm"

// AnalysisSchema checks the model's analysis JSON. Only the fields the
// service relies on are required; the rest are typed when present.
var AnalysisSchema = &llm.Schema{
	Name:        "question-analysis",
	Description: "Diagram-based explanation of an LSAT question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"method":        map[string]any{"type": "string", "minLength": 1},
			"diagram":       map[string]any{"type": "string"},
			"correctAnswer": map[string]any{"type": "string", "minLength": 1},
			"isCorrect":     map[string]any{"type": "boolean"},
			"takeaway":      map[string]any{"type": "string"},
			"analysis": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"X_bank":      map[string]any{"type": "string"},
					"Y_bank":      map[string]any{"type": "string"},
					"gap":         map[string]any{"type": "string"},
					"key_insight": map[string]any{"type": "string"},
				},
			},
			"correctAnswerExplanation": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"brief":    map[string]any{"type": "string"},
					"flipTest": map[string]any{"type": "string"},
				},
			},
			"userChoiceFeedback": map[string]any{
				"type": []any{"object", "null"},
				"properties": map[string]any{
					"errorType": map[string]any{"type": []any{"string", "null"}},
				},
			},
		},
		"required": []any{"method", "correctAnswer"},
	},
}

// ExtractionSchema checks the model's extraction JSON.
var ExtractionSchema = &llm.Schema{
	Name:        "question-extraction",
	Description: "Structured fields pulled from a free-text question description",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"description":   map[string]any{"type": "string"},
			"questionStem":  map[string]any{"type": "string"},
			"userReasoning": map[string]any{"type": "string"},
			"mode":          map[string]any{"type": []any{"string", "null"}},
		},
		"required": []any{"description"},
	},
}
