package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ContentHash identifies a question by its stimulus and stem.
func ContentHash(stimulus, stem string) string {
	sum := sha256.Sum256([]byte(stimulus + stem))
	return hex.EncodeToString(sum[:])
}

type analysisRepo struct {
	s *Store
}

func (r *analysisRepo) Save(ctx context.Context, rec *AnalysisRecord) (string, error) {
	hash := ContentHash(rec.Stimulus, rec.QuestionStem)

	opts, err := json.Marshal(rec.Options)
	if err != nil {
		return "", fmt.Errorf("marshal options: %w", err)
	}
	steps := string(rec.Steps)
	if steps == "" || steps == "null" {
		steps = "{}"
	}

	tx, err := r.s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UnixMilli()

	var questionID string
	err = tx.QueryRowContext(ctx,
		r.s.rebind(`SELECT id FROM questions WHERE content_hash = ?`), hash,
	).Scan(&questionID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		questionID = uuid.NewString()
		_, err = tx.ExecContext(ctx, r.s.rebind(`INSERT INTO questions
			(id, content_hash, stimulus, question_stem, options, correct_answer,
			 source_type, answer_conflict, source_id, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
			questionID, hash, rec.Stimulus, rec.QuestionStem, string(opts),
			nullString(rec.CorrectAnswer), rec.SourceType, rec.AnswerConflict,
			nullString(rec.SourceID), now,
		)
		if err != nil {
			return "", fmt.Errorf("insert question: %w", err)
		}
	case err != nil:
		return "", fmt.Errorf("find question: %w", err)
	}

	_, err = tx.ExecContext(ctx, r.s.rebind(`INSERT INTO analyses
		(id, question_id, method, diagram, steps, summary, skill_point, takeaway, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (question_id) DO UPDATE SET
			method = excluded.method,
			diagram = excluded.diagram,
			steps = excluded.steps,
			summary = excluded.summary,
			skill_point = excluded.skill_point,
			takeaway = excluded.takeaway`),
		uuid.NewString(), questionID, rec.Method, rec.Diagram, steps,
		nullString(rec.Summary), nullString(rec.SkillPoint), nullString(rec.Takeaway), now,
	)
	if err != nil {
		return "", fmt.Errorf("upsert analysis: %w", err)
	}

	for _, o := range rec.OptionAnalyses {
		_, err = tx.ExecContext(ctx, r.s.rebind(`INSERT INTO option_analyses
			(id, question_id, option_letter, is_correct, content_brief, why_correct, error)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (question_id, option_letter) DO UPDATE SET
				is_correct = excluded.is_correct,
				content_brief = excluded.content_brief,
				why_correct = excluded.why_correct,
				error = excluded.error`),
			uuid.NewString(), questionID, o.Letter, o.IsCorrect,
			nullString(o.ContentBrief), nullJSON(o.WhyCorrect), nullJSON(o.Error),
		)
		if err != nil {
			return "", fmt.Errorf("upsert option %s: %w", o.Letter, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return questionID, nil
}

func (r *analysisRepo) GetByHash(ctx context.Context, hash string) (*StoredAnalysis, error) {
	var (
		a        StoredAnalysis
		correct  sql.NullString
		steps    string
		takeaway sql.NullString
	)
	err := r.s.db.QueryRowContext(ctx, r.s.rebind(`SELECT
			q.id, q.content_hash, q.correct_answer, q.source_type,
			a.method, a.diagram, a.steps, a.takeaway
		FROM questions q JOIN analyses a ON a.question_id = q.id
		WHERE q.content_hash = ?`), hash,
	).Scan(&a.QuestionID, &a.ContentHash, &correct, &a.SourceType,
		&a.Method, &a.Diagram, &steps, &takeaway)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query analysis: %w", err)
	}
	a.CorrectAnswer = correct.String
	a.Steps = json.RawMessage(steps)
	a.Takeaway = takeaway.String

	rows, err := r.s.db.QueryContext(ctx, r.s.rebind(`SELECT
			option_letter, is_correct, content_brief, why_correct, error
		FROM option_analyses WHERE question_id = ? ORDER BY option_letter`), a.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("query option analyses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			o                 OptionAnalysis
			brief, why, errJS sql.NullString
		)
		if err := rows.Scan(&o.Letter, &o.IsCorrect, &brief, &why, &errJS); err != nil {
			return nil, fmt.Errorf("scan option analysis: %w", err)
		}
		o.ContentBrief = brief.String
		if why.Valid {
			o.WhyCorrect = json.RawMessage(why.String)
		}
		if errJS.Valid {
			o.Error = json.RawMessage(errJS.String)
		}
		a.Options = append(a.Options, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate option analyses: %w", err)
	}
	return &a, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullJSON(raw json.RawMessage) sql.NullString {
	if len(raw) == 0 || string(raw) == "null" {
		return sql.NullString{}
	}
	return sql.NullString{String: string(raw), Valid: true}
}
