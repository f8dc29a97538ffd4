package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type attemptRepo struct {
	s *Store
}

func (r *attemptRepo) Record(ctx context.Context, a *Attempt) (string, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	var difficulty sql.NullInt64
	if a.UserDifficulty > 0 {
		difficulty = sql.NullInt64{Int64: int64(a.UserDifficulty), Valid: true}
	}

	_, err := r.s.db.ExecContext(ctx, r.s.rebind(`INSERT INTO attempts
		(id, user_id, question_id, user_choice, is_correct, error_type, user_difficulty,
		 alt_choice, alt_rationale_tag, alt_rationale_text, user_correct_answer, user_note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		a.ID, a.UserID, a.QuestionID, a.UserChoice, a.IsCorrect,
		nullString(a.ErrorType), difficulty,
		nullString(a.AltChoice), nullString(a.AltRationaleTag), nullString(a.AltRationaleText),
		nullString(a.UserCorrectAnswer), nullString(a.UserNote),
		a.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return "", fmt.Errorf("insert attempt: %w", err)
	}
	return a.ID, nil
}

func (r *attemptRepo) ListByUser(ctx context.Context, userID string) ([]Attempt, error) {
	rows, err := r.s.db.QueryContext(ctx, r.s.rebind(`SELECT
			id, user_id, question_id, user_choice, is_correct, error_type, user_difficulty,
			alt_choice, alt_rationale_tag, alt_rationale_text, user_correct_answer, user_note, created_at
		FROM attempts WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`), userID)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var (
			a                                  Attempt
			errType, alt, tag, text, uca, note sql.NullString
			difficulty                         sql.NullInt64
			created                            int64
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.QuestionID, &a.UserChoice, &a.IsCorrect,
			&errType, &difficulty, &alt, &tag, &text, &uca, &note, &created); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.ErrorType = errType.String
		a.UserDifficulty = int(difficulty.Int64)
		a.AltChoice = alt.String
		a.AltRationaleTag = tag.String
		a.AltRationaleText = text.String
		a.UserCorrectAnswer = uca.String
		a.UserNote = note.String
		a.CreatedAt = time.UnixMilli(created)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return out, nil
}
