package analysis

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/logiclue/logiclue/internal/store"
	"github.com/logiclue/logiclue/internal/taxonomy"
)

// Stats aggregates a user's attempts.
func (s *Service) Stats(ctx context.Context, userID string) (*Stats, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, &ValidationError{Fields: []string{"userId"}, Message: "userId required"}
	}
	if s.repos.Attempts == nil {
		return nil, errors.New("attempt storage is not configured")
	}

	attempts, err := s.repos.Attempts.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return ComputeStats(attempts), nil
}

// ComputeStats summarizes attempts given newest first. Error types are
// counted over incorrect attempts only and sorted by count; equal counts
// keep the order in which the type was first seen.
func ComputeStats(attempts []store.Attempt) *Stats {
	st := &Stats{ByErrorType: []ErrorTypeCount{}}
	st.Overview.TotalQuestions = len(attempts)

	var diffSum, diffN int
	index := map[string]int{}
	for _, a := range attempts {
		if a.IsCorrect {
			st.Overview.CorrectCount++
		}
		if a.UserDifficulty > 0 {
			diffSum += a.UserDifficulty
			diffN++
		}
		if a.IsCorrect || a.ErrorType == "" {
			continue
		}
		if i, ok := index[a.ErrorType]; ok {
			st.ByErrorType[i].Count++
			continue
		}
		index[a.ErrorType] = len(st.ByErrorType)
		st.ByErrorType = append(st.ByErrorType, ErrorTypeCount{
			ErrorType: a.ErrorType,
			Display:   taxonomy.DisplayLabel(a.ErrorType),
			Count:     1,
		})
	}

	if st.Overview.TotalQuestions > 0 {
		st.Overview.Accuracy = roundTenth(float64(st.Overview.CorrectCount) / float64(st.Overview.TotalQuestions) * 100)
	}
	if diffN > 0 {
		st.Overview.AvgDifficulty = roundTenth(float64(diffSum) / float64(diffN))
	}

	slices.SortStableFunc(st.ByErrorType, func(a, b ErrorTypeCount) int {
		return b.Count - a.Count
	})
	return st
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
