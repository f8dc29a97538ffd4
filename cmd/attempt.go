package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/logiclue/logiclue/internal/analysis"
	"github.com/logiclue/logiclue/internal/store"
)

var attemptCmd = &cobra.Command{
	Use:   "attempt",
	Short: "Record an answer to an analyzed question",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		req := &analysis.AttemptRequest{}
		req.QuestionID, _ = f.GetString("question")
		req.UserChoice, _ = f.GetString("choice")
		req.IsCorrect, _ = f.GetBool("correct")
		req.ErrorType, _ = f.GetString("error-type")
		req.UserDifficulty, _ = f.GetInt("difficulty")
		req.UserID, _ = f.GetString("user")
		req.UserNote, _ = f.GetString("note")

		return withStore(cmd, func(st *store.Store) error {
			svc := analysis.NewService(nil, analysis.Repos{Attempts: st.AttemptRepo()}, analysis.Config{}, nil)
			id, err := svc.RecordAttempt(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), id)
			return nil
		})
	},
}

func init() {
	f := attemptCmd.Flags()
	f.String("question", "", "Question ID returned by analyze")
	f.String("choice", "", "The option you picked")
	f.Bool("correct", false, "Whether the pick was correct")
	f.String("error-type", "", "Error type code for a wrong pick")
	f.Int("difficulty", 0, "How hard it felt, 1-5")
	f.String("user", "", "User ID (default: a temporary ID)")
	f.String("note", "", "Free-form note")
	_ = attemptCmd.MarkFlagRequired("question")
}
