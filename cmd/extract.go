package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/logiclue/logiclue/internal/analysis"
)

var extractCmd = &cobra.Command{
	Use:   "extract <text>",
	Short: "Turn a free-text description of a question into structured fields",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stuck, _ := cmd.Flags().GetString("stuck")
		mode, _ := cmd.Flags().GetString("mode")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ex, err := a.svc.Extract(cmd.Context(), &analysis.ExtractRequest{
			Text:  strings.Join(args, " "),
			Stuck: stuck,
			Mode:  mode,
		})
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd, ex)
		}

		w := out(cmd)
		fmt.Fprintf(w, "Description:    %s\n", ex.Description)
		fmt.Fprintf(w, "Question stem:  %s\n", ex.QuestionStem)
		fmt.Fprintf(w, "Your reasoning: %s\n", ex.UserReasoning)
		if ex.Mode != "" {
			fmt.Fprintf(w, "Mode:           %s\n", ex.Mode)
		}
		return nil
	},
}

func init() {
	extractCmd.Flags().String("stuck", "", "Where you got stuck")
	extractCmd.Flags().String("mode", "", "Practice mode label to carry through")
	extractCmd.Flags().Bool("json", false, "Print JSON")
}
