package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/logiclue/logiclue/internal/analysis"
)

var batchCmd = &cobra.Command{
	Use:   "batch <file.yaml>",
	Short: "Analyze every question in a YAML batch file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		concurrency, _ := cmd.Flags().GetInt("concurrency")
		asJSON, _ := cmd.Flags().GetBool("json")

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open batch: %w", err)
		}
		reqs, err := analysis.LoadBatch(f)
		f.Close()
		if err != nil {
			return err
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		items := a.svc.AnalyzeBatch(cmd.Context(), reqs, concurrency)

		if asJSON {
			type row struct {
				Index  int              `json:"index"`
				Result *analysis.Result `json:"result,omitempty"`
				Error  string           `json:"error,omitempty"`
			}
			rows := make([]row, len(items))
			for i, it := range items {
				rows[i] = row{Index: it.Index, Result: it.Result}
				if it.Err != nil {
					rows[i].Error = it.Err.Error()
				}
			}
			return writeJSON(cmd, rows)
		}

		w := out(cmd)
		failed := 0
		fmt.Fprintf(w, "%-4s  %-20s  %-7s  %-12s  %s\n", "#", "Method", "Answer", "Question ID", "Status")
		for _, it := range items {
			if it.Err != nil {
				failed++
				fmt.Fprintf(w, "%-4d  %-20s  %-7s  %-12s  ✗ %v\n", it.Index+1, "-", "-", "-", it.Err)
				continue
			}
			an := it.Result.Analysis
			fmt.Fprintf(w, "%-4d  %-20s  %-7s  %-12s  ✓\n", it.Index+1, an.Method, an.CorrectAnswer, truncate(an.QuestionID, 12))
		}
		fmt.Fprintf(w, "\n%d analyzed, %d failed\n", len(items)-failed, failed)
		if failed == len(items) {
			return fmt.Errorf("all %d questions failed", failed)
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().IntP("concurrency", "c", 0, "Parallel requests (default analysis.batch_concurrency)")
	batchCmd.Flags().Bool("json", false, "Print results as JSON")
}
