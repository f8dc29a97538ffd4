package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/logiclue/logiclue/internal/analysis"
	"github.com/logiclue/logiclue/internal/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a question and the student's choice",
	Long: `Reads a question as JSON (stimulus, questionStem, options, userChoice and
optional correctAnswer) from --file or stdin and prints the explanation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		asJSON, _ := cmd.Flags().GetBool("json")

		var req analysis.Request
		if err := readJSON(cmd, file, &req); err != nil {
			return err
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.svc.Analyze(cmd.Context(), &req)
		if err != nil {
			return err
		}

		if asJSON {
			return writeJSON(cmd, res)
		}
		return report.Analysis(out(cmd), res)
	},
}

// readJSON decodes path, or stdin when path is empty or "-".
func readJSON(cmd *cobra.Command, path string, v any) error {
	var r io.Reader = cmd.InOrStdin()
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}
	return nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(out(cmd))
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	analyzeCmd.Flags().StringP("file", "f", "", "Question JSON file (default stdin)")
	analyzeCmd.Flags().Bool("json", false, "Print the raw result as JSON")
}
