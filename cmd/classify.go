package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/logiclue/logiclue/internal/classify"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <stem>",
	Short: "Classify a question stem without calling an LLM",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stimulus, _ := cmd.Flags().GetString("stimulus")
		asJSON, _ := cmd.Flags().GetBool("json")
		stem := strings.Join(args, " ")

		c := classify.ClassifyWithStimulus(stem, stimulus)
		match, matched := classify.SelectTrigger(stem, stimulus)
		method := classify.MethodFor(match, matched)

		if asJSON {
			enc := json.NewEncoder(out(cmd))
			enc.SetIndent("", "  ")
			view := struct {
				classify.Classification
				SelectedMethod classify.Method `json:"selectedMethod"`
				TriggerPhrase  string          `json:"triggerPhrase,omitempty"`
			}{Classification: c, SelectedMethod: method}
			if matched {
				view.TriggerPhrase = match.Phrase
			}
			return enc.Encode(view)
		}

		w := out(cmd)
		fmt.Fprintf(w, "Type:     %s\n", c.Type)
		fmt.Fprintf(w, "Family:   %s\n", c.Family)
		fmt.Fprintf(w, "Methods:  %s\n", joinMethods(c.PrimaryMethods))
		fmt.Fprintf(w, "Selected: %s\n", method)
		if matched {
			fmt.Fprintf(w, "Trigger:  %q -> %s (priority %d)\n", match.Phrase, match.Method, match.Priority)
		} else {
			fmt.Fprintln(w, "Trigger:  none, using fallback")
		}
		return nil
	},
}

func joinMethods(ms []classify.Method) string {
	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = string(m)
	}
	return strings.Join(parts, ", ")
}

func init() {
	classifyCmd.Flags().StringP("stimulus", "s", "", "Stimulus text, consulted when the stem alone is inconclusive")
	classifyCmd.Flags().Bool("json", false, "Print JSON")
}
