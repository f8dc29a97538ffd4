package cmd

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/logiclue/logiclue/internal/classify"
	"github.com/logiclue/logiclue/internal/taxonomy"
)

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Browse error types, methods and diagram templates",
}

var taxonomyErrorsCmd = &cobra.Command{
	Use:   "errors",
	Short: "List error types by family",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := out(cmd)
		families := taxonomy.ErrorFamilies()
		for _, f := range slices.Sorted(maps.Keys(families)) {
			fmt.Fprintln(w, f)
			for _, code := range families[f] {
				e, _ := taxonomy.GetErrorType(code)
				fmt.Fprintf(w, "  %-24s %s\n", e.Code, e.Name)
				fmt.Fprintf(w, "  %-24s %s\n", "", e.Trigger)
			}
		}
		return nil
	},
}

var taxonomyMethodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "List diagram methods",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := out(cmd)
		for _, m := range taxonomy.MethodDescriptions() {
			fmt.Fprintf(w, "%-22s %s\n", m.Method, m.Description)
		}
		return nil
	},
}

var taxonomyDiagramCmd = &cobra.Command{
	Use:   "diagram [method|template]",
	Short: "Print a diagram template",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := out(cmd)
		if len(args) == 0 {
			fmt.Fprintln(w, strings.Join(taxonomy.DiagramNames(), "\n"))
			return nil
		}
		if m := classify.Method(args[0]); m.IsValid() {
			fmt.Fprintln(w, taxonomy.DiagramForMethod(m))
			return nil
		}
		fmt.Fprintln(w, taxonomy.DiagramTemplate(args[0]))
		return nil
	},
}

func init() {
	taxonomyCmd.AddCommand(taxonomyErrorsCmd)
	taxonomyCmd.AddCommand(taxonomyMethodsCmd)
	taxonomyCmd.AddCommand(taxonomyDiagramCmd)
}
