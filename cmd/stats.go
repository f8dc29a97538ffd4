package cmd

import (
	"github.com/spf13/cobra"

	"github.com/logiclue/logiclue/internal/analysis"
	"github.com/logiclue/logiclue/internal/report"
	"github.com/logiclue/logiclue/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show practice statistics for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		asJSON, _ := cmd.Flags().GetBool("json")

		return withStore(cmd, func(st *store.Store) error {
			svc := analysis.NewService(nil, analysis.Repos{Attempts: st.AttemptRepo()}, analysis.Config{}, nil)
			stats, err := svc.Stats(cmd.Context(), user)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, stats)
			}
			return report.Stats(out(cmd), stats)
		})
	},
}

func init() {
	statsCmd.Flags().StringP("user", "u", "", "User ID")
	statsCmd.Flags().Bool("json", false, "Print JSON")
	_ = statsCmd.MarkFlagRequired("user")
}
