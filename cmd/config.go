package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long: `Configuration sources, highest priority first:
  1. Flags (--db)
  2. LOGICLUE_* environment variables, also read from .env
  3. Config file (--config, ./logiclue.yaml or ~/.config/logiclue/config.yaml)
  4. Defaults
Provider keys also fall back to OPENROUTER_API_KEY, OPENAI_API_KEY,
ANTHROPIC_API_KEY and GEMINI_API_KEY.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration with secrets masked",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		if cfg.File != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n", cfg.File)
		} else {
			fmt.Fprintln(os.Stderr, "No configuration file found (using defaults and environment)")
		}

		data, err := yaml.Marshal(cfg.Redacted())
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		_, err = out(cmd).Write(data)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "\nwarning: %v\n", err)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
