package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time. Binaries built with go install
// fall back to the module version recorded in the build info.
var version = "(devel)"

// buildDetails is what the binary knows about how it was built.
type buildDetails struct {
	Version  string
	Go       string
	Revision string
	Time     string
	Modified bool
}

func readBuildDetails() buildDetails {
	d := buildDetails{Version: version, Go: runtime.Version()}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return d
	}
	if d.Version == "(devel)" && info.Main.Version != "" {
		d.Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			d.Revision = s.Value
		case "vcs.time":
			d.Time = s.Value
		case "vcs.modified":
			d.Modified = s.Value == "true"
		}
	}
	return d
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		d := readBuildDetails()
		w := out(cmd)
		if short, _ := cmd.Flags().GetBool("short"); short {
			fmt.Fprintln(w, d.Version)
			return
		}

		fmt.Fprintf(w, "logiclue %s\n", d.Version)
		fmt.Fprintf(w, "  go:     %s\n", d.Go)
		if d.Revision != "" {
			rev := d.Revision
			if len(rev) > 12 {
				rev = rev[:12]
			}
			if d.Modified {
				rev += " (modified)"
			}
			fmt.Fprintf(w, "  commit: %s\n", rev)
		}
		if d.Time != "" {
			fmt.Fprintf(w, "  built:  %s\n", d.Time)
		}
	},
}

func init() {
	versionCmd.Flags().Bool("short", false, "Print only the version number")
}
