package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "faceline",
	Short: "Viola-Jones face detection and geometric normalization",
	Long: `faceline — detects the largest face in an image, locates its eyes,
and writes a rotation- and scale-normalized crop.

Runs the same detect -> locate eyes -> normalize pipeline the service
exposes over HTTP, directly against a local file, with no server or
queue involved.`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"faceline %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[faceline] "+format+"\n", args...)
	}
}
