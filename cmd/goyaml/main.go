// Command goyaml is a thin CLI exercising the library's public API: it
// formats and validates YAML documents from a file or stdin.
package main

import (
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/inge4pres/goyaml/internal/diag"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "goyaml",
	Short: "Parse and re-serialize YAML documents",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			diag.SetHook(log.Printf)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "trace fmt/check progress to stderr")
	rootCmd.AddCommand(fmtCmd, checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// readInput reads path, or stdin when path is "" or "-".
func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
