// Package cli implements the treesum command surface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	jsonOutput  bool
	quietOutput bool
)

// rootCmd is the root command for treesum.
var rootCmd = &cobra.Command{
	Use:     "treesum",
	Version: "dev",
	Short:   "Directory tree hashing, verification and comparison",
	Long: `treesum computes content hashes for every file in a directory tree,
persists them as a CSV manifest, verifies a tree against a saved manifest,
and compares two trees, optionally syncing the target to match the source.

Sync is additive only: files present only in the target are reported but
never deleted.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// SetVersion sets the version reported by --version and the version command.
func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errDifferences) {
			PrintError(err.Error())
		}
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&quietOutput, "quiet", "q", false, "Suppress per-file output")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the treesum version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(os.Stdout, rootCmd.Version)
		},
	}
	rootCmd.AddCommand(versionCmd)

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(compareCmd)
}
