package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/treesum/internal/engine"
)

var (
	verifyStrictNew   bool
	verifyConcurrency int
)

var verifyCmd = &cobra.Command{
	Use:   "verify <manifestPath>",
	Short: "Verify a directory tree against a saved manifest",
	Long: `Re-walk the tree a manifest was generated from and report every file
whose hash changed (MISMATCH), that disappeared (MISSING), or that appeared
since the manifest was written (NEW).

The tree root and the hash algorithm are taken from the manifest itself.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, cfg, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Verify(context.Background(), &engine.VerifyRequest{
			ManifestPath: args[0],
			StrictNew:    verifyStrictNew || cfg.StrictNew,
			Concurrency:  resolveConcurrency(verifyConcurrency, cfg),
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			if err := outputJSON(result); err != nil {
				return err
			}
			return errorCountError(result.ErrorCount)
		}

		fmt.Printf("verifying %s against %s (%s)\n", result.Root, args[0], result.Algorithm)
		printEntries(result.Entries)
		printSkipped(result.Skipped)
		printSummary(len(result.Entries), result.ErrorCount, result.Elapsed)
		return errorCountError(result.ErrorCount)
	},
}

func init() {
	verifyCmd.Flags().BoolVar(&verifyStrictNew, "strict-new", false, "Count files absent from the manifest as errors")
	verifyCmd.Flags().IntVarP(&verifyConcurrency, "concurrency", "c", 0, "Number of parallel hashing workers (default from config)")
}
