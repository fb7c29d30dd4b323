package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/treesum/internal/engine"
)

var (
	generateAlgorithm   string
	generateExcludes    []string
	generateConcurrency int
)

var generateCmd = &cobra.Command{
	Use:   "generate <directory> <manifestPath>",
	Short: "Hash a directory tree and save the manifest",
	Long: `Walk a directory tree, compute a content hash for every regular file,
and save the result as a CSV manifest with columns Hash,FilePath,Relative,Algorithm.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, cfg, err := newEngine()
		if err != nil {
			return err
		}

		algo, err := resolveAlgorithm(generateAlgorithm, cfg)
		if err != nil {
			return err
		}

		result, err := eng.Generate(context.Background(), &engine.GenerateRequest{
			Root:         args[0],
			ManifestPath: args[1],
			Algorithm:    algo,
			Excludes:     mergeExcludes(cfg, generateExcludes),
			Concurrency:  resolveConcurrency(generateConcurrency, cfg),
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		printSkipped(result.Skipped)
		PrintSuccess(fmt.Sprintf("hashed %d files (%s) into %s", result.FileCount, result.Algorithm, result.ManifestPath))
		if len(result.Skipped) > 0 {
			return fmt.Errorf("%d file(s) could not be hashed", len(result.Skipped))
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateAlgorithm, "algorithm", "a", "", "Hash algorithm: MD5, SHA1, SHA256, SHA384 or SHA512 (default from config, SHA256)")
	generateCmd.Flags().StringSliceVarP(&generateExcludes, "exclude", "e", nil, "Exclude patterns matched against relative paths (repeatable)")
	generateCmd.Flags().IntVarP(&generateConcurrency, "concurrency", "c", 0, "Number of parallel hashing workers (default from config)")
}
