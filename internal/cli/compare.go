package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/treesum/internal/engine"
)

var (
	compareAlgorithm   string
	compareExcludes    []string
	compareConcurrency int
	compareStrictNew   bool
	compareSave        string
	compareSync        bool
)

var compareCmd = &cobra.Command{
	Use:   "compare <sourceDir> <targetDir>",
	Short: "Compare two directory trees by content hash",
	Long: `Hash both trees and classify every relative path as MATCH, MISMATCH,
MISSING (in target) or NEW (in target). With --sync, files classified as
MISMATCH or MISSING are copied from source to target; NEW files are never
deleted.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, cfg, err := newEngine()
		if err != nil {
			return err
		}

		algo, err := resolveAlgorithm(compareAlgorithm, cfg)
		if err != nil {
			return err
		}

		ctx := context.Background()
		result, err := eng.Compare(ctx, &engine.CompareRequest{
			SourceRoot:  args[0],
			TargetRoot:  args[1],
			Algorithm:   algo,
			Excludes:    mergeExcludes(cfg, compareExcludes),
			Concurrency: resolveConcurrency(compareConcurrency, cfg),
			StrictNew:   compareStrictNew || cfg.StrictNew,
			ReportPath:  compareSave,
		})
		if err != nil {
			return err
		}

		var syncResult *engine.SyncResult
		if compareSync && len(result.SyncPaths) > 0 {
			syncResult, err = eng.Sync(ctx, &engine.SyncRequest{
				Source:     result.Source,
				TargetRoot: result.TargetRoot,
				Paths:      result.SyncPaths,
			})
			if err != nil {
				return err
			}
		}

		if jsonOutput {
			out := struct {
				*engine.CompareResult
				Sync *engine.SyncResult `json:"sync,omitempty"`
			}{result, syncResult}
			if err := outputJSON(out); err != nil {
				return err
			}
			return errorCountError(result.ErrorCount)
		}

		fmt.Printf("comparing %s (source) with %s (target), %s\n", result.SourceRoot, result.TargetRoot, result.Algorithm)
		printEntries(result.Entries)
		printSkipped(result.Skipped)
		if compareSave != "" {
			PrintSuccess(fmt.Sprintf("report saved to %s", compareSave))
		}
		if syncResult != nil {
			for _, fe := range syncResult.Failed {
				PrintError(fmt.Sprintf("sync %s: %v", fe.RelPath, fe.Err))
			}
			PrintSuccess(fmt.Sprintf("synced %d file(s) to %s", syncResult.Copied, result.TargetRoot))
		}
		printSummary(len(result.Entries), result.ErrorCount, result.Elapsed)
		return errorCountError(result.ErrorCount)
	},
}

func init() {
	compareCmd.Flags().StringVarP(&compareAlgorithm, "algorithm", "a", "", "Hash algorithm: MD5, SHA1, SHA256, SHA384 or SHA512 (default from config, SHA256)")
	compareCmd.Flags().StringSliceVarP(&compareExcludes, "exclude", "e", nil, "Exclude patterns matched against relative paths (repeatable)")
	compareCmd.Flags().IntVarP(&compareConcurrency, "concurrency", "c", 0, "Number of parallel hashing workers (default from config)")
	compareCmd.Flags().BoolVar(&compareStrictNew, "strict-new", false, "Count files present only in the target as errors")
	compareCmd.Flags().StringVar(&compareSave, "save", "", "Save the diff report as CSV to the given path")
	compareCmd.Flags().BoolVar(&compareSync, "sync", false, "Copy MISMATCH and MISSING files from source to target")
}
