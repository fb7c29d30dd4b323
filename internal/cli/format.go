package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/danieljhkim/treesum/internal/engine"
	"github.com/danieljhkim/treesum/internal/reconcile"
)

var (
	// Status colors - fatih/color disables itself when output is not a TTY
	matchColor    = color.New(color.FgHiBlack)
	mismatchColor = color.New(color.FgYellow, color.Bold)
	missingColor  = color.New(color.FgRed, color.Bold)
	newColor      = color.New(color.FgCyan)

	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
)

// PrintError prints an error message to stderr.
func PrintError(msg string) {
	_, _ = errorColor.Fprintf(os.Stderr, "✗ %s\n", msg)
}

// PrintSuccess prints a success message with a checkmark.
func PrintSuccess(msg string) {
	_, _ = successColor.Printf("✓ %s\n", msg)
}

// printEntries prints one classification line per path.
func printEntries(entries []reconcile.Entry) {
	if quietOutput {
		return
	}
	for _, entry := range entries {
		switch entry.Status {
		case reconcile.StatusMatch:
			_, _ = matchColor.Printf("%-8s  %s\n", entry.Status, entry.RelPath)
		case reconcile.StatusMismatch:
			_, _ = mismatchColor.Printf("%-8s  %s\n", entry.Status, entry.RelPath)
		case reconcile.StatusMissing:
			_, _ = missingColor.Printf("%-8s  %s\n", entry.Status, entry.RelPath)
		case reconcile.StatusNew:
			_, _ = newColor.Printf("%-8s  %s\n", entry.Status, entry.RelPath)
		default:
			fmt.Printf("%-8s  %s\n", entry.Status, entry.RelPath)
		}
	}
}

// printSkipped reports files that could not be hashed.
func printSkipped(skipped []engine.FileError) {
	for _, fe := range skipped {
		_, _ = warnColor.Printf("SKIPPED   %s (%v)\n", fe.RelPath, fe.Err)
	}
}

// printSummary prints the closing error-count line.
func printSummary(total, errorCount int, elapsed time.Duration) {
	_, _ = dimColor.Printf("%d files checked in %s\n", total, elapsed.Round(time.Millisecond))
	if errorCount == 0 {
		PrintSuccess("no differences found")
		return
	}
	_, _ = errorColor.Printf("✗ %d difference(s) found\n", errorCount)
}
