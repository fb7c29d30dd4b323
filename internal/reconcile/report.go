package reconcile

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteReport writes the diff entries as a CSV table with a header row:
// Status,RelativePath,SourceHash,TargetHash. One row per union key, in the
// order the entries were produced.
func WriteReport(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Status", "RelativePath", "SourceHash", "TargetHash"}); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}
	for _, entry := range entries {
		row := []string{string(entry.Status), entry.RelPath, entry.LeftHash, entry.RightHash}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write report row for %q: %w", entry.RelPath, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
