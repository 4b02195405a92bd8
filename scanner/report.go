package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"modside-analyzer/mod"
)

// WriteReport writes the grouped text log into the run's output directory
// and returns its path. Sections appear in the fixed order server capable,
// client only, unparseable; entries are already sorted by the aggregator.
func WriteReport(summary *Summary) (string, error) {
	var b strings.Builder

	b.WriteString("===== Notes =====\n")
	b.WriteString("1. Side classification is parsed from mod metadata; it is reliable but not guaranteed.\n")
	b.WriteString("2. Catalog links are built from templates without calling the sites; they may miss.\n")
	b.WriteString("3. Confirm the final classification against official docs or a test run.\n\n")
	fmt.Fprintf(&b, "Scanned folder: %s\n", summary.ModsDir)
	fmt.Fprintf(&b, "Scan time: %s\n", summary.StartedAt.Format("2006-01-02 15:04:05"))

	for _, c := range mod.Categories {
		fmt.Fprintf(&b, "\n===== %s =====\n\n", c.Label())
		for _, r := range summary.ByCategory(c) {
			fmt.Fprintf(&b, "[%s] %s", c.Label(), r.DisplayName())
			if r.Reason != "" {
				fmt.Fprintf(&b, " (%s)", r.Reason)
			}
			if r.Links != (Links{}) {
				fmt.Fprintf(&b, " | CF: %s | MR: %s | MC: %s", r.Links.CurseForge, r.Links.Modrinth, r.Links.MCMod)
			}
			b.WriteString("\n")
		}
	}

	if n := summary.SkippedCount(); n > 0 {
		fmt.Fprintf(&b, "\n===== Skipped (%d) =====\n\n", n)
		for _, r := range summary.Results {
			if r.Skipped {
				fmt.Fprintf(&b, "[Skipped] %s (%s)\n", r.FileName, r.Reason)
			}
		}
	}

	logPath := filepath.Join(summary.OutDir, summary.StartedAt.Format("2006-01-02_15-04-05")+"_analysis.txt")
	if err := os.WriteFile(logPath, []byte(b.String()), 0644); err != nil {
		return "", err
	}
	return logPath, nil
}
