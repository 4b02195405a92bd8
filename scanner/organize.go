package scanner

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"modside-analyzer/mod"
)

// Organize copies every classified archive into a per-category folder under
// the run's output directory. Sources are copied, never moved. An existing
// destination file is skipped rather than overwritten, so re-running into a
// populated directory is safe. Copy failures are logged and do not stop the
// remaining copies.
func Organize(summary *Summary, log *zap.SugaredLogger) {
	for _, c := range mod.Categories {
		results := summary.ByCategory(c)
		if len(results) == 0 {
			continue
		}
		destDir := filepath.Join(summary.OutDir, c.String())
		if err := os.MkdirAll(destDir, 0755); err != nil {
			log.Warnw("Failed to create category folder", zap.String("dir", destDir), zap.Error(err))
			continue
		}
		for _, r := range results {
			dest := filepath.Join(destDir, r.FileName)
			switch err := copyFile(r.Path, dest); {
			case err == nil:
			case errors.Is(err, os.ErrExist):
				log.Infow("Destination exists, skipping copy", zap.String("file", r.FileName), zap.String("category", c.String()))
			default:
				log.Warnw("Failed to copy file", zap.String("file", r.FileName), zap.Error(err))
			}
		}
	}
}

// copyFile copies src to dest without overwriting: creating dest with O_EXCL
// reports os.ErrExist when the name is already taken.
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
