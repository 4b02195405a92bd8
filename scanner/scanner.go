// Package scanner drives the per-archive pipeline over a mods folder and
// aggregates the verdicts into the three report groups.
package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"modside-analyzer/jar"
	"modside-analyzer/mod"
)

// Options configures one scan run.
type Options struct {
	ModsDir       string
	OutputDir     string // parent of the per-run output directory
	GenerateLog   bool
	OrganizeFiles bool
	SaveIcons     bool
	MaxWorkers    int
}

// Result is the final outcome for one archive.
type Result struct {
	FileName string
	Path     string
	Size     int64
	Category mod.Category
	Record   mod.Record
	Links    Links
	IconData []byte
	Reason   string // why parsing failed, empty on success
	Skipped  bool   // filesystem error, not classified at all
}

// DisplayName prefers the manifest name and falls back to the file name.
func (r Result) DisplayName() string {
	if r.Record.DisplayName != "" {
		return r.Record.DisplayName
	}
	return r.FileName
}

// ProgressMsg reports live progress from a running scan. Type is one of
// "status", "classified", "skipped", "summary".
type ProgressMsg struct {
	Type     string
	FileName string
	Name     string
	Category mod.Category
	Message  string
	Current  int
	Total    int
}

// Summary is the aggregate of one run: every result sorted by display name,
// plus the per-run output directory.
type Summary struct {
	ModsDir   string
	OutDir    string
	LogPath   string
	StartedAt time.Time
	Results   []Result
}

// ByCategory returns the results in one group, preserving the sorted order.
// Skipped files belong to no group.
func (s *Summary) ByCategory(c mod.Category) []Result {
	var out []Result
	for _, r := range s.Results {
		if !r.Skipped && r.Category == c {
			out = append(out, r)
		}
	}
	return out
}

// Count returns the number of results in one group.
func (s *Summary) Count(c mod.Category) int {
	return len(s.ByCategory(c))
}

// SkippedCount returns the number of files skipped over filesystem errors.
func (s *Summary) SkippedCount() int {
	n := 0
	for _, r := range s.Results {
		if r.Skipped {
			n++
		}
	}
	return n
}

// Scan processes every recognized archive in opts.ModsDir and writes the
// configured outputs. Per-file failures never abort the batch; only an
// invalid input folder does, before any processing starts. Progress events
// are sent to progress when it is non-nil.
func Scan(opts Options, log *zap.SugaredLogger, progress chan<- ProgressMsg) (*Summary, error) {
	info, err := os.Stat(opts.ModsDir)
	if err != nil {
		return nil, fmt.Errorf("invalid mods folder %q: %w", opts.ModsDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("invalid mods folder %q: not a directory", opts.ModsDir)
	}

	archives, err := listArchives(opts.ModsDir)
	if err != nil {
		return nil, fmt.Errorf("listing mods folder: %w", err)
	}

	started := time.Now()
	summary := &Summary{
		ModsDir:   opts.ModsDir,
		StartedAt: started,
		OutDir:    filepath.Join(opts.OutputDir, started.Format("2006-01-02_15-04-05")+"_analysis"),
	}

	emit(progress, ProgressMsg{Type: "status", Message: fmt.Sprintf("Found %d archives", len(archives)), Total: len(archives)})
	log.Infow("Starting scan", zap.String("dir", opts.ModsDir), zap.Int("archives", len(archives)))

	workers := opts.MaxWorkers
	if workers < 1 {
		workers = 1
	}

	// Archives are independent, so the pipeline fans out over a bounded
	// worker pool. Results land in their own slot; ordering is restored by
	// the sort below.
	results := make([]Result, len(archives))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	completed := 0

	for i, path := range archives {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			res := processArchive(path, opts, log)
			results[i] = res

			mu.Lock()
			completed++
			current := completed
			mu.Unlock()

			msgType := "classified"
			if res.Skipped {
				msgType = "skipped"
			}
			emit(progress, ProgressMsg{
				Type:     msgType,
				FileName: res.FileName,
				Name:     res.DisplayName(),
				Category: res.Category,
				Message:  res.Reason,
				Current:  current,
				Total:    len(archives),
			})
		}(i, path)
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool {
		return strings.ToLower(results[i].DisplayName()) < strings.ToLower(results[j].DisplayName())
	})
	summary.Results = results

	if err := writeOutputs(summary, opts, log); err != nil {
		return summary, err
	}

	emit(progress, ProgressMsg{Type: "summary", Message: fmt.Sprintf(
		"%d server capable, %d client only, %d unparseable, %d skipped",
		summary.Count(mod.ServerCapable), summary.Count(mod.ClientOnly),
		summary.Count(mod.Unparseable), summary.SkippedCount(),
	)})
	log.Infow("Scan finished",
		zap.Int("server_capable", summary.Count(mod.ServerCapable)),
		zap.Int("client_only", summary.Count(mod.ClientOnly)),
		zap.Int("unparseable", summary.Count(mod.Unparseable)),
		zap.Int("skipped", summary.SkippedCount()),
	)
	return summary, nil
}

// processArchive runs the read/parse/classify pipeline for a single file.
func processArchive(path string, opts Options, log *zap.SugaredLogger) Result {
	res := Result{
		FileName: filepath.Base(path),
		Path:     path,
	}
	fileLog := log.With(zap.String("file", res.FileName))

	if info, err := os.Stat(path); err == nil {
		res.Size = info.Size()
	}

	manifest, err := jar.ReadManifest(path)
	switch {
	case err == nil:
		res.Record = mod.Parse(manifest.Loader, manifest.Data)
		if res.Record.Loader == mod.LoaderUnknown {
			res.Reason = fmt.Sprintf("malformed %s manifest", manifest.Loader)
		}
	case errors.Is(err, jar.ErrManifestNotFound):
		res.Record = mod.Record{Loader: mod.LoaderUnknown}
		res.Reason = err.Error()
	case errors.Is(err, jar.ErrCorruptArchive):
		res.Record = mod.Record{Loader: mod.LoaderUnknown}
		res.Reason = err.Error()
	default:
		// Filesystem error: the file is skipped, the batch continues.
		res.Skipped = true
		res.Reason = err.Error()
		fileLog.Warnw("Skipping file", zap.Error(err))
		return res
	}

	res.Category = mod.Classify(res.Record)
	res.Links = BuildLinks(res.Record, res.FileName)

	if opts.SaveIcons && res.Record.IconPath != "" {
		// Missing or broken icons are not an error.
		if icon, err := jar.ReadEntry(path, res.Record.IconPath); err == nil {
			res.IconData = icon
		}
	}

	if res.Reason != "" {
		fileLog.Infow("Classified", zap.String("category", res.Category.String()), zap.String("reason", res.Reason))
	} else {
		fileLog.Infow("Classified", zap.String("category", res.Category.String()), zap.String("name", res.DisplayName()))
	}
	return res
}

// writeOutputs materializes the enabled artifacts of a finished run.
func writeOutputs(summary *Summary, opts Options, log *zap.SugaredLogger) error {
	if !opts.GenerateLog && !opts.OrganizeFiles && !opts.SaveIcons {
		return nil
	}
	if err := os.MkdirAll(summary.OutDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if opts.GenerateLog {
		logPath, err := WriteReport(summary)
		if err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		summary.LogPath = logPath
		log.Infow("Report written", zap.String("path", logPath))
	}

	if opts.OrganizeFiles {
		Organize(summary, log)
	}

	if opts.SaveIcons {
		saveIcons(summary, log)
	}
	return nil
}

// listArchives returns the recognized archive files of dir, in listing order.
func listArchives(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var archives []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".jar", ".zip":
			archives = append(archives, filepath.Join(dir, e.Name()))
		}
	}
	return archives, nil
}

// saveIcons writes extracted icon bytes under icons/ for the presentation
// layer, named after the source archive.
func saveIcons(summary *Summary, log *zap.SugaredLogger) {
	iconsDir := filepath.Join(summary.OutDir, "icons")
	for _, r := range summary.Results {
		if len(r.IconData) == 0 {
			continue
		}
		if err := os.MkdirAll(iconsDir, 0755); err != nil {
			log.Warnw("Failed to create icons directory", zap.Error(err))
			return
		}
		base := strings.TrimSuffix(r.FileName, filepath.Ext(r.FileName))
		target := filepath.Join(iconsDir, base+filepath.Ext(r.Record.IconPath))
		if err := os.WriteFile(target, r.IconData, 0644); err != nil {
			log.Warnw("Failed to save icon", zap.String("file", r.FileName), zap.Error(err))
		}
	}
}

func emit(progress chan<- ProgressMsg, msg ProgressMsg) {
	if progress != nil {
		progress <- msg
	}
}
