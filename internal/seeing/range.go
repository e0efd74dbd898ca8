package seeing

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

const logFilePattern = "seeing_log_*.log"

// RangeOptions controls multi-day loading.
type RangeOptions struct {
	Workers  int     // file-loader pool size, minimum 1
	Decimate int     // keep every n-th record, <= 1 disables
	VetMax   float64 // series vetting threshold, arcsec
}

// rangeJob and rangeResult are the worker pool's units of work.
type rangeJob struct {
	path string
}

type rangeResult struct {
	path   string
	values []float64
	err    error
}

// LoadRange loads every seeing log in dir whose filename date falls within
// [start, end], computes vetted per-record FWHM means, and returns them
// accumulated across all days. Files are loaded concurrently; a file that
// fails to load is logged and skipped.
func LoadRange(ctx context.Context, dir string, start, end time.Time, opts RangeOptions, logger *slog.Logger) ([]float64, error) {
	paths, err := logFilesInRange(dir, start, end)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no seeing logs between %s and %s in %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"), dir)
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if opts.VetMax <= 0 {
		opts.VetMax = DayVetMax
	}

	jobs := make(chan rangeJob, workers*2)
	results := make(chan rangeResult, workers*2)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				result := loadOne(job.path, opts, logger)
				select {
				case results <- result:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, p := range paths {
			select {
			case jobs <- rangeJob{path: p}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	byFile := make(map[string][]float64, len(paths))
	for result := range results {
		if result.err != nil {
			logger.Warn("skipping seeing log", "file", result.path, "error", result.err)
			continue
		}
		byFile[result.path] = result.values
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Deterministic order regardless of worker scheduling.
	var all []float64
	for _, p := range paths {
		all = append(all, byFile[p]...)
	}
	return all, nil
}

// loadOne parses a single log file and returns its vetted FWHM means.
func loadOne(path string, opts RangeOptions, logger *slog.Logger) rangeResult {
	f, err := os.Open(path)
	if err != nil {
		return rangeResult{path: path, err: err}
	}
	defer f.Close()

	ds, err := Parse(f, logger)
	if err != nil {
		return rangeResult{path: path, err: err}
	}
	ds.Decimate(opts.Decimate)

	means, _ := RecordMeans(ds, 0)
	_, vetted, err := VetSeries(ds.Times(), means, opts.VetMax)
	if err != nil {
		return rangeResult{path: path, err: err}
	}
	return rangeResult{path: path, values: vetted}
}

// logFilesInRange lists seeing logs in dir whose date stamp lies within
// [start, end], sorted by date. Filenames carry the date as
// seeing_log_YYYY-M-D.log with no zero padding.
func logFilesInRange(dir string, start, end time.Time) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, logFilePattern))
	if err != nil {
		return nil, fmt.Errorf("listing seeing logs: %w", err)
	}

	type dated struct {
		path string
		date time.Time
	}
	var kept []dated
	for _, m := range matches {
		date, err := LogFileDate(m)
		if err != nil {
			continue
		}
		if date.Before(start) || date.After(end) {
			continue
		}
		kept = append(kept, dated{path: m, date: date})
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].date.Before(kept[j].date) })

	paths := make([]string, len(kept))
	for i, k := range kept {
		paths[i] = k.path
	}
	return paths, nil
}

// LogFilesInDir lists every seeing log in dir, sorted by date stamp.
func LogFilesInDir(dir string) ([]string, error) {
	return logFilesInRange(dir, time.Time{}, time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC))
}

// LogFileDate extracts the date stamp from a seeing log filename.
func LogFileDate(path string) (time.Time, error) {
	name := filepath.Base(path)
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, "seeing_log_"), ".log")
	parts := strings.Split(stamp, "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("no date stamp in %q", name)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("bad date stamp in %q: %w", name, err)
		}
		nums[i] = n
	}
	return time.Date(nums[0], time.Month(nums[1]), nums[2], 0, 0, 0, 0, time.UTC), nil
}

// LogFileName builds the canonical filename for a given date, matching the
// monitor's unpadded format.
func LogFileName(date time.Time) string {
	return fmt.Sprintf("seeing_log_%d-%d-%d.log", date.Year(), int(date.Month()), date.Day())
}
