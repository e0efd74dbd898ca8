package render

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Outputs manages rendered plot files on disk. Each plot kind keeps at most
// maxFiles timestamped PNGs; older ones are pruned.
type Outputs struct {
	dir      string
	maxFiles int
}

// NewOutputs creates an Outputs writing into dir, keeping at most maxFiles
// PNGs per plot kind.
func NewOutputs(dir string, maxFiles int) *Outputs {
	if maxFiles <= 0 {
		maxFiles = 5
	}
	return &Outputs{
		dir:      dir,
		maxFiles: maxFiles,
	}
}

// Path returns the file path for a new plot of the given kind, creating the
// output directory if needed.
func (o *Outputs) Path(kind string, ts time.Time) (string, error) {
	if err := o.ensureDir(); err != nil {
		return "", err
	}
	return filepath.Join(o.dir, fmt.Sprintf("%s_%d.png", kind, ts.Unix())), nil
}

// Prune removes the oldest plots of the given kind beyond maxFiles.
func (o *Outputs) Prune(kind string) error {
	files, err := o.listFiles(kind)
	if err != nil {
		return err
	}

	if len(files) <= o.maxFiles {
		return nil
	}

	toRemove := files[:len(files)-o.maxFiles]
	for _, f := range toRemove {
		path := filepath.Join(o.dir, f.name)
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("pruning plot %s: %w", f.name, err)
		}
	}

	return nil
}

// Latest returns the path and timestamp of the newest plot of the given kind.
func (o *Outputs) Latest(kind string) (string, time.Time, error) {
	files, err := o.listFiles(kind)
	if err != nil {
		return "", time.Time{}, err
	}
	if len(files) == 0 {
		return "", time.Time{}, fmt.Errorf("no %s plots found", kind)
	}

	latest := files[len(files)-1]
	return filepath.Join(o.dir, latest.name), latest.ts, nil
}

type plotFile struct {
	name string
	ts   time.Time
}

func (o *Outputs) listFiles(kind string) ([]plotFile, error) {
	entries, err := os.ReadDir(o.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing output dir: %w", err)
	}

	prefix := kind + "_"
	var files []plotFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".png") {
			continue
		}
		tsStr := strings.TrimPrefix(name, prefix)
		tsStr = strings.TrimSuffix(tsStr, ".png")
		unix, err := strconv.ParseInt(tsStr, 10, 64)
		if err != nil {
			continue
		}
		files = append(files, plotFile{name: name, ts: time.Unix(unix, 0)})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ts.Before(files[j].ts)
	})

	return files, nil
}

func (o *Outputs) ensureDir() error {
	return os.MkdirAll(o.dir, 0755)
}
