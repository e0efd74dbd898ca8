package render

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writePlotFile(t *testing.T, o *Outputs, kind string, ts time.Time) string {
	t.Helper()
	path, err := o.Path(kind, ts)
	if err != nil {
		t.Fatalf("Path returned error: %v", err)
	}
	if err := os.WriteFile(path, []byte("png"), 0644); err != nil {
		t.Fatalf("writing plot file: %v", err)
	}
	return path
}

func TestOutputs_PruneKeepsNewest(t *testing.T) {
	dir := t.TempDir()
	o := NewOutputs(dir, 3)

	base := time.Date(2015, 3, 6, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		writePlotFile(t, o, "seeing_day", base.Add(time.Duration(i)*time.Hour))
	}

	if err := o.Prune("seeing_day"); err != nil {
		t.Fatalf("Prune returned error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading output dir: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("kept %d files, want 3", len(entries))
	}

	// The newest file must survive.
	wantPath, _ := o.Path("seeing_day", base.Add(6*time.Hour))
	if _, err := os.Stat(wantPath); err != nil {
		t.Errorf("newest plot pruned: %v", err)
	}
}

func TestOutputs_PruneLeavesOtherKinds(t *testing.T) {
	dir := t.TempDir()
	o := NewOutputs(dir, 1)

	base := time.Date(2015, 3, 6, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		writePlotFile(t, o, "seeing_day", base.Add(time.Duration(i)*time.Hour))
	}
	other := writePlotFile(t, o, "sun_path", base)

	if err := o.Prune("seeing_day"); err != nil {
		t.Fatalf("Prune returned error: %v", err)
	}
	if _, err := os.Stat(other); err != nil {
		t.Errorf("unrelated plot kind pruned: %v", err)
	}
}

func TestOutputs_Latest(t *testing.T) {
	dir := t.TempDir()
	o := NewOutputs(dir, 5)

	base := time.Date(2015, 3, 6, 0, 0, 0, 0, time.UTC)
	writePlotFile(t, o, "sky_brightness", base)
	newest := writePlotFile(t, o, "sky_brightness", base.Add(time.Hour))

	path, ts, err := o.Latest("sky_brightness")
	if err != nil {
		t.Fatalf("Latest returned error: %v", err)
	}
	if path != newest {
		t.Errorf("latest path = %q, want %q", path, newest)
	}
	if !ts.Equal(base.Add(time.Hour)) {
		t.Errorf("latest ts = %v, want %v", ts, base.Add(time.Hour))
	}
}

func TestOutputs_LatestEmpty(t *testing.T) {
	o := NewOutputs(t.TempDir(), 5)
	if _, _, err := o.Latest("sky_brightness"); err == nil {
		t.Fatal("expected error when no plots exist")
	}
}

func TestOutputs_PruneMissingDir(t *testing.T) {
	o := NewOutputs(filepath.Join(t.TempDir(), "missing"), 3)
	if err := o.Prune("seeing_day"); err != nil {
		t.Errorf("Prune on missing dir returned error: %v", err)
	}
}
