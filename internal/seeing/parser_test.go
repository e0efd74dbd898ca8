package seeing

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// logLine pads the fixed columns out to the raw-section offset and appends
// the semicolon-delimited raw samples, matching the monitor's format.
func logLine(head, raw string) string {
	return fmt.Sprintf("%-37s%s", head, raw)
}

func TestParse_BasicLine(t *testing.T) {
	line := logLine("21:34:11 03/06/2015 120 250 2.41 10", "2.41;2.38;2.45;")

	ds, err := Parse(strings.NewReader(line), discardLogger())
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(ds.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(ds.Records))
	}

	rec := ds.Records[0]
	want := time.Date(2015, 3, 6, 21, 34, 11, 0, time.UTC)
	if !rec.Timestamp.Equal(want) {
		t.Errorf("timestamp = %v, want %v", rec.Timestamp, want)
	}
	if rec.Fmin != 120 || rec.Fmax != 250 || rec.NPts != 10 {
		t.Errorf("Fmin/Fmax/NPts = %d/%d/%d, want 120/250/10", rec.Fmin, rec.Fmax, rec.NPts)
	}
	if math.Abs(rec.FWHMAve-2.41) > 1e-9 {
		t.Errorf("FWHMAve = %v, want 2.41", rec.FWHMAve)
	}

	wantTOD := 21 + 34/60.0 + 11/3600.0
	if math.Abs(rec.TimeOfDay-wantTOD) > 1e-9 {
		t.Errorf("TimeOfDay = %v, want %v", rec.TimeOfDay, wantTOD)
	}

	wantRaw := []float64{2.41, 2.38, 2.45}
	if len(rec.Raw) != len(wantRaw) {
		t.Fatalf("raw samples = %v, want %v", rec.Raw, wantRaw)
	}
	for i, v := range wantRaw {
		if math.Abs(rec.Raw[i]-v) > 1e-9 {
			t.Errorf("raw[%d] = %v, want %v", i, rec.Raw[i], v)
		}
	}
	if rec.BadRaw {
		t.Error("BadRaw = true for a clean line")
	}
}

func TestParse_MalformedRawFieldBecomesSentinel(t *testing.T) {
	line := logLine("21:34:11 03/06/2015 120 250 2.41 10", "abc;2.00;")

	ds, err := Parse(strings.NewReader(line), discardLogger())
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	rec := ds.Records[0]
	if !rec.BadRaw {
		t.Error("BadRaw = false, want true")
	}
	if len(rec.Raw) != 2 || rec.Raw[0] != 0 || rec.Raw[1] != 2.00 {
		t.Errorf("raw = %v, want [0 2]", rec.Raw)
	}
}

func TestParse_EmptyRawFieldsDropped(t *testing.T) {
	line := logLine("21:34:11 03/06/2015 120 250 2.41 10", ";;2.00;")

	ds, err := Parse(strings.NewReader(line), discardLogger())
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	rec := ds.Records[0]
	if len(rec.Raw) != 1 || rec.Raw[0] != 2.00 {
		t.Errorf("raw = %v, want [2]", rec.Raw)
	}
	if rec.BadRaw {
		t.Error("BadRaw = true, empty fields are not parse failures")
	}
}

func TestParse_SkipsBrokenLines(t *testing.T) {
	input := strings.Join([]string{
		"garbage line",
		logLine("21:34:11 03/06/2015 120 250 2.41 10", "2.41;"),
		"10:00 not-a-date 1 2 3 4",
	}, "\n")

	ds, err := Parse(strings.NewReader(input), discardLogger())
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(ds.Records) != 1 {
		t.Errorf("got %d records, want 1 (broken lines skipped)", len(ds.Records))
	}
}

func TestParse_MalformedNumericColumnsBecomeSentinels(t *testing.T) {
	line := logLine("21:34:11 03/06/2015 xx 250 bad 10", "2.41;")

	ds, err := Parse(strings.NewReader(line), discardLogger())
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	rec := ds.Records[0]
	if rec.Fmin != 0 {
		t.Errorf("Fmin = %d, want 0 sentinel", rec.Fmin)
	}
	if rec.FWHMAve != 0 {
		t.Errorf("FWHMAve = %v, want 0 sentinel", rec.FWHMAve)
	}
}

func TestParse_ShortLineHasNoRawSamples(t *testing.T) {
	// The fixed columns fit in under 37 bytes; no raw section follows.
	line := "21:34:11 03/06/2015 120 250 2.41 10"

	ds, err := Parse(strings.NewReader(line), discardLogger())
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(ds.Records[0].Raw) != 0 {
		t.Errorf("raw = %v, want none", ds.Records[0].Raw)
	}
}

func TestDecimate(t *testing.T) {
	ds := &Dataset{}
	for i := 0; i < 25; i++ {
		ds.Records = append(ds.Records, Record{NPts: i})
	}

	ds.Decimate(10)

	if len(ds.Records) != 3 {
		t.Fatalf("got %d records, want 3", len(ds.Records))
	}
	for i, want := range []int{0, 10, 20} {
		if ds.Records[i].NPts != want {
			t.Errorf("record %d = %d, want %d", i, ds.Records[i].NPts, want)
		}
	}
}

func TestDecimate_NoOpForSmallN(t *testing.T) {
	ds := &Dataset{Records: make([]Record, 5)}
	ds.Decimate(1)
	if len(ds.Records) != 5 {
		t.Errorf("got %d records, want 5", len(ds.Records))
	}
}
