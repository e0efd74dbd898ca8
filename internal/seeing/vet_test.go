package seeing

import (
	"math"
	"testing"
)

func TestVetSeries_DropsSentinelsAndHighValues(t *testing.T) {
	times := []float64{1, 2, 3, 4, 5, 6}
	values := []float64{2.41, 0, 0.08, 55, 9.99, 10}

	keptT, keptV, err := VetSeries(times, values, DayVetMax)
	if err != nil {
		t.Fatalf("VetSeries returned error: %v", err)
	}

	wantT := []float64{1, 5}
	wantV := []float64{2.41, 9.99}
	if len(keptV) != len(wantV) {
		t.Fatalf("kept %v, want %v", keptV, wantV)
	}
	for i := range wantV {
		if keptT[i] != wantT[i] || keptV[i] != wantV[i] {
			t.Errorf("kept[%d] = (%v, %v), want (%v, %v)", i, keptT[i], keptV[i], wantT[i], wantV[i])
		}
	}
}

func TestVetSeries_BulkThresholdKeepsModerateValues(t *testing.T) {
	times := []float64{1, 2, 3}
	values := []float64{12, 49.99, 50}

	_, keptV, err := VetSeries(times, values, BulkVetMax)
	if err != nil {
		t.Fatalf("VetSeries returned error: %v", err)
	}
	if len(keptV) != 2 || keptV[0] != 12 || keptV[1] != 49.99 {
		t.Errorf("kept %v, want [12 49.99]", keptV)
	}
}

func TestVetSeries_RoundsBeforeFiltering(t *testing.T) {
	// 0.0799 rounds to the 0.08 saturation value; 0.004 rounds to zero.
	times := []float64{1, 2, 3}
	values := []float64{0.0799, 0.004, 2.4449}

	_, keptV, err := VetSeries(times, values, DayVetMax)
	if err != nil {
		t.Fatalf("VetSeries returned error: %v", err)
	}
	if len(keptV) != 1 {
		t.Fatalf("kept %v, want one value", keptV)
	}
	if math.Abs(keptV[0]-2.44) > 1e-9 {
		t.Errorf("kept value = %v, want 2.44", keptV[0])
	}
}

func TestVet_BulkThreshold(t *testing.T) {
	values := []float64{2.41, 0, 0.08, 49.99, 50, 120}

	kept := Vet(values, BulkVetMax)
	if len(kept) != 2 || kept[0] != 2.41 || kept[1] != 49.99 {
		t.Errorf("kept %v, want [2.41 49.99]", kept)
	}
}

func TestVet_RoundsBeforeFiltering(t *testing.T) {
	kept := Vet([]float64{0.0799, 0.004, 2.4449}, DayVetMax)
	if len(kept) != 1 {
		t.Fatalf("kept %v, want one value", kept)
	}
	if math.Abs(kept[0]-2.44) > 1e-9 {
		t.Errorf("kept value = %v, want 2.44", kept[0])
	}
}

func TestVetSeries_LengthMismatch(t *testing.T) {
	_, _, err := VetSeries([]float64{1, 2}, []float64{3}, DayVetMax)
	if err == nil {
		t.Fatal("expected error for mismatched vector lengths")
	}
}

func TestVetSeries_Empty(t *testing.T) {
	keptT, keptV, err := VetSeries(nil, nil, DayVetMax)
	if err != nil {
		t.Fatalf("VetSeries returned error: %v", err)
	}
	if len(keptT) != 0 || len(keptV) != 0 {
		t.Errorf("kept (%v, %v), want empty", keptT, keptV)
	}
}
