package geometry

import "testing"

func TestParseAcceptsAllForms(t *testing.T) {
	cases := []string{"10", "10px", "10c", "10%", "12.5%"}
	for _, s := range cases {
		if _, err := Parse(s); err != nil {
			t.Errorf("Parse(%q) unexpected error: %v", s, err)
		}
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	cases := []string{"", "abc", "10xx", "%10"}
	for _, s := range cases {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q) expected error, got nil", s)
		}
	}
}

// TestGeometryRoundTrip verifies property #1 from the spec: for all
// N in [1, 10000], px_to_cells(cells_to_px(N, Width), Width) is within
// +/-1 of N due to ceil rounding on both conversions.
func TestGeometryRoundTrip(t *testing.T) {
	win := Wininfo{SpxWidth: 1920, SpxHeight: 1080, ScWidth: 120, ScHeight: 30}

	for n := 1; n <= 10000; n += 37 {
		px := CellsToPx(n, win.SpxWidth, win.ScWidth)
		cells := PxToCells(px, win.SpxWidth, win.ScWidth)
		diff := cells - n
		if diff < -1 || diff > 1 {
			t.Fatalf("round trip for N=%d produced cells=%d (diff %d)", n, cells, diff)
		}
	}
}

func TestToPxPercent(t *testing.T) {
	win := Wininfo{SpxWidth: 1920, SpxHeight: 1080, ScWidth: 100, ScHeight: 20}
	d, err := Parse("80%")
	if err != nil {
		t.Fatal(err)
	}
	px, err := d.ToPx(win, AxisWidth, true)
	if err != nil {
		t.Fatal(err)
	}
	if want := 1536; px != want {
		t.Errorf("80%% of 1920 = %d, got %d", want, px)
	}
}

func TestToCellsFromPixels(t *testing.T) {
	win := Wininfo{SpxWidth: 1920, SpxHeight: 1080, ScWidth: 120, ScHeight: 30}
	d, err := Parse("100px")
	if err != nil {
		t.Fatal(err)
	}
	cells, err := d.ToCells(win, AxisWidth, true)
	if err != nil {
		t.Fatal(err)
	}
	if cells <= 0 {
		t.Errorf("expected positive cell count, got %d", cells)
	}
}
