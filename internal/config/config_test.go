package config

import "testing"

func TestParseGradeBandsDefault(t *testing.T) {
	bands, err := ParseGradeBands("")
	if err != nil {
		t.Fatal(err)
	}
	if len(bands) != 5 || bands[0].Label != "A" || bands[0].MinPercent != 80 {
		t.Fatalf("unexpected default bands: %v", bands)
	}
}

func TestParseGradeBandsOrdering(t *testing.T) {
	// Out-of-order input must still grade top-down.
	bands, err := ParseGradeBands("0:F, 70:B, 80:A")
	if err != nil {
		t.Fatal(err)
	}
	if bands[0].Label != "A" || bands[1].Label != "B" || bands[2].Label != "F" {
		t.Fatalf("bands not sorted descending: %v", bands)
	}
}

func TestParseGradeBandsErrors(t *testing.T) {
	for _, in := range []string{"80", "80:", "abc:A", "120:A", ","} {
		if _, err := ParseGradeBands(in); err == nil {
			t.Fatalf("input %q accepted", in)
		}
	}
}
