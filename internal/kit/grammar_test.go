package kit

import "testing"

func TestParseFilename(t *testing.T) {
	tests := []struct {
		stem    string
		wantOK  bool
		note    int
		hasTier bool
		tier    int
		hasRR   bool
		rr      int
	}{
		{"36", true, 36, false, 0, false, 0},
		{"38_v1_rr1", true, 38, true, 1, true, 1},
		{"38_v2_rr2", true, 38, true, 2, true, 2},
		{"38_rr3", true, 38, false, 0, true, 3},
		{"128", false, 0, false, 0, false, 0},
		{"kick", false, 0, false, 0, false, 0},
		{"36_v0", false, 0, false, 0, false, 0},
	}
	for _, tt := range tests {
		pn, ok := parseFilename(tt.stem)
		if ok != tt.wantOK {
			t.Errorf("parseFilename(%q) ok = %v, want %v", tt.stem, ok, tt.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if pn.Note != tt.note || pn.HasTier != tt.hasTier || pn.Tier != tt.tier ||
			pn.HasRR != tt.hasRR || pn.RR != tt.rr {
			t.Errorf("parseFilename(%q) = %+v, want note=%d tier=%v/%d rr=%v/%d",
				tt.stem, pn, tt.note, tt.hasTier, tt.tier, tt.hasRR, tt.rr)
		}
	}
}

func TestTierRange(t *testing.T) {
	tests := []struct {
		i, K   int
		lo, hi int
	}{
		{1, 1, 1, 127},
		{1, 2, 1, 63},
		{2, 2, 64, 127},
		{1, 3, 1, 42},
		{2, 3, 43, 84},
		{3, 3, 85, 127},
	}
	for _, tt := range tests {
		lo, hi := tierRange(tt.i, tt.K)
		if lo != tt.lo || hi != tt.hi {
			t.Errorf("tierRange(%d, %d) = (%d, %d), want (%d, %d)", tt.i, tt.K, lo, hi, tt.lo, tt.hi)
		}
	}
}
