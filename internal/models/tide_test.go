package models

import "testing"

func TestParseTideType(t *testing.T) {
	tests := []struct {
		in     string
		want   TideType
		wantOK bool
	}{
		{"H", TideHigh, true},
		{"L", TideLow, true},
		{"HH", "", false},
		{"h", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseTideType(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseTideType(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestPrediction_IsHigh(t *testing.T) {
	if !(Prediction{Type: TideHigh}).IsHigh() {
		t.Error("TideHigh prediction should be high")
	}
	if (Prediction{Type: TideLow}).IsHigh() {
		t.Error("TideLow prediction should not be high")
	}
}
