package models

import "testing"

func TestSummary_Capped(t *testing.T) {
	s := Summary{Window: CountWindow}
	tests := []struct {
		n    int
		want bool
	}{
		{0, false},
		{99, false},
		{100, true},
	}
	for _, tt := range tests {
		if got := s.Capped(tt.n); got != tt.want {
			t.Errorf("Capped(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
	if (Summary{}).Capped(100) {
		t.Error("a summary without a window is never capped")
	}
}
