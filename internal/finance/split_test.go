package finance

import (
	"math"
	"testing"
)

func TestEqualShare(t *testing.T) {
	tests := []struct {
		name    string
		total   float64
		count   int
		want    float64
		wantErr bool
	}{
		{name: "900 among 3", total: 900, count: 3, want: 300},
		{name: "3000 among 5", total: 3000, count: 5, want: 600},
		{name: "uneven split rounds to 2dp", total: 100, count: 3, want: 33.33},
		{name: "single member", total: 450.5, count: 1, want: 450.5},
		{name: "zero members errors", total: 900, count: 0, wantErr: true},
		{name: "negative count errors", total: 900, count: -2, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EqualShare(tt.total, tt.count)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("EqualShare(%v, %d) expected error, got %v", tt.total, tt.count, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("EqualShare(%v, %d) unexpected error: %v", tt.total, tt.count, err)
			}
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("EqualShare(%v, %d) = %v, want %v", tt.total, tt.count, got, tt.want)
			}
		})
	}
}

func TestPerHeadCost(t *testing.T) {
	tests := []struct {
		name         string
		totalExpense float64
		memberCount  int
		want         float64
	}{
		{name: "exact division", totalExpense: 9000, memberCount: 3, want: 3000},
		{name: "rounds to nearest unit", totalExpense: 1000, memberCount: 3, want: 333},
		{name: "rounds half up", totalExpense: 125, memberCount: 2, want: 63},
		{name: "zero members yields zero", totalExpense: 9000, memberCount: 0, want: 0},
		{name: "zero expense", totalExpense: 0, memberCount: 4, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PerHeadCost(tt.totalExpense, tt.memberCount)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("PerHeadCost(%v, %d) = %v, want %v", tt.totalExpense, tt.memberCount, got, tt.want)
			}
		})
	}
}
