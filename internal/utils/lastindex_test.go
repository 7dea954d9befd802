package utils

import "testing"

func TestLastIndexFunc(t *testing.T) {
	tests := []struct {
		name string
		s    []int
		pred func(int) bool
		want int
	}{
		{"empty slice", nil, func(v int) bool { return true }, -1},
		{"no match", []int{1, 2, 3}, func(v int) bool { return v > 10 }, -1},
		{"single match", []int{1, 2, 3}, func(v int) bool { return v == 2 }, 1},
		{"last of repeated matches", []int{2, 1, 2, 3, 2}, func(v int) bool { return v == 2 }, 4},
		{"match at start", []int{7, 1, 1}, func(v int) bool { return v == 7 }, 0},
		{"match at end", []int{1, 1, 7}, func(v int) bool { return v == 7 }, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LastIndexFunc(tt.s, tt.pred); got != tt.want {
				t.Errorf("LastIndexFunc() = %d, want %d", got, tt.want)
			}
		})
	}
}
