package rng

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashSeed_Fixpoints(t *testing.T) {
	tests := []struct {
		name string
		args [5]int32
		want int32
	}{
		{
			name: "all zero",
			args: [5]int32{0, 0, 0, 0, 0},
			want: 1333457339,
		},
		{
			name: "ascending",
			args: [5]int32{1, 2, 3, 4, 5},
			want: 100340316,
		},
		{
			name: "int max reduces to zero",
			args: [5]int32{math.MaxInt32, 0, 0, 0, 0},
			want: 1333457339,
		},
		{
			name: "all int max",
			args: [5]int32{math.MaxInt32, math.MaxInt32, math.MaxInt32, math.MaxInt32, math.MaxInt32},
			want: 1333457339,
		},
		{
			name: "negative arguments keep sign through reduction",
			args: [5]int32{-1, -2, -3, -4, -5},
			want: -1512346728,
		},
		{
			name: "cart style day and half seed",
			args: [5]int32{770, 61610, 0, 0, 0},
			want: -801408195,
		},
		{
			name: "mine style tuple",
			args: [5]int32{30, 6172, 0, 0, 0},
			want: 891781969,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := tt.args
			assert.Equal(t, tt.want, HashSeed(a[0], a[1], a[2], a[3], a[4]))
		})
	}
}

func TestHashSeed_Deterministic(t *testing.T) {
	first := HashSeed(10, 20, 30, 40, 50)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, HashSeed(10, 20, 30, 40, 50))
	}
}

func TestHashSeed_ArgumentOrderMatters(t *testing.T) {
	assert.NotEqual(t, HashSeed(1, 2, 0, 0, 0), HashSeed(2, 1, 0, 0, 0))
}
