package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrictPercentage(t *testing.T) {
	cases := []struct {
		name   string
		counts Counts
		want   float64
	}{
		{"all present", Counts{Present: 20}, 100},
		{"no rows", Counts{}, 0},
		{"late days do not count", Counts{Present: 18, Late: 2}, 90},
		{"excused days do not count", Counts{Present: 15, Absent: 3, Excused: 2}, 75},
		{"rounds to whole percent", Counts{Present: 2, Absent: 1}, 67},
		{"rounds down below half", Counts{Present: 1, Absent: 2}, 33},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, StrictPercentage(tc.counts), 0.001)
		})
	}
}

func TestLenientPercentage(t *testing.T) {
	cases := []struct {
		name   string
		counts Counts
		want   float64
	}{
		{"all present", Counts{Present: 20}, 100},
		{"no rows", Counts{}, 0},
		{"late and excused count", Counts{Present: 15, Late: 2, Excused: 1, Absent: 2}, 90},
		{"only absences subtract", Counts{Present: 0, Late: 4, Absent: 1}, 80},
		{"rounds to whole percent", Counts{Present: 1, Late: 1, Absent: 1}, 67},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, LenientPercentage(tc.counts), 0.001)
		})
	}
}

func TestReadingsDiverge(t *testing.T) {
	// Same rows, two figures: the strict reading ignores Late/Excused.
	c := Counts{Present: 16, Late: 2, Excused: 1, Absent: 1}
	assert.InDelta(t, 80, StrictPercentage(c), 0.001)
	assert.InDelta(t, 95, LenientPercentage(c), 0.001)
}
