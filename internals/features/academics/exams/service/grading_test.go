package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeFor(t *testing.T) {
	cases := []struct {
		percentage int
		want       string
	}{
		{100, "A+"},
		{90, "A+"},
		{89, "A"},
		{80, "A"},
		{79, "B+"},
		{70, "B+"},
		{69, "B"},
		{60, "B"},
		{59, "C+"},
		{50, "C+"},
		{49, "C"},
		{40, "C"},
		{39, "D+"},
		{35, "D+"},
		{34, "D"},
		{30, "D"},
		{29, "F"},
		{0, "F"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, GradeFor(tc.percentage), "percentage %d", tc.percentage)
	}
}

func TestCompute(t *testing.T) {
	t.Run("regular pass", func(t *testing.T) {
		got := Compute(72, 100, 40, false)
		assert.Equal(t, 72, got.Percentage)
		assert.Equal(t, "B+", got.Grade)
		assert.True(t, got.IsPassed)
	})

	t.Run("rounding goes to nearest", func(t *testing.T) {
		assert.Equal(t, 67, Compute(33.5, 50, 17, false).Percentage) // 67.0
		assert.Equal(t, 57, Compute(42.5, 75, 25, false).Percentage) // 56.67
	})

	t.Run("pass is on raw marks, not percentage", func(t *testing.T) {
		// 35/50 is 70% but the passing line is the marks value.
		got := Compute(35, 50, 36, false)
		assert.Equal(t, 70, got.Percentage)
		assert.False(t, got.IsPassed)

		got = Compute(36, 50, 36, false)
		assert.True(t, got.IsPassed, "exactly reaching the passing marks passes")
	})

	t.Run("absent zeroes everything", func(t *testing.T) {
		got := Compute(95, 100, 40, true)
		assert.Equal(t, Result{Percentage: 0, Grade: "F", IsPassed: false}, got)
	})

	t.Run("zero total marks", func(t *testing.T) {
		got := Compute(10, 0, 0, false)
		assert.Equal(t, 0, got.Percentage)
		assert.Equal(t, "F", got.Grade)
	})

	t.Run("exam parameters decide the grade", func(t *testing.T) {
		// The same raw marks grade differently against a 50-mark
		// exam than against its subject's 100-mark default.
		hard := Compute(40, 50, 30, false)
		assert.Equal(t, 80, hard.Percentage)
		assert.Equal(t, "A", hard.Grade)
		assert.True(t, hard.IsPassed)

		soft := Compute(40, 100, 45, false)
		assert.Equal(t, 40, soft.Percentage)
		assert.Equal(t, "C", soft.Grade)
		assert.False(t, soft.IsPassed)
	})
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"9:30", 0, true},
		{"930", 0, true},
		{"ab:cd", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestValidateSchedule(t *testing.T) {
	start, end, err := ValidateSchedule("09:00", "11:00")
	require.NoError(t, err)
	assert.Equal(t, 540, start)
	assert.Equal(t, 660, end)

	_, _, err = ValidateSchedule("11:00", "09:00")
	assert.Error(t, err, "end before start")

	_, _, err = ValidateSchedule("09:00", "09:00")
	assert.Error(t, err, "zero-length window")
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps(540, 660, 600, 720), "partial overlap")
	assert.True(t, Overlaps(540, 660, 550, 560), "contained")
	assert.False(t, Overlaps(540, 660, 660, 720), "back to back is fine")
	assert.False(t, Overlaps(540, 600, 720, 780), "disjoint")
}
