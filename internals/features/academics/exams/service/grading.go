// file: internals/features/academics/exams/service/grading.go
//
// Pure grading arithmetic. Kept free of DB and transport so the exact
// numbers are unit-testable; controllers call these and persist the
// returned derived values.
package service

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Result holds the derived columns for one mark row.
type Result struct {
	Percentage int
	Grade      string
	IsPassed   bool
}

// GradeFor maps a rounded percentage to its letter grade.
func GradeFor(percentage int) string {
	switch {
	case percentage >= 90:
		return "A+"
	case percentage >= 80:
		return "A"
	case percentage >= 70:
		return "B+"
	case percentage >= 60:
		return "B"
	case percentage >= 50:
		return "C+"
	case percentage >= 40:
		return "C"
	case percentage >= 35:
		return "D+"
	case percentage >= 30:
		return "D"
	default:
		return "F"
	}
}

// Percentage rounds marks/total to the nearest whole percent.
func Percentage(marksObtained, totalMarks float64) int {
	if totalMarks <= 0 {
		return 0
	}
	return int(math.Round(marksObtained / totalMarks * 100))
}

// Compute derives percentage, grade and pass flag for one entry.
// An absent student scores zero across the board regardless of any
// marks value submitted alongside the flag.
func Compute(marksObtained, totalMarks, passingMarks float64, isAbsent bool) Result {
	if isAbsent {
		return Result{Percentage: 0, Grade: "F", IsPassed: false}
	}
	pct := Percentage(marksObtained, totalMarks)
	return Result{
		Percentage: pct,
		Grade:      GradeFor(pct),
		IsPassed:   marksObtained >= passingMarks,
	}
}

var errBadClock = errors.New("clock must be HH:MM")

// ParseClock converts an HH:MM wall-clock string to minutes from midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, errBadClock
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, errBadClock
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, errBadClock
	}
	return h*60 + m, nil
}

// ValidateSchedule checks an exam's time window: both endpoints must be
// valid HH:MM and the end must come after the start.
func ValidateSchedule(startTime, endTime string) (startMin, endMin int, err error) {
	startMin, err = ParseClock(startTime)
	if err != nil {
		return 0, 0, fmt.Errorf("start time: %w", err)
	}
	endMin, err = ParseClock(endTime)
	if err != nil {
		return 0, 0, fmt.Errorf("end time: %w", err)
	}
	if endMin <= startMin {
		return 0, 0, errors.New("end time must be after start time")
	}
	return startMin, endMin, nil
}

// Overlaps reports whether two half-open minute ranges intersect.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}
