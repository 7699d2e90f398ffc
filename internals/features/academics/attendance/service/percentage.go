// file: internals/features/academics/attendance/service/percentage.go
//
// Attendance arithmetic. Two deliberately different readings coexist:
// the per-student figure counts only Present days, while the class
// summary also credits Late and Excused. Callers pick the reading that
// matches their endpoint.
package service

import "math"

// Counts tallies one student's attendance rows by status.
type Counts struct {
	Present int
	Absent  int
	Late    int
	Excused int
}

func (c Counts) Total() int {
	return c.Present + c.Absent + c.Late + c.Excused
}

// StrictPercentage is Present days over all marked days, rounded to
// the nearest whole percent like exam percentages.
func StrictPercentage(c Counts) float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	return math.Round(float64(c.Present) / float64(total) * 100)
}

// LenientPercentage credits Present, Late and Excused days.
func LenientPercentage(c Counts) float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	attended := c.Present + c.Late + c.Excused
	return math.Round(float64(attended) / float64(total) * 100)
}
