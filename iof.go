package iof // import "kastelo.dev/iof"

import (
	"time"
)

// ClassResult holds the normalized results for one competition class,
// competitors ordered by final placement.
type ClassResult struct {
	ClassID     string
	ClassName   string
	CourseName  string
	Competitors []CompetitorResult
}

// CompetitorResult is one entrant's race outcome. Optional integers are
// nil when the source file carries no value; optional timestamps are the
// zero time.
type CompetitorResult struct {
	Name        string
	Team        string
	TimeSeconds *int
	StartTime   time.Time
	FinishTime  time.Time
	Position    *int
	Status      string
	Splits      []SplitTime
}

// SplitTime is one intermediate timing punch, ordered within a
// CompetitorResult ascending by Seconds.
type SplitTime struct {
	Seconds     *int
	ControlCode *int
}
