package models

// Year identifies the cohort a student or institute belongs to.
type Year string

const (
	YearThird  Year = "third"
	YearFourth Year = "fourth"
)

// Valid reports whether the value is one of the two known cohorts.
func (y Year) Valid() bool {
	return y == YearThird || y == YearFourth
}

// InstituteCapacity is the fixed seat count of every training group.
const InstituteCapacity = 6

// Institute represents a training site hosting one capacity-limited group
// per department and year-track.
type Institute struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Location     string `json:"location"`
	DepartmentID string `json:"departmentId"`
	Year         Year   `json:"year"`
	MaxCapacity  int    `json:"maxCapacity"`
	CurrentCount int    `json:"currentCount"` // derived cache of roster size, kept in lockstep by the registry
}

// Full reports whether the group has no free seat left.
func (i *Institute) Full() bool {
	return i.CurrentCount >= i.MaxCapacity
}
