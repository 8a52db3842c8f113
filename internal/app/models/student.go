package models

// Student is a registration record binding a person to exactly one
// institute. There is no transfer operation; removal followed by a new
// registration is the only path between institutes.
type Student struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	NationalID   string `json:"nationalId"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
	Year         Year   `json:"year"`
	DepartmentID string `json:"departmentId"`
	InstituteID  string `json:"instituteId"`
}
