package dto

import "github.com/tafahna/practicum-portal/internal/app/models"

// RegisterStudentRequest represents a student's request for a practicum seat
type RegisterStudentRequest struct {
	FullName    string `json:"fullName" binding:"required"`
	NationalID  string `json:"nationalId" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

// StudentResponse represents a registered student
type StudentResponse struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	NationalID   string      `json:"nationalId"`
	PhoneNumber  string      `json:"phoneNumber,omitempty"`
	Year         models.Year `json:"year" example:"third" enums:"third,fourth"`
	DepartmentID string      `json:"departmentId"`
	InstituteID  string      `json:"instituteId"`
}

// RegistrationResponse represents a granted seat with its institute snapshot
type RegistrationResponse struct {
	Student   StudentResponse   `json:"student"`
	Institute InstituteResponse `json:"institute"`
}

// NewStudentResponse maps a student onto its API representation
func NewStudentResponse(student models.Student) StudentResponse {
	return StudentResponse{
		ID:           student.ID,
		Name:         student.Name,
		NationalID:   student.NationalID,
		PhoneNumber:  student.PhoneNumber,
		Year:         student.Year,
		DepartmentID: student.DepartmentID,
		InstituteID:  student.InstituteID,
	}
}

// NewStudentResponses maps a slice of students
func NewStudentResponses(students []models.Student) []StudentResponse {
	responses := make([]StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, NewStudentResponse(student))
	}
	return responses
}
