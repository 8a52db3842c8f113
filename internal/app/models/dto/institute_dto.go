package dto

import "github.com/tafahna/practicum-portal/internal/app/models"

// InstituteResponse represents a practicum institute with its occupancy
type InstituteResponse struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Location     string      `json:"location"`
	DepartmentID string      `json:"departmentId"`
	Year         models.Year `json:"year" example:"third" enums:"third,fourth"`
	MaxCapacity  int         `json:"maxCapacity" example:"6"`
	CurrentCount int         `json:"currentCount" example:"4"`
	IsFull       bool        `json:"isFull"`
}

// GroupedInstitutesResponse groups institutes by their town for the browse view
type GroupedInstitutesResponse struct {
	Location   string              `json:"location"`
	Institutes []InstituteResponse `json:"institutes"`
}

// CreateInstituteRequest represents an admin request to add an institute
type CreateInstituteRequest struct {
	Name         string      `json:"name" binding:"required"`
	Location     string      `json:"location" binding:"required"`
	DepartmentID string      `json:"departmentId" binding:"required"`
	Year         models.Year `json:"year" binding:"required"`
}

// UpdateInstituteRequest represents an admin rename of an institute
type UpdateInstituteRequest struct {
	Name string `json:"name" binding:"required"`
}

// DeleteInstituteResponse reports the result of a cascading institute delete
type DeleteInstituteResponse struct {
	RemovedStudents int `json:"removedStudents"`
}

// DepartmentResponse represents a practicum department
type DepartmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewInstituteResponse maps an institute onto its API representation
func NewInstituteResponse(inst models.Institute) InstituteResponse {
	return InstituteResponse{
		ID:           inst.ID,
		Name:         inst.Name,
		Location:     inst.Location,
		DepartmentID: inst.DepartmentID,
		Year:         inst.Year,
		MaxCapacity:  inst.MaxCapacity,
		CurrentCount: inst.CurrentCount,
		IsFull:       inst.Full(),
	}
}

// NewInstituteResponses maps a slice of institutes
func NewInstituteResponses(institutes []models.Institute) []InstituteResponse {
	responses := make([]InstituteResponse, 0, len(institutes))
	for _, inst := range institutes {
		responses = append(responses, NewInstituteResponse(inst))
	}
	return responses
}
