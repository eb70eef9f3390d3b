package dto

import "github.com/yigit/bandroster/internal/app/models"

// StudentListQuery holds the roster list query parameters
type StudentListQuery struct {
	Q          string `form:"q"`
	ActiveOnly bool   `form:"activeOnly"`
}

// ToFilter converts the query into a repository filter
func (q StudentListQuery) ToFilter() models.StudentFilter {
	return models.StudentFilter{Search: q.Q, ActiveOnly: q.ActiveOnly}
}

// StudentPreviewResponse confirms who a student ID belongs to before checkout
type StudentPreviewResponse struct {
	StudentID int64          `json:"studentId" example:"300819037"`
	Name      string         `json:"name" example:"Jordan Reed"`
	Section   models.Section `json:"section" example:"WOODWIND"`
	Active    bool           `json:"active" example:"true"`
}

// NewStudentPreviewResponse builds a preview from a student
func NewStudentPreviewResponse(s *models.Student) StudentPreviewResponse {
	return StudentPreviewResponse{
		StudentID: s.StudentID,
		Name:      s.FullName(),
		Section:   s.Section,
		Active:    s.Active,
	}
}
