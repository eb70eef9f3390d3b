package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/bandroster/internal/app/models"
	"github.com/yigit/bandroster/internal/app/models/dto"
	"github.com/yigit/bandroster/internal/app/services"
	"github.com/yigit/bandroster/internal/middleware"
)

// StudentController handles roster and compliance endpoints
type StudentController struct {
	rosterService *services.RosterService
}

// NewStudentController creates a new StudentController
func NewStudentController(rosterService *services.RosterService) *StudentController {
	return &StudentController{
		rosterService: rosterService,
	}
}

// ListStudents returns the roster with eligibility
// GET /students?q=&activeOnly=
func (c *StudentController) ListStudents(ctx *gin.Context) {
	var query dto.StudentListQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	students, err := c.rosterService.ListStudents(ctx, query.ToFilter())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(students))
}

// CreateStudent adds a student to the roster
// POST /students
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var input models.StudentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.rosterService.AddStudent(ctx, input)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(student))
}

// GetStudent returns a student with compliance and holdings
// GET /students/:id
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "student ID")
	if !ok {
		return
	}

	detail, err := c.rosterService.GetStudent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(detail))
}

// PreviewStudent resolves a raw student ID to a name before checkout
// GET /students/:id/preview
func (c *StudentController) PreviewStudent(ctx *gin.Context) {
	student, err := c.rosterService.PreviewStudent(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewStudentPreviewResponse(student)))
}

// UpdateStudent replaces a student's editable fields
// PUT /students/:id
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "student ID")
	if !ok {
		return
	}

	var fields models.StudentFields
	if err := ctx.ShouldBindJSON(&fields); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.rosterService.EditStudent(ctx, id, fields)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student))
}

// DeleteStudent removes a student and releases their equipment
// DELETE /students/:id
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "student ID")
	if !ok {
		return
	}

	if err := c.rosterService.DeleteStudent(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Student deleted successfully"}))
}

// SetCompliance records credit hours, GPA and dues
// PUT /students/:id/compliance
func (c *StudentController) SetCompliance(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "student ID")
	if !ok {
		return
	}

	var input models.ComplianceInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid compliance data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	compliance, err := c.rosterService.SetCompliance(ctx, id, input)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(compliance))
}

// EligibilityReport lists every student with per-criterion flags
// GET /compliance/report
func (c *StudentController) EligibilityReport(ctx *gin.Context) {
	report, err := c.rosterService.EligibilityReport(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(report))
}
