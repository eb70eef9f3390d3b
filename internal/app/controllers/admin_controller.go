package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/bandroster/internal/app/models/dto"
	"github.com/yigit/bandroster/internal/app/services"
	"github.com/yigit/bandroster/internal/middleware"
)

// AdminController handles maintenance endpoints
type AdminController struct {
	adminService *services.AdminService
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService *services.AdminService) *AdminController {
	return &AdminController{adminService: adminService}
}

// Reset deletes every student and unit and clears the undo stack
// POST /admin/reset
func (c *AdminController) Reset(ctx *gin.Context) {
	if err := c.adminService.Reset(ctx); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "All roster and equipment data deleted"}))
}
