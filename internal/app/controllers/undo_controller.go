package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/bandroster/internal/app/models/dto"
	"github.com/yigit/bandroster/internal/app/services"
	"github.com/yigit/bandroster/internal/middleware"
)

// UndoController exposes the undo stack
type UndoController struct {
	undoService *services.UndoService
}

// NewUndoController creates a new UndoController
func NewUndoController(undoService *services.UndoService) *UndoController {
	return &UndoController{undoService: undoService}
}

// Status reports the stack depth and the next label
// GET /undo
func (c *UndoController) Status(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.undoService.Status()))
}

// Undo reverses the most recent operation
// POST /undo
func (c *UndoController) Undo(ctx *gin.Context) {
	label, err := c.undoService.Undo(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	status := c.undoService.Status()
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.UndoResponse{
		Undone:    label,
		Remaining: status.Depth,
		Next:      status.Label,
	}))
}
