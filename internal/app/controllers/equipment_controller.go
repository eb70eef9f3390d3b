package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/bandroster/internal/app/models"
	"github.com/yigit/bandroster/internal/app/models/dto"
	"github.com/yigit/bandroster/internal/app/services"
	"github.com/yigit/bandroster/internal/middleware"
)

// EquipmentController handles inventory and checkout endpoints
type EquipmentController struct {
	checkoutService *services.CheckoutService
}

// NewEquipmentController creates a new EquipmentController
func NewEquipmentController(checkoutService *services.CheckoutService) *EquipmentController {
	return &EquipmentController{
		checkoutService: checkoutService,
	}
}

// ListInstrumentTypes returns the instrument catalog
// GET /instrument-types
func (c *EquipmentController) ListInstrumentTypes(ctx *gin.Context) {
	types, err := c.checkoutService.ListInstrumentTypes(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(types))
}

// ListUnits lists the inventory of one category
// GET /equipment/:category?q=&section=
func (c *EquipmentController) ListUnits(ctx *gin.Context) {
	category, ok := parseCategoryParam(ctx)
	if !ok {
		return
	}
	var query dto.EquipmentListQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}
	filter := query.ToFilter()

	var (
		units interface{}
		err   error
	)
	switch category {
	case models.CategoryInstrument:
		units, err = c.checkoutService.ListInstruments(ctx, filter)
	case models.CategoryUniform:
		units, err = c.checkoutService.ListUniforms(ctx, filter)
	case models.CategoryShako:
		units, err = c.checkoutService.ListShakos(ctx, filter)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(units))
}

// AddUnit adds an unassigned unit
// POST /equipment/:category
func (c *EquipmentController) AddUnit(ctx *gin.Context) {
	category, ok := parseCategoryParam(ctx)
	if !ok {
		return
	}
	req := dto.NewUnitRequest(category)
	if !middleware.BindJSON(ctx, req) {
		return
	}

	id, err := c.checkoutService.AddUnit(ctx, req.ToSpec())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.UnitCreatedResponse{Category: category, UnitID: id}))
}

// GetUnit returns the checkout state of one unit
// GET /equipment/:category/:id
func (c *EquipmentController) GetUnit(ctx *gin.Context) {
	category, ok := parseCategoryParam(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id", "unit ID")
	if !ok {
		return
	}

	holding, err := c.checkoutService.GetHolding(ctx, category, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(holding))
}

// Assign checks a unit out to a student
// POST /equipment/:category/:id/assign
func (c *EquipmentController) Assign(ctx *gin.Context) {
	category, ok := parseCategoryParam(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id", "unit ID")
	if !ok {
		return
	}
	var req dto.AssignUnitRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	holding, err := c.checkoutService.Assign(ctx, services.AssignRequest{
		Category:                category,
		UnitID:                  id,
		StudentID:               req.StudentID,
		ConditionNotes:          req.ConditionNotes,
		OverrideSectionMismatch: req.OverrideSectionMismatch,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(holding))
}

// Unassign returns a unit
// POST /equipment/:category/:id/unassign
func (c *EquipmentController) Unassign(ctx *gin.Context) {
	category, ok := parseCategoryParam(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id", "unit ID")
	if !ok {
		return
	}
	var req dto.UnassignUnitRequest
	if ctx.Request.ContentLength != 0 && !middleware.BindJSON(ctx, &req) {
		return
	}

	holding, err := c.checkoutService.Unassign(ctx, category, id, req.ConditionNotes)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(holding))
}

// StudentHoldings lists what a student currently holds
// GET /students/:id/equipment
func (c *EquipmentController) StudentHoldings(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "student ID")
	if !ok {
		return
	}

	holdings, err := c.checkoutService.HoldingsFor(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(holdings))
}
