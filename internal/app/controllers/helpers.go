package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/bandroster/internal/app/models"
	"github.com/yigit/bandroster/internal/app/models/dto"
)

// parseIDParam reads a positive integer path parameter. On failure it
// writes a 400 response and returns false.
func parseIDParam(ctx *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, fmt.Sprintf("Invalid %s", label))
		errorDetail = errorDetail.WithField(name).WithDetails(fmt.Sprintf("%s must be a positive number", label))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// parseCategoryParam reads the :category path parameter.
func parseCategoryParam(ctx *gin.Context) (models.Category, bool) {
	category, err := models.ParseCategory(ctx.Param("category"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Unknown equipment category")
		errorDetail = errorDetail.WithField("category").WithDetails(err.Error())
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(errorDetail))
		return "", false
	}
	return category, true
}
