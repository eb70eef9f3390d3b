package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/yigit/bandroster/internal/pkg/apperrors"
	"github.com/yigit/bandroster/internal/pkg/validation"
)

// BindJSON decodes the request body into obj and validates it with the
// shared validator. On failure it writes a 400 response and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		HandleAPIError(c, fmt.Errorf("%w: invalid request format: %v", apperrors.ErrBadRequest, err))
		return false
	}

	if err := validation.Struct(obj); err != nil {
		HandleAPIError(c, err)
		return false
	}
	return true
}

// BindQuery decodes query parameters into obj.
func BindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		HandleAPIError(c, fmt.Errorf("%w: invalid query parameters: %v", apperrors.ErrBadRequest, err))
		return false
	}
	return true
}
