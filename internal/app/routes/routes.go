package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/bandroster/internal/app/controllers"
)

// Controllers groups every controller the API routes to
type Controllers struct {
	Student   *controllers.StudentController
	Equipment *controllers.EquipmentController
	Undo      *controllers.UndoController
	Admin     *controllers.AdminController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, metricsHandler http.Handler) {
	router.GET("/ping", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})
	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	// API version group
	v1 := router.Group("/api/v1")

	students := v1.Group("/students")
	{
		students.GET("", c.Student.ListStudents)
		students.POST("", c.Student.CreateStudent)
		students.GET("/:id", c.Student.GetStudent)
		students.PUT("/:id", c.Student.UpdateStudent)
		students.DELETE("/:id", c.Student.DeleteStudent)
		students.GET("/:id/preview", c.Student.PreviewStudent)
		students.PUT("/:id/compliance", c.Student.SetCompliance)
		students.GET("/:id/equipment", c.Equipment.StudentHoldings)
	}

	v1.GET("/compliance/report", c.Student.EligibilityReport)
	v1.GET("/instrument-types", c.Equipment.ListInstrumentTypes)

	equipment := v1.Group("/equipment")
	{
		equipment.GET("/:category", c.Equipment.ListUnits)
		equipment.POST("/:category", c.Equipment.AddUnit)
		equipment.GET("/:category/:id", c.Equipment.GetUnit)
		equipment.POST("/:category/:id/assign", c.Equipment.Assign)
		equipment.POST("/:category/:id/unassign", c.Equipment.Unassign)
	}

	undo := v1.Group("/undo")
	{
		undo.GET("", c.Undo.Status)
		undo.POST("", c.Undo.Undo)
	}

	admin := v1.Group("/admin")
	{
		admin.POST("/reset", c.Admin.Reset)
	}
}
