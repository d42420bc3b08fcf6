package api

import (
	"github.com/gin-gonic/gin"

	"github.com/momo1113/babyTracker-sub000/internal"
	"github.com/momo1113/babyTracker-sub000/internal/service"
)

func PostDiaper(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var body service.DiaperLogRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateDiaperLogRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		log, err := service.CreateDiaperLog(c.Request.Context(), app.DiaperRepo(), user, &body)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save diaper log")
			return
		}

		HandleCreated(c, app.Logger(), gin.H{"id": log.ID})
	}
}

func GetDiaper(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		logs, err := app.DiaperRepo().ListDiaperLogs(c.Request.Context(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch diaper logs")
			return
		}

		HandleSuccess(c, app.Logger(), logs, nil)
	}
}
