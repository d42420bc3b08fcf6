package api

import (
	"github.com/gin-gonic/gin"

	"github.com/momo1113/babyTracker-sub000/internal"
	"github.com/momo1113/babyTracker-sub000/internal/service"
)

func PostFeeding(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var body service.FeedingLogRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateFeedingLogRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		log, err := service.CreateFeedingLog(c.Request.Context(), app.FeedingRepo(), user, &body)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save feeding log")
			return
		}

		HandleCreated(c, app.Logger(), gin.H{"id": log.ID})
	}
}

func GetFeeding(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		logs, err := app.FeedingRepo().ListFeedingLogs(c.Request.Context(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch feeding logs")
			return
		}

		HandleSuccess(c, app.Logger(), logs, nil)
	}
}
