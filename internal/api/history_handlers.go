package api

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/momo1113/babyTracker-sub000/internal"
	"github.com/momo1113/babyTracker-sub000/internal/service"
)

// GetHistory returns the merged, sorted, formatted timeline for one
// calendar day. A day without events is a 200 with an empty array.
func GetHistory(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		date := c.Param("date")

		entries, err := service.BuildDayTimeline(
			c.Request.Context(),
			app.FeedingRepo(), app.DiaperRepo(), app.SleepRepo(),
			user.ID, date, time.Now(),
		)
		if err != nil {
			if errors.Is(err, service.ErrInvalidDate) {
				HandleError(c, app.Logger(), err, 400, "Invalid date")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to fetch history")
			return
		}

		meta := map[string]any{
			"date":   date,
			"counts": service.CountByKind(entries),
		}
		HandleSuccess(c, app.Logger(), entries, meta)
	}
}
