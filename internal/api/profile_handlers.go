package api

import (
	"github.com/gin-gonic/gin"

	"github.com/momo1113/babyTracker-sub000/internal"
	"github.com/momo1113/babyTracker-sub000/internal/service"
)

func GetBabyProfile(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		profile, err := app.ProfileRepo().GetProfile(c.Request.Context(), user.ID)
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "Failed to fetch profile")
			return
		}

		HandleSuccess(c, app.Logger(), profile, nil)
	}
}

func PostBabyProfile(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var body service.ProfileRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateProfileRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		profile, err := service.SaveProfile(c.Request.Context(), app.ProfileRepo(), user, &body)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save profile")
			return
		}

		HandleSuccess(c, app.Logger(), profile, nil)
	}
}

// DeleteBabyProfileGrowth removes growth entries by date key.
func DeleteBabyProfileGrowth(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var body service.GrowthDeleteRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateGrowthDeleteRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		profile, err := service.DeleteGrowthEntries(c.Request.Context(), app.ProfileRepo(), user, body.Dates)
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "Failed to delete growth entries")
			return
		}

		HandleSuccess(c, app.Logger(), profile, nil)
	}
}
