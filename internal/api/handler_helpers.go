package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/momo1113/babyTracker-sub000/internal"
	"github.com/momo1113/babyTracker-sub000/internal/response"
	"github.com/momo1113/babyTracker-sub000/internal/storage"
)

func HandleError(c *gin.Context, logger internal.Logger, err error, status int, msg string) {
	requestID := c.GetString("request_id")
	logger.Errorf("[request_id=%s] %s: %v", requestID, msg, err)
	var resp response.APIResponse
	switch status {
	case 400:
		resp = response.BadRequest(msg + ": " + err.Error())
	case 404:
		resp = response.NotFound(msg + ": " + err.Error())
	case 500:
		resp = response.InternalError(msg + ": " + err.Error())
	default:
		resp = response.NewAppError(status, msg+": "+err.Error())
	}
	c.JSON(status, resp)
}

// HandleStoreError distinguishes a missing document from a failing
// store.
func HandleStoreError(c *gin.Context, logger internal.Logger, err error, msg string) {
	if errors.Is(err, storage.ErrNotFound) {
		HandleError(c, logger, err, 404, msg)
		return
	}
	HandleError(c, logger, err, 500, msg)
}

func HandleSuccess(c *gin.Context, logger internal.Logger, data interface{}, meta map[string]any) {
	requestID := c.GetString("request_id")
	logger.Infof("[request_id=%s] Success", requestID)
	c.JSON(200, response.Success(data, meta))
}

func HandleCreated(c *gin.Context, logger internal.Logger, data interface{}) {
	requestID := c.GetString("request_id")
	logger.Infof("[request_id=%s] Created", requestID)
	c.JSON(201, response.Success(data, nil))
}
