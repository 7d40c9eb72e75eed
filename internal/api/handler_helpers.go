package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/iSadist/chronos/internal"
	"github.com/iSadist/chronos/internal/response"
)

func HandleError(c *gin.Context, logger internal.Logger, err error, status int, msg string) {
	requestID := c.GetString("request_id")
	logger.Errorf("[request_id=%s] %s: %v", requestID, msg, err)
	var resp response.APIResponse
	switch status {
	case 400:
		resp = response.BadRequest(msg + ": " + err.Error())
	case 403:
		resp = response.Forbidden(msg + ": " + err.Error())
	case 404:
		resp = response.NotFound(msg + ": " + err.Error())
	case 409:
		resp = response.Conflict(msg + ": " + err.Error())
	case 500:
		resp = response.InternalError(msg + ": " + err.Error())
	default:
		resp = response.NewAppError(status, msg+": "+err.Error())
	}
	c.JSON(status, resp)
}

// HandleServiceError maps a service-layer error to its HTTP status. The
// service tags client-visible failures with an AppError code; anything
// untagged is a storage failure and answers 500.
func HandleServiceError(c *gin.Context, logger internal.Logger, err error, msg string) {
	status := 500
	var appErr *internal.AppError
	if errors.As(err, &appErr) {
		status = appErr.Code
	}
	HandleError(c, logger, err, status, msg)
}

func HandleSuccess(c *gin.Context, logger internal.Logger, data interface{}, meta map[string]any) {
	requestID := c.GetString("request_id")
	logger.Infof("[request_id=%s] Success", requestID)
	c.JSON(200, response.Success(data, meta))
}
