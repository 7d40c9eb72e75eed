package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/iSadist/chronos/internal"
	"github.com/iSadist/chronos/internal/service"
)

func PostEntries(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var body service.RegisterRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateRegisterRequest(&body); err != nil {
			HandleServiceError(c, app.Logger(), err, "Validation failed")
			return
		}

		entries, err := service.RegisterEntries(c.Request.Context(), app.Entries(), user, &body)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Could not record time entry")
			return
		}

		HandleSuccess(c, app.Logger(), entries, map[string]any{"message": "Time entries recorded."})
	}
}

func DeleteEntry(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		entryID := c.Query("EntryId")
		if entryID == "" {
			HandleError(c, app.Logger(), errors.New("missing query parameter"), 400, "Entry ID is required")
			return
		}

		if err := service.DeleteEntry(c.Request.Context(), app.Entries(), user, entryID); err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to delete entry")
			return
		}

		HandleSuccess(c, app.Logger(), nil, map[string]any{"message": "Entry deleted."})
	}
}

// GetEntries returns a report over the caller's entries: optional client
// and date-range filters, then aggregation into the requested mode.
func GetEntries(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		mode, err := service.ParseMode(c.Query("mode"))
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Invalid report mode")
			return
		}

		entries, err := app.Entries().ListEntries(c.Request.Context(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Could not retrieve time entries")
			return
		}

		filtered, err := service.FilterEntries(entries, c.Query("clientId"), c.Query("from"), c.Query("to"))
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Invalid date range")
			return
		}

		report := service.BuildReport(filtered, mode)
		HandleSuccess(c, app.Logger(), report, nil)
	}
}
