package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/iSadist/chronos/internal"
	"github.com/iSadist/chronos/internal/service"
)

func GetClients(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		clients, err := service.ListClients(c.Request.Context(), app.Entries(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to list clients")
			return
		}

		HandleSuccess(c, app.Logger(), clients, nil)
	}
}

func PostClient(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		clientID := c.Query("clientId")
		if clientID == "" {
			HandleError(c, app.Logger(), errors.New("missing query parameter"), 400, "Client ID is required")
			return
		}

		if err := service.CreateClient(c.Request.Context(), app.Entries(), user, clientID, app.StrictClients()); err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to create client")
			return
		}

		HandleSuccess(c, app.Logger(), nil, map[string]any{"message": "New client recorded: " + clientID})
	}
}

func DeleteClient(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		clientID := c.Query("clientId")
		if clientID == "" {
			HandleError(c, app.Logger(), errors.New("missing query parameter"), 400, "Client ID is required")
			return
		}

		if err := service.DeleteClient(c.Request.Context(), app.Entries(), user, clientID); err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to delete client")
			return
		}

		HandleSuccess(c, app.Logger(), nil, map[string]any{"message": "Client deleted."})
	}
}
