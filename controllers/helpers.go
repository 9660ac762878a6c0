package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kathamala/katha-backend/config"
	"github.com/kathamala/katha-backend/models"
	"github.com/kathamala/katha-backend/utils"
)

// callerID is the authenticated principal's id set by the auth middleware.
func callerID(c *gin.Context) uint {
	return c.GetUint("auth_id")
}

func callerIsAdmin(c *gin.Context) bool {
	return c.GetString("kind") == utils.KindAdmin
}

// resolveStatus maps the optional status field of a create payload onto a
// content status: empty means the configured default, anything else must
// be a real status.
func resolveStatus(raw string) (models.ContentStatus, error) {
	if raw == "" {
		return config.DefaultContentStatus(), nil
	}
	status := models.ContentStatus(raw)
	if !status.Valid() {
		return "", errors.New("status must be one of draft, pending, published")
	}
	return status, nil
}
