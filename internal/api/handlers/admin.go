package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cardvault/internal/database"
	"cardvault/internal/services"
)

type AdminHandler struct {
	snapshotService *services.SnapshotService
}

func NewAdminHandler(snapshotService *services.SnapshotService) *AdminHandler {
	return &AdminHandler{
		snapshotService: snapshotService,
	}
}

// InitDB (re)runs schema migrations so a fresh deployment can be
// bootstrapped without shell access.
func (h *AdminHandler) InitDB(c *gin.Context) {
	if err := database.Migrate(database.GetDB()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "db-initialized"})
}

// ForceSnapshot records a portfolio value snapshot now, regardless of
// the configured snapshot hour.
func (h *AdminHandler) ForceSnapshot(c *gin.Context) {
	if err := h.snapshotService.TakeSnapshot(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "snapshot-recorded"})
}
