package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/cek_senet_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

type backupHandler struct {
	backupService portssvc.BackupService
}

// registerBackupRoutes registers routes for on-demand workbook backups.
func registerBackupRoutes(rg *gin.RouterGroup, bs portssvc.BackupService) {
	h := &backupHandler{backupService: bs}

	backups := rg.Group("/backups")
	{
		backups.POST("", h.createBackup)
		backups.GET("", h.listBackups)
	}
}

// createBackup godoc
// @Summary Write a backup workbook now
// @Tags backups
// @Produce json
// @Success 201 {object} domain.BackupFile
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /backups [post]
func (h *backupHandler) createBackup(c *gin.Context) {
	backup, err := h.backupService.CreateBackup(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to create backup")
		return
	}
	c.JSON(http.StatusCreated, backup)
}

// listBackups godoc
// @Summary List backup workbooks
// @Tags backups
// @Produce json
// @Success 200 {array} domain.BackupFile
// @Security BearerAuth
// @Router /backups [get]
func (h *backupHandler) listBackups(c *gin.Context) {
	backups, err := h.backupService.ListBackups(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list backups")
		return
	}
	c.JSON(http.StatusOK, backups)
}
