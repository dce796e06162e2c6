package controllers

import (
	"net/http"

	"whitepaper-portal-api/config"
	"whitepaper-portal-api/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/v1/site
func GetSiteContent(c *gin.Context) {
	content, err := config.SiteContent()
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load site content"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"site":              content,
		"required_sections": utils.RequiredSections,
	})
}

// GET /api/v1/site/system-prompt
func GetSystemPrompt(c *gin.Context) {
	content, err := config.SiteContent()
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load system prompt"})
		return
	}

	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(content.SystemPrompt))
}

// GET /api/v1/health
func Health(c *gin.Context) {
	status := "ok"
	code := http.StatusOK
	if config.DB != nil {
		if sqlDB, err := config.DB.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}

	c.JSON(code, gin.H{
		"status":  status,
		"message": "Whitepaper Portal API is running",
	})
}
