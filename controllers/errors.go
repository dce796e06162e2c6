package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"whitepaper-portal-api/services"
	"whitepaper-portal-api/utils"

	"github.com/gin-gonic/gin"
)

const (
	msgSignInRequired  = "You must be signed in to continue."
	msgMissingSections = "Your whitepaper is missing some required sections. Please review the checklist below."
	msgNotFound        = "This proposal doesn't exist or you don't have permission to edit it."
	msgNotEditable     = `This proposal is no longer in "submitted" status and cannot be edited.`
)

var msgTitleTooLong = fmt.Sprintf("Title must be at most %d characters.", services.MaxTitleLength)

// respondError maps a service error onto the HTTP response. Store failures
// answer with fallback and are marked retryable; their cause is only logged.
func respondError(c *gin.Context, err error, fallback string) {
	var missing *services.MissingSectionsError
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": msgSignInRequired})
	case errors.Is(err, services.ErrEmptyField):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Please fill in all fields"})
	case errors.Is(err, services.ErrTitleTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msgTitleTooLong})
	case errors.As(err, &missing):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success":  false,
			"error":    msgMissingSections,
			"sections": missing.Checks,
			"missing":  missingLabels(missing.Checks),
		})
	case errors.Is(err, services.ErrSubmissionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": msgNotFound, "state": "not_found"})
	case errors.Is(err, services.ErrNotEditable):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": msgNotEditable, "state": "not_editable"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": fallback, "retryable": true})
	}
}

func missingLabels(checks []utils.SectionCheck) []string {
	labels := []string{}
	for _, check := range utils.MissingSections(checks) {
		labels = append(labels, check.Label)
	}
	return labels
}
