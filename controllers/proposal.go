// controllers/proposal.go
package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"whitepaper-portal-api/config"
	"whitepaper-portal-api/middleware"
	"whitepaper-portal-api/services"
	"whitepaper-portal-api/utils"

	"github.com/gin-gonic/gin"
)

const maxShowcaseLimit = 100

// newProposalService is swapped out in tests.
var newProposalService = func() *services.ProposalService {
	return services.NewProposalService(nil, nil)
}

type proposalRequest struct {
	Title   string `json:"title"`
	Content string `json:"whitepaper_content"`
}

func (r proposalRequest) input() services.ProposalInput {
	return services.ProposalInput{Title: r.Title, Content: r.Content}
}

// ===================== PROPOSAL MANAGEMENT =====================

// POST /api/v1/proposals
func CreateProposal(c *gin.Context) {
	var req proposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	identity := middleware.IdentityFromContext(c)
	submission, err := newProposalService().Create(c.Request.Context(), identity, req.input())
	if err != nil {
		respondError(c, err, "Failed to submit. Please try again.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Submission Received!",
		"submission": submission,
	})
}

// GET /api/v1/my-proposals
func GetMyProposals(c *gin.Context) {
	identity := middleware.IdentityFromContext(c)
	items, err := newProposalService().ListMine(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err, "Failed to load your proposals. Please try again.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"proposals": items,
		"total":     len(items),
	})
}

// GET /api/v1/my-proposals/:id/edit
func GetProposalForEdit(c *gin.Context) {
	identity := middleware.IdentityFromContext(c)
	view, err := newProposalService().LoadForEdit(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load proposal. Please try again.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"submission": view.Submission,
		"sections":   view.Sections,
		"can_save":   true,
	})
}

// PUT /api/v1/my-proposals/:id
func UpdateProposal(c *gin.Context) {
	var req proposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	identity := middleware.IdentityFromContext(c)
	view, err := newProposalService().SaveEdit(c.Request.Context(), identity, c.Param("id"), req.input())
	if err != nil {
		respondError(c, err, "Failed to update. Please try again.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Proposal updated successfully",
		"submission": view.Submission,
		"sections":   view.Sections,
	})
}

// DELETE /api/v1/my-proposals/:id
func DeleteProposal(c *gin.Context) {
	identity := middleware.IdentityFromContext(c)
	if err := newProposalService().Delete(c.Request.Context(), identity, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete. Please try again.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Proposal deleted successfully",
	})
}

// ===================== PUBLIC VIEWS =====================

// GET /api/v1/proposals/:id?abstract=true
func GetPublicProposal(c *gin.Context) {
	abstractMode, _ := strconv.ParseBool(c.DefaultQuery("abstract", "false"))

	view, err := newProposalService().PublicView(c.Request.Context(), c.Param("id"), utils.RenderOptions{AbstractMode: abstractMode})
	if err != nil {
		respondError(c, err, "Proposal not found or failed to load.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"proposal": view,
	})
}

// GET /api/v1/showcase?limit=20
func GetShowcase(c *gin.Context) {
	limit := parseIntOrDefault(c.Query("limit"), config.Cfg.ShowcaseSize)
	if limit <= 0 {
		limit = services.DefaultShowcaseLimit
	}
	if limit > maxShowcaseLimit {
		limit = maxShowcaseLimit
	}

	cards, err := newProposalService().Showcase(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err, "Failed to load showcase. Please try again.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"proposals": cards,
		"total":     len(cards),
	})
}

// POST /api/v1/sections/check
func CheckSections(c *gin.Context) {
	var req proposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	checks := utils.CheckSections(req.Content, utils.RequiredSections)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"sections": checks,
		"complete": utils.AllSectionsPresent(checks),
		"missing":  missingLabels(checks),
	})
}

func parseIntOrDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}
