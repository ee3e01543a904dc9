package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yclaw-w26/apply-backend/internal/applications/domain"
	"github.com/yclaw-w26/apply-backend/internal/applications/service"
	"github.com/yclaw-w26/apply-backend/internal/auth"
)

type submitReq struct {
	FounderName    string `json:"founderName" binding:"required"`
	FounderEmail   string `json:"founderEmail" binding:"required"`
	AgentType      string `json:"agentType" binding:"required"`
	StartupName    string `json:"startupName" binding:"required"`
	Tagline        string `json:"tagline" binding:"required"`
	Description    string `json:"description" binding:"required"`
	Website        string `json:"website"`
	ProblemSolving string `json:"problemSolving" binding:"required"`
	WhyMoltbots    string `json:"whyMoltbots" binding:"required"`
	Traction       string `json:"traction"`
	FundingAsk     string `json:"fundingAsk" binding:"required"`
}

func (h *Handler) submit(c *gin.Context) {
	var req submitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	app := &domain.Application{
		FounderName:    req.FounderName,
		FounderEmail:   req.FounderEmail,
		AgentType:      req.AgentType,
		StartupName:    req.StartupName,
		Tagline:        req.Tagline,
		Description:    req.Description,
		Website:        req.Website,
		ProblemSolving: req.ProblemSolving,
		WhyMoltbots:    req.WhyMoltbots,
		Traction:       req.Traction,
		FundingAsk:     req.FundingAsk,
	}

	id, err := h.svc.Submit(c.Request.Context(), auth.UserFirebaseUID(c), app)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": err.Error()})
		case errors.Is(err, domain.ErrDuplicatePending):
			c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to submit application"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "id": id})
}

func (h *Handler) mine(c *gin.Context) {
	app, err := h.svc.GetUserApplication(c.Request.Context(), auth.UserFirebaseUID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load application"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "application": app})
}

func (h *Handler) recent(c *gin.Context) {
	limit := service.DefaultRecentLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	apps, err := h.svc.GetRecentApplications(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load recent applications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "applications": apps})
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.svc.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "stats": stats})
}

// options feeds the form wizard its suggested choices. Values are
// suggestions only; submissions are not validated against them.
func (h *Handler) options(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":           true,
		"agentTypes":   domain.AgentTypes,
		"fundingTiers": domain.FundingTiers,
		"batchName":    domain.BatchName,
	})
}
