package http

import "github.com/gin-gonic/gin"

// Register attaches application routes to the given router group.
// Submission requires an identity; the user's own view resolves one when
// present; stats, the recent feed and form options are public.
func (h *Handler) Register(api *gin.RouterGroup, requireAuth, optionalAuth gin.HandlerFunc) {
	apps := api.Group("/applications")
	apps.POST("", requireAuth, h.submit)
	apps.GET("/me", optionalAuth, h.mine)
	apps.GET("/recent", h.recent)
	apps.GET("/options", h.options)

	api.GET("/stats", h.stats)
}
