package http

import "github.com/yclaw-w26/apply-backend/internal/applications/service"

// Handler bundles the dependencies for application HTTP endpoints.
type Handler struct {
	svc *service.ApplicationService
}

func New(svc *service.ApplicationService) *Handler {
	return &Handler{svc: svc}
}
