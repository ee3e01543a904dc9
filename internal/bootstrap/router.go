package bootstrap

import (
	"database/sql"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpapi "github.com/yclaw-w26/apply-backend/internal/api/http"
	"github.com/yclaw-w26/apply-backend/internal/api/http/middleware"
	appshttp "github.com/yclaw-w26/apply-backend/internal/applications/http"
	"github.com/yclaw-w26/apply-backend/internal/applications/service"
	authmw "github.com/yclaw-w26/apply-backend/internal/auth/middleware"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	DB          *sql.DB
	Auth        *fbauth.Client
	Apps        *service.ApplicationService
	Log         *zap.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(dep.Log))

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-Request-Id")
	r.Use(cors.New(corsCfg))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	appsHandler := appshttp.New(dep.Apps)
	appsHandler.Register(api, authmw.RequireAuth(dep.Auth), authmw.OptionalAuth(dep.Auth))

	return r
}
