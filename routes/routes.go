package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	v1 "github.com/issue-tracker/api/v1"
	"github.com/issue-tracker/config"
	"github.com/issue-tracker/middleware"
)

// SetupRouter builds the engine with its global middleware and every route
func SetupRouter(cfg *config.Server, deps v1.Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(middleware.ZLogMiddleware(), gin.Recovery())

	// CORS configuration
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}
	if len(cfg.CORSOrigins) == 0 || (len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	}
	router.Use(cors.New(corsConfig))

	// Cart sessions live in a signed cookie
	store := cookie.NewStore([]byte(cfg.Session.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.Session.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions(cfg.Session.Name, store))

	deps.SecureCookie = cfg.Session.Secure
	v1.RegisterRoutes(&router.RouterGroup, deps)
	return router
}
