package app

import (
	"net/http"
	"time"

	"github.com/dsp-forms/core/internal/middleware"
	"github.com/dsp-forms/core/internal/modules/auth"
	"github.com/dsp-forms/core/internal/modules/export"
	"github.com/dsp-forms/core/internal/modules/form"
	"github.com/dsp-forms/core/internal/modules/health"
	"github.com/dsp-forms/core/internal/modules/render"
	"github.com/dsp-forms/core/internal/modules/submission"
	pkgredis "github.com/dsp-forms/core/internal/pkg/redis"
	"github.com/dsp-forms/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const apiPrefix = "/api/v1"

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db
	authMW := middleware.Auth(db)
	optionalAuthMW := middleware.OptionalAuth(db)
	adminMW := middleware.AdminOnly()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":     "dsp-forms-core",
		"version":  "1.0.0",
		"homepage": "https://github.com/dsp-forms/core",
	}

	formHandler := form.NewHandler(form.NewService(db))
	renderHandler := render.NewHandler(db)
	subHandler := submission.NewHandler(submission.NewService(db))
	exportHandler := export.NewHandler(db)
	authHandler := auth.NewHandler(auth.NewService(db))

	api := r.Group(apiPrefix)

	api.GET("", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	api.GET("/info", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })
	api.GET("/uptime", func(c *gin.Context) {
		up := time.Since(a.started)
		c.JSON(http.StatusOK, gin.H{
			"timestamp": up.Milliseconds(),
			"humanize":  humanizeDuration(up),
		})
	})

	health.RegisterRoutes(api, db, a.sched, authMW, adminMW)
	authHandler.RegisterRoutes(api)

	// Public catalog: anonymous traffic is rate limited and read responses
	// are cached briefly.
	public := api.Group("")
	public.Use(optionalAuthMW)
	public.Use(middleware.RateLimit(rc.Raw()))
	public.Use(middleware.HTTPCache(rc.Raw(), middleware.HTTPCacheOptions{
		TTL:     15 * time.Second,
		Disable: a.cfg.IsDev(),
	}))
	formHandler.RegisterPublicRoutes(public)
	renderHandler.RegisterRoutes(public)
	subHandler.RegisterPublicRoutes(public)
	exportHandler.RegisterPublicRoutes(public)

	// Signed-in surface.
	user := api.Group("")
	user.Use(authMW)
	subHandler.RegisterUserRoutes(user)
	exportHandler.RegisterUserRoutes(user)

	// Admin console.
	admin := api.Group("/admin")
	admin.Use(authMW, adminMW)
	formHandler.RegisterAdminRoutes(admin)
	subHandler.RegisterAdminRoutes(admin)
}
