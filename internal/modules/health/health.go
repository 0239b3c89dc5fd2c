package health

import (
	"net/http"

	"github.com/dsp-forms/core/internal/pkg/cron"
	"github.com/dsp-forms/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB, sched *cron.Scheduler, authMW gin.HandlerFunc, adminMW gin.HandlerFunc) {
	rg.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		dbOK := err == nil && sqlDB.Ping() == nil

		status := "ok"
		code := http.StatusOK
		if !dbOK {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":   status,
			"database": dbOK,
		})
	})

	rg.GET("/health/cron", authMW, adminMW, func(c *gin.Context) {
		items := sched.List()
		byName := make(map[string]cron.ListItem, len(items))
		for _, item := range items {
			byName[item.Name] = item
		}
		response.OK(c, byName)
	})
}
