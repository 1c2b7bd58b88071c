package main

import (
	"context"
	"crypto/subtle"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rengganislabs/ledger_backend/config"
	"github.com/rengganislabs/ledger_backend/middlewares"
	"github.com/rengganislabs/ledger_backend/models"
	"github.com/rengganislabs/ledger_backend/models/reports"
	"github.com/rengganislabs/ledger_backend/sheetsync"
	"github.com/rengganislabs/ledger_backend/utils"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const defaultPort = "8080"

type authTokenRequest struct {
	AccessKey string `json:"access_key" binding:"required"`
}

// authTokenHandler exchanges the dashboard access key for a bearer JWT.
// The key is checked against DASHBOARD_ACCESS_KEY_HASH (bcrypt) when set,
// otherwise against the plain DASHBOARD_ACCESS_KEY.
func authTokenHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req authTokenRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "access_key is required"})
			return
		}

		hash := strings.TrimSpace(os.Getenv("DASHBOARD_ACCESS_KEY_HASH"))
		plain := strings.TrimSpace(os.Getenv("DASHBOARD_ACCESS_KEY"))

		authorized := false
		switch {
		case hash != "":
			authorized = utils.CompareAccessKey(hash, req.AccessKey) == nil
		case plain != "":
			authorized = subtle.ConstantTimeCompare([]byte(plain), []byte(req.AccessKey)) == 1
		}
		if !authorized {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid access key"})
			return
		}

		token, err := utils.JwtGenerate("dashboard", "viewer")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

func customNotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
}

// customErrorLogger is a custom Gin middleware that logs only errors
func customErrorLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Only log when there are errors
		if len(c.Errors) > 0 {
			logger.Error(c.Errors.String())
		}
	}
}

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		// Cloud Run standard env var.
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = defaultPort
	}

	logger := config.GetLogger()
	rules := models.RuleSetFromEnv()
	store := sheetsync.GetStore()

	// Shutdown coordination.
	// Cloud Run sends SIGTERM on revision shutdown; handle it for graceful drain.
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	// Start the HTTP server ASAP so Cloud Run considers the revision healthy.
	// Until the first ledger refresh lands, report endpoints return 503.
	r := gin.New()
	r.Use(middlewares.CorrelationMiddleware())

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	corsConfig := cors.DefaultConfig()
	// Production-safe CORS:
	// - In production, require explicit allowlist via CORS_ALLOWED_ORIGINS (comma-separated).
	// - In non-production, allow all (developer convenience).
	allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		if allowedOrigins == "" {
			// Safer default: deny all if not configured in production.
			corsConfig.AllowOrigins = []string{}
		} else {
			corsConfig.AllowOrigins = utils.SplitAndTrim(allowedOrigins)
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type", "Authorization")
	corsConfig.AddExposeHeaders("Content-Length", "Content-Disposition")
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	r.Use(customErrorLogger(logger))
	r.Use(gin.Recovery())

	r.POST("/auth/token", authTokenHandler())

	api := r.Group("/api", middlewares.AuthMiddleware())
	api.GET("/reports/period", reports.PeriodReportHandler(store, rules))
	api.GET("/reports/period/export", reports.ExportPeriodReportHandler(store, rules))
	api.GET("/reports/break-even", reports.BreakEvenReportHandler(store, rules))
	api.POST("/sync/refresh", sheetsync.RefreshHandler(store, rules))
	api.GET("/sync/status", sheetsync.StatusHandler(store))

	r.NoRoute(customNotFoundHandler)

	// Start listening immediately (Cloud Run startup probe is TCP based).
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		// ListenAndServe returns http.ErrServerClosed on graceful shutdown.
		serverErrCh <- srv.ListenAndServe()
	}()

	// Connect dependencies after the port is open. Both are optional: with
	// no DB there is no snapshot persistence, with no Redis there is no
	// report cache or refresh lock, and reports still work.
	if strings.TrimSpace(os.Getenv("DB_HOST")) != "" {
		config.ConnectDatabaseWithRetry()
		// IMPORTANT: AutoMigrate can run DDL that blocks tables and causes 504/502 timeouts.
		// Allow disabling migrations on startup (run them as a separate job instead).
		if !strings.EqualFold(strings.TrimSpace(os.Getenv("SKIP_MIGRATIONS")), "true") {
			models.MigrateTable()
		} else {
			logger.WithFields(logrus.Fields{"field": "migrations"}).Warn("SKIP_MIGRATIONS=true; skipping AutoMigrate on startup")
		}
	} else {
		logger.WithFields(logrus.Fields{"field": "database"}).Warn("DB_HOST not set; snapshot persistence disabled")
	}
	if strings.TrimSpace(os.Getenv("REDIS_ADDRESS")) != "" {
		config.ConnectRedisWithRetry()
	} else {
		logger.WithFields(logrus.Fields{"field": "redis"}).Warn("REDIS_ADDRESS not set; report cache and refresh lock disabled")
	}

	// First refresh in the background so a slow upstream cannot delay
	// startup; endpoints 503 until it lands.
	go func() {
		refreshCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := sheetsync.Refresh(refreshCtx, store, rules); err != nil {
			config.LogError(logger, "server.go", "main", "initial refresh", nil, err)
		}
	}()

	// Scheduled refresh.
	cronSpec := strings.TrimSpace(os.Getenv("SHEET_SYNC_CRON"))
	if cronSpec == "" {
		cronSpec = "@every 15m"
	}
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cronSpec, func() {
		refreshCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := sheetsync.Refresh(refreshCtx, store, rules); err != nil {
			config.LogError(logger, "server.go", "main", "scheduled refresh", cronSpec, err)
		}
	}); err != nil {
		logger.WithFields(logrus.Fields{"field": "cron", "spec": cronSpec}).
			Panic("invalid SHEET_SYNC_CRON: " + err.Error())
	}
	scheduler.Start()

	logger.WithFields(logrus.Fields{
		"info": "Connection Established",
	}).Info("listening on http://localhost:", port, "/")
	log.Println("Server started successfully")

	// Block until shutdown or server error.
	select {
	case <-sigCtx.Done():
		// graceful shutdown below
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	// Stop the scheduler first so no refresh starts while we're draining.
	cronCtx := scheduler.Stop()
	<-cronCtx.Done()

	// Drain HTTP requests.
	shutdownTimeout := 30 * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}

	// Close DB and Redis (best-effort).
	if db := config.GetDB(); db != nil {
		if sqlDB, err := db.DB(); err == nil && sqlDB != nil {
			_ = sqlDB.Close()
		}
	}
	if rdb := config.GetRedisDB(); rdb != nil {
		_ = rdb.Close()
	}
}
