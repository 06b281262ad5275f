package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/sherpa-labs/sherpa/internal/cache"
	"github.com/sherpa-labs/sherpa/internal/errors"
	"github.com/sherpa-labs/sherpa/internal/importer"
	"github.com/sherpa-labs/sherpa/internal/monitoring"
	"github.com/sherpa-labs/sherpa/internal/questionnaire"
	"github.com/sherpa-labs/sherpa/internal/ratelimit"
	"github.com/sherpa-labs/sherpa/internal/scoring"
	"github.com/sherpa-labs/sherpa/internal/security"
	"github.com/sherpa-labs/sherpa/internal/store"
	"github.com/sherpa-labs/sherpa/internal/types"
)

const version = "1.0.0"

// app holds the wired services shared by all handlers.
type app struct {
	scorer  *scoring.Scorer
	repo    *store.Repository
	db      *store.DB
	cache   *cache.Cache
	metrics *monitoring.Metrics
	logger  *monitoring.Logger
	limiter *ratelimit.RateLimiter
}

func main() {
	// Structured logging setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Configuration from environment with defaults
	port := getEnvOrDefault("PORT", "8080")
	dataDir := getEnvOrDefault("DATA_DIR", "./data")
	questionnairePath := os.Getenv("QUESTIONNAIRE_PATH")
	ipLimit := getEnvIntOrDefault("RATE_LIMIT_PER_MIN", 60)

	db, err := store.NewDB(dataDir)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	q, err := questionnaire.LoadOrDefault(questionnairePath)
	if err != nil {
		slog.Error("Failed to load questionnaire", "error", err, "path", questionnairePath)
		os.Exit(1)
	}

	scorer, err := scoring.NewScorer(q)
	if err != nil {
		slog.Error("Questionnaire failed validation", "error", err)
		os.Exit(1)
	}
	slog.Info("Questionnaire loaded", "name", q.Name, "axes", len(q.Axes), "criteria", len(q.Criteria))

	limiterConfig := ratelimit.DefaultConfig()
	limiterConfig.IPLimitPerMin = ipLimit

	a := &app{
		scorer:  scorer,
		repo:    store.NewRepository(db),
		db:      db,
		cache:   cache.NewCache(15 * time.Minute),
		metrics: monitoring.NewMetrics(),
		logger:  monitoring.NewLogger(),
		limiter: ratelimit.NewRateLimiter(limiterConfig),
	}

	r := setupRouter(a)

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		slog.Info("Starting server", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}

// setupRouter wires middleware and routes onto a fresh engine.
func setupRouter(a *app) *gin.Engine {
	r := gin.New()

	r.Use(monitoring.MonitoringMiddleware(a.metrics, a.logger))
	r.Use(errors.ErrorHandler())
	r.Use(errors.RecoveryHandler())
	r.Use(security.SecurityHeadersMiddleware())
	r.Use(cors.Default())
	r.Use(a.limiter.Middleware())
	r.Use(a.cache.Middleware(a.metrics, "/questionnaire", "/subnets", "/subnets/:netuid"))

	r.GET("/health", a.handleHealth)
	r.GET("/questionnaire", a.handleQuestionnaire)
	r.POST("/evaluate", a.handleEvaluate)
	r.GET("/subnets", a.handleListSubnets)
	r.GET("/subnets/:netuid", a.handleGetSubnet)
	r.POST("/subnets/import", a.handleImport)

	r.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, a.metrics.GetStats())
	})

	r.GET("/cache/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, a.cache.Stats())
	})

	r.GET("/pools/database", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"pool":  "database",
			"stats": a.db.GetPoolStats(),
		})
	})

	// Swagger documentation routes
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func (a *app) handleHealth(c *gin.Context) {
	count, err := a.repo.CountSubnets()
	if err != nil {
		slog.Error("Health check failed to reach database", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "degraded",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   version,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   version,
		"subnets":   count,
		"uptime":    monitoring.Uptime().Seconds(),
		"metrics":   a.metrics.GetStats(),
	})
}

// handleQuestionnaire exposes the active scoring framework so clients
// can render the questions and criteria they must answer.
func (a *app) handleQuestionnaire(c *gin.Context) {
	c.JSON(http.StatusOK, a.scorer.Questionnaire())
}

func (a *app) handleEvaluate(c *gin.Context) {
	start := time.Now()

	var req types.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := errors.NewValidationError("invalid request body: " + err.Error())
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	results, err := a.scorer.ScoreAll(req.Answers)
	if err != nil {
		appErr := errors.ToAppError(err)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	var (
		quality    *scoring.QualityResult
		qualityVal *float64
	)
	if req.Ratings != nil {
		qr, err := a.scorer.ScoreQuality(req.Ratings)
		if err != nil {
			appErr := errors.ToAppError(err)
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}
		quality = &qr
		qualityVal = &qr.Score
	}

	subnet, err := a.subjectForRequest(&req)
	if err != nil {
		appErr := errors.ToAppError(err)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	evaluation := store.NewEvaluation(req.Netuid, req.Answers, req.Ratings, results, qualityVal)
	if err := a.repo.RecordEvaluation(subnet, evaluation); err != nil {
		appErr := errors.ToAppError(err)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	// catalog reads must reflect the new snapshot
	a.cache.Clear()
	a.metrics.IncrementEvaluation()

	positions := make(map[string]float64, len(results))
	for _, res := range results {
		positions[res.AxisID] = res.Position
	}
	a.logger.EvaluationLogger(req.Netuid, subnet.Quadrant, positions, quality != nil, time.Since(start))

	c.JSON(http.StatusOK, types.EvaluateResponse{
		EvaluationID: evaluation.ID,
		Netuid:       subnet.Netuid,
		Name:         subnet.Name,
		Results:      results,
		Quadrant:     subnet.Quadrant,
		Quality:      quality,
		CreatedAt:    evaluation.CreatedAt,
	})
}

// subjectForRequest resolves the catalog entry an evaluation applies to.
// Re-evaluating a known subnet needs no metadata; a new subnet needs at
// least a name.
func (a *app) subjectForRequest(req *types.EvaluateRequest) (*store.Subnet, error) {
	req.Name = strings.TrimSpace(req.Name)

	existing, err := a.repo.GetSubnet(req.Netuid)
	if err != nil {
		if !errors.IsCategory(err, errors.CategoryNotFound) {
			return nil, err
		}
		if req.Name == "" {
			return nil, errors.NewValidationError("name required when evaluating a subnet not yet in the catalog")
		}
		return &store.Subnet{
			Netuid:      req.Netuid,
			Name:        req.Name,
			Description: req.Description,
			Notes:       req.Notes,
		}, nil
	}

	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.Description != "" {
		existing.Description = req.Description
	}
	if req.Notes != "" {
		existing.Notes = req.Notes
	}
	return existing, nil
}

func (a *app) handleListSubnets(c *gin.Context) {
	byQuality := c.Query("sort") == "quality"

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l <= 0 {
			appErr := errors.NewValidationError("limit must be a positive integer")
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}
		limit = l
	}

	subnets, err := a.repo.ListSubnets(byQuality, limit)
	if err != nil {
		appErr := errors.ToAppError(err)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subnets": subnets,
		"count":   len(subnets),
	})
}

func (a *app) handleGetSubnet(c *gin.Context) {
	netuid, err := strconv.Atoi(c.Param("netuid"))
	if err != nil {
		appErr := errors.NewValidationError("netuid must be an integer")
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	subnet, err := a.repo.GetSubnet(netuid)
	if err != nil {
		appErr := errors.ToAppError(err)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	response := gin.H{"subnet": subnet}

	// imported rows have a snapshot but no recorded evaluation
	if latest, err := a.repo.LatestEvaluation(netuid); err == nil {
		response["latest_evaluation"] = latest
	}

	c.JSON(http.StatusOK, response)
}

// handleImport loads a legacy semicolon separated catalog export. The
// file can arrive as a multipart "file" field or as the raw body.
func (a *app) handleImport(c *gin.Context) {
	start := time.Now()

	var reader io.Reader = c.Request.Body
	if file, _, err := c.Request.FormFile("file"); err == nil {
		defer file.Close()
		reader = file
	}

	n, err := importer.Import(reader, a.repo)
	if err != nil {
		appErr := errors.ToAppError(err)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	a.cache.Clear()
	a.metrics.IncrementImport()
	a.logger.ImportLogger("csv", n, time.Since(start))

	c.JSON(http.StatusOK, types.ImportResponse{Imported: n})
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
