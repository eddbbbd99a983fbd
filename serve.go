package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/seo-analyzer/seo-analyzer/analyzer"
	"github.com/seo-analyzer/seo-analyzer/config"
	"github.com/seo-analyzer/seo-analyzer/fetch"
	"github.com/seo-analyzer/seo-analyzer/keywords"
	"github.com/seo-analyzer/seo-analyzer/logging"
	"github.com/seo-analyzer/seo-analyzer/middleware"
	"github.com/seo-analyzer/seo-analyzer/report"
	"github.com/seo-analyzer/seo-analyzer/stats"
)

var (
	servePort      string
	serveWordlists string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SEO analysis REST API server",
	Long: `Start an HTTP server exposing the analysis pipeline over REST:

  GET  /api/health      liveness probe
  POST /api/analyze     {"url": "..."} -> analysis artifact as JSON
  GET  /api/statistics  monthly usage counters`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (defaults to PORT env var or "+config.DefaultPort+")")
	serveCmd.Flags().StringVar(&serveWordlists, "wordlists", "", "YAML file replacing the built-in stop words and target keywords")
	rootCmd.AddCommand(serveCmd)
}

func setupGinMode() {
	// Set Gin mode based on environment variable
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		// Default to release mode if not specified
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	settings := config.FromEnv()
	if servePort != "" {
		settings.Port = servePort
	}

	logger := logging.New(settings.LogLevel)

	setupGinMode()

	wordlists := config.DefaultWordlists()
	if serveWordlists != "" {
		loaded, err := config.LoadWordlists(serveWordlists)
		if err != nil {
			return fmt.Errorf("failed to load word lists: %w", err)
		}
		wordlists = loaded
	}

	storage, err := stats.NewStorage(settings.DataDir)
	if err != nil {
		return fmt.Errorf("failed to initialize statistics: %w", err)
	}
	defer storage.Shutdown()

	// Counters older than the previous month are dropped at startup.
	storage.Cleanup()

	devMode := os.Getenv("DEV_MODE") == "true"

	router := newRouter(logger, storage, settings, wordlists, devMode)

	logger.Info("server starting",
		"url", "http://localhost:"+settings.Port,
		"dev_mode", devMode)
	if err := router.Run(":" + settings.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// apiServer bundles the pipeline pieces behind the REST handlers.
type apiServer struct {
	seo       *analyzer.Analyzer
	evaluator *analyzer.Evaluator
	logger    *slog.Logger
	storage   *stats.Storage
	devMode   bool
}

// newRouter wires the gin engine with middlewares and the API routes.
func newRouter(logger *slog.Logger, storage *stats.Storage, settings config.Settings, wordlists *config.Wordlists, devMode bool) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Stats(storage))

	server := &apiServer{
		seo: analyzer.New(
			fetch.NewClient(&fetch.Options{
				Timeout:   settings.Timeout,
				UserAgent: settings.UserAgent,
			}),
			keywords.New(keywords.Options{
				MinLength:   settings.MinWordLength,
				MaxKeywords: settings.MaxKeywords,
				StopWords:   wordlists.StopWords,
			}),
		),
		evaluator: analyzer.NewEvaluator(wordlists.TargetKeywords),
		logger:    logger,
		storage:   storage,
		devMode:   devMode,
	}

	// API routes
	api := r.Group("/api")
	{
		api.GET("/health", server.health)
		api.POST("/analyze", server.analyze)
		api.GET("/statistics", server.statistics)
	}

	return r
}

func (s *apiServer) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *apiServer) analyze(c *gin.Context) {
	var request struct {
		URL string `json:"url" binding:"required,url"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid URL provided",
		})
		return
	}

	c.Set(middleware.AnalyzedURLKey, request.URL)
	s.logger.Info("analyze request",
		"url", request.URL,
		"client", c.ClientIP(),
		"request_id", c.GetString(middleware.RequestIDKey))

	analysis, err := s.seo.Analyze(c.Request.Context(), request.URL)
	if err != nil {
		s.logger.Error("analysis failed", "url", request.URL, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to analyze URL: " + err.Error(),
		})
		return
	}

	issues, recommendations := s.evaluator.Evaluate(analysis)
	artifact := report.NewArtifact(analysis, report.Build(issues, recommendations))

	c.JSON(http.StatusOK, artifact)
}

func (s *apiServer) statistics(c *gin.Context) {
	c.JSON(http.StatusOK, s.storage.Summary(s.devMode))
}
