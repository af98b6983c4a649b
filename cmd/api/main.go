package main

import (
	"os"
	"runtime"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/recipefinder/internal/config"
	"github.com/windoze95/recipefinder/internal/logger"
	"github.com/windoze95/recipefinder/internal/metrics"
	"github.com/windoze95/recipefinder/internal/recipeapi"
	"github.com/windoze95/recipefinder/internal/router"
	"go.uber.org/zap"
)

// init is called before the main function.
func init() {
	// Initialize structured logger (dev mode if GIN_MODE != release)
	isDev := os.Getenv("GIN_MODE") != "release"
	logger.Init(isDev)

	// Configure the runtime
	ConfigureRuntime()
}

// Entry point for the API.
func main() {
	defer logger.Sync()

	// Load the config
	var cfg *config.Config
	if c, err := config.LoadConfig(); err != nil {
		logger.Get().Fatal("failed to load config", zap.Error(err))
	} else {
		cfg = c
	}

	// Check that all ENV variables are set
	if err := cfg.CheckConfigEnvFields(); err != nil {
		logger.Get().Fatal("missing required config fields", zap.Error(err))
	}

	// Load upstream endpoints from YAML
	upstream, err := config.LoadUpstream(cfg.EnvVars.UpstreamConfig)
	if err != nil {
		logger.Get().Fatal("failed to load upstream config", zap.Error(err))
	}
	cfg.Upstream = upstream

	m := metrics.New()
	provider := recipeapi.NewSpoonacularProvider(cfg.EnvVars.RecipeAPIKey, cfg.Upstream, recipeapi.WithObserver(m))

	// Create a new gin router
	if cfg.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := router.SetupRouter(cfg, provider, m)

	// Run the server
	logger.Get().Info("starting server",
		zap.String("port", cfg.EnvVars.Port),
		zap.String("search_url", cfg.Upstream.SearchURL),
	)
	if err := r.Run(":" + cfg.EnvVars.Port); err != nil {
		logger.Get().Fatal("server stopped", zap.Error(err))
	}
}

// ConfigureRuntime sets the number of operating system threads.
func ConfigureRuntime() {
	nuCPU := runtime.NumCPU()
	runtime.GOMAXPROCS(nuCPU)
	logger.Get().Info("runtime configured", zap.Int("cpus", nuCPU))
}
