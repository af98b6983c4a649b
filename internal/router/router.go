package router

import (
	"html/template"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/windoze95/recipefinder/internal/config"
	"github.com/windoze95/recipefinder/internal/finder"
	"github.com/windoze95/recipefinder/internal/handlers"
	"github.com/windoze95/recipefinder/internal/logger"
	"github.com/windoze95/recipefinder/internal/metrics"
	"github.com/windoze95/recipefinder/internal/middleware"
	"github.com/windoze95/recipefinder/internal/recipeapi"
	"github.com/windoze95/recipefinder/internal/service"
	"github.com/windoze95/recipefinder/internal/web"
	"github.com/windoze95/recipefinder/internal/ws"
)

// SetupRouter sets up the Gin router.
func SetupRouter(cfg *config.Config, provider recipeapi.Provider, m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.EnvVars.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.EnvVars.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	r.Use(cors.New(corsConfig))

	// Add request ID middleware for request correlation
	r.Use(logger.RequestIDMiddleware())
	r.Use(logger.AccessLogMiddleware())
	r.Use(middleware.RequestMetrics(m))

	r.SetHTMLTemplate(template.Must(web.Templates()))

	// Ping route for testing
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	r.GET("/metrics", gin.WrapH(m.Handler()))

	recipeService := service.NewRecipeService(cfg, provider)
	recipeHandler := handlers.NewRecipeHandler(recipeService)
	liveHandler := ws.NewLiveSearchHandler(recipeService, m, finder.DefaultDebounce, cfg.EnvVars.AllowedOrigins)

	// Proxy routes consumed by the browser, the terminal UI and the live session
	api := r.Group("/api")
	{
		api.Use(middleware.NoStore())

		// Search recipes by free-text query
		api.GET("", recipeHandler.SearchRecipes)
		// Get the full details of a single recipe
		api.GET("/details", recipeHandler.GetRecipeDetails)
		// Debounced search over a WebSocket
		api.GET("/live", liveHandler.HandleLiveSearch)
	}

	// Server-rendered pages
	pageHandler := web.NewPageHandler(recipeService)
	r.GET("/", pageHandler.Index)
	r.GET("/recipes/:id", pageHandler.Recipe)

	return r
}
