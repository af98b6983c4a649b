// Package web serves the server-rendered search page and recipe page for
// browsers without JavaScript. Both pages go through the same service as
// the JSON proxy.
package web

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/recipefinder/internal/finder"
	"github.com/windoze95/recipefinder/internal/logger"
	"github.com/windoze95/recipefinder/internal/models"
	"github.com/windoze95/recipefinder/internal/service"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

const pageTitle = "Recipe Finder"

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// PageHandler renders the HTML pages.
type PageHandler struct {
	Service *service.RecipeService
}

// NewPageHandler is the constructor function for initializing a new PageHandler.
func NewPageHandler(recipeService *service.RecipeService) *PageHandler {
	return &PageHandler{Service: recipeService}
}

type indexPage struct {
	Title    string
	Query    string
	Searched bool
	Results  []models.RecipeSummary
	Error    string
}

type recipePage struct {
	Title  string
	Query  string
	Recipe *models.RecipeDetail
	Steps  []string
	Error  string
}

// Index handles GET /?q=... A blank query renders the empty form.
func (h *PageHandler) Index(c *gin.Context) {
	query := c.Query("q")
	page := indexPage{Title: pageTitle, Query: query, Results: []models.RecipeSummary{}}

	if strings.TrimSpace(query) == "" {
		c.HTML(http.StatusOK, "index.html", page)
		return
	}

	page.Searched = true
	results, err := h.Service.SearchSummaries(c.Request.Context(), query)
	if err != nil {
		logger.FromContext(c).Error("failed to search recipes", zap.Error(err))
		page.Error = models.ErrMsgSearchFailed
		c.HTML(http.StatusBadGateway, "index.html", page)
		return
	}

	page.Results = results
	c.HTML(http.StatusOK, "index.html", page)
}

// Recipe handles GET /recipes/:id. The q parameter is carried through so
// the back link returns to the same results.
func (h *PageHandler) Recipe(c *gin.Context) {
	page := recipePage{Title: pageTitle, Query: c.Query("q")}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		page.Error = models.ErrMsgInvalidID
		c.HTML(http.StatusBadRequest, "recipe.html", page)
		return
	}

	detail, err := h.Service.RecipeDetail(c.Request.Context(), id)
	if err != nil {
		logger.FromContext(c).Error("failed to fetch recipe details", zap.Uint64("recipe_id", id), zap.Error(err))
		page.Error = models.ErrMsgDetailsFailed
		c.HTML(http.StatusBadGateway, "recipe.html", page)
		return
	}

	page.Title = detail.Title + " - " + pageTitle
	page.Recipe = detail
	page.Steps = finder.NumberSteps(finder.SplitInstructions(detail.Instructions))
	c.HTML(http.StatusOK, "recipe.html", page)
}
