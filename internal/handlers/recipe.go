package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/recipefinder/internal/logger"
	"github.com/windoze95/recipefinder/internal/models"
	"github.com/windoze95/recipefinder/internal/service"
	"go.uber.org/zap"
)

const jsonContentType = "application/json; charset=utf-8"

// RecipeHandler is the handler for the recipe proxy endpoints.
type RecipeHandler struct {
	Service *service.RecipeService
}

// NewRecipeHandler is the constructor function for initializing a new RecipeHandler.
func NewRecipeHandler(recipeService *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{Service: recipeService}
}

// GetRecipeDetails handles GET /api/details?id=...
func (h *RecipeHandler) GetRecipeDetails(c *gin.Context) {
	idStr := c.Query("id")
	if idStr == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: models.ErrMsgMissingID})
		return
	}

	recipeID, err := parseRecipeID(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: models.ErrMsgInvalidID})
		return
	}

	body, err := h.Service.GetRecipeDetails(c.Request.Context(), recipeID)
	if err != nil {
		logger.FromContext(c).Error("failed to fetch recipe details", zap.Uint64("recipe_id", recipeID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: models.ErrMsgDetailsFailed})
		return
	}

	c.Data(http.StatusOK, jsonContentType, body)
}
