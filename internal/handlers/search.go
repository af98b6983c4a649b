package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/recipefinder/internal/logger"
	"github.com/windoze95/recipefinder/internal/models"
	"go.uber.org/zap"
)

// SearchRecipes handles GET /api?q=...
// A missing or empty q is not an error: it yields {"results":[]}.
func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	query := c.Query("q")

	body, err := h.Service.SearchRecipes(c.Request.Context(), query)
	if err != nil {
		logger.FromContext(c).Error("failed to search recipes", zap.String("query", query), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: models.ErrMsgSearchFailed})
		return
	}

	c.Data(http.StatusOK, jsonContentType, body)
}
