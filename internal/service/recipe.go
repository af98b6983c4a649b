package service

import (
	"context"
	"fmt"

	"github.com/windoze95/recipefinder/internal/config"
	"github.com/windoze95/recipefinder/internal/recipeapi"
)

// emptyResults is returned for a blank query without touching the upstream.
var emptyResults = []byte(`{"results":[]}`)

// RecipeService is the business logic layer behind the two proxy endpoints.
// It holds no per-request state; every call goes to the upstream.
type RecipeService struct {
	Cfg      *config.Config
	Provider recipeapi.Provider
}

// NewRecipeService is the constructor function for initializing a new RecipeService
func NewRecipeService(cfg *config.Config, provider recipeapi.Provider) *RecipeService {
	return &RecipeService{
		Cfg:      cfg,
		Provider: provider,
	}
}

// SearchRecipes returns the upstream search body for query. An empty query
// yields an empty result set and makes no upstream call.
func (s *RecipeService) SearchRecipes(ctx context.Context, query string) ([]byte, error) {
	if query == "" {
		return emptyResults, nil
	}

	body, err := s.Provider.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search recipes: %w", err)
	}
	return body, nil
}

// GetRecipeDetails returns the upstream detail body for a recipe ID.
func (s *RecipeService) GetRecipeDetails(ctx context.Context, id uint64) ([]byte, error) {
	body, err := s.Provider.Details(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe %d: %w", id, err)
	}
	return body, nil
}
