package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/windoze95/recipefinder/internal/models"
)

// SearchSummaries decodes the search body into recipe cards. A blank query
// never reaches the upstream; an absent or malformed results field yields
// an empty list rather than an error.
func (s *RecipeService) SearchSummaries(ctx context.Context, query string) ([]models.RecipeSummary, error) {
	if strings.TrimSpace(query) == "" {
		return []models.RecipeSummary{}, nil
	}

	body, err := s.SearchRecipes(ctx, query)
	if err != nil {
		return nil, err
	}
	return DecodeSummaries(body), nil
}

// RecipeDetail decodes the detail body for a recipe ID.
func (s *RecipeService) RecipeDetail(ctx context.Context, id uint64) (*models.RecipeDetail, error) {
	body, err := s.GetRecipeDetails(ctx, id)
	if err != nil {
		return nil, err
	}

	var detail models.RecipeDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, fmt.Errorf("failed to decode recipe %d: %w", id, err)
	}
	return &detail, nil
}

// DecodeSummaries extracts the results list from a search body.
func DecodeSummaries(body []byte) []models.RecipeSummary {
	var envelope models.SearchResults
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Results == nil {
		return []models.RecipeSummary{}
	}
	return envelope.Results
}
