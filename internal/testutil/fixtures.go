package testutil

import "github.com/windoze95/recipefinder/internal/models"

// SearchBody is an upstream search response with extra fields the proxy
// must pass through untouched.
const SearchBody = `{"results":[{"id":715538,"title":"Bruschetta Pasta","image":"https://img.spoonacular.com/recipes/715538-312x231.jpg","imageType":"jpg"},{"id":716429,"title":"Garlic Pasta","image":"https://img.spoonacular.com/recipes/716429-312x231.jpg","imageType":"jpg"}],"offset":0,"number":10,"totalResults":2}`

// DetailBody is an upstream recipe information response.
const DetailBody = `{"id":715538,"title":"Bruschetta Pasta","image":"https://img.spoonacular.com/recipes/715538-556x370.jpg","servings":4,"extendedIngredients":[{"id":20420,"original":"1 lb pasta"},{"id":11529,"original":"4 tomatoes, diced"}],"instructions":"<ol><li>Boil water.</li><li>Add pasta.</li><li>Stir occasionally!</li></ol>"}`

// TestSummaries returns two recipe cards.
func TestSummaries() []models.RecipeSummary {
	return []models.RecipeSummary{
		{ID: 715538, Title: "Bruschetta Pasta", Image: "https://img.spoonacular.com/recipes/715538-312x231.jpg"},
		{ID: 716429, Title: "Garlic Pasta", Image: "https://img.spoonacular.com/recipes/716429-312x231.jpg"},
	}
}

// TestDetail returns the decoded form of DetailBody.
func TestDetail() *models.RecipeDetail {
	return &models.RecipeDetail{
		ID:    715538,
		Title: "Bruschetta Pasta",
		Image: "https://img.spoonacular.com/recipes/715538-556x370.jpg",
		Ingredients: []models.Ingredient{
			{ID: 20420, Original: "1 lb pasta"},
			{ID: 11529, Original: "4 tomatoes, diced"},
		},
		Instructions: "<ol><li>Boil water.</li><li>Add pasta.</li><li>Stir occasionally!</li></ol>",
	}
}
