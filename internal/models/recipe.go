package models

// RecipeSummary is one card of a search result grid.
type RecipeSummary struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Image string `json:"image"`
}

// SearchResults is the envelope the search endpoint returns.
type SearchResults struct {
	Results []RecipeSummary `json:"results"`
}

// Ingredient is a single ingredient line as the upstream phrases it.
type Ingredient struct {
	ID       int    `json:"id"`
	Original string `json:"original"`
}

// RecipeDetail is the full record shown in the detail view. The upstream
// names the ingredient list extendedIngredients.
type RecipeDetail struct {
	ID           int          `json:"id"`
	Title        string       `json:"title"`
	Image        string       `json:"image"`
	Ingredients  []Ingredient `json:"extendedIngredients"`
	Instructions string       `json:"instructions,omitempty"`
}

// ErrorResponse is the body of every non-2xx proxy response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Fixed client-facing error messages.
const (
	ErrMsgSearchFailed  = "Failed to fetch recipes"
	ErrMsgDetailsFailed = "Failed to fetch recipe details"
	ErrMsgMissingID     = "Missing recipe ID"
	ErrMsgInvalidID     = "Invalid recipe ID"
)
