package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/windoze95/recipefinder/internal/models"
)

// --- MockRecipeProvider ---

// MockRecipeProvider is a mock implementation of recipeapi.Provider that
// records how often each endpoint was called.
type MockRecipeProvider struct {
	SearchFunc  func(ctx context.Context, query string) ([]byte, error)
	DetailsFunc func(ctx context.Context, id uint64) ([]byte, error)

	mu           sync.Mutex
	SearchCalls  []string
	DetailsCalls []uint64
}

func (m *MockRecipeProvider) Search(ctx context.Context, query string) ([]byte, error) {
	m.mu.Lock()
	m.SearchCalls = append(m.SearchCalls, query)
	m.mu.Unlock()
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return nil, fmt.Errorf("Search not configured")
}

func (m *MockRecipeProvider) Details(ctx context.Context, id uint64) ([]byte, error) {
	m.mu.Lock()
	m.DetailsCalls = append(m.DetailsCalls, id)
	m.mu.Unlock()
	if m.DetailsFunc != nil {
		return m.DetailsFunc(ctx, id)
	}
	return nil, fmt.Errorf("Details not configured")
}

// SearchCount returns the number of Search calls so far.
func (m *MockRecipeProvider) SearchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SearchCalls)
}

// DetailsCount returns the number of Details calls so far.
func (m *MockRecipeProvider) DetailsCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.DetailsCalls)
}

// --- MockBackend ---

// MockBackend is a mock implementation of finder.Backend.
type MockBackend struct {
	SearchFunc  func(ctx context.Context, query string) ([]models.RecipeSummary, error)
	DetailsFunc func(ctx context.Context, id int) (*models.RecipeDetail, error)

	mu           sync.Mutex
	SearchCalls  []string
	DetailsCalls []int
}

func (m *MockBackend) Search(ctx context.Context, query string) ([]models.RecipeSummary, error) {
	m.mu.Lock()
	m.SearchCalls = append(m.SearchCalls, query)
	m.mu.Unlock()
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return nil, fmt.Errorf("Search not configured")
}

func (m *MockBackend) Details(ctx context.Context, id int) (*models.RecipeDetail, error) {
	m.mu.Lock()
	m.DetailsCalls = append(m.DetailsCalls, id)
	m.mu.Unlock()
	if m.DetailsFunc != nil {
		return m.DetailsFunc(ctx, id)
	}
	return nil, fmt.Errorf("Details not configured")
}

// Searches returns a copy of the queries searched so far.
func (m *MockBackend) Searches() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.SearchCalls...)
}

// DetailsCount returns the number of Details calls so far.
func (m *MockBackend) DetailsCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.DetailsCalls)
}
