package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/windoze95/recipefinder/internal/finder"
	"github.com/windoze95/recipefinder/internal/models"
	"github.com/windoze95/recipefinder/internal/testutil"
)

func newTestModel(t *testing.T, backend *testutil.MockBackend) (Model, *finder.Controller) {
	t.Helper()
	ctrl := finder.NewController(backend, finder.Options{Debounce: 10 * time.Millisecond})
	t.Cleanup(ctrl.Close)

	m := New(ctrl)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model), ctrl
}

// settle waits until cond holds for the controller, then feeds the
// snapshot to the model the way waitForChange would.
func settle(t *testing.T, m Model, ctrl *finder.Controller, cond func(finder.State) bool) Model {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond(ctrl.State()) {
		if time.Now().After(deadline) {
			t.Fatalf("timed out; state = %+v", ctrl.State())
		}
		time.Sleep(5 * time.Millisecond)
	}
	updated, _ := m.Update(stateMsg(ctrl.State()))
	return updated.(Model)
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(Model)
	}
	return m
}

func press(m Model, key tea.KeyType) Model {
	updated, _ := m.Update(tea.KeyMsg{Type: key})
	return updated.(Model)
}

func searchBackend() *testutil.MockBackend {
	return &testutil.MockBackend{
		SearchFunc: func(ctx context.Context, query string) ([]models.RecipeSummary, error) {
			return testutil.TestSummaries(), nil
		},
		DetailsFunc: func(ctx context.Context, id int) (*models.RecipeDetail, error) {
			return testutil.TestDetail(), nil
		},
	}
}

func TestModel_TypingUpdatesQuery(t *testing.T) {
	m, ctrl := newTestModel(t, searchBackend())

	m = typeText(m, "pasta")
	if got := ctrl.State().Query; got != "pasta" {
		t.Errorf("controller query = %q, want pasta", got)
	}

	m = settle(t, m, ctrl, func(s finder.State) bool { return len(s.Results) == 2 && !s.Loading })
	view := m.View()
	if !strings.Contains(view, "Bruschetta Pasta") || !strings.Contains(view, "Garlic Pasta") {
		t.Errorf("view missing results:\n%s", view)
	}
}

func TestModel_CursorAndEnterSelect(t *testing.T) {
	backend := searchBackend()
	m, ctrl := newTestModel(t, backend)

	m = typeText(m, "pasta")
	m = settle(t, m, ctrl, func(s finder.State) bool { return len(s.Results) == 2 && !s.Loading })

	m = press(m, tea.KeyDown)
	m = press(m, tea.KeyDown)
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want clamped to 1", m.cursor)
	}

	m = press(m, tea.KeyEnter)
	m = settle(t, m, ctrl, func(s finder.State) bool { return s.ShowingDetail() })

	if len(backend.DetailsCalls) != 1 || backend.DetailsCalls[0] != 716429 {
		t.Errorf("DetailsCalls = %v, want [716429]", backend.DetailsCalls)
	}

	view := m.View()
	for _, want := range []string{"Ingredients:", "1 lb pasta", "Instructions:", "1. Boil water.", "2. Add pasta."} {
		if !strings.Contains(view, want) {
			t.Errorf("detail view missing %q", want)
		}
	}
}

func TestModel_EscReturnsToGrid(t *testing.T) {
	m, ctrl := newTestModel(t, searchBackend())

	m = typeText(m, "pasta")
	m = settle(t, m, ctrl, func(s finder.State) bool { return len(s.Results) == 2 && !s.Loading })
	m = press(m, tea.KeyEnter)
	m = settle(t, m, ctrl, func(s finder.State) bool { return s.ShowingDetail() })

	m = press(m, tea.KeyEsc)
	if m.state.ShowingDetail() {
		t.Fatal("esc should close the detail view")
	}
	if !strings.Contains(m.View(), "Garlic Pasta") {
		t.Error("results should be shown again after esc")
	}
}

func TestModel_ErrorShown(t *testing.T) {
	backend := &testutil.MockBackend{
		SearchFunc: func(ctx context.Context, query string) ([]models.RecipeSummary, error) {
			return nil, errors.New("offline")
		},
	}
	m, ctrl := newTestModel(t, backend)

	m = typeText(m, "soup")
	m = settle(t, m, ctrl, func(s finder.State) bool { return s.Error != "" })

	if !strings.Contains(m.View(), models.ErrMsgSearchFailed) {
		t.Errorf("view missing error:\n%s", m.View())
	}
}

func TestModel_NoInstructions(t *testing.T) {
	out := renderDetail(&models.RecipeDetail{ID: 1, Title: "Plain Toast"}, 80)
	if !strings.Contains(out, "No instructions available.") {
		t.Errorf("renderDetail = %q", out)
	}
}

func TestModel_CtrlCQuits(t *testing.T) {
	m, _ := newTestModel(t, searchBackend())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}

func TestWaitForChange_Closed(t *testing.T) {
	ctrl := finder.NewController(&testutil.MockBackend{}, finder.Options{})
	ctrl.Close()

	if _, ok := waitForChange(ctrl)().(closedMsg); !ok {
		t.Error("expected closedMsg after Close")
	}
}
