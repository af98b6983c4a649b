package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/windoze95/recipefinder/internal/config"
	"github.com/windoze95/recipefinder/internal/finder"
	"github.com/windoze95/recipefinder/internal/tui"
)

var (
	serverURL string
	debounce  time.Duration
	timeout   time.Duration
)

// rootCmd launches the terminal search UI against a running server.
var rootCmd = &cobra.Command{
	Use:   "finder",
	Short: "Search recipes from the terminal",
	Long: `finder is a terminal front end for the recipe finder server.

Type to search; results appear once you stop typing. Use the arrow keys
to pick a recipe, enter to open it and esc to go back.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PreRunE:      validateFlags,
	RunE:         runFinder,
}

func init() {
	rootCmd.Flags().StringVarP(&serverURL, "server", "s", "http://localhost:8080", "base URL of the recipe finder server")
	rootCmd.Flags().DurationVar(&debounce, "debounce", finder.DefaultDebounce, "quiet period before a query is searched")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 15*time.Second, "per-request timeout")
}

func validateFlags(cmd *cobra.Command, args []string) error {
	if !config.IsHTTPURL(serverURL) {
		return fmt.Errorf("invalid --server URL: %q", serverURL)
	}
	if debounce <= 0 {
		return fmt.Errorf("--debounce must be positive, got %s", debounce)
	}
	if timeout <= 0 {
		return fmt.Errorf("--timeout must be positive, got %s", timeout)
	}
	return nil
}

func runFinder(cmd *cobra.Command, args []string) error {
	client := finder.NewClient(serverURL, &http.Client{Timeout: timeout})
	ctrl := finder.NewController(client, finder.Options{Debounce: debounce})
	defer ctrl.Close()

	p := tea.NewProgram(tui.New(ctrl), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
