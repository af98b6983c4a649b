package recipeapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/windoze95/recipefinder/internal/config"
)

type recordingObserver struct {
	mu    sync.Mutex
	calls []string
	errs  []error
}

func (o *recordingObserver) ObserveUpstream(endpoint string, err error, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, endpoint)
	o.errs = append(o.errs, err)
}

func newTestProvider(srv *httptest.Server, opts ...Option) *SpoonacularProvider {
	upstream := &config.Upstream{
		SearchURL: srv.URL + "/recipes/complexSearch",
		DetailURL: srv.URL + "/recipes/",
		Timeout:   2 * time.Second,
	}
	return NewSpoonacularProvider("test-key", upstream, opts...)
}

func TestSearch_ForwardsQueryAndKey(t *testing.T) {
	var gotPath, gotQuery, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("query")
		gotKey = r.URL.Query().Get("apiKey")
		w.Write([]byte(`{"results":[{"id":1,"title":"Pasta","image":"x.jpg"}],"totalResults":1}`))
	}))
	defer srv.Close()

	body, err := newTestProvider(srv).Search(context.Background(), "mac & cheese")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if gotPath != "/recipes/complexSearch" {
		t.Errorf("path = %q", gotPath)
	}
	if gotQuery != "mac & cheese" {
		t.Errorf("query = %q, want 'mac & cheese'", gotQuery)
	}
	if gotKey != "test-key" {
		t.Errorf("apiKey = %q, want test-key", gotKey)
	}
	if !strings.Contains(string(body), `"totalResults":1`) {
		t.Errorf("body not passed through: %s", body)
	}
}

func TestDetails_BuildsInformationURL(t *testing.T) {
	var gotPath, gotNutrition string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotNutrition = r.URL.Query().Get("includeNutrition")
		w.Write([]byte(`{"id":42,"title":"Soup"}`))
	}))
	defer srv.Close()

	if _, err := newTestProvider(srv).Details(context.Background(), 42); err != nil {
		t.Fatalf("Details() error: %v", err)
	}
	if gotPath != "/recipes/42/information" {
		t.Errorf("path = %q, want /recipes/42/information", gotPath)
	}
	if gotNutrition != "false" {
		t.Errorf("includeNutrition = %q, want false", gotNutrition)
	}
}

func TestSearch_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"status":"failure","message":"quota"}`))
	}))
	defer srv.Close()

	_, err := newTestProvider(srv).Search(context.Background(), "pasta")
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("err = %v, want ErrUpstream", err)
	}
}

func TestDetails_NonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>oops</html>"))
	}))
	defer srv.Close()

	_, err := newTestProvider(srv).Details(context.Background(), 7)
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("err = %v, want ErrUpstream", err)
	}
}

func TestSearch_OversizedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":"`))
		w.Write([]byte(strings.Repeat("a", maxBodySize)))
		w.Write([]byte(`"}`))
	}))
	defer srv.Close()

	_, err := newTestProvider(srv).Search(context.Background(), "pasta")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("err = %v, want ErrUpstream", err)
	}
	if !strings.Contains(err.Error(), "too large") {
		t.Errorf("err = %v, want a too-large error", err)
	}
}

func TestSearch_TransportErrorRedactsKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	p := newTestProvider(srv)
	srv.Close()

	_, err := p.Search(context.Background(), "pasta")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("err = %v, want ErrUpstream", err)
	}
	if strings.Contains(err.Error(), "test-key") {
		t.Errorf("error leaks API key: %v", err)
	}
}

func TestObserver_NotifiedPerCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/information") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	p := newTestProvider(srv, WithObserver(obs))
	p.Search(context.Background(), "a")
	p.Details(context.Background(), 1)

	if len(obs.calls) != 2 {
		t.Fatalf("observer calls = %d, want 2", len(obs.calls))
	}
	if obs.calls[0] != EndpointSearch || obs.errs[0] != nil {
		t.Errorf("first call = %s/%v, want search/nil", obs.calls[0], obs.errs[0])
	}
	if obs.calls[1] != EndpointDetails || obs.errs[1] == nil {
		t.Errorf("second call = %s/%v, want details/error", obs.calls[1], obs.errs[1])
	}
}
