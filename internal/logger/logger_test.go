package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestGet_BeforeInitIsNop(t *testing.T) {
	if Get() == nil {
		t.Fatal("Get() returned nil")
	}
}

func TestRequestIDMiddleware_SetsHeaderAndContext(t *testing.T) {
	var seen string
	r := gin.New()
	r.Use(RequestIDMiddleware(), AccessLogMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		seen = c.GetString("request_id")
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))

	header := w.Header().Get("X-Request-ID")
	if header == "" {
		t.Fatal("X-Request-ID header not set")
	}
	if _, err := uuid.Parse(header); err != nil {
		t.Errorf("X-Request-ID %q is not a UUID: %v", header, err)
	}
	if seen != header {
		t.Errorf("context request_id = %q, header = %q", seen, header)
	}
}

func TestRequestIDMiddleware_UniquePerRequest(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, httptest.NewRequest("GET", "/ping", nil))
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest("GET", "/ping", nil))

	if w1.Header().Get("X-Request-ID") == w2.Header().Get("X-Request-ID") {
		t.Error("request IDs should differ between requests")
	}
}
