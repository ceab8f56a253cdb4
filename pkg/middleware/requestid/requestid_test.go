package requestid

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestMiddlewareHonoursCallerID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	router := gin.New()
	router.Use(Middleware())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, Value(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "caller-supplied")
	router.ServeHTTP(recorder, req)

	if got := recorder.Header().Get("X-Request-ID"); got != "caller-supplied" {
		t.Fatalf("unexpected response header: %s", got)
	}
	if recorder.Body.String() != "caller-supplied" {
		t.Fatalf("unexpected context value: %s", recorder.Body.String())
	}
}

func TestMiddlewareMintsUUIDWhenHeaderAbsent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	router := gin.New()
	router.Use(Middleware())
	router.GET("/", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(recorder, req)

	got := recorder.Header().Get("X-Request-ID")
	if got == "" {
		t.Fatal("expected a generated request ID")
	}
	if _, err := uuid.Parse(got); err != nil {
		t.Fatalf("generated ID is not a UUID: %s", got)
	}
}
