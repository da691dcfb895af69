package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

type pingRoutes struct{}

func (pingRoutes) RegisterRoutes(r chi.Router) {
	r.Get("/api/v1/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("pong"))
	})
}

func TestNewRouter(t *testing.T) {
	router := NewRouter(nil, pingRoutes{})

	tests := []struct {
		name           string
		target         string
		expectedStatus int
		expectedBody   string
	}{
		{name: "health", target: "/health", expectedStatus: http.StatusOK, expectedBody: "OK"},
		{name: "metrics", target: "/metrics", expectedStatus: http.StatusOK, expectedBody: "go_goroutines"},
		{name: "service route", target: "/api/v1/ping", expectedStatus: http.StatusOK, expectedBody: "pong"},
		{name: "unknown route", target: "/api/v1/unknown", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}
