package main

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flowhr/flowhr/pkg/persistence/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPI_App_Routes(t *testing.T) {
	t.Parallel()

	api := NewAPI(slog.Default(), memory.NewStore())
	app := api.App()

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"banner", http.MethodGet, "/", http.StatusOK},
		{"liveness", http.MethodGet, "/livez", http.StatusOK},
		{"readiness", http.MethodGet, "/readyz", http.StatusOK},
		{"health", http.MethodGet, "/health", http.StatusOK},
		{"node types", http.MethodGet, "/node-types", http.StatusOK},
		{"automations", http.MethodGet, "/automations", http.StatusOK},
		{"workflows", http.MethodGet, "/workflows", http.StatusOK},
		{"missing workflow", http.MethodGet, "/workflows/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp, err := app.Test(httptest.NewRequest(tt.method, tt.path, nil))
			require.NoError(t, err)

			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}
