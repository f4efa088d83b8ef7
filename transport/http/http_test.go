package http

import (
	"net/http"
	"net/http/httptest"
	"rental/config"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealth(t *testing.T) {
	tests := []struct {
		name  string
		state ServerState
		code  int
	}{
		{name: "ready", state: ServerStateReady, code: http.StatusOK},
		{name: "grace period", state: ServerStateInGracePeriod, code: http.StatusServiceUnavailable},
		{name: "cleanup period", state: ServerStateInCleanupPeriod, code: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &HTTP{Config: &config.Config{}, State: tt.state}
			rec := httptest.NewRecorder()

			h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
