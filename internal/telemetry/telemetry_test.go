package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nppdeals/inventory-platform/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

func TestSetup(t *testing.T) {
	t.Run("Success - No Exporter", func(t *testing.T) {
		// Arrange
		cfg := config.Otel{ServiceName: "inventory-platform-test", SamplerRatio: 1}

		// Act
		shutdown, err := Setup(context.Background(), cfg, "test")

		// Assert
		require.NoError(t, err)
		require.NotNil(t, shutdown)
		assert.NoError(t, shutdown(context.Background()))
	})

	t.Run("Success - Exporter Endpoint", func(t *testing.T) {
		// Arrange
		collector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer collector.Close()

		cfg := config.Otel{ServiceName: "inventory-platform-test", ExporterEndpoint: collector.URL + "/v1/traces", SamplerRatio: 1}

		// Act
		shutdown, err := Setup(context.Background(), cfg, "test")

		// Assert
		require.NoError(t, err)
		assert.NoError(t, shutdown(context.Background()))
	})
}

func TestHandler(t *testing.T) {
	t.Run("Success - Request Carries Span", func(t *testing.T) {
		// Arrange
		shutdown, err := Setup(context.Background(), config.Otel{ServiceName: "test", SamplerRatio: 1}, "test")
		require.NoError(t, err)
		defer shutdown(context.Background())

		var sampled bool
		mux := http.NewServeMux()
		mux.HandleFunc("GET /ping", func(w http.ResponseWriter, r *http.Request) {
			sampled = trace.SpanContextFromContext(r.Context()).IsSampled()
			w.WriteHeader(http.StatusNoContent)
		})

		handler := Handler(mux, "test")
		rr := httptest.NewRecorder()

		// Act
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))

		// Assert
		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.True(t, sampled)
		assert.NotNil(t, otel.GetTracerProvider())
	})
}
