package telemetry_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/GintasS/social-media-post-generator/internal/telemetry"
)

// providerOnce ensures we only create one Provider per test run to avoid
// duplicate Prometheus metric registration errors from promauto's global registry
var (
	testProvider *telemetry.Provider
	providerOnce sync.Once
)

func getTestProvider(t *testing.T) *telemetry.Provider {
	t.Helper()
	providerOnce.Do(func() {
		testProvider = telemetry.NewProvider()
	})
	return testProvider
}

func TestNewProvider(t *testing.T) {
	provider := getTestProvider(t)
	if provider == nil {
		t.Fatal("expected non-nil provider")
	}
	if provider.Tracer == nil {
		t.Error("expected non-nil tracer")
	}
	if provider.Metrics == nil {
		t.Error("expected non-nil metrics")
	}
}

func TestRecordGeneration(t *testing.T) {
	provider := getTestProvider(t)
	ctx := context.Background()

	// Should not panic
	provider.RecordGeneration(ctx, "success", 3, 4*time.Second)
	provider.RecordGeneration(ctx, "transport_failure", 0, 120*time.Second)
	provider.RecordValidationFailure(ctx)
	provider.RecordSubmitRejected(ctx)
}

func TestSessionCounters(t *testing.T) {
	provider := getTestProvider(t)
	ctx := context.Background()

	// Should not panic
	provider.RecordSessionCreated(ctx)
	provider.RecordSessionClosed(ctx)
	provider.RecordCatalogLoadFailure(ctx)
}

func TestStartGeneration(t *testing.T) {
	provider := getTestProvider(t)

	ctx, span := provider.StartGeneration(context.Background(), "EcoBottle Pro", 3)
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
	span.End()
}
