package observability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fairyhunter13/skillbridge-assessor/internal/config"
)

func TestSetupLogger_DevAndProd(t *testing.T) {
	lg := SetupLogger(config.Config{AppEnv: "dev", OTELServiceName: "svc"})
	if lg == nil {
		t.Fatalf("nil logger")
	}
	assert.True(t, lg.Enabled(context.Background(), slog.LevelDebug))

	lg2 := SetupLogger(config.Config{AppEnv: "prod", OTELServiceName: "svc"})
	if lg2 == nil {
		t.Fatalf("nil logger prod")
	}
	assert.False(t, lg2.Enabled(context.Background(), slog.LevelDebug))
}

func TestContextWithLoggerAndLoggerFromContext(t *testing.T) {
	lg := slog.Default().With(slog.String("k", "v"))
	base := context.Background()

	ctx := ContextWithLogger(base, lg)
	assert.NotEqual(t, base, ctx)
	assert.Same(t, lg, LoggerFromContext(ctx))

	assert.Equal(t, base, ContextWithLogger(base, nil))
	assert.NotNil(t, LoggerFromContext(context.Background()))
	//nolint:staticcheck // nil context is part of the contract
	assert.NotNil(t, LoggerFromContext(nil))
}

func TestContextWithRequestID(t *testing.T) {
	base := context.Background()
	assert.Equal(t, base, ContextWithRequestID(base, ""))

	ctx := ContextWithRequestID(base, "req-123")
	assert.Equal(t, "req-123", RequestIDFromContext(ctx))
	assert.Equal(t, "", RequestIDFromContext(base))
}
