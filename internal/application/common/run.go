package common

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/andrescamacho/traveller-trade-go/internal/application/mediator"
)

// WithRunID tags the context with a run identifier
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// RunIDFromContext returns the run identifier, or "" outside a run
func RunIDFromContext(ctx context.Context) string {
	runID, _ := ctx.Value(runIDKey).(string)
	return runID
}

// RunMiddleware gives each request a run ID, scopes the context logger to
// it and logs how the request ended
func RunMiddleware() mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		runID := RunIDFromContext(ctx)
		if runID == "" {
			runID = uuid.NewString()
			ctx = WithRunID(ctx, runID)
		}

		requestName := fmt.Sprintf("%T", request)
		logger := WithFields(LoggerFromContext(ctx), map[string]interface{}{
			"run_id":  runID,
			"request": requestName,
		})
		ctx = WithLogger(ctx, logger)

		started := time.Now()
		resp, err := next(ctx, request)
		elapsed := time.Since(started)

		if err != nil {
			logger.Log("ERROR", "Request failed", map[string]interface{}{
				"error":      err.Error(),
				"elapsed_ms": elapsed.Milliseconds(),
			})
			return nil, err
		}
		logger.Log("DEBUG", "Request handled", map[string]interface{}{
			"elapsed_ms": elapsed.Milliseconds(),
		})
		return resp, nil
	}
}
