package tools

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/averycrespi/calculatte-mcp/internal/metrics"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type statsKey struct{}

// callStats accumulates what a single tool call did
type callStats struct {
	id          string
	evaluations atomic.Int64
	undefined   atomic.Bool
}

func statsFromContext(ctx context.Context) *callStats {
	stats, _ := ctx.Value(statsKey{}).(*callStats)
	return stats
}

// CallID returns the ID assigned to the current tool call, if any
func CallID(ctx context.Context) string {
	if stats := statsFromContext(ctx); stats != nil {
		return stats.id
	}
	return ""
}

// MiddlewareConfig configures the tool call middleware
type MiddlewareConfig struct {
	Logger  *zap.Logger
	Metrics *metrics.Metrics

	// Limiter rejects calls beyond its rate. Nil disables rate limiting.
	Limiter *rate.Limiter

	// Timeout bounds each call. Zero disables it.
	Timeout time.Duration
}

// NewLimiter creates a limiter from a rate and burst, or nil when disabled
func NewLimiter(enabled bool, rps float64, burst int) *rate.Limiter {
	if !enabled {
		return nil
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// Middleware tags each tool call with an ID, applies the rate limit and timeout,
// then logs and records the outcome
func Middleware(cfg MiddlewareConfig) server.ToolHandlerMiddleware {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			tool := req.Params.Name
			stats := &callStats{id: uuid.NewString()}
			log := logger.With(zap.String("call_id", stats.id), zap.String("tool", tool))

			if cfg.Limiter != nil && !cfg.Limiter.Allow() {
				log.Debug("Tool call rejected by rate limit")
				if cfg.Metrics != nil {
					cfg.Metrics.ObserveToolCall(tool, metrics.StatusRateLimited, 0)
				}
				return mcp.NewToolResultError("Rate limit exceeded, please retry later"), nil
			}

			ctx = context.WithValue(ctx, statsKey{}, stats)
			if cfg.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
				defer cancel()
			}

			log.Debug("Tool call started", zap.Any("arguments", req.GetArguments()))
			start := time.Now()
			result, err := next(ctx, req)
			duration := time.Since(start)

			status := metrics.StatusOK
			switch {
			case err != nil:
				status = metrics.StatusError
				log.Error("Tool call failed", zap.Error(err), zap.Duration("duration", duration))
			case result != nil && result.IsError:
				status = metrics.StatusToolError
				log.Debug("Tool call rejected", zap.Duration("duration", duration))
			default:
				log.Debug("Tool call finished",
					zap.Duration("duration", duration),
					zap.Int64("evaluations", stats.evaluations.Load()),
					zap.Bool("undefined", stats.undefined.Load()),
				)
			}

			if cfg.Metrics != nil {
				cfg.Metrics.ObserveToolCall(tool, status, duration)
				cfg.Metrics.AddEvaluations(tool, stats.evaluations.Load())
				if stats.undefined.Load() {
					cfg.Metrics.ObserveUndefined(tool)
				}
			}

			return result, err
		}
	}
}
