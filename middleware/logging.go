package middleware

import (
	"context"
	"log/slog"
	"time"
)

// Logging returns middleware that logs step start and completion.
func Logging(logger *slog.Logger) Middleware {
	return func(ctx context.Context, s *Step, next Handler) (any, error) {
		logger.Debug("step started",
			slog.String("workflow", s.Workflow),
			slog.String("run_id", s.RunID),
			slog.String("step", s.Name),
			slog.Int("index", s.Index),
		)

		start := time.Now()
		result, err := next(ctx)
		elapsed := time.Since(start)

		if err != nil {
			logger.Warn("step failed",
				slog.String("workflow", s.Workflow),
				slog.String("run_id", s.RunID),
				slog.String("step", s.Name),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()),
			)
		} else {
			logger.Debug("step completed",
				slog.String("workflow", s.Workflow),
				slog.String("run_id", s.RunID),
				slog.String("step", s.Name),
				slog.Duration("elapsed", elapsed),
			)
		}

		return result, err
	}
}
