package middleware

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor logs one line per RPC with the procedure, the caller
// and the outcome. Successful calls log at debug, caller mistakes (any code
// but Internal and Unknown) at warn, everything else at error.
// Register it after the auth interceptor so the actor is in the context.
func LoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			actor := GetActor(ctx)
			attrs := []slog.Attr{
				slog.String("procedure", req.Spec().Procedure),
				slog.String("user_id", actor.UserID), // empty before login
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			}
			if actor.Admin {
				attrs = append(attrs, slog.Bool("admin", true))
			}

			level, msg := slog.LevelDebug, "RPC ok"
			if err != nil {
				code := connect.CodeOf(err)
				attrs = append(attrs, slog.String("code", code.String()), slog.Any("error", err))
				level, msg = slog.LevelWarn, "RPC error"
				if code == connect.CodeInternal || code == connect.CodeUnknown {
					level = slog.LevelError
				}
			}
			logger.LogAttrs(ctx, level, msg, attrs...)

			return resp, err
		}
	}
}
