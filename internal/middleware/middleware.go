package middleware

import (
	"context"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"riotcli/internal/constants"
)

type contextKey string

const (
	SessionIDKey contextKey = "session_id"
	LookupIDKey  contextKey = "lookup_id"
)

const lookupIDLength = 12

// Flow is one menu action run against the session context.
type Flow func(ctx context.Context) error

// Session tags ctx with a fresh session id and a logger carrying it.
func Session(ctx context.Context, logger zerolog.Logger) context.Context {
	sessionID := uuid.New().String()
	ctx = context.WithValue(ctx, SessionIDKey, sessionID)

	loggerWithID := logger.With().Str("session_id", sessionID).Logger()
	return loggerWithID.WithContext(ctx)
}

// Lookup wraps a flow with a lookup id and start/finish logs.
// https://github.com/gin-contrib/requestid
func Lookup(name string, next Flow) Flow {
	return func(ctx context.Context) error {
		start := time.Now()

		lookupID, err := gonanoid.New(lookupIDLength)
		if err != nil {
			lookupID = uuid.New().String()
		}

		ctx = context.WithValue(ctx, LookupIDKey, lookupID)
		loggerWithID := zerolog.Ctx(ctx).With().Str("lookup_id", lookupID).Str("flow", name).Logger()
		ctx = loggerWithID.WithContext(ctx)

		loggerWithID.Info().Msg("lookup started")

		err = next(ctx)

		duration := time.Since(start)
		loggerWithID.Info().
			Int64("duration_ms", duration.Milliseconds()).
			Dur("duration", duration).
			Err(err).
			Msg("lookup completed")
		return err
	}
}

// Deadline bounds the network part of a lookup. Prompts never run under it.
// A non-positive timeout falls back to LookupTimeout.
func Deadline(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = constants.LookupTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func GetSessionID(ctx context.Context) string {
	if id, ok := ctx.Value(SessionIDKey).(string); ok {
		return id
	}
	return ""
}

func GetLookupID(ctx context.Context) string {
	if id, ok := ctx.Value(LookupIDKey).(string); ok {
		return id
	}
	return ""
}
