package logtrace

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type runIdContextKey string

const runIdKey = runIdContextKey("runId")

// WithRunID tags ctx with a new UUIDv7 run id and attaches a logger carrying it.
func WithRunID(ctx context.Context) (context.Context, string) {
	id := newRunId()
	ctx = context.WithValue(ctx, runIdKey, id)
	ctx = log.With().Str("run_id", id).Logger().WithContext(ctx)
	return ctx, id
}

func RunIdFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	r, ok := ctx.Value(runIdKey).(string)
	if !ok {
		return ""
	}
	return r
}

func newRunId() string {
	u, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return u.String()
}
