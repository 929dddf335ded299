package middleware

import (
	"context"

	"github.com/Ahmad-Arslan-10/Steakaway/internal/session"
)

type contextKey string

const (
	ctxUserID    contextKey = "user_id"
	ctxSessionID contextKey = "session_id"
	ctxSession   contextKey = "session"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionID).(string); ok {
		return v
	}
	return ""
}

// SessionFromContext returns the resolved session seeded by Auth.
func SessionFromContext(ctx context.Context) *session.Session {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxSession).(*session.Session); ok {
		return v
	}
	return nil
}

// WithSession injects a resolved session, mainly for handler tests.
func WithSession(ctx context.Context, s *session.Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxUserID, s.UserID)
	ctx = context.WithValue(ctx, ctxSessionID, s.ID)
	return context.WithValue(ctx, ctxSession, s)
}
