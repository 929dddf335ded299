package controllers

import (
	"net/http"
	"time"

	"github.com/Ahmad-Arslan-10/Steakaway/api/middleware"
	"github.com/Ahmad-Arslan-10/Steakaway/api/responses"
	"github.com/Ahmad-Arslan-10/Steakaway/api/validators"
	"github.com/Ahmad-Arslan-10/Steakaway/internal/session"
	pkgAuth "github.com/Ahmad-Arslan-10/Steakaway/pkg/auth"
	"github.com/Ahmad-Arslan-10/Steakaway/pkg/config"
	pkgerrors "github.com/Ahmad-Arslan-10/Steakaway/pkg/errors"
	"github.com/Ahmad-Arslan-10/Steakaway/pkg/logger"
)

type loginPayload struct {
	UserID string `json:"user_id" validate:"required"`
}

type loginResponse struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	ExpiresIn int64  `json:"expires_in"`
}

// Login opens a session for the user and mints its bearer token.
// Identity verification happens upstream; this service only needs a
// stable user id to key state on.
func Login(cfg config.JWTConfig, sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload loginPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		sess, err := sessions.Start(ctx, payload.UserID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		token, err := pkgAuth.MintSessionToken(cfg, time.Now(), sess.UserID, sess.ID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint session token"))
			return
		}

		responses.WriteSuccess(w, loginResponse{
			Token:     token,
			SessionID: sess.ID,
			UserID:    sess.UserID,
			ExpiresIn: int64(cfg.TokenTTL().Seconds()),
		})
	}
}

// Logout persists the session state and invalidates the session.
func Logout(sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sessionID := middleware.SessionIDFromContext(ctx)
		if sessionID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session is not established"))
			return
		}

		if err := sessions.End(ctx, sessionID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}
