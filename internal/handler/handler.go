package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhaomaota/word-stone/internal/domain"
	"github.com/zhaomaota/word-stone/internal/ledger"
	"github.com/zhaomaota/word-stone/internal/logger"
	"github.com/zhaomaota/word-stone/internal/session"
)

// URLParamUsername is the route parameter naming the session owner
const URLParamUsername = "username"

const maxPackTypeLength = 32

// Sessions is the session manager as seen by the HTTP layer.
// *session.Manager implements it.
type Sessions interface {
	Login(ctx context.Context, req session.LoginRequest) (*session.Session, error)
	Get(ctx context.Context, username string) (*session.Session, error)
	Logout(ctx context.Context, username string) error
	UpdateProfile(ctx context.Context, username string, update ledger.ProfileUpdate) (domain.Profile, error)
}

type sessionKey struct{}

// SessionFromContext returns the session stored by RequireSession
func SessionFromContext(ctx context.Context) *session.Session {
	s, _ := ctx.Value(sessionKey{}).(*session.Session)
	return s
}

// RequireSession resolves the {username} session and checks the bearer token
// against it. Handlers behind it read the session with SessionFromContext.
func RequireSession(sessions Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username := chi.URLParam(r, URLParamUsername)
			log := logger.FromContext(r.Context())

			token := bearerToken(r)
			if token == "" {
				respondError(w, http.StatusUnauthorized, ErrMsgMissingBearer)
				return
			}

			s, err := sessions.Get(r.Context(), username)
			if err != nil {
				respondServiceError(w, r, "resolve session", err)
				return
			}
			if !s.Authorize(token) {
				log.Warn(LogMsgAuthFailed, "username", username, "path", r.URL.Path)
				respondError(w, http.StatusUnauthorized, ErrMsgUnauthorizedError)
				return
			}

			ctx := logger.WithUsername(r.Context(), s.Username())
			ctx = context.WithValue(ctx, sessionKey{}, s)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionTopic routes SSE subscribers to the events of the {username} session
func SessionTopic(r *http.Request) string {
	if s := SessionFromContext(r.Context()); s != nil {
		return s.Username()
	}
	return chi.URLParam(r, URLParamUsername)
}
