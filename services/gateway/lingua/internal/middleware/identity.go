package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"

	"github.com/suleymanmyradov/lingua-gateway/internal/apierr"
	"github.com/suleymanmyradov/lingua-gateway/pkg/authpayload"
	"github.com/suleymanmyradov/lingua-gateway/shared/models"
)

const (
	initDataHeader = "X-InitData"
	authHeader     = "Authorization"
	bearerPrefix   = "Bearer "
)

type contextKey string

const userContextKey contextKey = "authenticatedUser"

// UserSyncer reconciles an asserted init-data identity and returns the
// persisted row.
type UserSyncer interface {
	Sync(ctx context.Context, rawUser string) (*models.User, error)
}

// UserByIDLoader resolves the user a verified session token claims.
type UserByIDLoader interface {
	ByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// SessionVerifier verifies the bearer session token minted by the OAuth
// callback.
type SessionVerifier interface {
	VerifyUserID(tokenString string) (userID uuid.UUID, err error)
}

// IdentityMiddleware resolves the caller on every protected request through
// one of two credential paths: an Authorization: Bearer session token (the
// web OAuth flow) or an X-InitData signed payload (embedded clients). The
// bearer token takes precedence when both are present.
type IdentityMiddleware struct {
	verifier *authpayload.Verifier
	syncer   UserSyncer
	sessions SessionVerifier
	users    UserByIDLoader
}

func NewIdentityMiddleware(verifier *authpayload.Verifier, syncer UserSyncer, sessions SessionVerifier, users UserByIDLoader) *IdentityMiddleware {
	return &IdentityMiddleware{verifier: verifier, syncer: syncer, sessions: sessions, users: users}
}

func (m *IdentityMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token, ok := bearerToken(r); ok {
			m.handleBearer(next, w, r, token)
			return
		}
		m.handleInitData(next, w, r)
	}
}

func (m *IdentityMiddleware) handleBearer(next http.HandlerFunc, w http.ResponseWriter, r *http.Request, token string) {
	userID, err := m.sessions.VerifyUserID(token)
	if err != nil {
		logx.WithContext(r.Context()).Errorf("session token verification failed: %v", err)
		httpx.ErrorCtx(r.Context(), w, apierr.Unauthorized("invalid or expired session token"))
		return
	}

	user, err := m.users.ByID(r.Context(), userID)
	if err != nil {
		logx.WithContext(r.Context()).Errorf("session user lookup failed: %v", err)
		httpx.ErrorCtx(r.Context(), w, apierr.Unauthorized("unauthorized"))
		return
	}

	ctx := context.WithValue(r.Context(), userContextKey, user)
	next(w, r.WithContext(ctx))
}

func (m *IdentityMiddleware) handleInitData(next http.HandlerFunc, w http.ResponseWriter, r *http.Request) {
	raw := r.Header.Get(initDataHeader)
	if raw == "" {
		httpx.ErrorCtx(r.Context(), w, apierr.Unauthorized("missing bearer token or init-data header"))
		return
	}

	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		httpx.ErrorCtx(r.Context(), w, apierr.BadRequest("malformed init-data header"))
		return
	}

	userJSON, err := m.verifier.Verify(decoded)
	if err != nil {
		logx.WithContext(r.Context()).Errorf("init-data verification failed: %v", err)
		httpx.ErrorCtx(r.Context(), w, apierr.Unauthorized("unauthorized"))
		return
	}

	user, err := m.syncer.Sync(r.Context(), userJSON)
	if err != nil {
		logx.WithContext(r.Context()).Errorf("user sync failed: %v", err)
		httpx.ErrorCtx(r.Context(), w, apierr.Unauthorized("unauthorized"))
		return
	}

	ctx := context.WithValue(r.Context(), userContextKey, user)
	next(w, r.WithContext(ctx))
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get(authHeader)
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" {
		return "", false
	}
	return token, true
}

// UserFromContext retrieves the user the identity middleware resolved.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userContextKey).(*models.User)
	return u, ok
}
