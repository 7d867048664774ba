package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"eventhub/internal/domain"
)

type contextKey string

const identityKey contextKey = "identity"

// SetIdentity returns a context with the caller identity set.
func SetIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext returns the caller identity from the context. Requests
// that never passed through Authenticate, or carried no usable token, resolve
// to the anonymous identity.
func IdentityFromContext(ctx context.Context) domain.Identity {
	if id, ok := ctx.Value(identityKey).(domain.Identity); ok {
		return id
	}
	return domain.Anonymous
}

// Authenticate resolves the Bearer token into an identity and stores it in the
// request context. It never rejects: a missing or invalid token yields the
// anonymous identity, and the guards downstream decide what that may access.
func Authenticate(verifier domain.TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := domain.Anonymous
			if token := bearerToken(r); token != "" {
				id, err := verifier.Verify(token)
				if err != nil {
					logger.Debug("token rejected", "error", err)
				} else {
					identity = id
				}
			}
			next.ServeHTTP(w, r.WithContext(SetIdentity(r.Context(), identity)))
		})
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}
