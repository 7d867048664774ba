package middleware

import (
	"log/slog"
	"net/http"

	"eventhub/internal/domain"
)

// RolePredicate decides whether an identity may pass a guard. Predicates are
// pure functions of the identity; they run before the wrapped handler does any
// work, so a denied request never touches handler state.
type RolePredicate func(domain.Identity) bool

// Guard redirects callers that fail the role check. Every denial, anonymous or
// role-mismatched, lands on the same unauthorized path.
type Guard struct {
	unauthorizedPath string
	logger           *slog.Logger
}

// NewGuard creates a Guard that redirects denied requests to unauthorizedPath.
func NewGuard(unauthorizedPath string, logger *slog.Logger) *Guard {
	return &Guard{unauthorizedPath: unauthorizedPath, logger: logger}
}

// Require wraps a handler with a role check. The identity comes from the
// request context; a failed check responds 303 See Other to the unauthorized
// path and the handler is never invoked.
func (g *Guard) Require(allowed RolePredicate, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := IdentityFromContext(r.Context())
		if !allowed(identity) {
			g.logger.Info("access denied",
				"path", r.URL.Path,
				"user_id", identity.ID,
				"role", identity.EffectiveRole(),
			)
			http.Redirect(w, r, g.unauthorizedPath, http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// RequireAuthenticated wraps a handler that any signed-in user may reach.
func (g *Guard) RequireAuthenticated(next http.HandlerFunc) http.HandlerFunc {
	return g.Require(domain.Identity.IsAuthenticated, next)
}
