package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/taskvault/taskvault/internal/platform/httpx"
	"github.com/taskvault/taskvault/internal/shared"
)

// Middleware wires bearer-token authentication and role checks for HTTP
// handlers.
type Middleware struct {
	Tokens *TokenManager
	Logger *slog.Logger
}

// Authenticate validates the Authorization header and stores the caller
// identity in the request context. A missing header fails with AUTH_REQUIRED;
// anything unusable fails with AUTH_INVALID.
func (m Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		identity, err := m.Tokens.Authenticate(token)
		if err != nil {
			if m.Logger != nil {
				m.Logger.Warn("token rejected", slog.String("path", r.URL.Path))
			}
			httpx.RespondError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), identity)))
	})
}

// RequireRole gates a route on an exact role match. A mismatch reuses the
// AUTH_INVALID code rather than introducing a separate forbidden code, so the
// response does not distinguish insufficient privilege from a bad token.
func (m Middleware) RequireRole(role Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				httpx.RespondError(w, shared.ErrAuthRequired)
				return
			}
			if err := Authorize(identity, role); err != nil {
				httpx.RespondError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Authorize is the access policy decision: allow when the identity carries
// the required role.
func Authorize(identity Identity, required Role) error {
	if identity.Role != required {
		return shared.ErrAuthInvalid
	}
	return nil
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", shared.ErrAuthRequired
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", shared.ErrAuthInvalid
	}
	return parts[1], nil
}
