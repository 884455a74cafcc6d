package middleware

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"tienda_api/internal/common"
	"tienda_api/internal/common/security"
	"tienda_api/internal/domain/model"

	"github.com/sirupsen/logrus"
)

type contextKey string

const ClaimsCtxKey contextKey = "claims"

// TokenVerifier checks a raw bearer token, including revocation.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*security.Claims, error)
}

type Auth struct {
	verifier TokenVerifier
	log      logrus.FieldLogger
}

func NewAuth(verifier TokenVerifier, log logrus.FieldLogger) *Auth {
	return &Auth{verifier: verifier, log: log}
}

// RequireToken rejects requests without a valid bearer token and stores its
// claims in the request context.
func (a *Auth) RequireToken() func(http.Handler) http.Handler {
	return a.RequireRole()
}

// RequireRole authenticates the request and then checks the role claim. With no
// roles any authenticated identity passes.
func (a *Auth) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := a.authenticate(r)
			if err != nil {
				common.RespondWithErr(w, r, a.log, err)
				return
			}

			if len(roles) > 0 && !slices.Contains(roles, claims.Role) {
				a.log.WithFields(logrus.Fields{
					"username": claims.Username,
					"role":     claims.Role,
					"path":     r.URL.Path,
				}).Warn("Role not allowed")
				common.RespondWithError(w, http.StatusForbidden, common.PublicMessage(common.ErrForbidden))
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsCtxKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (a *Auth) AdminOnly() func(http.Handler) http.Handler {
	return a.RequireRole(model.RoleAdmin)
}

func (a *Auth) AdminOrUser() func(http.Handler) http.Handler {
	return a.RequireRole(model.RoleAdmin, model.RoleUser)
}

func (a *Auth) authenticate(r *http.Request) (*security.Claims, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, common.ErrMissingToken
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return nil, common.ErrMalformedToken
	}
	return a.verifier.VerifyToken(r.Context(), strings.TrimSpace(token))
}

// ClaimsFromContext returns the claims stored by RequireToken or RequireRole.
func ClaimsFromContext(ctx context.Context) (*security.Claims, bool) {
	claims, ok := ctx.Value(ClaimsCtxKey).(*security.Claims)
	return claims, ok
}
