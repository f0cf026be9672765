package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/safespace-dev/safespace/internal/domain"
	internal_errors "github.com/safespace-dev/safespace/internal/errors"
	internal_jwt "github.com/safespace-dev/safespace/internal/jwt"
	"github.com/safespace-dev/safespace/internal/utils"
)

// Key to store the user claims in the request context
type key int

// UserClaimsKey is exported so handler tests can plant a user directly.
const UserClaimsKey key = 0

// bearerToken pulls the access token from the cookie set at login or,
// for non-browser clients, from the Authorization header.
func bearerToken(r *http.Request) string {
	if cookie, err := r.Cookie("accessToken"); err == nil {
		return cookie.Value
	}
	header := r.Header.Get("Authorization")
	if after, found := strings.CutPrefix(header, "Bearer "); found {
		return after
	}
	return ""
}

func userFromToken(jwtService internal_jwt.JwtService, tokenStr string) (*domain.User, error) {
	token, err := jwtService.DecodeToken(tokenStr)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, internal_errors.Permission("Invalid access token")
	}
	uid, ok := claims["uid"].(float64)
	if !ok {
		return nil, internal_errors.Permission("Invalid access token")
	}
	user := &domain.User{Id: int64(uid)}
	if email, ok := claims["email"].(string); ok {
		user.Email = email
	}
	if name, ok := claims["display_name"].(string); ok {
		user.DisplayName = name
	}
	return user, nil
}

// NeedAuth rejects unauthenticated requests with 401.
func NeedAuth(jwtService internal_jwt.JwtService) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r)
			if tokenStr == "" {
				http.Error(w, "Please sign-in", http.StatusUnauthorized)
				return
			}
			user, err := userFromToken(jwtService, tokenStr)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			ctx := context.WithValue(r.Context(), UserClaimsKey, user)
			next(w, r.WithContext(ctx))
		}
	}
}

// OptionalAuth attaches the user when a valid token is present and lets
// the request through either way. Feeds viewer-specific reaction state.
func OptionalAuth(jwtService internal_jwt.JwtService) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r)
			if tokenStr == "" {
				next(w, r)
				return
			}
			user, err := userFromToken(jwtService, tokenStr)
			if err != nil {
				// expired or garbage token reads as signed-out
				next(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), UserClaimsKey, user)
			next(w, r.WithContext(ctx))
		}
	}
}

// GetUserFromContext returns the authenticated user or nil.
func GetUserFromContext(r *http.Request) *domain.User {
	user, ok := r.Context().Value(UserClaimsKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}
