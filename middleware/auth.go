package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/abhijan2402/tomarket-admin/utils"
)

func bearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer ")), true
}

// AuthMiddleware authenticates end-user requests. Dashboard roles are blocked
// from user endpoints; they have their own surface.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr, ok := bearerToken(r)
		if !ok {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
			return
		}
		_, claims, err := utils.ValidateAccessToken(tokenStr)
		if err != nil {
			if strings.Contains(err.Error(), "expired") {
				utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Session expired, please log in again"})
				return
			}
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Invalid token"})
			return
		}

		actor, err := utils.ActorFromClaims(claims)
		if err != nil {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Invalid token"})
			return
		}
		if actor.Role.IsReviewer() {
			utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "Access denied"})
			return
		}

		ctx := context.WithValue(r.Context(), utils.UserIDKey, actor.ID)
		ctx = context.WithValue(ctx, utils.UserRoleKey, actor.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CronKeyMiddleware protects endpoints driven by the external payout/cron
// process via a static X-CRON-KEY header.
func CronKeyMiddleware(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get("X-CRON-KEY")
			if key == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
