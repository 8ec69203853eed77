package middleware

import (
	"net/http"

	"github.com/nexushr/workforce-backend-go/internal/handler/http/response"
	"github.com/nexushr/workforce-backend-go/internal/pkg/actor"
)

// RequirePrivileged restricts a route to HR and admin roles.
func RequirePrivileged(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		act, err := actor.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if !act.IsPrivileged() {
			response.Forbidden(w, "HR or admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
