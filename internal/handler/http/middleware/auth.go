package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/nexushr/workforce-backend-go/internal/handler/http/response"
	"github.com/nexushr/workforce-backend-go/internal/pkg/actor"
)

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, actor.ErrNoActor)
				return
			}

			if _, err := actor.FromContext(r.Context()); err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
