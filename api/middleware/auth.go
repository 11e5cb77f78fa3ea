package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/topicdesk/topicdesk-backend/api/responses"
	pkgerrors "github.com/topicdesk/topicdesk-backend/pkg/errors"
	"github.com/topicdesk/topicdesk-backend/pkg/logger"
)

// ActorHeader carries the caller identity. Sessions are out of scope, so the
// header is trusted as given.
const ActorHeader = "X-User-Id"

// Actor attaches the X-User-Id caller identity when present. A malformed
// header is rejected.
func Actor(logg *logger.Logger) func(http.Handler) http.Handler {
	return actor(logg, false)
}

// RequireActor is Actor but rejects requests without a caller identity.
func RequireActor(logg *logger.Logger) func(http.Handler) http.Handler {
	return actor(logg, true)
}

func actor(logg *logger.Logger, required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(ActorHeader))
			if raw == "" {
				if required {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing caller identity"))
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			id, err := uuid.Parse(raw)
			if err != nil || id == uuid.Nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid caller identity"))
				return
			}

			ctx := WithActorID(r.Context(), id)
			if logg != nil {
				ctx = logg.WithUserID(ctx, id.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
