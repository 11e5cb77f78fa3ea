package controllers

import (
	"net/http"

	"github.com/topicdesk/topicdesk-backend/api/responses"
	"github.com/topicdesk/topicdesk-backend/api/validators"
	"github.com/topicdesk/topicdesk-backend/internal/auth"
	pkgerrors "github.com/topicdesk/topicdesk-backend/pkg/errors"
	"github.com/topicdesk/topicdesk-backend/pkg/logger"
)

// AuthLogin wires the login endpoint into the HTTP layer. The body only ever
// carries identity attributes, never the stored digest.
func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
