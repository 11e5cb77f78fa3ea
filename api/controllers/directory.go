package controllers

import (
	"net/http"

	"github.com/topicdesk/topicdesk-backend/api/responses"
	"github.com/topicdesk/topicdesk-backend/internal/users"
	pkgerrors "github.com/topicdesk/topicdesk-backend/pkg/errors"
	"github.com/topicdesk/topicdesk-backend/pkg/logger"
)

func ListTeachers(svc users.DirectoryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "directory service unavailable"))
			return
		}
		list, err := svc.Teachers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func ListStudents(svc users.DirectoryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "directory service unavailable"))
			return
		}
		list, err := svc.Students(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"count":    len(list),
			"students": list,
		})
	}
}
