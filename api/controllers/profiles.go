package controllers

import (
	"net/http"

	"github.com/topicdesk/topicdesk-backend/api/responses"
	"github.com/topicdesk/topicdesk-backend/api/validators"
	"github.com/topicdesk/topicdesk-backend/internal/profiles"
	pkgerrors "github.com/topicdesk/topicdesk-backend/pkg/errors"
	"github.com/topicdesk/topicdesk-backend/pkg/logger"
)

type updateStudentBody struct {
	FullName  string  `json:"full_name" validate:"required"`
	GroupName *string `json:"group_name"`
	Phone     *string `json:"phone"`
}

type updateTeacherBody struct {
	FullName   string  `json:"full_name" validate:"required"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
}

// UpdateStudent synchronizes a student's name and profile row.
func UpdateStudent(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body updateStudentBody
		synced, ok := synchronize(w, r, svc, logg, &body, func() profiles.ProfileFields {
			return profiles.StudentFields{FullName: body.FullName, GroupName: body.GroupName, Phone: body.Phone}
		})
		if !ok {
			return
		}
		responses.WriteSuccess(w, map[string]any{"student": synced.Student})
	}
}

// UpdateTeacher synchronizes a teacher's name and profile row.
func UpdateTeacher(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body updateTeacherBody
		synced, ok := synchronize(w, r, svc, logg, &body, func() profiles.ProfileFields {
			return profiles.TeacherFields{FullName: body.FullName, Department: body.Department, Position: body.Position}
		})
		if !ok {
			return
		}
		responses.WriteSuccess(w, map[string]any{"teacher": synced.Teacher})
	}
}

func synchronize(w http.ResponseWriter, r *http.Request, svc profiles.Service, logg *logger.Logger, body any, fields func() profiles.ProfileFields) (*profiles.SyncedProfile, bool) {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
		return nil, false
	}

	id, err := validators.ParseUUIDParam(r, "id")
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return nil, false
	}
	if err := validators.DecodeJSONBody(r, body); err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return nil, false
	}

	synced, err := svc.Synchronize(r.Context(), id, fields())
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return nil, false
	}
	return synced, true
}
