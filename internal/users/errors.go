package users

import (
	"github.com/topicdesk/topicdesk-backend/pkg/db"
	pkgerrors "github.com/topicdesk/topicdesk-backend/pkg/errors"
)

// LoginConstraint is the unique constraint guarding identity logins.
const LoginConstraint = "users_login_key"

const loginTakenMessage = "login already in use"

// TranslateStoreError maps a raw store failure onto the service error codes.
// Typed errors pass through untouched. Statement parameters are never copied
// into the returned error's message or details.
func TranslateStoreError(err error, op string) error {
	if err == nil {
		return nil
	}
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	if violation, ok := db.ClassifyConstraint(err); ok {
		if violation.Unique && violation.Constraint == LoginConstraint {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, loginTakenMessage)
		}
		details := map[string]any{"step": op}
		if violation.Constraint != "" {
			details["constraint"] = violation.Constraint
		}
		return pkgerrors.Wrap(pkgerrors.CodeStore, err, op).WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeStore, err, op).WithDetails(map[string]any{"step": op})
}

// LoginTaken is the conflict returned by the pre-insert existence check.
func LoginTaken() error {
	return pkgerrors.New(pkgerrors.CodeConflict, loginTakenMessage)
}
