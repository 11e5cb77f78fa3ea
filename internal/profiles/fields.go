package profiles

import (
	"strings"

	"github.com/topicdesk/topicdesk-backend/internal/users"
	"github.com/topicdesk/topicdesk-backend/pkg/enums"
)

// ProfileFields is the role-tagged payload of a synchronization. The set of
// implementations is closed: StudentFields and TeacherFields.
type ProfileFields interface {
	Role() enums.Role
	fullName() string
	isProfileFields()
}

// StudentFields updates a student identity. Nil optional fields clear the column.
type StudentFields struct {
	FullName  string
	GroupName *string
	Phone     *string
}

func (StudentFields) Role() enums.Role    { return enums.RoleStudent }
func (f StudentFields) fullName() string { return f.FullName }
func (StudentFields) isProfileFields()   {}

// TeacherFields updates a teacher identity.
type TeacherFields struct {
	FullName   string
	Department *string
	Position   *string
}

func (TeacherFields) Role() enums.Role    { return enums.RoleTeacher }
func (f TeacherFields) fullName() string { return f.FullName }
func (TeacherFields) isProfileFields()   {}

// SyncedProfile is the post-commit joined view. Exactly one of Student and
// Teacher is set.
type SyncedProfile struct {
	Role    enums.Role
	Student *users.StudentView
	Teacher *users.TeacherView
}

// blankToNil turns empty optional strings into NULL.
func blankToNil(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
