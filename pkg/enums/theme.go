package enums

import "fmt"

// ThemeType is the kind of academic work a theme targets.
type ThemeType string

const (
	ThemeTypeCoursework ThemeType = "coursework"
	ThemeTypeBachelor   ThemeType = "bachelor"
	ThemeTypeMaster     ThemeType = "master"
	ThemeTypeOther      ThemeType = "other"
)

var validThemeTypes = []ThemeType{
	ThemeTypeCoursework,
	ThemeTypeBachelor,
	ThemeTypeMaster,
	ThemeTypeOther,
}

func (t ThemeType) String() string {
	return string(t)
}

func (t ThemeType) IsValid() bool {
	for _, candidate := range validThemeTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

func ParseThemeType(value string) (ThemeType, error) {
	for _, candidate := range validThemeTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid theme type %q", value)
}

// ThemeSource records who proposed a theme.
type ThemeSource string

const (
	ThemeSourceTeacher  ThemeSource = "teacher"
	ThemeSourceStudent  ThemeSource = "student"
	ThemeSourceEmployer ThemeSource = "employer"
	ThemeSourceOther    ThemeSource = "other"
)

var validThemeSources = []ThemeSource{
	ThemeSourceTeacher,
	ThemeSourceStudent,
	ThemeSourceEmployer,
	ThemeSourceOther,
}

func (s ThemeSource) String() string {
	return string(s)
}

func (s ThemeSource) IsValid() bool {
	for _, candidate := range validThemeSources {
		if candidate == s {
			return true
		}
	}
	return false
}

func ParseThemeSource(value string) (ThemeSource, error) {
	for _, candidate := range validThemeSources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid theme source %q", value)
}

// ThemeStatus tracks theme availability. New themes start available.
type ThemeStatus string

const ThemeStatusAvailable ThemeStatus = "available"

func (s ThemeStatus) String() string {
	return string(s)
}
