package domain

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserEmail CtxKey = "Email"
	KeyUserType  CtxKey = "UserType"
)

// User types stored in the users table. Institution admins manage their
// own tenant; super admins operate the whole platform.
const (
	UserTypeMember           = "member"
	UserTypeInstitutionAdmin = "institution_admin"
	UserTypeSuperAdmin       = "super_admin"
)
