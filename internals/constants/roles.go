package constants

import "fmt"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const ErrRoleNotAuthorized = "User role %s is not authorized to access this route"

func RoleError(role string) string {
	if role == "" {
		role = "guest"
	}
	return fmt.Sprintf(ErrRoleNotAuthorized, role)
}

var (
	AllRoles  = []string{RoleUser, RoleAdmin}
	AdminOnly = []string{RoleAdmin}
)
