package models

// Role is the single access role held by a user
type Role string

const (
	RoleUser   Role = "user"
	RoleLead   Role = "lead"
	RoleCoLead Role = "co-lead"
	RoleAdmin  Role = "admin"
	RoleJudge  Role = "judge"
)

// AllRoles lists every assignable role
var AllRoles = []Role{RoleUser, RoleLead, RoleCoLead, RoleAdmin, RoleJudge}

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	for _, role := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
