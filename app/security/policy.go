package security

import (
	"hackathon-club/app/apperrors"
	"hackathon-club/app/models"
)

// Capability names an action gated by role
type Capability string

const (
	CapEventCreate       Capability = "event:create"
	CapEventUpdate       Capability = "event:update"
	CapEventDelete       Capability = "event:delete"
	CapAttendanceMark    Capability = "attendance:mark"
	CapAttendanceExport  Capability = "attendance:export"
	CapSubmissionGrade   Capability = "submission:grade"
	CapSubmissionHistory Capability = "submission:history"
	CapUserSetRole       Capability = "user:set-role"
)

// Principal is the authenticated caller of an operation
type Principal struct {
	UserID string
	Email  string
	Name   string
	Role   models.Role
}

// Authorizer decides whether a principal may use a capability. It returns a
// Forbidden AppError when access is denied.
type Authorizer interface {
	Authorize(p Principal, capability Capability) error
}

// RolePolicy grants each capability to a fixed set of roles
type RolePolicy map[Capability][]models.Role

// DefaultPolicy is the club's role table
func DefaultPolicy() RolePolicy {
	return RolePolicy{
		CapEventCreate:       {models.RoleLead, models.RoleCoLead, models.RoleAdmin},
		CapEventUpdate:       {models.RoleLead, models.RoleCoLead, models.RoleAdmin},
		CapEventDelete:       {models.RoleLead, models.RoleAdmin},
		CapAttendanceMark:    {models.RoleAdmin},
		CapAttendanceExport:  {models.RoleAdmin, models.RoleLead, models.RoleCoLead},
		CapSubmissionGrade:   {models.RoleAdmin, models.RoleJudge},
		CapSubmissionHistory: {models.RoleAdmin, models.RoleJudge},
		CapUserSetRole:       {models.RoleAdmin},
	}
}

// Allows reports whether role holds capability. Unknown capabilities are
// denied.
func (p RolePolicy) Allows(role models.Role, capability Capability) bool {
	for _, allowed := range p[capability] {
		if allowed == role {
			return true
		}
	}
	return false
}

func (p RolePolicy) Authorize(principal Principal, capability Capability) error {
	if principal.UserID == "" {
		return apperrors.NewUnauthorized(apperrors.CodeMissingToken, "Not authorized, no token")
	}
	if !p.Allows(principal.Role, capability) {
		return apperrors.NewForbidden(apperrors.CodeMissingRole, "Insufficient permissions")
	}
	return nil
}
