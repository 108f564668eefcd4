package services

import (
	"time"

	"hackathon-club/app/models"
)

// IsAuthorizedForTeam reports whether userID leads or belongs to team
func IsAuthorizedForTeam(team *models.Team, userID string) bool {
	if team == nil || userID == "" {
		return false
	}
	return team.LeaderID == userID || team.HasMember(userID)
}

// IsSubmissionWindowOpen reports whether event still accepts submissions at
// now. Events without an end date never close; the end instant itself is
// still open. Both instants are compared at the millisecond precision end
// dates are stored with.
func IsSubmissionWindowOpen(event *models.Event, now time.Time) bool {
	if event == nil {
		return false
	}
	if event.EndDate == nil {
		return true
	}
	return !now.Truncate(time.Millisecond).After(event.EndDate.Truncate(time.Millisecond))
}
