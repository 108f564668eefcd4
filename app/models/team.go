package models

import "time"

// Team is a group registered for an event. The leader is stored separately
// from Members but is inserted as the first member when the team is created.
type Team struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	EventID     string    `json:"event"`
	LeaderID    string    `json:"leader"`
	Members     []string  `json:"members"`
	ProjectIdea string    `json:"projectIdea,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`

	EventTitle string `json:"eventTitle,omitempty"`
	LeaderName string `json:"leaderName,omitempty"`
}

// HasMember reports whether userID appears in the member list
func (t *Team) HasMember(userID string) bool {
	for _, member := range t.Members {
		if member == userID {
			return true
		}
	}
	return false
}
