package models

import "time"

// DefaultEventImage is used when an event is created without a poster
const DefaultEventImage = "no-photo.jpg"

// Event represents a hackathon or club event. EndDate, when set, is the hard
// deadline for project submissions.
type Event struct {
	ID          string      `json:"_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Date        time.Time   `json:"date"`
	EndDate     *time.Time  `json:"endDate,omitempty"`
	Image       string      `json:"image"`
	Type        EventType   `json:"type"`
	Status      EventStatus `json:"status"`
	CreatedBy   string      `json:"createdBy"`
	CreatedAt   time.Time   `json:"createdAt"`
}
