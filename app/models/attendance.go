package models

import "time"

// Attendance records whether a user attended an event
type Attendance struct {
	ID       string           `json:"_id"`
	EventID  string           `json:"event"`
	UserID   string           `json:"user"`
	Status   AttendanceStatus `json:"status"`
	MarkedAt time.Time        `json:"markedAt"`

	UserName  string `json:"userName,omitempty"`
	UserEmail string `json:"userEmail,omitempty"`
}
