package models

// EventType defines whether an event is contested by teams or individuals.
type EventType string

const (
	EventTeam       EventType = "Team"
	EventIndividual EventType = "Individual"
)

// Valid reports whether t is a known event type
func (t EventType) Valid() bool {
	return t == EventTeam || t == EventIndividual
}

// EventStatus defines the lifecycle stage of an event.
type EventStatus string

const (
	EventUpcoming EventStatus = "Upcoming"
	EventOpen     EventStatus = "Open"
	EventEnded    EventStatus = "Ended"
)

// Valid reports whether s is a known event status
func (s EventStatus) Valid() bool {
	return s == EventUpcoming || s == EventOpen || s == EventEnded
}

// SubmissionStatus defines the lifecycle stage of a project submission.
type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionGraded    SubmissionStatus = "graded"
)

// AttendanceStatus defines the possible status values for attendance.
type AttendanceStatus string

const (
	Present AttendanceStatus = "present"
	Absent  AttendanceStatus = "absent"
)

// Valid reports whether s is a known attendance status
func (s AttendanceStatus) Valid() bool {
	return s == Present || s == Absent
}
