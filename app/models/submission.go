package models

import "time"

// Attachment is a file already hosted by the media host
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

// Grade is the current evaluation of a submission
type Grade struct {
	Score    int       `json:"score"`
	Feedback string    `json:"feedback"`
	GradedBy string    `json:"gradedBy"`
	GradedAt time.Time `json:"gradedAt"`
}

// Submission is a team's project entry for an event
type Submission struct {
	ID           string           `json:"_id"`
	EventID      string           `json:"event"`
	TeamID       string           `json:"team"`
	ProjectTitle string           `json:"projectTitle"`
	Description  string           `json:"description"`
	RepoLink     string           `json:"repoLink"`
	DemoLink     string           `json:"demoLink,omitempty"`
	Attachments  []Attachment     `json:"attachments"`
	Status       SubmissionStatus `json:"status"`
	SubmittedBy  string           `json:"submittedBy"`
	Grade        *Grade           `json:"grade,omitempty"`
	SubmittedAt  time.Time        `json:"submittedAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`

	TeamName      string `json:"teamName,omitempty"`
	SubmitterName string `json:"submitterName,omitempty"`
}

// IsGraded reports whether a score has been recorded
func (s *Submission) IsGraded() bool {
	return s.Grade != nil
}

// GradeRecord is one entry of the append-only grading history
type GradeRecord struct {
	ID           string    `json:"_id"`
	SubmissionID string    `json:"submission"`
	Score        int       `json:"score"`
	Feedback     string    `json:"feedback"`
	GradedBy     string    `json:"gradedBy"`
	GraderName   string    `json:"graderName,omitempty"`
	GradedAt     time.Time `json:"gradedAt"`
}
