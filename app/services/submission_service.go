package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"hackathon-club/app/apperrors"
	"hackathon-club/app/database"
	"hackathon-club/app/models"
	"hackathon-club/app/security"
	"hackathon-club/app/utils"
)

const (
	MinScore = 0
	MaxScore = 100
)

type CreateSubmissionInput struct {
	EventID      string              `json:"eventId"`
	TeamID       string              `json:"teamId"`
	ProjectTitle string              `json:"projectTitle"`
	Description  string              `json:"description"`
	RepoLink     string              `json:"repoLink"`
	DemoLink     string              `json:"demoLink"`
	Attachments  []models.Attachment `json:"attachments"`
}

// SubmissionPatch carries the fields of an update. Omitted fields keep their
// stored value.
type SubmissionPatch struct {
	ProjectTitle models.Field[string]              `json:"projectTitle"`
	Description  models.Field[string]              `json:"description"`
	RepoLink     models.Field[string]              `json:"repoLink"`
	DemoLink     models.Field[string]              `json:"demoLink"`
	Attachments  models.Field[[]models.Attachment] `json:"attachments"`
}

type GradeInput struct {
	Score    *int   `json:"score"`
	Feedback string `json:"feedback"`
}

// SubmissionService runs the submit, edit and grade workflow for team
// projects.
type SubmissionService struct {
	submissions SubmissionStore
	teams       TeamStore
	events      EventStore
	now         func() time.Time
}

func NewSubmissionService(submissions SubmissionStore, teams TeamStore, events EventStore) *SubmissionService {
	return &SubmissionService{
		submissions: submissions,
		teams:       teams,
		events:      events,
		now:         time.Now,
	}
}

// Create records a team's first submission for an event
func (s *SubmissionService) Create(ctx context.Context, actor security.Principal, in CreateSubmissionInput) (*models.Submission, error) {
	in.EventID = strings.TrimSpace(in.EventID)
	in.TeamID = strings.TrimSpace(in.TeamID)
	if in.EventID == "" || in.TeamID == "" {
		return nil, apperrors.NewValidation(apperrors.CodeSubmissionInvalid, "Event and team are required")
	}
	sub := &models.Submission{
		EventID:      in.EventID,
		TeamID:       in.TeamID,
		ProjectTitle: strings.TrimSpace(in.ProjectTitle),
		Description:  strings.TrimSpace(in.Description),
		RepoLink:     strings.TrimSpace(in.RepoLink),
		DemoLink:     strings.TrimSpace(in.DemoLink),
	}
	attachments, err := normalizeAttachments(in.Attachments)
	if err != nil {
		return nil, err
	}
	sub.Attachments = attachments
	if err := validateSubmissionFields(sub); err != nil {
		return nil, err
	}

	team, err := s.teams.GetTeamByID(ctx, in.TeamID)
	if err != nil {
		return nil, lookupError(err, errTeamNotFound)
	}
	if !IsAuthorizedForTeam(team, actor.UserID) {
		return nil, apperrors.NewForbidden(apperrors.CodeNotTeamMember, "Not authorized to submit for this team")
	}

	if _, err := s.submissions.FindSubmission(ctx, in.EventID, in.TeamID); err == nil {
		return nil, errDuplicateSubmission()
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, serverError(err)
	}

	event, err := s.events.GetEventByID(ctx, in.EventID)
	if err != nil {
		return nil, lookupError(err, errEventNotFound)
	}
	if team.EventID != event.ID {
		return nil, apperrors.NewValidation(apperrors.CodeTeamEventMismatch, "Team is not registered for this event")
	}
	now := s.now().UTC()
	if !IsSubmissionWindowOpen(event, now) {
		return nil, apperrors.NewDeadlinePassed("Submission deadline has passed")
	}

	sub.Status = models.SubmissionSubmitted
	sub.SubmittedBy = actor.UserID
	sub.SubmittedAt = now
	sub.UpdatedAt = now
	if err := s.submissions.InsertSubmission(ctx, sub); err != nil {
		if errors.Is(err, database.ErrAlreadyExists) {
			return nil, errDuplicateSubmission()
		}
		return nil, serverError(err)
	}

	log.Printf("[submissions] team %s submitted %s for event %s", team.ID, sub.ID, event.ID)
	return sub, nil
}

// Update merges patch into a submission the actor submitted or whose team
// the actor leads.
func (s *SubmissionService) Update(ctx context.Context, actor security.Principal, id string, patch SubmissionPatch) (*models.Submission, error) {
	sub, err := s.submissions.FindSubmissionByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, errSubmissionNotFound)
	}

	isSubmitter := sub.SubmittedBy == actor.UserID
	isLeader := false
	if !isSubmitter {
		team, err := s.teams.GetTeamByID(ctx, sub.TeamID)
		if err != nil && !errors.Is(err, database.ErrNotFound) {
			return nil, serverError(err)
		}
		isLeader = team != nil && team.LeaderID == actor.UserID
	}
	if !isSubmitter && !isLeader {
		return nil, apperrors.NewForbidden(apperrors.CodeNotSubmitter, "Not authorized to update this submission")
	}

	event, err := s.events.GetEventByID(ctx, sub.EventID)
	if err != nil {
		return nil, lookupError(err, errEventNotFound)
	}
	now := s.now().UTC()
	if !IsSubmissionWindowOpen(event, now) {
		return nil, apperrors.NewDeadlinePassed("Submission deadline has passed")
	}
	if sub.IsGraded() {
		return nil, apperrors.NewAlreadyGraded("Cannot update a graded submission")
	}

	if err := applySubmissionPatch(sub, patch); err != nil {
		return nil, err
	}
	sub.UpdatedAt = now
	if err := s.submissions.SaveSubmission(ctx, sub); err != nil {
		return nil, lookupError(err, errSubmissionNotFound)
	}
	return sub, nil
}

// Grade sets or replaces the grade of a submission. Role checks happen
// before this is called.
func (s *SubmissionService) Grade(ctx context.Context, grader security.Principal, id string, in GradeInput) (*models.Submission, error) {
	if in.Score == nil {
		return nil, apperrors.NewValidation(apperrors.CodeGradeInvalid, "Score is required")
	}
	score := *in.Score
	if score < MinScore || score > MaxScore {
		return nil, apperrors.NewInvalidScore("Score must be between 0 and 100")
	}
	feedback := strings.TrimSpace(in.Feedback)
	if feedback == "" {
		return nil, apperrors.NewValidation(apperrors.CodeGradeInvalid, "Feedback is required")
	}

	sub, err := s.submissions.FindSubmissionByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, errSubmissionNotFound)
	}

	now := s.now().UTC()
	sub.Grade = &models.Grade{
		Score:    score,
		Feedback: feedback,
		GradedBy: grader.UserID,
		GradedAt: now,
	}
	sub.Status = models.SubmissionGraded
	sub.UpdatedAt = now
	if err := s.submissions.RecordGrade(ctx, sub); err != nil {
		return nil, lookupError(err, errSubmissionNotFound)
	}

	log.Printf("[submissions] %s graded %d by %s", sub.ID, score, grader.UserID)
	return sub, nil
}

func (s *SubmissionService) Get(ctx context.Context, id string) (*models.Submission, error) {
	sub, err := s.submissions.FindSubmissionByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, errSubmissionNotFound)
	}
	return sub, nil
}

// ListByEvent returns an event's submissions, most recently submitted first
func (s *SubmissionService) ListByEvent(ctx context.Context, eventID string) ([]*models.Submission, error) {
	subs, err := s.submissions.ListSubmissionsByEvent(ctx, eventID)
	if err != nil {
		return nil, serverError(err)
	}
	return subs, nil
}

// GradeHistory returns every grade recorded for a submission, oldest first
func (s *SubmissionService) GradeHistory(ctx context.Context, id string) ([]*models.GradeRecord, error) {
	if _, err := s.submissions.FindSubmissionByID(ctx, id); err != nil {
		return nil, lookupError(err, errSubmissionNotFound)
	}
	history, err := s.submissions.ListGradeHistory(ctx, id)
	if err != nil {
		return nil, serverError(err)
	}
	return history, nil
}

func errDuplicateSubmission() error {
	return apperrors.NewConflict(apperrors.CodeSubmissionDuplicate, "Team has already submitted a project")
}

func applySubmissionPatch(sub *models.Submission, patch SubmissionPatch) error {
	if patch.ProjectTitle.Set {
		if patch.ProjectTitle.Null {
			return apperrors.NewValidation(apperrors.CodeSubmissionInvalid, "Project title cannot be cleared")
		}
		sub.ProjectTitle = strings.TrimSpace(patch.ProjectTitle.Value)
	}
	if patch.RepoLink.Set {
		if patch.RepoLink.Null {
			return apperrors.NewValidation(apperrors.CodeSubmissionInvalid, "Repository link cannot be cleared")
		}
		sub.RepoLink = strings.TrimSpace(patch.RepoLink.Value)
	}
	sub.Description = strings.TrimSpace(patch.Description.Apply(sub.Description))
	sub.DemoLink = strings.TrimSpace(patch.DemoLink.Apply(sub.DemoLink))
	if patch.Attachments.Set {
		attachments, err := normalizeAttachments(patch.Attachments.Value)
		if err != nil {
			return err
		}
		sub.Attachments = attachments
	}
	return validateSubmissionFields(sub)
}

func validateSubmissionFields(sub *models.Submission) error {
	if sub.ProjectTitle == "" {
		return apperrors.NewValidation(apperrors.CodeSubmissionInvalid, "Project title is required")
	}
	if !utils.IsValidURL(sub.RepoLink) {
		return apperrors.NewValidation(apperrors.CodeSubmissionInvalid, "Repository link must be a valid http(s) URL")
	}
	if sub.DemoLink != "" && !utils.IsValidURL(sub.DemoLink) {
		return apperrors.NewValidation(apperrors.CodeSubmissionInvalid, "Demo link must be a valid http(s) URL")
	}
	return nil
}

// normalizeAttachments trims every attachment and lowercases its type tag.
// The tag is not checked against the file content.
func normalizeAttachments(in []models.Attachment) ([]models.Attachment, error) {
	out := make([]models.Attachment, 0, len(in))
	for _, a := range in {
		a.Name = strings.TrimSpace(a.Name)
		a.URL = strings.TrimSpace(a.URL)
		a.Type = strings.ToLower(strings.TrimSpace(a.Type))
		if a.Name == "" {
			return nil, apperrors.NewValidation(apperrors.CodeSubmissionInvalid, "Attachment name is required")
		}
		if !utils.IsValidURL(a.URL) {
			return nil, apperrors.NewValidation(apperrors.CodeSubmissionInvalid, "Attachment URL must be a valid http(s) URL")
		}
		out = append(out, a)
	}
	return out, nil
}
