package services

import (
	"context"
	"errors"
	"time"

	"hackathon-club/app/apperrors"
	"hackathon-club/app/database"
	"hackathon-club/app/models"
)

// The interfaces below are the slices of *database.Store each service needs.

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUserPassword(ctx context.Context, user *models.User) error
	UpdateUserRole(ctx context.Context, user *models.User) error
	LinkFirebaseUID(ctx context.Context, user *models.User) error
}

type EventStore interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEventByID(ctx context.Context, id string) (*models.Event, error)
	ListEvents(ctx context.Context) ([]*models.Event, error)
	UpdateEvent(ctx context.Context, event *models.Event) error
	DeleteEvent(ctx context.Context, id string) error
}

type EventStatusStore interface {
	AdvanceEventStatuses(ctx context.Context, now time.Time) (int64, error)
}

type TeamStore interface {
	CreateTeam(ctx context.Context, team *models.Team) error
	GetTeamByID(ctx context.Context, id string) (*models.Team, error)
	ListTeams(ctx context.Context) ([]*models.Team, error)
	ListTeamsForUser(ctx context.Context, userID string) ([]*models.Team, error)
	AddTeamMember(ctx context.Context, teamID, userID string) error
}

type SubmissionStore interface {
	InsertSubmission(ctx context.Context, sub *models.Submission) error
	FindSubmission(ctx context.Context, eventID, teamID string) (*models.Submission, error)
	FindSubmissionByID(ctx context.Context, id string) (*models.Submission, error)
	SaveSubmission(ctx context.Context, sub *models.Submission) error
	RecordGrade(ctx context.Context, sub *models.Submission) error
	ListSubmissionsByEvent(ctx context.Context, eventID string) ([]*models.Submission, error)
	ListGradeHistory(ctx context.Context, submissionID string) ([]*models.GradeRecord, error)
}

type AttendanceStore interface {
	CreateAttendance(ctx context.Context, a *models.Attendance) error
	ListAttendanceByEvent(ctx context.Context, eventID string) ([]*models.Attendance, error)
}

var (
	errEventNotFound      = apperrors.NewNotFound(apperrors.CodeEventNotFound, "Event not found")
	errTeamNotFound       = apperrors.NewNotFound(apperrors.CodeTeamNotFound, "Team not found")
	errUserNotFound       = apperrors.NewNotFound(apperrors.CodeUserNotFound, "User not found")
	errSubmissionNotFound = apperrors.NewNotFound(apperrors.CodeSubmissionNotFound, "Submission not found")
)

// lookupError maps a store miss to notFound and anything else to a server error
func lookupError(err error, notFound *apperrors.AppError) error {
	if errors.Is(err, database.ErrNotFound) {
		return notFound
	}
	return apperrors.NewServer(apperrors.CodeInternal, err)
}

func serverError(err error) error {
	return apperrors.NewServer(apperrors.CodeInternal, err)
}
