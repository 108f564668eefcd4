package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"time"

	"hackathon-club/app/apperrors"
	"hackathon-club/app/database"
	"hackathon-club/app/models"
)

// CSVTimeLayout is how marked times are written in attendance exports
const CSVTimeLayout = "2006-01-02 15:04:05"

type MarkAttendanceInput struct {
	EventID string `json:"eventId"`
	UserID  string `json:"userId"`
	Status  string `json:"status"`
}

type AttendanceService struct {
	attendance AttendanceStore
	events     EventStore
	users      UserStore
	loc        *time.Location
	now        func() time.Time
}

// NewAttendanceService renders export times in loc, or UTC when loc is nil
func NewAttendanceService(attendance AttendanceStore, events EventStore, users UserStore, loc *time.Location) *AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceService{
		attendance: attendance,
		events:     events,
		users:      users,
		loc:        loc,
		now:        time.Now,
	}
}

// Mark records one attendance entry per (event, user)
func (s *AttendanceService) Mark(ctx context.Context, in MarkAttendanceInput) (*models.Attendance, error) {
	status := models.AttendanceStatus(strings.ToLower(strings.TrimSpace(in.Status)))
	if status == "" {
		status = models.Present
	}
	if !status.Valid() {
		return nil, apperrors.NewValidation(apperrors.CodeAttendanceInvalid, "Status must be present or absent")
	}
	if strings.TrimSpace(in.UserID) == "" {
		return nil, apperrors.NewValidation(apperrors.CodeAttendanceInvalid, "User is required")
	}

	event, err := s.events.GetEventByID(ctx, in.EventID)
	if err != nil {
		return nil, lookupError(err, errEventNotFound)
	}
	user, err := s.users.GetUserByID(ctx, in.UserID)
	if err != nil {
		return nil, lookupError(err, errUserNotFound)
	}

	record := &models.Attendance{
		EventID:   event.ID,
		UserID:    user.ID,
		Status:    status,
		MarkedAt:  s.now().UTC(),
		UserName:  user.Name,
		UserEmail: user.Email,
	}
	if err := s.attendance.CreateAttendance(ctx, record); err != nil {
		if errors.Is(err, database.ErrAlreadyExists) {
			return nil, apperrors.NewConflict(apperrors.CodeAttendanceDuplicate, "Attendance already marked for this user")
		}
		return nil, serverError(err)
	}
	return record, nil
}

// ForEvent lists an event's attendance, most recently marked first
func (s *AttendanceService) ForEvent(ctx context.Context, eventID string) ([]*models.Attendance, error) {
	records, err := s.attendance.ListAttendanceByEvent(ctx, eventID)
	if err != nil {
		return nil, serverError(err)
	}
	return records, nil
}

// ExportCSV renders an event's attendance with a Name,Email,Status,Time header
func (s *AttendanceService) ExportCSV(ctx context.Context, eventID string) ([]byte, error) {
	records, err := s.ForEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Name", "Email", "Status", "Time"}); err != nil {
		return nil, serverError(err)
	}
	for _, r := range records {
		name := r.UserName
		if name == "" {
			name = "Unknown"
		}
		email := r.UserEmail
		if email == "" {
			email = "N/A"
		}
		if err := w.Write([]string{name, email, string(r.Status), r.MarkedAt.In(s.loc).Format(CSVTimeLayout)}); err != nil {
			return nil, serverError(err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, serverError(err)
	}
	return buf.Bytes(), nil
}

// ExportFilename is the attachment name offered for an event's CSV
func ExportFilename(eventID string) string {
	return "attendance-" + eventID + ".csv"
}
