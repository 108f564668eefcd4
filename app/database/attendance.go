package database

import (
	"context"
	"fmt"

	"hackathon-club/app/models"
)

// CreateAttendance records attendance once per (event, user). A second mark
// for the same pair is reported as ErrAlreadyExists.
func (s *Store) CreateAttendance(ctx context.Context, a *models.Attendance) error {
	if a.ID == "" {
		a.ID = newID()
	}
	_, err := s.exec(ctx, s.db, `
		INSERT INTO attendance (id, event_id, user_id, status, marked_at)
		VALUES (?, ?, ?, ?, ?)`,
		a.ID, a.EventID, a.UserID, string(a.Status), toMillis(a.MarkedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("create attendance: %w", err)
	}
	return nil
}

// ListAttendanceByEvent returns the event's attendance with user name and
// email, most recently marked first.
func (s *Store) ListAttendanceByEvent(ctx context.Context, eventID string) ([]*models.Attendance, error) {
	rows, err := s.query(ctx, s.db, `
		SELECT a.id, a.event_id, a.user_id, a.status, a.marked_at,
		       COALESCE(u.name, ''), COALESCE(u.email, '')
		FROM attendance a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.event_id = ?
		ORDER BY a.marked_at DESC, a.id ASC`, eventID)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()

	records := []*models.Attendance{}
	for rows.Next() {
		a := &models.Attendance{}
		var status string
		var markedAt int64
		if err := rows.Scan(&a.ID, &a.EventID, &a.UserID, &status, &markedAt, &a.UserName, &a.UserEmail); err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		a.Status = models.AttendanceStatus(status)
		a.MarkedAt = fromMillis(markedAt)
		records = append(records, a)
	}
	return records, rows.Err()
}
