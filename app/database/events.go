package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hackathon-club/app/models"
)

const eventColumns = `id, title, description, date, end_date, image, type, status, created_by, created_at`

func scanEvent(row interface{ Scan(...any) error }) (*models.Event, error) {
	e := &models.Event{}
	var date, createdAt int64
	var endDate sql.NullInt64
	var eventType, status string
	if err := row.Scan(
		&e.ID, &e.Title, &e.Description, &date, &endDate,
		&e.Image, &eventType, &status, &e.CreatedBy, &createdAt,
	); err != nil {
		return nil, err
	}
	e.Date = fromMillis(date)
	e.EndDate = fromNullMillis(endDate)
	e.Type = models.EventType(eventType)
	e.Status = models.EventStatus(status)
	e.CreatedAt = fromMillis(createdAt)
	return e, nil
}

// CreateEvent adds a new event to the database
func (s *Store) CreateEvent(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = newID()
	}
	_, err := s.exec(ctx, s.db, `
		INSERT INTO events (`+eventColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.Title, event.Description, toMillis(event.Date), nullMillis(event.EndDate),
		event.Image, string(event.Type), string(event.Status), event.CreatedBy, toMillis(event.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// GetEventByID returns ErrNotFound when the event does not exist
func (s *Store) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	row := s.queryRow(ctx, s.db, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// ListEvents retrieves all events ordered by date
func (s *Store) ListEvents(ctx context.Context) ([]*models.Event, error) {
	rows, err := s.query(ctx, s.db, `SELECT `+eventColumns+` FROM events ORDER BY date ASC, created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := []*models.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// UpdateEvent overwrites every mutable column of an existing event
func (s *Store) UpdateEvent(ctx context.Context, event *models.Event) error {
	res, err := s.exec(ctx, s.db, `
		UPDATE events
		SET title = ?, description = ?, date = ?, end_date = ?, image = ?, type = ?, status = ?
		WHERE id = ?`,
		event.Title, event.Description, toMillis(event.Date), nullMillis(event.EndDate),
		event.Image, string(event.Type), string(event.Status), event.ID,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteEvent deletes an event and, through cascading keys, its teams,
// submissions and attendance.
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	res, err := s.exec(ctx, s.db, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// AdvanceEventStatuses opens events whose date has arrived and ends events
// whose end date has passed. It returns the number of events changed.
func (s *Store) AdvanceEventStatuses(ctx context.Context, now time.Time) (int64, error) {
	nowMillis := toMillis(now)
	var total int64

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := s.exec(ctx, tx, `
			UPDATE events SET status = ?
			WHERE status <> ? AND end_date IS NOT NULL AND end_date < ?`,
			string(models.EventEnded), string(models.EventEnded), nowMillis,
		)
		if err != nil {
			return err
		}
		ended, _ := res.RowsAffected()

		res, err = s.exec(ctx, tx, `
			UPDATE events SET status = ?
			WHERE status = ? AND date <= ? AND (end_date IS NULL OR end_date >= ?)`,
			string(models.EventOpen), string(models.EventUpcoming), nowMillis, nowMillis,
		)
		if err != nil {
			return err
		}
		opened, _ := res.RowsAffected()

		total = ended + opened
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("advance event statuses: %w", err)
	}
	return total, nil
}
