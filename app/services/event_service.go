package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"hackathon-club/app/apperrors"
	"hackathon-club/app/database"
	"hackathon-club/app/models"
	"hackathon-club/app/security"
)

const (
	maxEventTitle       = 100
	maxEventDescription = 500
)

type EventInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date"`
	EndDate     *time.Time `json:"endDate"`
	Image       string     `json:"image"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
}

type EventPatch struct {
	Title       models.Field[string]     `json:"title"`
	Description models.Field[string]     `json:"description"`
	Date        models.Field[time.Time]  `json:"date"`
	EndDate     models.Field[*time.Time] `json:"endDate"`
	Image       models.Field[string]     `json:"image"`
	Type        models.Field[string]     `json:"type"`
	Status      models.Field[string]     `json:"status"`
}

type EventService struct {
	events EventStore
	now    func() time.Time
}

func NewEventService(events EventStore) *EventService {
	return &EventService{events: events, now: time.Now}
}

// List returns every event, soonest first
func (s *EventService) List(ctx context.Context) ([]*models.Event, error) {
	events, err := s.events.ListEvents(ctx)
	if err != nil {
		return nil, serverError(err)
	}
	return events, nil
}

func (s *EventService) Get(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.events.GetEventByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, errEventNotFound)
	}
	return event, nil
}

func (s *EventService) Create(ctx context.Context, actor security.Principal, in EventInput) (*models.Event, error) {
	event := &models.Event{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		EndDate:     eventTimePtr(in.EndDate),
		Image:       strings.TrimSpace(in.Image),
		Type:        models.EventType(strings.TrimSpace(in.Type)),
		Status:      models.EventStatus(strings.TrimSpace(in.Status)),
		CreatedBy:   actor.UserID,
		CreatedAt:   s.now().UTC(),
	}
	if in.Date == nil {
		return nil, apperrors.NewValidation(apperrors.CodeEventInvalid, "Please add a date")
	}
	event.Date = eventTime(*in.Date)
	applyEventDefaults(event)
	if err := validateEvent(event); err != nil {
		return nil, err
	}

	if err := s.events.CreateEvent(ctx, event); err != nil {
		return nil, serverError(err)
	}
	log.Printf("[events] %s created %q (%s)", actor.UserID, event.Title, event.ID)
	return event, nil
}

func (s *EventService) Update(ctx context.Context, id string, patch EventPatch) (*models.Event, error) {
	event, err := s.events.GetEventByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, errEventNotFound)
	}

	if patch.Title.Set {
		event.Title = strings.TrimSpace(patch.Title.Value)
	}
	if patch.Description.Set {
		event.Description = strings.TrimSpace(patch.Description.Value)
	}
	if patch.Date.Set {
		if patch.Date.Null {
			return nil, apperrors.NewValidation(apperrors.CodeEventInvalid, "Please add a date")
		}
		event.Date = eventTime(patch.Date.Value)
	}
	event.EndDate = eventTimePtr(patch.EndDate.Apply(event.EndDate))
	event.Image = strings.TrimSpace(patch.Image.Apply(event.Image))
	if patch.Type.Set {
		event.Type = models.EventType(strings.TrimSpace(patch.Type.Value))
	}
	if patch.Status.Set {
		event.Status = models.EventStatus(strings.TrimSpace(patch.Status.Value))
	}
	applyEventDefaults(event)
	if err := validateEvent(event); err != nil {
		return nil, err
	}

	if err := s.events.UpdateEvent(ctx, event); err != nil {
		return nil, lookupError(err, errEventNotFound)
	}
	return event, nil
}

// eventTime matches the millisecond precision dates are stored at, so the
// value returned to clients is the one the deadline gate compares against.
func eventTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

func eventTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := eventTime(*t)
	return &v
}

// Delete removes an event together with its teams, submissions and
// attendance.
func (s *EventService) Delete(ctx context.Context, id string) error {
	if err := s.events.DeleteEvent(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return errEventNotFound
		}
		return serverError(err)
	}
	log.Printf("[events] deleted %s", id)
	return nil
}

func applyEventDefaults(e *models.Event) {
	if e.Image == "" {
		e.Image = models.DefaultEventImage
	}
	if e.Type == "" {
		e.Type = models.EventTeam
	}
	if e.Status == "" {
		e.Status = models.EventUpcoming
	}
}

func validateEvent(e *models.Event) error {
	switch {
	case e.Title == "":
		return apperrors.NewValidation(apperrors.CodeEventInvalid, "Please add an event title")
	case utf8.RuneCountInString(e.Title) > maxEventTitle:
		return apperrors.NewValidation(apperrors.CodeEventInvalid, "Title cannot be more than 100 characters")
	case e.Description == "":
		return apperrors.NewValidation(apperrors.CodeEventInvalid, "Please add a description")
	case utf8.RuneCountInString(e.Description) > maxEventDescription:
		return apperrors.NewValidation(apperrors.CodeEventInvalid, "Description cannot be more than 500 characters")
	case e.Date.IsZero():
		return apperrors.NewValidation(apperrors.CodeEventInvalid, "Please add a date")
	case e.EndDate != nil && e.EndDate.Before(e.Date):
		return apperrors.NewValidation(apperrors.CodeEventInvalid, "End date cannot be before the start date")
	case !e.Type.Valid():
		return apperrors.NewValidation(apperrors.CodeEventInvalid, "Type must be Team or Individual")
	case !e.Status.Valid():
		return apperrors.NewValidation(apperrors.CodeEventInvalid, "Status must be Upcoming, Open or Ended")
	}
	return nil
}
