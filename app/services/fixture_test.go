package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"hackathon-club/app/config"
	"hackathon-club/app/database"
	"hackathon-club/app/models"
	"hackathon-club/app/security"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type fixture struct {
	ctx         context.Context
	clock       *fakeClock
	store       *database.Store
	tokens      *security.TokenIssuer
	submissions *SubmissionService
	teams       *TeamService
	events      *EventService
	attendance  *AttendanceService
	users       *UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := config.OpenDB(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		URL:    filepath.Join(t.TempDir(), "services.db"),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	store := database.New(db, config.DriverSQLite)
	t.Cleanup(func() { _ = store.Close() })
	if err := store.RunMigrations(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	clock := &fakeClock{now: time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)}
	tokens := security.NewTokenIssuer("test-secret", "hackathon-club", 24*time.Hour)

	f := &fixture{
		ctx:         context.Background(),
		clock:       clock,
		store:       store,
		tokens:      tokens,
		submissions: NewSubmissionService(store, store, store),
		teams:       NewTeamService(store, store),
		events:      NewEventService(store),
		attendance:  NewAttendanceService(store, store, store, time.UTC),
		users: NewUserService(store, security.NewPasswordHasher(4), tokens,
			&stubVerifier{}, []string{"chair@club.dev"}),
	}
	f.submissions.now = clock.Now
	f.teams.now = clock.Now
	f.events.now = clock.Now
	f.attendance.now = clock.Now
	f.users.now = clock.Now
	return f
}

func (f *fixture) user(t *testing.T, name string, role models.Role) security.Principal {
	t.Helper()
	u := &models.User{
		Name:      name,
		Email:     name + "@club.dev",
		Role:      role,
		CreatedAt: f.clock.Now(),
		UpdatedAt: f.clock.Now(),
	}
	if err := f.store.CreateUser(f.ctx, u); err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return principalOf(u)
}

func (f *fixture) event(t *testing.T, creator security.Principal, endDate *time.Time) *models.Event {
	t.Helper()
	date := f.clock.Now().Add(-time.Hour)
	event, err := f.events.Create(f.ctx, creator, EventInput{
		Title:       "Spring Hack",
		Description: "48 hours of building",
		Date:        &date,
		EndDate:     endDate,
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	return event
}

func (f *fixture) team(t *testing.T, leader security.Principal, event *models.Event, name string, members ...security.Principal) *models.Team {
	t.Helper()
	team, err := f.teams.Create(f.ctx, leader, CreateTeamInput{Name: name, EventID: event.ID})
	if err != nil {
		t.Fatalf("create team %s: %v", name, err)
	}
	for _, m := range members {
		if team, err = f.teams.Join(f.ctx, m, team.ID); err != nil {
			t.Fatalf("join team %s: %v", name, err)
		}
	}
	return team
}

type stubVerifier struct {
	identity *security.Identity
	err      error
}

func (s *stubVerifier) Verify(context.Context, string) (*security.Identity, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.identity == nil {
		return nil, security.ErrFirebaseDisabled
	}
	return s.identity, nil
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func intPtr(v int) *int {
	return &v
}
