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
)

type CreateTeamInput struct {
	Name        string `json:"name"`
	EventID     string `json:"event"`
	ProjectIdea string `json:"projectIdea"`
}

type TeamService struct {
	teams  TeamStore
	events EventStore
	now    func() time.Time
}

func NewTeamService(teams TeamStore, events EventStore) *TeamService {
	return &TeamService{teams: teams, events: events, now: time.Now}
}

// List returns all teams with event title and leader name
func (s *TeamService) List(ctx context.Context) ([]*models.Team, error) {
	teams, err := s.teams.ListTeams(ctx)
	if err != nil {
		return nil, serverError(err)
	}
	return teams, nil
}

// Mine returns the teams the actor leads or belongs to
func (s *TeamService) Mine(ctx context.Context, actor security.Principal) ([]*models.Team, error) {
	teams, err := s.teams.ListTeamsForUser(ctx, actor.UserID)
	if err != nil {
		return nil, serverError(err)
	}
	return teams, nil
}

// Create registers a team led by the actor, who also becomes its first member
func (s *TeamService) Create(ctx context.Context, actor security.Principal, in CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperrors.NewValidation(apperrors.CodeTeamInvalid, "Please add a team name")
	}
	eventID := strings.TrimSpace(in.EventID)
	if eventID == "" {
		return nil, apperrors.NewValidation(apperrors.CodeTeamInvalid, "Event is required")
	}

	event, err := s.events.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, lookupError(err, apperrors.NewNotFound(apperrors.CodeEventNotFound, "No event found with that ID"))
	}

	team := &models.Team{
		Name:        name,
		EventID:     event.ID,
		LeaderID:    actor.UserID,
		Members:     []string{actor.UserID},
		ProjectIdea: strings.TrimSpace(in.ProjectIdea),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.teams.CreateTeam(ctx, team); err != nil {
		if errors.Is(err, database.ErrAlreadyExists) {
			return nil, apperrors.NewConflict(apperrors.CodeTeamNameTaken, "Team name is already taken")
		}
		return nil, serverError(err)
	}
	team.EventTitle = event.Title
	team.LeaderName = actor.Name

	log.Printf("[teams] %s created team %q for event %s", actor.UserID, team.Name, event.ID)
	return team, nil
}

// Join appends the actor to a team's members
func (s *TeamService) Join(ctx context.Context, actor security.Principal, teamID string) (*models.Team, error) {
	team, err := s.teams.GetTeamByID(ctx, teamID)
	if err != nil {
		return nil, lookupError(err, errTeamNotFound)
	}
	if IsAuthorizedForTeam(team, actor.UserID) {
		return nil, errAlreadyMember()
	}

	if err := s.teams.AddTeamMember(ctx, team.ID, actor.UserID); err != nil {
		if errors.Is(err, database.ErrAlreadyExists) {
			return nil, errAlreadyMember()
		}
		return nil, lookupError(err, errTeamNotFound)
	}
	team.Members = append(team.Members, actor.UserID)
	return team, nil
}

func errAlreadyMember() error {
	return apperrors.NewConflict(apperrors.CodeTeamMember, "User already in team")
}
