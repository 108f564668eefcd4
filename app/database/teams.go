package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hackathon-club/app/models"
)

const teamSelect = `
	SELECT t.id, t.name, t.event_id, t.leader_id, t.project_idea, t.created_at,
	       COALESCE(e.title, ''), COALESCE(u.name, '')
	FROM teams t
	LEFT JOIN events e ON e.id = t.event_id
	LEFT JOIN users u ON u.id = t.leader_id`

func scanTeam(row interface{ Scan(...any) error }) (*models.Team, error) {
	team := &models.Team{}
	var createdAt int64
	if err := row.Scan(
		&team.ID, &team.Name, &team.EventID, &team.LeaderID, &team.ProjectIdea, &createdAt,
		&team.EventTitle, &team.LeaderName,
	); err != nil {
		return nil, err
	}
	team.CreatedAt = fromMillis(createdAt)
	team.Members = []string{}
	return team, nil
}

// CreateTeam inserts the team and its initial members in one transaction.
// A taken team name is reported as ErrAlreadyExists.
func (s *Store) CreateTeam(ctx context.Context, team *models.Team) error {
	if team.ID == "" {
		team.ID = newID()
	}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := s.exec(ctx, tx, `
			INSERT INTO teams (id, name, event_id, leader_id, project_idea, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			team.ID, team.Name, team.EventID, team.LeaderID, team.ProjectIdea, toMillis(team.CreatedAt),
		); err != nil {
			return err
		}
		for i, member := range team.Members {
			if _, err := s.exec(ctx, tx,
				`INSERT INTO team_members (team_id, user_id, ord) VALUES (?, ?, ?)`,
				team.ID, member, i,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("create team: %w", err)
	}
	return nil
}

// GetTeamByID returns the team with its ordered member list
func (s *Store) GetTeamByID(ctx context.Context, id string) (*models.Team, error) {
	row := s.queryRow(ctx, s.db, teamSelect+` WHERE t.id = ?`, id)
	team, err := scanTeam(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get team: %w", err)
	}
	if err := s.loadMembers(ctx, []*models.Team{team}); err != nil {
		return nil, err
	}
	return team, nil
}

// ListTeams returns every team with event title and leader name resolved
func (s *Store) ListTeams(ctx context.Context) ([]*models.Team, error) {
	return s.listTeams(ctx, teamSelect+` ORDER BY t.created_at ASC`)
}

// ListTeamsForUser returns teams the user leads or belongs to
func (s *Store) ListTeamsForUser(ctx context.Context, userID string) ([]*models.Team, error) {
	return s.listTeams(ctx, teamSelect+`
		WHERE t.leader_id = ?
		   OR EXISTS (SELECT 1 FROM team_members m WHERE m.team_id = t.id AND m.user_id = ?)
		ORDER BY t.created_at ASC`, userID, userID)
}

func (s *Store) listTeams(ctx context.Context, query string, args ...any) ([]*models.Team, error) {
	rows, err := s.query(ctx, s.db, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	teams := []*models.Team{}
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := s.loadMembers(ctx, teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// AddTeamMember appends userID to the member list. It returns
// ErrAlreadyExists when the user is already a member.
func (s *Store) AddTeamMember(ctx context.Context, teamID, userID string) error {
	// ord is computed in the same statement so the append stays ordered
	_, err := s.exec(ctx, s.db, `
		INSERT INTO team_members (team_id, user_id, ord)
		SELECT ?, ?, COALESCE(MAX(ord), -1) + 1 FROM team_members WHERE team_id = ?`,
		teamID, userID, teamID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("add team member: %w", err)
	}
	return nil
}

func (s *Store) loadMembers(ctx context.Context, teams []*models.Team) error {
	if len(teams) == 0 {
		return nil
	}
	byID := make(map[string]*models.Team, len(teams))
	args := make([]any, 0, len(teams))
	for _, team := range teams {
		byID[team.ID] = team
		args = append(args, team.ID)
	}

	rows, err := s.query(ctx, s.db, `
		SELECT team_id, user_id FROM team_members
		WHERE team_id IN (`+placeholders(len(args))+`)
		ORDER BY team_id, ord`, args...)
	if err != nil {
		return fmt.Errorf("load team members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var teamID, userID string
		if err := rows.Scan(&teamID, &userID); err != nil {
			return fmt.Errorf("scan team member: %w", err)
		}
		if team, ok := byID[teamID]; ok {
			team.Members = append(team.Members, userID)
		}
	}
	return rows.Err()
}
