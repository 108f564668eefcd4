package services

import (
	"testing"

	"hackathon-club/app/apperrors"
	"hackathon-club/app/models"
)

func TestTeamCreateAndJoin(t *testing.T) {
	f := newFixture(t)
	leader := f.user(t, "leader", models.RoleUser)
	member := f.user(t, "member", models.RoleUser)
	bystander := f.user(t, "bystander", models.RoleUser)
	event := f.event(t, leader, nil)

	team, err := f.teams.Create(f.ctx, leader, CreateTeamInput{Name: "  Code Warriors ", EventID: event.ID, ProjectIdea: "robots"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if team.Name != "Code Warriors" || team.LeaderID != leader.UserID {
		t.Fatalf("team = %+v", team)
	}
	if len(team.Members) != 1 || team.Members[0] != leader.UserID {
		t.Fatalf("members = %v, want [leader]", team.Members)
	}

	_, err = f.teams.Create(f.ctx, member, CreateTeamInput{Name: "Code Warriors", EventID: event.ID})
	expectKind(t, err, apperrors.KindConflict)
	_, err = f.teams.Create(f.ctx, member, CreateTeamInput{Name: "Other", EventID: "missing"})
	expectKind(t, err, apperrors.KindNotFound)
	_, err = f.teams.Create(f.ctx, member, CreateTeamInput{Name: " ", EventID: event.ID})
	expectKind(t, err, apperrors.KindValidation)

	joined, err := f.teams.Join(f.ctx, member, team.ID)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if !joined.HasMember(member.UserID) {
		t.Fatalf("members = %v", joined.Members)
	}
	_, err = f.teams.Join(f.ctx, member, team.ID)
	expectKind(t, err, apperrors.KindConflict)
	_, err = f.teams.Join(f.ctx, leader, team.ID)
	expectKind(t, err, apperrors.KindConflict)
	_, err = f.teams.Join(f.ctx, member, "missing")
	expectKind(t, err, apperrors.KindNotFound)

	mine, err := f.teams.Mine(f.ctx, member)
	if err != nil || len(mine) != 1 || mine[0].ID != team.ID {
		t.Fatalf("member teams = %v, %v", mine, err)
	}
	led, _ := f.teams.Mine(f.ctx, leader)
	if len(led) != 1 {
		t.Fatalf("leader teams = %d, want 1", len(led))
	}
	none, _ := f.teams.Mine(f.ctx, bystander)
	if len(none) != 0 {
		t.Fatalf("bystander teams = %d, want 0", len(none))
	}

	all, err := f.teams.List(f.ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("list = %v, %v", all, err)
	}
	if all[0].EventTitle != event.Title || all[0].LeaderName != "leader" {
		t.Fatalf("resolved = %q / %q", all[0].EventTitle, all[0].LeaderName)
	}
}
