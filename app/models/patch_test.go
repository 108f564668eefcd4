package models

import (
	"encoding/json"
	"testing"
)

type samplePatch struct {
	Title    Field[string]       `json:"projectTitle"`
	DemoLink Field[string]       `json:"demoLink"`
	Files    Field[[]Attachment] `json:"attachments"`
}

func TestFieldDistinguishesOmittedFromNull(t *testing.T) {
	var p samplePatch
	if err := json.Unmarshal([]byte(`{"projectTitle":"Proj","demoLink":null}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !p.Title.Set || p.Title.Null || p.Title.Value != "Proj" {
		t.Errorf("title = %+v, want set to Proj", p.Title)
	}
	if !p.DemoLink.Set || !p.DemoLink.Null {
		t.Errorf("demoLink = %+v, want explicit null", p.DemoLink)
	}
	if p.Files.Set {
		t.Errorf("attachments = %+v, want omitted", p.Files)
	}
}

func TestFieldApply(t *testing.T) {
	if got := (Field[string]{}).Apply("old"); got != "old" {
		t.Errorf("omitted Apply = %q, want old", got)
	}
	if got := Some("new").Apply("old"); got != "new" {
		t.Errorf("set Apply = %q, want new", got)
	}
	if got := Null[string]().Apply("old"); got != "" {
		t.Errorf("null Apply = %q, want empty", got)
	}
}

func TestFieldRejectsWrongType(t *testing.T) {
	var p samplePatch
	if err := json.Unmarshal([]byte(`{"projectTitle":42}`), &p); err == nil {
		t.Error("expected error for numeric title")
	}
}

func TestRoleValid(t *testing.T) {
	for _, role := range AllRoles {
		if !role.Valid() {
			t.Errorf("role %q should be valid", role)
		}
	}
	if Role("superuser").Valid() {
		t.Error("unknown role should be invalid")
	}
}

func TestTeamHasMember(t *testing.T) {
	team := Team{LeaderID: "u1", Members: []string{"u1", "u2"}}
	if !team.HasMember("u2") {
		t.Error("u2 should be a member")
	}
	if team.HasMember("u3") {
		t.Error("u3 should not be a member")
	}
}
