package services

import (
	"strings"
	"testing"
	"time"

	"hackathon-club/app/apperrors"
	"hackathon-club/app/models"
)

func TestMarkAttendance(t *testing.T) {
	f := newFixture(t)
	admin := f.user(t, "admin", models.RoleAdmin)
	grace := f.user(t, "grace", models.RoleUser)
	event := f.event(t, admin, nil)

	record, err := f.attendance.Mark(f.ctx, MarkAttendanceInput{EventID: event.ID, UserID: grace.UserID})
	if err != nil {
		t.Fatalf("mark: %v", err)
	}
	if record.Status != models.Present {
		t.Fatalf("status = %q, want present by default", record.Status)
	}

	_, err = f.attendance.Mark(f.ctx, MarkAttendanceInput{EventID: event.ID, UserID: grace.UserID, Status: "absent"})
	expectKind(t, err, apperrors.KindConflict)
	_, err = f.attendance.Mark(f.ctx, MarkAttendanceInput{EventID: "missing", UserID: grace.UserID})
	expectKind(t, err, apperrors.KindNotFound)
	_, err = f.attendance.Mark(f.ctx, MarkAttendanceInput{EventID: event.ID, UserID: "missing"})
	expectKind(t, err, apperrors.KindNotFound)
	_, err = f.attendance.Mark(f.ctx, MarkAttendanceInput{EventID: event.ID, UserID: admin.UserID, Status: "late"})
	expectKind(t, err, apperrors.KindValidation)
}

func TestExportAttendanceCSV(t *testing.T) {
	f := newFixture(t)
	admin := f.user(t, "admin", models.RoleAdmin)
	grace := f.user(t, "grace", models.RoleUser)
	event := f.event(t, admin, nil)

	if _, err := f.attendance.Mark(f.ctx, MarkAttendanceInput{EventID: event.ID, UserID: grace.UserID}); err != nil {
		t.Fatalf("mark grace: %v", err)
	}
	f.clock.Advance(time.Minute)
	if _, err := f.attendance.Mark(f.ctx, MarkAttendanceInput{EventID: event.ID, UserID: admin.UserID, Status: "Absent"}); err != nil {
		t.Fatalf("mark admin: %v", err)
	}

	out, err := f.attendance.ExportCSV(f.ctx, event.ID)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	want := []string{
		"Name,Email,Status,Time",
		"admin,admin@club.dev,absent,2026-03-14 09:01:00",
		"grace,grace@club.dev,present,2026-03-14 09:00:00",
	}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}

	if got := ExportFilename(event.ID); got != "attendance-"+event.ID+".csv" {
		t.Fatalf("filename = %q", got)
	}
}
