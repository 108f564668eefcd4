package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hackathon-club/app/models"
)

const submissionSelect = `
	SELECT s.id, s.event_id, s.team_id, s.project_title, s.description, s.repo_link,
	       s.demo_link, s.status, s.submitted_by, s.grade_score, s.grade_feedback,
	       s.graded_by, s.graded_at, s.submitted_at, s.updated_at,
	       COALESCE(t.name, ''), COALESCE(u.name, '')
	FROM submissions s
	LEFT JOIN teams t ON t.id = s.team_id
	LEFT JOIN users u ON u.id = s.submitted_by`

func scanSubmission(row interface{ Scan(...any) error }) (*models.Submission, error) {
	sub := &models.Submission{}
	var status string
	var score sql.NullInt64
	var feedback, gradedBy sql.NullString
	var gradedAt sql.NullInt64
	var submittedAt, updatedAt int64
	if err := row.Scan(
		&sub.ID, &sub.EventID, &sub.TeamID, &sub.ProjectTitle, &sub.Description, &sub.RepoLink,
		&sub.DemoLink, &status, &sub.SubmittedBy, &score, &feedback,
		&gradedBy, &gradedAt, &submittedAt, &updatedAt,
		&sub.TeamName, &sub.SubmitterName,
	); err != nil {
		return nil, err
	}
	sub.Status = models.SubmissionStatus(status)
	sub.SubmittedAt = fromMillis(submittedAt)
	sub.UpdatedAt = fromMillis(updatedAt)
	sub.Attachments = []models.Attachment{}
	if score.Valid {
		sub.Grade = &models.Grade{
			Score:    int(score.Int64),
			Feedback: feedback.String,
			GradedBy: gradedBy.String,
		}
		if gradedAt.Valid {
			sub.Grade.GradedAt = fromMillis(gradedAt.Int64)
		}
	}
	return sub, nil
}

// InsertSubmission stores a new submission with its attachments. The unique
// index on (event_id, team_id) turns a concurrent double submit into
// ErrAlreadyExists.
func (s *Store) InsertSubmission(ctx context.Context, sub *models.Submission) error {
	if sub.ID == "" {
		sub.ID = newID()
	}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := s.exec(ctx, tx, `
			INSERT INTO submissions (
				id, event_id, team_id, project_title, description, repo_link, demo_link,
				status, submitted_by, submitted_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sub.ID, sub.EventID, sub.TeamID, sub.ProjectTitle, sub.Description, sub.RepoLink, sub.DemoLink,
			string(sub.Status), sub.SubmittedBy, toMillis(sub.SubmittedAt), toMillis(sub.UpdatedAt),
		); err != nil {
			return err
		}
		return s.insertAttachments(ctx, tx, sub.ID, sub.Attachments)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

// FindSubmission returns the submission of a team for an event, or
// ErrNotFound when the team has not submitted yet.
func (s *Store) FindSubmission(ctx context.Context, eventID, teamID string) (*models.Submission, error) {
	return s.getSubmission(ctx, submissionSelect+` WHERE s.event_id = ? AND s.team_id = ?`, eventID, teamID)
}

// FindSubmissionByID returns ErrNotFound when no submission has the id
func (s *Store) FindSubmissionByID(ctx context.Context, id string) (*models.Submission, error) {
	return s.getSubmission(ctx, submissionSelect+` WHERE s.id = ?`, id)
}

func (s *Store) getSubmission(ctx context.Context, query string, args ...any) (*models.Submission, error) {
	sub, err := scanSubmission(s.queryRow(ctx, s.db, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get submission: %w", err)
	}
	if err := s.loadAttachments(ctx, []*models.Submission{sub}); err != nil {
		return nil, err
	}
	return sub, nil
}

// SaveSubmission writes the editable fields and replaces the attachment list
func (s *Store) SaveSubmission(ctx context.Context, sub *models.Submission) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := s.exec(ctx, tx, `
			UPDATE submissions
			SET project_title = ?, description = ?, repo_link = ?, demo_link = ?, status = ?, updated_at = ?
			WHERE id = ?`,
			sub.ProjectTitle, sub.Description, sub.RepoLink, sub.DemoLink,
			string(sub.Status), toMillis(sub.UpdatedAt), sub.ID,
		)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return ErrNotFound
		}
		if _, err := s.exec(ctx, tx, `DELETE FROM submission_attachments WHERE submission_id = ?`, sub.ID); err != nil {
			return err
		}
		return s.insertAttachments(ctx, tx, sub.ID, sub.Attachments)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("save submission: %w", err)
	}
	return nil
}

// RecordGrade sets the current grade and appends the grading history entry in
// one transaction.
func (s *Store) RecordGrade(ctx context.Context, sub *models.Submission) error {
	if sub.Grade == nil {
		return fmt.Errorf("record grade: submission %s has no grade", sub.ID)
	}
	g := sub.Grade
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := s.exec(ctx, tx, `
			UPDATE submissions
			SET grade_score = ?, grade_feedback = ?, graded_by = ?, graded_at = ?, status = ?, updated_at = ?
			WHERE id = ?`,
			g.Score, g.Feedback, g.GradedBy, toMillis(g.GradedAt), string(sub.Status), toMillis(sub.UpdatedAt), sub.ID,
		)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return ErrNotFound
		}
		_, err = s.exec(ctx, tx, `
			INSERT INTO grade_history (id, submission_id, score, feedback, graded_by, graded_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			newID(), sub.ID, g.Score, g.Feedback, g.GradedBy, toMillis(g.GradedAt),
		)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("record grade: %w", err)
	}
	return nil
}

// ListSubmissionsByEvent returns the event's submissions, most recent first,
// with team name and submitter name resolved.
func (s *Store) ListSubmissionsByEvent(ctx context.Context, eventID string) ([]*models.Submission, error) {
	rows, err := s.query(ctx, s.db, submissionSelect+`
		WHERE s.event_id = ?
		ORDER BY s.submitted_at DESC, s.id ASC`, eventID)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	subs := []*models.Submission{}
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := s.loadAttachments(ctx, subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// ListGradeHistory returns every grade recorded for a submission, oldest first
func (s *Store) ListGradeHistory(ctx context.Context, submissionID string) ([]*models.GradeRecord, error) {
	rows, err := s.query(ctx, s.db, `
		SELECT g.id, g.submission_id, g.score, g.feedback, g.graded_by, COALESCE(u.name, ''), g.graded_at
		FROM grade_history g
		LEFT JOIN users u ON u.id = g.graded_by
		WHERE g.submission_id = ?
		ORDER BY g.graded_at ASC, g.id ASC`, submissionID)
	if err != nil {
		return nil, fmt.Errorf("list grade history: %w", err)
	}
	defer rows.Close()

	records := []*models.GradeRecord{}
	for rows.Next() {
		r := &models.GradeRecord{}
		var gradedAt int64
		if err := rows.Scan(&r.ID, &r.SubmissionID, &r.Score, &r.Feedback, &r.GradedBy, &r.GraderName, &gradedAt); err != nil {
			return nil, fmt.Errorf("scan grade record: %w", err)
		}
		r.GradedAt = fromMillis(gradedAt)
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Store) insertAttachments(ctx context.Context, tx *sql.Tx, submissionID string, attachments []models.Attachment) error {
	for i, a := range attachments {
		if _, err := s.exec(ctx, tx, `
			INSERT INTO submission_attachments (submission_id, ord, name, url, type)
			VALUES (?, ?, ?, ?, ?)`,
			submissionID, i, a.Name, a.URL, a.Type,
		); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) loadAttachments(ctx context.Context, subs []*models.Submission) error {
	if len(subs) == 0 {
		return nil
	}
	byID := make(map[string]*models.Submission, len(subs))
	args := make([]any, 0, len(subs))
	for _, sub := range subs {
		byID[sub.ID] = sub
		args = append(args, sub.ID)
	}

	rows, err := s.query(ctx, s.db, `
		SELECT submission_id, name, url, type FROM submission_attachments
		WHERE submission_id IN (`+placeholders(len(args))+`)
		ORDER BY submission_id, ord`, args...)
	if err != nil {
		return fmt.Errorf("load attachments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var submissionID string
		var a models.Attachment
		if err := rows.Scan(&submissionID, &a.Name, &a.URL, &a.Type); err != nil {
			return fmt.Errorf("scan attachment: %w", err)
		}
		if sub, ok := byID[submissionID]; ok {
			sub.Attachments = append(sub.Attachments, a)
		}
	}
	return rows.Err()
}
