package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"hackathon-club/app/models"
)

const userColumns = `id, name, email, password, firebase_uid, role, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	user := &models.User{}
	var firebaseUID sql.NullString
	var role string
	var createdAt, updatedAt int64
	if err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.Password, &firebaseUID,
		&role, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	user.FirebaseUID = firebaseUID.String
	user.Role = models.Role(role)
	user.CreatedAt = fromMillis(createdAt)
	user.UpdatedAt = fromMillis(updatedAt)
	return user, nil
}

// CreateUser inserts a user. The email is stored lowercased.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = newID()
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	_, err := s.exec(ctx, s.db, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, user.Password, nullString(user.FirebaseUID),
		string(user.Role), toMillis(user.CreatedAt), toMillis(user.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetUserByID returns ErrNotFound when no user has the id
func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	row := s.queryRow(ctx, s.db, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// GetUserByEmail matches case-insensitively
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	row := s.queryRow(ctx, s.db, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

// UpdateUserPassword replaces the stored password hash
func (s *Store) UpdateUserPassword(ctx context.Context, user *models.User) error {
	return s.updateUser(ctx, `UPDATE users SET password = ?, updated_at = ? WHERE id = ?`,
		user.Password, toMillis(user.UpdatedAt), user.ID)
}

// UpdateUserRole replaces the stored role
func (s *Store) UpdateUserRole(ctx context.Context, user *models.User) error {
	return s.updateUser(ctx, `UPDATE users SET role = ?, updated_at = ? WHERE id = ?`,
		string(user.Role), toMillis(user.UpdatedAt), user.ID)
}

// LinkFirebaseUID attaches a Firebase account to an existing user
func (s *Store) LinkFirebaseUID(ctx context.Context, user *models.User) error {
	return s.updateUser(ctx, `UPDATE users SET firebase_uid = ?, updated_at = ? WHERE id = ?`,
		nullString(user.FirebaseUID), toMillis(user.UpdatedAt), user.ID)
}

func (s *Store) updateUser(ctx context.Context, query string, args ...any) error {
	res, err := s.exec(ctx, s.db, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
