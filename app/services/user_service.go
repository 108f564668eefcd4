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
	"hackathon-club/app/utils"
)

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// AuthResult is returned by every sign-in path
type AuthResult struct {
	ID    string      `json:"_id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
	Token string      `json:"token"`
}

type UserService struct {
	users       UserStore
	hasher      *security.PasswordHasher
	tokens      *security.TokenIssuer
	verifier    security.IDTokenVerifier
	adminEmails map[string]bool
	now         func() time.Time
}

func NewUserService(users UserStore, hasher *security.PasswordHasher, tokens *security.TokenIssuer, verifier security.IDTokenVerifier, adminEmails []string) *UserService {
	admins := make(map[string]bool, len(adminEmails))
	for _, email := range adminEmails {
		if email = utils.NormalizeEmail(email); email != "" {
			admins[email] = true
		}
	}
	return &UserService{
		users:       users,
		hasher:      hasher,
		tokens:      tokens,
		verifier:    verifier,
		adminEmails: admins,
		now:         time.Now,
	}
}

// Register creates a password account with the user role
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := utils.NormalizeEmail(in.Email)
	if name == "" {
		return nil, apperrors.NewValidation(apperrors.CodeUserInvalid, "Please add a name")
	}
	if !utils.IsValidEmail(email) {
		return nil, apperrors.NewValidation(apperrors.CodeUserInvalid, "Please add a valid email")
	}
	if !utils.IsValidPassword(in.Password) {
		return nil, apperrors.NewValidation(apperrors.CodeUserInvalid, "Password must be at least 6 characters with letters and numbers")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, serverError(err)
	}
	now := s.now().UTC()
	user := &models.User{
		Name:      name,
		Email:     email,
		Password:  hash,
		Role:      models.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, database.ErrAlreadyExists) {
			return nil, apperrors.NewConflict(apperrors.CodeUserExists, "User already exists")
		}
		return nil, serverError(err)
	}

	log.Printf("[auth] registered %s", user.ID)
	return s.authResult(user)
}

func (s *UserService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	user, err := s.users.GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, errBadCredentials()
		}
		return nil, serverError(err)
	}
	if !s.hasher.Compare(user.Password, in.Password) {
		return nil, errBadCredentials()
	}
	return s.authResult(user)
}

// GoogleSignIn verifies a Firebase ID token and signs in the matching
// account, creating it on first use. Configured admin emails are promoted.
func (s *UserService) GoogleSignIn(ctx context.Context, idToken string) (*AuthResult, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, apperrors.NewValidation(apperrors.CodeInvalidRequest, "idToken is required")
	}
	identity, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		if errors.Is(err, security.ErrFirebaseDisabled) {
			return nil, apperrors.NewUnavailable(apperrors.CodeFirebaseDisabled, "Google sign-in is not available", err)
		}
		log.Printf("[auth] google token rejected: %v", err)
		return nil, apperrors.NewUnauthorized(apperrors.CodeInvalidToken, "Google authentication failed")
	}
	email := utils.NormalizeEmail(identity.Email)
	if email == "" {
		return nil, apperrors.NewUnauthorized(apperrors.CodeInvalidToken, "Google account has no email")
	}

	now := s.now().UTC()
	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, database.ErrNotFound) {
		var created bool
		user, created, err = s.createGoogleUser(ctx, identity, email, now)
		if err != nil {
			return nil, err
		}
		if created {
			return s.authResult(user)
		}
	} else if err != nil {
		return nil, serverError(err)
	}

	if user.FirebaseUID == "" {
		user.FirebaseUID = identity.UID
		user.UpdatedAt = now
		if err := s.users.LinkFirebaseUID(ctx, user); err != nil {
			if errors.Is(err, database.ErrAlreadyExists) {
				return nil, errGoogleLinked()
			}
			return nil, serverError(err)
		}
	}
	if s.adminEmails[email] && user.Role != models.RoleAdmin {
		user.Role = models.RoleAdmin
		user.UpdatedAt = now
		if err := s.users.UpdateUserRole(ctx, user); err != nil {
			return nil, serverError(err)
		}
		log.Printf("[auth] promoted %s to admin", user.ID)
	}

	return s.authResult(user)
}

// createGoogleUser inserts the account for a first Google sign-in. When a
// concurrent sign-in created it first, the stored account is returned with
// created false.
func (s *UserService) createGoogleUser(ctx context.Context, identity *security.Identity, email string, now time.Time) (*models.User, bool, error) {
	name := strings.TrimSpace(identity.Name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	user := &models.User{
		Name:        name,
		Email:       email,
		FirebaseUID: identity.UID,
		Role:        models.RoleUser,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if s.adminEmails[email] {
		user.Role = models.RoleAdmin
	}

	err := s.users.CreateUser(ctx, user)
	switch {
	case err == nil:
		log.Printf("[auth] created %s from google sign-in", user.ID)
		return user, true, nil
	case !errors.Is(err, database.ErrAlreadyExists):
		return nil, false, serverError(err)
	}

	existing, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			// the email is free, so the firebase uid belongs to another account
			return nil, false, errGoogleLinked()
		}
		return nil, false, serverError(err)
	}
	return existing, false, nil
}

func errGoogleLinked() error {
	return apperrors.NewConflict(apperrors.CodeUserExists, "Google account is linked to another user")
}

// Authenticate resolves a session token to the caller. The role is read
// from the stored account so role changes apply without a new token.
func (s *UserService) Authenticate(ctx context.Context, token string) (security.Principal, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return security.Principal{}, apperrors.NewUnauthorized(apperrors.CodeInvalidToken, "Not authorized, token failed")
	}
	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return security.Principal{}, apperrors.NewUnauthorized(apperrors.CodeInvalidToken, "Not authorized, user not found")
		}
		return security.Principal{}, serverError(err)
	}
	return principalOf(user), nil
}

func (s *UserService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, lookupError(err, errUserNotFound)
	}
	return user, nil
}

// ChangePassword requires the current password unless the account was
// created through Google sign-in and has none.
func (s *UserService) ChangePassword(ctx context.Context, actor security.Principal, in ChangePasswordInput) error {
	user, err := s.users.GetUserByID(ctx, actor.UserID)
	if err != nil {
		return lookupError(err, errUserNotFound)
	}
	if user.HasPassword() && !s.hasher.Compare(user.Password, in.CurrentPassword) {
		return apperrors.NewUnauthorized(apperrors.CodeBadCredentials, "Current password is incorrect")
	}
	if !utils.IsValidPassword(in.NewPassword) {
		return apperrors.NewValidation(apperrors.CodeUserInvalid, "Password must be at least 6 characters with letters and numbers")
	}

	hash, err := s.hasher.Hash(in.NewPassword)
	if err != nil {
		return serverError(err)
	}
	user.Password = hash
	user.UpdatedAt = s.now().UTC()
	if err := s.users.UpdateUserPassword(ctx, user); err != nil {
		return lookupError(err, errUserNotFound)
	}
	return nil
}

// SetRole assigns a role to a user. Capability checks happen before this is
// called.
func (s *UserService) SetRole(ctx context.Context, userID string, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidation(apperrors.CodeUserInvalid, "Unknown role")
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, lookupError(err, errUserNotFound)
	}
	user.Role = role
	user.UpdatedAt = s.now().UTC()
	if err := s.users.UpdateUserRole(ctx, user); err != nil {
		return nil, lookupError(err, errUserNotFound)
	}
	log.Printf("[auth] %s is now %s", user.ID, role)
	return user, nil
}

// TokenTTL is the lifetime of issued session tokens
func (s *UserService) TokenTTL() time.Duration {
	return s.tokens.TTL()
}

func (s *UserService) authResult(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, serverError(err)
	}
	return &AuthResult{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		Token: token,
	}, nil
}

func principalOf(user *models.User) security.Principal {
	return security.Principal{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	}
}

func errBadCredentials() error {
	return apperrors.NewUnauthorized(apperrors.CodeBadCredentials, "Invalid credentials")
}
