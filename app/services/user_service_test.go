package services

import (
	"context"
	"errors"
	"testing"

	"hackathon-club/app/apperrors"
	"hackathon-club/app/database"
	"hackathon-club/app/models"
	"hackathon-club/app/security"
)

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)

	res, err := f.users.Register(f.ctx, RegisterInput{Name: "Ada", Email: " Ada@Club.dev ", Password: "abc123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if res.Email != "ada@club.dev" || res.Role != models.RoleUser || res.Token == "" {
		t.Fatalf("register result = %+v", res)
	}

	cases := map[string]RegisterInput{
		"bad email":      {Name: "B", Email: "not-an-email", Password: "abc123"},
		"weak password":  {Name: "B", Email: "b@club.dev", Password: "abcdef"},
		"short password": {Name: "B", Email: "b@club.dev", Password: "a1"},
		"missing name":   {Email: "b@club.dev", Password: "abc123"},
	}
	for name, in := range cases {
		if _, err := f.users.Register(f.ctx, in); !apperrors.Is(err, apperrors.KindValidation) {
			t.Errorf("%s: error = %v, want validation", name, err)
		}
	}
	_, err = f.users.Register(f.ctx, RegisterInput{Name: "Ada", Email: "ada@club.dev", Password: "abc123"})
	expectKind(t, err, apperrors.KindConflict)

	login, err := f.users.Login(f.ctx, LoginInput{Email: "ADA@club.dev", Password: "abc123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.ID != res.ID {
		t.Fatalf("login id = %q, want %q", login.ID, res.ID)
	}
	_, err = f.users.Login(f.ctx, LoginInput{Email: "ada@club.dev", Password: "wrong1"})
	expectKind(t, err, apperrors.KindUnauthorized)
	_, err = f.users.Login(f.ctx, LoginInput{Email: "nobody@club.dev", Password: "abc123"})
	expectKind(t, err, apperrors.KindUnauthorized)

	p, err := f.users.Authenticate(f.ctx, login.Token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if p.UserID != res.ID || p.Role != models.RoleUser {
		t.Fatalf("principal = %+v", p)
	}
	_, err = f.users.Authenticate(f.ctx, "garbage")
	expectKind(t, err, apperrors.KindUnauthorized)
}

func TestAuthenticateReadsCurrentRole(t *testing.T) {
	f := newFixture(t)
	res, err := f.users.Register(f.ctx, RegisterInput{Name: "Judy", Email: "judy@club.dev", Password: "abc123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := f.users.SetRole(f.ctx, res.ID, models.RoleJudge); err != nil {
		t.Fatalf("set role: %v", err)
	}
	p, err := f.users.Authenticate(f.ctx, res.Token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if p.Role != models.RoleJudge {
		t.Fatalf("role = %q, want judge", p.Role)
	}

	_, err = f.users.SetRole(f.ctx, res.ID, models.Role("overlord"))
	expectKind(t, err, apperrors.KindValidation)
	_, err = f.users.SetRole(f.ctx, "missing", models.RoleAdmin)
	expectKind(t, err, apperrors.KindNotFound)
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	res, _ := f.users.Register(f.ctx, RegisterInput{Name: "Ada", Email: "ada@club.dev", Password: "abc123"})
	actor := security.Principal{UserID: res.ID}

	err := f.users.ChangePassword(f.ctx, actor, ChangePasswordInput{CurrentPassword: "nope12", NewPassword: "xyz789"})
	expectKind(t, err, apperrors.KindUnauthorized)
	err = f.users.ChangePassword(f.ctx, actor, ChangePasswordInput{CurrentPassword: "abc123", NewPassword: "short"})
	expectKind(t, err, apperrors.KindValidation)

	if err := f.users.ChangePassword(f.ctx, actor, ChangePasswordInput{CurrentPassword: "abc123", NewPassword: "xyz789"}); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, err := f.users.Login(f.ctx, LoginInput{Email: "ada@club.dev", Password: "xyz789"}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestGoogleSignIn(t *testing.T) {
	f := newFixture(t)
	verifier := &stubVerifier{}
	f.users.verifier = verifier

	_, err := f.users.GoogleSignIn(f.ctx, "token")
	expectKind(t, err, apperrors.KindUnavailable)

	verifier.identity = &security.Identity{UID: "fb-1", Email: "grace@club.dev", Name: ""}
	res, err := f.users.GoogleSignIn(f.ctx, "token")
	if err != nil {
		t.Fatalf("google sign-in: %v", err)
	}
	if res.Name != "grace" || res.Role != models.RoleUser {
		t.Fatalf("created = %+v", res)
	}
	again, err := f.users.GoogleSignIn(f.ctx, "token")
	if err != nil || again.ID != res.ID {
		t.Fatalf("second sign-in = %+v, %v", again, err)
	}
	user, _ := f.users.Me(f.ctx, res.ID)
	if user.FirebaseUID != "fb-1" || user.HasPassword() {
		t.Fatalf("stored user = %+v", user)
	}
	_, err = f.users.Login(f.ctx, LoginInput{Email: "grace@club.dev", Password: ""})
	expectKind(t, err, apperrors.KindUnauthorized)

	verifier.identity = &security.Identity{UID: "fb-2", Email: "Chair@club.dev", Name: "Chair"}
	chair, err := f.users.GoogleSignIn(f.ctx, "token")
	if err != nil {
		t.Fatalf("admin sign-in: %v", err)
	}
	if chair.Role != models.RoleAdmin {
		t.Fatalf("configured admin role = %q", chair.Role)
	}

	verifier.err = errors.New("token expired")
	_, err = f.users.GoogleSignIn(f.ctx, "token")
	expectKind(t, err, apperrors.KindUnauthorized)
	_, err = f.users.GoogleSignIn(f.ctx, " ")
	expectKind(t, err, apperrors.KindValidation)
}

func TestGoogleSignInPromotesExistingAdmin(t *testing.T) {
	f := newFixture(t)
	res, _ := f.users.Register(f.ctx, RegisterInput{Name: "Chair", Email: "chair@club.dev", Password: "abc123"})
	f.users.verifier = &stubVerifier{identity: &security.Identity{UID: "fb-9", Email: "chair@club.dev"}}

	out, err := f.users.GoogleSignIn(f.ctx, "token")
	if err != nil {
		t.Fatalf("sign-in: %v", err)
	}
	if out.ID != res.ID || out.Role != models.RoleAdmin {
		t.Fatalf("result = %+v", out)
	}
	user, _ := f.users.Me(f.ctx, res.ID)
	if user.Role != models.RoleAdmin || user.FirebaseUID != "fb-9" || !user.HasPassword() {
		t.Fatalf("stored = %+v", user)
	}
}

func TestGoogleSignInLinkedUIDConflicts(t *testing.T) {
	f := newFixture(t)
	verifier := &stubVerifier{identity: &security.Identity{UID: "fb-1", Email: "ada@club.dev"}}
	f.users.verifier = verifier
	if _, err := f.users.GoogleSignIn(f.ctx, "token"); err != nil {
		t.Fatalf("first sign-in: %v", err)
	}
	if _, err := f.users.Register(f.ctx, RegisterInput{Name: "Bob", Email: "bob@club.dev", Password: "abc123"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	// uid already belongs to ada, email is new
	verifier.identity = &security.Identity{UID: "fb-1", Email: "new@club.dev"}
	_, err := f.users.GoogleSignIn(f.ctx, "token")
	expectKind(t, err, apperrors.KindConflict)

	// uid already belongs to ada, email is bob's unlinked account
	verifier.identity = &security.Identity{UID: "fb-1", Email: "bob@club.dev"}
	_, err = f.users.GoogleSignIn(f.ctx, "token")
	expectKind(t, err, apperrors.KindConflict)
}

// emailMisses reports the first email lookups as missing, as a sign-in
// racing a concurrent first sign-in would see them.
type emailMisses struct {
	*database.Store
	misses int
}

func (s *emailMisses) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.misses > 0 {
		s.misses--
		return nil, database.ErrNotFound
	}
	return s.Store.GetUserByEmail(ctx, email)
}

func TestGoogleSignInRaceReturnsExistingAccount(t *testing.T) {
	f := newFixture(t)
	f.users.verifier = &stubVerifier{identity: &security.Identity{UID: "fb-1", Email: "grace@club.dev", Name: "Grace"}}
	first, err := f.users.GoogleSignIn(f.ctx, "token")
	if err != nil {
		t.Fatalf("first sign-in: %v", err)
	}

	f.users.users = &emailMisses{Store: f.store, misses: 1}
	second, err := f.users.GoogleSignIn(f.ctx, "token")
	if err != nil {
		t.Fatalf("racing sign-in: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("racing sign-in id = %s, want %s", second.ID, first.ID)
	}
}
