package security

import (
	"context"
	"errors"
	"fmt"
	"log"

	firebase "firebase.google.com/go"
	fbauth "firebase.google.com/go/auth"
	"google.golang.org/api/option"

	"hackathon-club/app/config"
)

// ErrFirebaseDisabled is returned when no Firebase credentials are configured
var ErrFirebaseDisabled = errors.New("firebase sign-in is not configured")

// Identity is the verified subject of a Firebase ID token
type Identity struct {
	UID   string
	Email string
	Name  string
}

type IDTokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*Identity, error)
}

type firebaseVerifier struct {
	client tokenVerifier
}

// satisfied by *fbauth.Client
type tokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// NewFirebaseVerifier connects to Firebase Auth with service account
// credentials. It returns a verifier that always fails with
// ErrFirebaseDisabled when the config carries no credentials.
func NewFirebaseVerifier(ctx context.Context, cfg config.FirebaseConfig) (IDTokenVerifier, error) {
	if !cfg.Enabled() {
		log.Println("[firebase] credentials not set, Google sign-in disabled")
		return disabledVerifier{}, nil
	}

	var fbConfig *firebase.Config
	if cfg.ProjectID != "" {
		fbConfig = &firebase.Config{ProjectID: cfg.ProjectID}
	}
	opt := option.WithCredentialsJSON([]byte(cfg.CredentialsJSON))
	app, err := firebase.NewApp(ctx, fbConfig, opt)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase auth: %w", err)
	}

	log.Println("[firebase] auth client initialized")
	return &firebaseVerifier{client: client}, nil
}

func (v *firebaseVerifier) Verify(ctx context.Context, idToken string) (*Identity, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	return &Identity{
		UID:   token.UID,
		Email: claimString(token.Claims, "email"),
		Name:  claimString(token.Claims, "name"),
	}, nil
}

type disabledVerifier struct{}

func (disabledVerifier) Verify(context.Context, string) (*Identity, error) {
	return nil, ErrFirebaseDisabled
}

func claimString(claims map[string]interface{}, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
