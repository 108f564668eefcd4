package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"hackathon-club/app/config"
	"hackathon-club/app/database"
	"hackathon-club/app/models"
	"hackathon-club/app/security"
	"hackathon-club/app/utils"
)

func main() {
	name := flag.String("name", "", "display name")
	email := flag.String("email", "", "login email")
	password := flag.String("password", "", "initial password")
	role := flag.String("role", string(models.RoleUser), "one of user, lead, co-lead, admin, judge")
	cost := flag.Int("cost", 12, "bcrypt cost")
	flag.Parse()

	if err := run(*name, *email, *password, models.Role(*role), *cost); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating user: %v\n", err)
		os.Exit(1)
	}
}

func run(name, email, password string, role models.Role, cost int) error {
	name = strings.TrimSpace(name)
	email = utils.NormalizeEmail(email)
	switch {
	case name == "":
		return errors.New("-name is required")
	case !utils.IsValidEmail(email):
		return fmt.Errorf("invalid email %q", email)
	case !utils.IsValidPassword(password):
		return errors.New("password must be at least 6 characters with letters and numbers")
	case !role.Valid():
		return fmt.Errorf("unknown role %q", role)
	}

	cfg, err := config.LoadDatabase()
	if err != nil {
		return err
	}
	db, err := config.OpenDB(cfg)
	if err != nil {
		return err
	}
	store := database.New(db, cfg.Driver)
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := store.RunMigrations(ctx); err != nil {
		return err
	}

	hash, err := security.NewPasswordHasher(cost).Hash(password)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	user := &models.User{
		Name:      name,
		Email:     email,
		Password:  hash,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, database.ErrAlreadyExists) {
			return fmt.Errorf("a user with email %s already exists", email)
		}
		return err
	}

	fmt.Printf("User created successfully: %s <%s> as %s (%s)\n", user.Name, user.Email, user.Role, user.ID)
	return nil
}
