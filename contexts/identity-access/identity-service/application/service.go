package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"turbo/contexts/identity-access/identity-service/domain/entities"
	domainerrors "turbo/contexts/identity-access/identity-service/domain/errors"
	"turbo/contexts/identity-access/identity-service/ports"
)

type Service struct {
	Repo     ports.Repository
	Hasher   ports.PasswordHasher
	Tokens   ports.TokenIssuer
	Clock    ports.Clock
	IDs      ports.IDGenerator
	TokenTTL time.Duration
	Logger   *slog.Logger
}

// RegisterInput carries the registration payload after transport decoding.
type RegisterInput struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
}

func (s Service) Register(ctx context.Context, input RegisterInput) (entities.User, error) {
	logger := ResolveLogger(s.Logger)

	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	if username == "" || email == "" || input.Password == "" {
		return entities.User{}, domainerrors.ErrInvalidRequest
	}

	hash, err := s.Hasher.Hash(input.Password)
	if err != nil {
		return entities.User{}, err
	}
	userID, err := s.IDs.NewID(ctx)
	if err != nil {
		return entities.User{}, err
	}

	now := s.now()
	user := entities.User{
		UserID:       userID,
		Username:     username,
		Email:        email,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		PasswordHash: hash,
		Roles:        []string{entities.DefaultRole},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		logger.Warn("registration rejected",
			"event", "identity_register_rejected",
			"module", "identity-access/identity-service",
			"layer", "application",
			"username", username,
			"error", err.Error(),
		)
		return entities.User{}, err
	}

	logger.Info("user registered",
		"event", "identity_registered",
		"module", "identity-access/identity-service",
		"layer", "application",
		"user_id", user.UserID,
		"username", username,
	)
	return user, nil
}

// Login verifies credentials and mints a signed token carrying the user's
// role claims. Unknown user and wrong password produce the same error.
func (s Service) Login(ctx context.Context, username string, password string) (string, error) {
	logger := ResolveLogger(s.Logger)

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", domainerrors.ErrInvalidCredentials
	}

	user, found, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if !found {
		logger.Warn("login failed",
			"event", "identity_login_failed",
			"module", "identity-access/identity-service",
			"layer", "application",
			"username", username,
		)
		return "", domainerrors.ErrInvalidCredentials
	}
	if err := s.Hasher.Compare(user.PasswordHash, password); err != nil {
		logger.Warn("login failed",
			"event", "identity_login_failed",
			"module", "identity-access/identity-service",
			"layer", "application",
			"username", username,
		)
		return "", domainerrors.ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(user.Username, user.Roles, s.tokenTTL())
	if err != nil {
		return "", err
	}

	logger.Info("token issued",
		"event", "identity_token_issued",
		"module", "identity-access/identity-service",
		"layer", "application",
		"user_id", user.UserID,
		"username", username,
	)
	return token, nil
}

func (s Service) GetProfile(ctx context.Context, username string) (entities.User, error) {
	if strings.TrimSpace(username) == "" {
		return entities.User{}, domainerrors.ErrInvalidRequest
	}
	user, found, err := s.Repo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return entities.User{}, err
	}
	if !found {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	user.PasswordHash = ""
	return user, nil
}

func (s Service) tokenTTL() time.Duration {
	if s.TokenTTL <= 0 {
		return 10 * time.Hour
	}
	return s.TokenTTL
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
