package httpadapter

import (
	"context"
	"log/slog"

	"turbo/contexts/identity-access/identity-service/application"
	httptransport "turbo/contexts/identity-access/identity-service/transport/http"
)

// Handler maps HTTP DTOs to application operations.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) RegisterHandler(ctx context.Context, request httptransport.RegisterRequest) (httptransport.RegisterResponse, error) {
	user, err := h.Service.Register(ctx, application.RegisterInput{
		Username:  request.Username,
		Password:  request.Password,
		Email:     request.Email,
		FirstName: request.FirstName,
		LastName:  request.LastName,
	})
	if err != nil {
		return httptransport.RegisterResponse{}, err
	}
	return httptransport.RegisterResponse{
		UserID:   user.UserID,
		Username: user.Username,
	}, nil
}

func (h Handler) LoginHandler(ctx context.Context, request httptransport.LoginRequest) (httptransport.LoginResponse, error) {
	token, err := h.Service.Login(ctx, request.Username, request.Password)
	if err != nil {
		return httptransport.LoginResponse{}, err
	}
	return httptransport.LoginResponse{Token: token}, nil
}

func (h Handler) ProfileHandler(ctx context.Context, username string) (httptransport.ProfileResponse, error) {
	user, err := h.Service.GetProfile(ctx, username)
	if err != nil {
		return httptransport.ProfileResponse{}, err
	}
	return httptransport.ProfileResponse{
		UserID:    user.UserID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Roles:     user.Roles,
		CreatedAt: user.CreatedAt,
	}, nil
}
