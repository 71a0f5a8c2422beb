package unit

import (
	"context"
	"errors"
	"testing"

	identity "turbo/contexts/identity-access/identity-service"
	identityerrors "turbo/contexts/identity-access/identity-service/domain/errors"
	identityhttp "turbo/contexts/identity-access/identity-service/transport/http"
	requestgate "turbo/contexts/identity-access/request-gate"
	gateentities "turbo/contexts/identity-access/request-gate/domain/entities"
)

func newIdentityFixture(t *testing.T) (identity.Module, requestgate.Module) {
	t.Helper()
	gateModule, err := requestgate.NewHS256Module(gateSecret("identity"), nil)
	if err != nil {
		t.Fatalf("gate build failed: %v", err)
	}
	return identity.NewInMemoryModule(gateModule.Codec, nil), gateModule
}

func TestRegisterLoginIssuesVerifiableToken(t *testing.T) {
	identityModule, gateModule := newIdentityFixture(t)
	ctx := context.Background()

	if _, err := identityModule.Handler.RegisterHandler(ctx, identityhttp.RegisterRequest{
		Username: "alice",
		Password: "pass-1234",
		Email:    "alice@example.com",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	login, err := identityModule.Handler.LoginHandler(ctx, identityhttp.LoginRequest{
		Username: "alice",
		Password: "pass-1234",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	principal, err := gateModule.Gate.Authenticate("Bearer " + login.Token)
	if err != nil {
		t.Fatalf("token rejected by gate: %v", err)
	}
	if principal.Identity != "alice" {
		t.Fatalf("expected alice principal, got %s", principal.Identity)
	}
	if len(principal.Roles) != 1 || principal.Roles[0] != gateentities.RoleUser {
		t.Fatalf("expected default user role, got %v", principal.Roles)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	identityModule, _ := newIdentityFixture(t)
	ctx := context.Background()

	if _, err := identityModule.Handler.RegisterHandler(ctx, identityhttp.RegisterRequest{
		Username: "alice",
		Password: "pass-1234",
		Email:    "alice@example.com",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, wrongPassword := identityModule.Handler.LoginHandler(ctx, identityhttp.LoginRequest{Username: "alice", Password: "nope"})
	_, unknownUser := identityModule.Handler.LoginHandler(ctx, identityhttp.LoginRequest{Username: "mallory", Password: "nope"})
	if !errors.Is(wrongPassword, identityerrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPassword)
	}
	if !errors.Is(unknownUser, identityerrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", unknownUser)
	}
}

func TestProfileOmitsCredentialMaterial(t *testing.T) {
	identityModule, _ := newIdentityFixture(t)
	ctx := context.Background()

	if _, err := identityModule.Handler.RegisterHandler(ctx, identityhttp.RegisterRequest{
		Username:  "alice",
		Password:  "pass-1234",
		Email:     "alice@example.com",
		FirstName: "Alice",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	profile, err := identityModule.Handler.ProfileHandler(ctx, "alice")
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if profile.Username != "alice" || profile.FirstName != "Alice" {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	if _, err := identityModule.Handler.ProfileHandler(ctx, "nobody"); !errors.Is(err, identityerrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
