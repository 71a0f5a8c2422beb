package application

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	jwtadapter "turbo/contexts/identity-access/request-gate/adapters/jwt"
	"turbo/contexts/identity-access/request-gate/domain/entities"
	domainerrors "turbo/contexts/identity-access/request-gate/domain/errors"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var gateSecret = base64.StdEncoding.EncodeToString([]byte("gate-test-secret-0123456789abcdef"))

func newTestGate(t *testing.T, now time.Time) Gate {
	t.Helper()
	codec, err := jwtadapter.NewCodec(gateSecret, fixedClock{now: now})
	if err != nil {
		t.Fatalf("new codec failed: %v", err)
	}
	return Gate{Codec: codec, Clock: fixedClock{now: now}}
}

func TestAuthenticateMissingHeaderIsAnonymous(t *testing.T) {
	gate := newTestGate(t, time.Now())

	for _, header := range []string{"", "Basic abc123", "Bearer", "token-without-scheme"} {
		_, err := gate.Authenticate(header)
		if !errors.Is(err, domainerrors.ErrNoCredentials) {
			t.Fatalf("header %q: expected no-credentials outcome, got %v", header, err)
		}
	}
}

func TestAuthenticateBuildsPrincipalFromClaims(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	gate := newTestGate(t, now)

	token, err := gate.Codec.Issue("alice", []string{entities.RoleUser}, time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	principal, err := gate.Authenticate("Bearer " + token)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if principal.Identity != "alice" {
		t.Fatalf("unexpected identity %q", principal.Identity)
	}
	if len(principal.Roles) != 1 || principal.Roles[0] != entities.RoleUser {
		t.Fatalf("unexpected roles %v", principal.Roles)
	}
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	gate := newTestGate(t, issuedAt)

	token, err := gate.Codec.Issue("alice", []string{entities.RoleUser}, time.Minute)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	// Same signature, later clock: signature validity alone must not pass the gate.
	lateGate := newTestGate(t, issuedAt.Add(2*time.Minute))
	_, err = lateGate.Authenticate("Bearer " + token)
	if !errors.Is(err, domainerrors.ErrTokenExpired) {
		t.Fatalf("expected expired rejection, got %v", err)
	}
}

func TestAuthenticateRejectsBadSignature(t *testing.T) {
	now := time.Now()
	gate := newTestGate(t, now)

	foreignSecret := base64.StdEncoding.EncodeToString([]byte("other-secret-0123456789abcdef012"))
	foreign, err := jwtadapter.NewCodec(foreignSecret, fixedClock{now: now})
	if err != nil {
		t.Fatalf("new foreign codec failed: %v", err)
	}
	token, err := foreign.Issue("mallory", []string{entities.RoleAdmin}, time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	_, err = gate.Authenticate("Bearer " + token)
	if !errors.Is(err, domainerrors.ErrInvalidSignature) {
		t.Fatalf("expected invalid signature rejection, got %v", err)
	}
}

func TestContextKeepsFirstPrincipal(t *testing.T) {
	first := entities.Principal{Identity: "alice", Roles: []string{entities.RoleUser}}
	second := entities.Principal{Identity: "bob", Roles: []string{entities.RoleAdmin}}

	ctx := ContextWithPrincipal(context.Background(), first)
	ctx = ContextWithPrincipal(ctx, second)

	attached, ok := PrincipalFromContext(ctx)
	if !ok {
		t.Fatalf("expected principal in context")
	}
	if attached.Identity != "alice" {
		t.Fatalf("existing principal must not be replaced, got %q", attached.Identity)
	}
}
