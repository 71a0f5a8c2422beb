package application

import (
	"log/slog"
	"strings"
	"time"

	"turbo/contexts/identity-access/request-gate/domain/entities"
	domainerrors "turbo/contexts/identity-access/request-gate/domain/errors"
	"turbo/contexts/identity-access/request-gate/ports"
)

const bearerPrefix = "Bearer "

// Gate authenticates one request from its Authorization header. Terminal
// outcomes are AUTHENTICATED (a Principal), REJECTED (an unauthorized error),
// or ErrNoCredentials when no bearer token was presented at all; the router
// decides which routes tolerate the anonymous case.
type Gate struct {
	Codec  ports.TokenCodec
	Clock  ports.Clock
	Logger *slog.Logger
}

// Authenticate extracts, verifies and decodes the bearer token.
// Role claims embedded in the token are trusted without a second lookup
// against the identity store.
func (g Gate) Authenticate(authorizationHeader string) (entities.Principal, error) {
	logger := ResolveLogger(g.Logger)

	header := strings.TrimSpace(authorizationHeader)
	if header == "" || !strings.HasPrefix(header, bearerPrefix) {
		return entities.Principal{}, domainerrors.ErrNoCredentials
	}

	claims, err := g.Codec.Decode(strings.TrimPrefix(header, bearerPrefix))
	if err != nil {
		logger.Warn("token rejected",
			"event", "gate_token_rejected",
			"module", "identity-access/request-gate",
			"layer", "application",
			"error", err.Error(),
		)
		return entities.Principal{}, err
	}

	if claims.Expired(g.now()) {
		logger.Warn("token expired",
			"event", "gate_token_expired",
			"module", "identity-access/request-gate",
			"layer", "application",
			"subject", claims.Subject,
		)
		return entities.Principal{}, domainerrors.ErrTokenExpired
	}

	logger.Debug("request authenticated",
		"event", "gate_authenticated",
		"module", "identity-access/request-gate",
		"layer", "application",
		"subject", claims.Subject,
		"roles", claims.Roles,
	)
	return entities.Principal{
		Identity: claims.Subject,
		Roles:    claims.Roles,
	}, nil
}

func (g Gate) now() time.Time {
	if g.Clock != nil {
		return g.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
