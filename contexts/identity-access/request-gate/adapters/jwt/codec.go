package jwtadapter

import (
	"encoding/base64"
	"errors"
	"time"

	"turbo/contexts/identity-access/request-gate/domain/entities"
	domainerrors "turbo/contexts/identity-access/request-gate/domain/errors"
	"turbo/contexts/identity-access/request-gate/ports"

	"github.com/golang-jwt/jwt/v5"
)

// Codec signs and verifies HS256 tokens with the service-shared secret.
// The wire format is header/claims/signature with claims {sub, roles, iat, exp}.
type Codec struct {
	secret []byte
	clock  ports.Clock
	parser *jwt.Parser
}

// NewCodec decodes the base64 shared secret once at startup. A missing or
// undecodable secret is a construction error, never a per-request one.
func NewCodec(base64Secret string, clock ports.Clock) (*Codec, error) {
	if base64Secret == "" {
		return nil, errors.New("jwt signing secret is required")
	}
	secret, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return nil, errors.New("jwt signing secret must be base64 encoded")
	}
	return &Codec{
		secret: secret,
		clock:  clock,
		// Expiry is evaluated by the gate against its own clock, so claim
		// validation is disabled here and Decode only proves integrity.
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}, nil
}

func (c *Codec) Issue(subject string, roles []string, ttl time.Duration) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   subject,
		"roles": roles,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	})
	return token.SignedString(c.secret)
}

func (c *Codec) Decode(tokenString string) (entities.Claims, error) {
	token, err := c.parser.Parse(tokenString, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return entities.Claims{}, domainerrors.ErrInvalidSignature
		}
		return entities.Claims{}, domainerrors.ErrTokenMalformed
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return entities.Claims{}, domainerrors.ErrTokenMalformed
	}

	subject, err := mapClaims.GetSubject()
	if err != nil || subject == "" {
		return entities.Claims{}, domainerrors.ErrTokenMalformed
	}
	expiresAt, err := mapClaims.GetExpirationTime()
	if err != nil || expiresAt == nil {
		return entities.Claims{}, domainerrors.ErrTokenMalformed
	}
	issuedAt, err := mapClaims.GetIssuedAt()
	if err != nil || issuedAt == nil {
		return entities.Claims{}, domainerrors.ErrTokenMalformed
	}

	return entities.Claims{
		Subject:   subject,
		Roles:     rolesClaim(mapClaims),
		IssuedAt:  issuedAt.Time,
		ExpiresAt: expiresAt.Time,
	}, nil
}

// rolesClaim preserves the order roles were issued in.
func rolesClaim(claims jwt.MapClaims) []string {
	raw, ok := claims["roles"].([]any)
	if !ok {
		return nil
	}
	roles := make([]string, 0, len(raw))
	for _, item := range raw {
		if role, ok := item.(string); ok {
			roles = append(roles, role)
		}
	}
	return roles
}

func (c *Codec) now() time.Time {
	if c.clock != nil {
		return c.clock.Now().UTC()
	}
	return time.Now().UTC()
}
