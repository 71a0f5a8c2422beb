package ports

import (
	"time"

	"turbo/contexts/identity-access/request-gate/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// TokenCodec encodes and decodes the signed identity token. The signing
// secret is process-wide and read-only after startup; a misconfigured secret
// must fail codec construction, never a request.
type TokenCodec interface {
	Issue(subject string, roles []string, ttl time.Duration) (string, error)
	// Decode verifies the signature and parses the claims. It does not
	// evaluate expiry; that decision belongs to the gate.
	Decode(token string) (entities.Claims, error)
}
