package identity

import (
	"log/slog"
	"time"

	bcryptadapter "turbo/contexts/identity-access/identity-service/adapters/bcrypt"
	httpadapter "turbo/contexts/identity-access/identity-service/adapters/http"
	"turbo/contexts/identity-access/identity-service/adapters/memory"
	"turbo/contexts/identity-access/identity-service/application"
	"turbo/contexts/identity-access/identity-service/ports"
)

// Module is the identity-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Repository ports.Repository
	Hasher     ports.PasswordHasher
	Tokens     ports.TokenIssuer
	Clock      ports.Clock
	IDs        ports.IDGenerator
	TokenTTL   time.Duration
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:     deps.Repository,
		Hasher:   deps.Hasher,
		Tokens:   deps.Tokens,
		Clock:    deps.Clock,
		IDs:      deps.IDs,
		TokenTTL: deps.TokenTTL,
		Logger:   deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters around the given token issuer.
func NewInMemoryModule(tokens ports.TokenIssuer, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Hasher:     bcryptadapter.Hasher{},
		Tokens:     tokens,
		Clock:      store,
		IDs:        store,
		TokenTTL:   10 * time.Hour,
		Logger:     logger,
	})
	module.Store = store
	return module
}
