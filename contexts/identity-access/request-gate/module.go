package requestgate

import (
	"log/slog"
	"time"

	jwtadapter "turbo/contexts/identity-access/request-gate/adapters/jwt"
	"turbo/contexts/identity-access/request-gate/application"
	"turbo/contexts/identity-access/request-gate/ports"
)

// Module is the request-gate composition root exposed to runtime wiring.
type Module struct {
	Gate  application.Gate
	Codec ports.TokenCodec
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Codec  ports.TokenCodec
	Clock  ports.Clock
	Logger *slog.Logger
}

// NewModule wires the gate against an already-constructed token codec.
func NewModule(deps Dependencies) Module {
	return Module{
		Gate: application.Gate{
			Codec:  deps.Codec,
			Clock:  deps.Clock,
			Logger: deps.Logger,
		},
		Codec: deps.Codec,
	}
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// NewHS256Module builds the production module around the shared base64 secret.
func NewHS256Module(base64Secret string, logger *slog.Logger) (Module, error) {
	codec, err := jwtadapter.NewCodec(base64Secret, systemClock{})
	if err != nil {
		return Module{}, err
	}
	return NewModule(Dependencies{
		Codec:  codec,
		Clock:  systemClock{},
		Logger: logger,
	}), nil
}
