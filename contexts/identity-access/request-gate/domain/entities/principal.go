package entities

// Role names carried in token claims. Exact string membership is the whole
// authorization model; there is no hierarchy between roles.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// Principal is the authenticated identity derived from a request's token.
// It is request-scoped: rebuilt from claims on every request, never persisted.
type Principal struct {
	Identity string   `json:"identity"`
	Roles    []string `json:"roles"`
}
