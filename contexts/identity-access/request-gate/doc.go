// Package requestgate implements the stateless authentication gate inside Turbo.
//
// Layering:
// - domain: principal/claims entities, role checks, errors
// - application: per-request authentication flow using explicit ports
// - ports: stable boundaries for token encoding and time
// - adapters: concrete HS256 JWT codec
//
// Boundary notes:
// - Keep this module self-contained under identity-access context.
// - The gate trusts token claims; it never calls back into the identity store.
package requestgate
