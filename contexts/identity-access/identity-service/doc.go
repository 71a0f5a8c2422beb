// Package identity implements the Turbo identity provider: registration,
// credential verification and token minting.
//
// Layering:
// - domain: user entity, invariants, errors
// - application: register/login/profile flows using explicit ports
// - ports: stable boundaries for persistence, hashing and token minting
// - adapters: bcrypt hasher, memory and postgres repositories, HTTP handler
// - transport: module-private DTOs for HTTP contracts
//
// The provider never returns credential hashes through its API; login
// failures are indistinguishable between unknown user and wrong password.
package identity
