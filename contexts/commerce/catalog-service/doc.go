// Package catalog implements the Turbo product catalog and the unit-price
// lookup the order engine depends on.
//
// Layering:
// - domain: product entity and errors
// - application: CRUD plus cache-first price resolution using explicit ports
// - ports: stable boundaries for persistence and price caching
// - adapters: memory, postgres, redis cache, HTTP handler
// - transport: module-private DTOs for HTTP contracts
package catalog
