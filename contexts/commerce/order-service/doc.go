// Package orders implements the Turbo cart/order engine.
//
// A cart is an Order in PENDING status; checkout is the only transition out
// of PENDING and freezes items and total. At most one PENDING order exists
// per owner, enforced inside single-cart repository transactions.
//
// Layering:
// - domain: order/line-item entities, status set, invariants, errors
// - application: commands/queries/workers using explicit ports
// - ports: stable boundaries for persistence, pricing, events
// - adapters: memory, postgres, pricing bridge, event publisher, HTTP handler
// - transport: module-private DTOs for HTTP contracts
package orders
