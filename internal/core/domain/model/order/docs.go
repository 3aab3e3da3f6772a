// Package order provides domain entities and business logic for order
// management in the shipment system. It implements the Order aggregate root
// with lifecycle management and state transitions.
//
// The package includes:
//   - Order: The aggregate root owning boxes, items and audit history
//   - Status: A state machine enforcing the canonical order lifecycle
//   - Box, Item: Child entities contributing volume, weight and declared value
//   - AuditEntry: An append-only record of every status change
//   - Recipient: A value object holding the delivery recipient block
//
// Key business rules:
//   - Orders must have a valid unique identifier and a unique order number
//   - Status follows the canonical workflow RECEIVED -> ... -> COMPLETED with
//     CANCELLED reachable from any non-terminal state
//   - Requesting the current status again is a no-op without an audit entry
//   - Total CBM and weight are recomputed synchronously on every box change
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
