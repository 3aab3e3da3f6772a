// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the shipment system. It implements complex
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - RuleEvaluator: A pure domain service computing volumes, compliance flags
//     and the resolved shipping method from an order's boxes and items
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
