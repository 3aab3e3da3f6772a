// Package kernel provides core domain primitives and utilities for the
// shipment management system. It implements fundamental building blocks
// following Domain-Driven Design principles that are used throughout the
// domain model.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - Dimensions: A value object for box measurements with cubic-meter conversion
//   - RoundHalfUp: The rounding rule shared by volume and monetary calculations
//
// These primitives enforce domain invariants and validation rules, ensuring that
// domain objects are always in a valid state. They are designed to be immutable
// and thread-safe, making them suitable for concurrent use.
package kernel
