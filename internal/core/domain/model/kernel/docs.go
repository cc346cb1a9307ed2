// Package kernel provides the shared value objects used by the marketplace
// domain model. Value objects are immutable, validated on construction, and
// compared by value.
//
// The package includes:
//   - UUID: identity value object wrapping github.com/google/uuid
//   - Money: a non-negative amount in minor currency units
//
// Zero values of these types are invalid; construct them through the
// provided factory functions and check Validate when restoring from
// persistence or external input.
package kernel
