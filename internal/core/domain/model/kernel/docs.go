// Package kernel provides the value objects shared by the fulfillment domain model:
//   - UUID: identifiers for every entity
//   - Money: exact non-negative decimal amounts (github.com/shopspring/decimal)
//   - Address: delivery address snapshot copied onto orders
//   - DomainEvent and EventSource: the contract between aggregates and the outbox
//
// Value objects are immutable and must be built through their constructors; zero
// values fail Validate.
package kernel
