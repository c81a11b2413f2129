// Package services holds domain logic that spans more than one aggregate.
//
// OrderAssembler turns a customer and the product snapshots returned by the
// inventory ledger into a new Order. It performs no I/O: loading customers,
// reserving stock and persisting the result belong to the application layer.
package services
