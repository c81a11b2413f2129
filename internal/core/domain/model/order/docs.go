// Package order contains the Order aggregate of the fulfillment core.
//
// An order is created once, with its line items, total, delivery-address snapshot,
// tracking code and status IN_PROGRESS. After creation only the status and the
// tracking code change:
//
//   - Status changes go through ChangeStatus, which consults a TransitionPolicy and
//     returns the HistoryEntry that must be appended in the same transaction.
//   - Tracking code changes go through AssignTrackingCode.
//
// Every mutation records a domain event (OrderCreated, OrderStatusChanged,
// OrderTrackingCodeChanged). The unit of work drains the events of tracked orders
// into the outbox when it commits.
//
// Business rules enforced here:
//   - an order has at least one line item, every quantity is positive
//   - the total equals the sum of unit price times quantity over all line items
//   - the tracking code is never empty
//   - line items keep insertion order and never change
package order
