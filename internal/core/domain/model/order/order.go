package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// MaxTrackingCodeLength is the longest tracking code an order accepts.
const MaxTrackingCodeLength = 64

var (
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrTrackingCodeTaken is the cause of the conflict reported when a tracking
	// code is already used by another order.
	ErrTrackingCodeTaken = errors.New("tracking code is already in use")
)

// Order is the aggregate root of the fulfillment workflow.
type Order struct {
	id           kernel.UUID
	customerID   kernel.UUID
	items        []*LineItem
	total        kernel.Money
	createdAt    time.Time
	status       Status
	address      kernel.Address
	trackingCode string

	events []kernel.DomainEvent

	isConstructed bool
}

// NewOrder creates an IN_PROGRESS order and computes its total from items.
// The items slice is copied; its order is the display order of the lines.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	address kernel.Address,
	items []*LineItem,
	trackingCode string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        InProgress,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setAddress(address),
		o.setItems(items),
		o.setTrackingCode(trackingCode),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	o.total = sumItems(o.items)
	o.recordEvent(OrderCreated{
		baseEvent:    newBaseEvent(o.id, o.createdAt),
		CustomerID:   o.customerID,
		Total:        o.total,
		Status:       o.status,
		TrackingCode: o.trackingCode,
	})

	return o, nil
}

// RestoreOrder rebuilds an order read from storage. The stored total must match
// the line items; no events are recorded.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	address kernel.Address,
	items []*LineItem,
	total kernel.Money,
	status Status,
	trackingCode string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setAddress(address),
		o.setItems(items),
		o.setTrackingCode(trackingCode),
		o.setCreatedAt(createdAt),
		status.Validate(),
		total.Validate(),
	); err != nil {
		return nil, err
	}

	if expected := sumItems(o.items); !expected.IsEqual(total) {
		return nil, errs.NewValueIsInvalidErrorWithCause("total is invalid",
			fmt.Errorf("stored total %s does not match line items total %s", total, expected))
	}

	o.status = status
	o.total = total
	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID         { return o.id }
func (o *Order) CustomerID() kernel.UUID { return o.customerID }
func (o *Order) Total() kernel.Money     { return o.total }
func (o *Order) CreatedAt() time.Time    { return o.createdAt }
func (o *Order) Status() Status          { return o.status }
func (o *Order) Address() kernel.Address { return o.address }
func (o *Order) TrackingCode() string    { return o.trackingCode }

// Items returns the line items in display order. The returned slice is a copy.
func (o *Order) Items() []*LineItem {
	items := make([]*LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// ChangeStatus moves the order to status to if policy allows it and returns the
// history entry stamped with at. The caller persists the order and the entry in
// one transaction.
func (o *Order) ChangeStatus(policy TransitionPolicy, to Status, comment string, at time.Time) (*HistoryEntry, error) {
	if err := policy.Check(o.status, to); err != nil {
		return nil, err
	}

	entry, err := NewHistoryEntry(kernel.NewUUID(), o.id, to, at, comment)
	if err != nil {
		return nil, err
	}

	from := o.status
	o.status = to
	o.recordEvent(OrderStatusChanged{
		baseEvent: newBaseEvent(o.id, entry.ChangedAt()),
		From:      from,
		To:        to,
		Comment:   entry.Comment(),
	})

	return entry, nil
}

// InitialHistoryEntry returns the audit row written together with a new order, so
// that the newest history entry always carries the current status.
func (o *Order) InitialHistoryEntry() (*HistoryEntry, error) {
	return NewHistoryEntry(kernel.NewUUID(), o.id, o.status, o.createdAt, "order created")
}

// AssignTrackingCode replaces the tracking code. Assigning the current code is a no-op.
func (o *Order) AssignTrackingCode(code string, at time.Time) error {
	previous := o.trackingCode
	if err := o.setTrackingCode(code); err != nil {
		return err
	}
	if o.trackingCode == previous {
		return nil
	}

	o.recordEvent(OrderTrackingCodeChanged{
		baseEvent: newBaseEvent(o.id, at),
		Previous:  previous,
		Current:   o.trackingCode,
	})
	return nil
}

func (o *Order) DomainEvents() []kernel.DomainEvent {
	events := make([]kernel.DomainEvent, len(o.events))
	copy(events, o.events)
	return events
}

func (o *Order) ClearDomainEvents() {
	o.events = nil
}

func (o *Order) recordEvent(event kernel.DomainEvent) {
	o.events = append(o.events, event)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}

func (o *Order) setItems(items []*LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	seen := make(map[kernel.UUID]struct{}, len(items))
	for idx, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", idx), err)
		}
		if _, dup := seen[item.ProductID()]; dup {
			return errs.NewValueIsInvalidErrorWithCause("items",
				fmt.Errorf("product %s appears in more than one line", item.ProductID()))
		}
		seen[item.ProductID()] = struct{}{}
	}

	o.items = make([]*LineItem, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setTrackingCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("tracking code")
	}
	if n := len(code); n > MaxTrackingCodeLength {
		return errs.NewValueIsOutOfRangeError("tracking code length", n, 1, MaxTrackingCodeLength)
	}
	o.trackingCode = code
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	return nil
}

func sumItems(items []*LineItem) kernel.Money {
	total := kernel.ZeroMoney()
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}
