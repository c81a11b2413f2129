package order

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// MaxCommentLength bounds the free-text comment stored with a status change.
const MaxCommentLength = 500

var ErrHistoryEntryIsNotConstructed = errors.New("HistoryEntry must be created via NewHistoryEntry constructor")

// HistoryEntry is one immutable row of an order's status audit trail.
type HistoryEntry struct {
	id        kernel.UUID
	orderID   kernel.UUID
	status    Status
	changedAt time.Time
	comment   string

	isConstructed bool
}

func NewHistoryEntry(
	id kernel.UUID,
	orderID kernel.UUID,
	status Status,
	changedAt time.Time,
	comment string,
) (*HistoryEntry, error) {
	entry := &HistoryEntry{
		changedAt:     changedAt.UTC(),
		isConstructed: true,
	}

	comment = strings.TrimSpace(comment)

	var errList []error
	if err := id.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := orderID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := status.Validate(); err != nil {
		errList = append(errList, err)
	}
	if changedAt.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("changed at"))
	}
	if n := len([]rune(comment)); n > MaxCommentLength {
		errList = append(errList, errs.NewValueIsOutOfRangeError("comment length", n, 0, MaxCommentLength))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	entry.id = id
	entry.orderID = orderID
	entry.status = status
	entry.comment = comment
	return entry, nil
}

func (h *HistoryEntry) Validate() error {
	if h == nil || !h.isConstructed {
		return ErrHistoryEntryIsNotConstructed
	}
	return nil
}

func (h *HistoryEntry) ID() kernel.UUID      { return h.id }
func (h *HistoryEntry) OrderID() kernel.UUID { return h.orderID }
func (h *HistoryEntry) Status() Status       { return h.status }
func (h *HistoryEntry) ChangedAt() time.Time { return h.changedAt }

// Comment is empty when none was given.
func (h *HistoryEntry) Comment() string { return h.comment }
