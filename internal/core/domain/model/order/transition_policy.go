package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// ErrInvalidTransition is matched, together with errs.ErrConflict, by errors returned
// from a TransitionPolicy that refuses a status change.
var ErrInvalidTransition = errors.New("status transition is not allowed")

// TransitionPolicy decides whether an order may move from one status to another.
type TransitionPolicy interface {
	Check(from, to Status) error
}

// PermissiveTransitionPolicy allows every change between valid statuses, including
// moving a FINALIZED or CANCELED order back to PENDING.
type PermissiveTransitionPolicy struct{}

func (PermissiveTransitionPolicy) Check(_, to Status) error {
	return to.Validate()
}

// TableTransitionPolicy allows only the transitions listed in its table.
type TableTransitionPolicy struct {
	allowed map[Status]map[Status]struct{}
}

func NewTableTransitionPolicy(table map[Status][]Status) *TableTransitionPolicy {
	allowed := make(map[Status]map[Status]struct{}, len(table))
	for from, targets := range table {
		set := make(map[Status]struct{}, len(targets))
		for _, to := range targets {
			set[to] = struct{}{}
		}
		allowed[from] = set
	}
	return &TableTransitionPolicy{allowed: allowed}
}

// NewForwardOnlyTransitionPolicy moves orders forward only; FINALIZED and CANCELED are terminal.
func NewForwardOnlyTransitionPolicy() *TableTransitionPolicy {
	return NewTableTransitionPolicy(map[Status][]Status{
		Pending:    {InProgress, Canceled},
		InProgress: {Finalized, Canceled},
	})
}

func (p *TableTransitionPolicy) Check(from, to Status) error {
	if err := to.Validate(); err != nil {
		return err
	}
	if _, ok := p.allowed[from][to]; !ok {
		return errs.NewConflictErrorWithCause("status transition", fmt.Sprintf("%s -> %s", from, to), ErrInvalidTransition)
	}
	return nil
}
