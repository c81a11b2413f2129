package queries

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists orders, newest first. An empty status filter lists every order.
type ListOrdersQuery struct {
	statuses []order.Status

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(statuses ...string) (ListOrdersQuery, error) {
	parsed := make([]order.Status, 0, len(statuses))
	seen := make(map[order.Status]struct{}, len(statuses))

	var errList []error
	for idx, s := range statuses {
		status, err := order.ParseStatus(s)
		if err != nil {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("status[%d]", idx), err))
			continue
		}
		if _, dup := seen[status]; dup {
			continue
		}
		seen[status] = struct{}{}
		parsed = append(parsed, status)
	}
	if err := errors.Join(errList...); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{statuses: parsed, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Statuses() []order.Status {
	statuses := make([]order.Status, len(q.statuses))
	copy(statuses, q.statuses)
	return statuses
}
