package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status is the lifecycle state of an order. It is persisted by name.
type Status int

const (
	// Unknown is the zero value and is never valid.
	Unknown Status = iota
	Pending
	InProgress
	Finalized
	Canceled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Pending:    "PENDING",
		InProgress: "IN_PROGRESS",
		Finalized:  "FINALIZED",
		Canceled:   "CANCELED",
	}
}

// AllStatuses lists the valid statuses in declaration order.
func AllStatuses() []Status {
	return []Status{Pending, InProgress, Finalized, Canceled}
}

// ParseStatus converts a status name into a Status. Matching ignores case and
// surrounding whitespace; anything outside the enumeration is rejected.
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "" {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("status is empty"))
	}

	for _, status := range AllStatuses() {
		if status.String() == name {
			return status, nil
		}
	}

	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}
