package route

import (
	"fmt"

	"montarota/internal/pkg/errs"
)

// Status of a route: pending -> in_progress -> completed.
type Status string

const (
	Pending    Status = "pending"
	InProgress Status = "in_progress"
	Completed  Status = "completed"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case Pending, InProgress, Completed:
		return Status(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid route status", s))
	}
}

func (s Status) String() string {
	return string(s)
}
