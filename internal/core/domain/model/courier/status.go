package courier

import (
	"fmt"

	"montarota/internal/pkg/errs"
)

// Status is the availability of a courier for route assembly.
type Status int

const (
	Unknown Status = iota
	Available
	OnRoute
	Offline
	Blocked
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Available: "available",
		OnRoute:   "on_route",
		Offline:   "offline",
		Blocked:   "blocked",
	}
}

// ParseStatus converts "available", "on_route", "offline" or "blocked" into a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid courier status", s))
}

func (s Status) Validate() error {
	if s <= Unknown || s > Blocked {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid courier status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}
