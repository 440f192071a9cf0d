package complaint

import (
	"errors"
	"fmt"

	"github.com/oksasatya/go-complaint-tracker/internal/domain/entity"
)

var ErrDetailsRequired = errors.New("details are required")

// InvalidTransitionError names both ends of a rejected status change.
type InvalidTransitionError struct {
	From entity.ComplaintStatus
	To   entity.ComplaintStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

// MissingFieldError reports the first required detail key that is absent.
type MissingFieldError struct {
	Field string
	Type  entity.ComplaintType
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s is required for %s", e.Field, e.Type)
}
