package attendance

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dojanghq/dojang/core"
)

const (
	StatusPresent   = "present"
	StatusAbsent    = "absent"
	StatusSuspended = "suspended"
)

var statuses = map[string]struct{}{
	StatusPresent:   {},
	StatusAbsent:    {},
	StatusSuspended: {},
}

func KnownStatus(status string) bool {
	_, ok := statuses[status]
	return ok
}

// Record is one member's attendance mark for one session date. A member has
// at most one record per (session, date) pair.
type Record struct {
	ID        int        `json:"id"`
	MemberID  int        `json:"member_id"`
	SessionID int        `json:"session_id"`
	Date      core.JDate `json:"date"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type NewRecord struct {
	MemberID  int    `json:"member_id" validate:"required"`
	SessionID int    `json:"session_id" validate:"required"`
	Date      string `json:"date" validate:"required,jdate"`
	Status    string `json:"status" validate:"required,attstatus"`
}

func (nr *NewRecord) Validate(validate *validator.Validate) error {
	nr.Status = core.CleanString(nr.Status, true)
	nr.Date = core.CleanString(nr.Date)
	if err := validate.Struct(nr); err != nil {
		return core.NewValidationError(err)
	}
	return nil
}
