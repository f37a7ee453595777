package payment

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dojanghq/dojang/core"
)

// Period is a Jalali billing month.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (p Period) String() string {
	return fmt.Sprintf("%s %d", core.JMonthName(p.Month), p.Year)
}

// Next returns the following billing month, wrapping Esfand into the next
// year.
func (p Period) Next() Period {
	if p.Month == 12 {
		return Period{Year: p.Year + 1, Month: 1}
	}
	return Period{Year: p.Year, Month: p.Month + 1}
}

// Compare returns -1, 0 or +1 depending on whether p is before, equal to or
// after other.
func (p Period) Compare(other Period) int {
	a := p.Year*12 + p.Month
	b := other.Year*12 + other.Month
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (p Period) After(other Period) bool { return p.Compare(other) > 0 }

type Payment struct {
	ID           int       `json:"id"`
	MemberID     int       `json:"member_id"`
	Amount       int       `json:"amount"`
	PaymentDate  time.Time `json:"payment_date"` // Gregorian, date precision
	Period       Period    `json:"period"`
	TrackingCode string    `json:"tracking_code,omitempty"`
	CreatedAt    time.Time `json:"created_at"` // UTC
}

// NewPayment contains information needed to record a Payment. The payment
// date comes in as a Jalali "YYYY/MM/DD" string, the way the forms collect
// it.
type NewPayment struct {
	MemberID     int    `json:"member_id" validate:"required"`
	Amount       int    `json:"amount" validate:"required,gt=0"`
	PaymentDate  string `json:"payment_date" validate:"required,jdate"`
	Month        int    `json:"month" validate:"required,min=1,max=12"`
	Year         int    `json:"year" validate:"required"`
	TrackingCode string `json:"tracking_code"`
}

func (np *NewPayment) Validate(validate *validator.Validate) error {
	np.TrackingCode = core.NormalizeDigits(core.CleanString(np.TrackingCode))
	return validate.Struct(np)
}

type QueryFilter struct {
	Search    string `query:"search"`
	SessionID int    `query:"session_id"`
	Month     int    `query:"month"`
	Year      int    `query:"year"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.SessionID == 0 && qf.Month == 0 && qf.Year == 0
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}
