package member

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/dojanghq/dojang/core"
)

// Insurance coverage facts: a policy runs for a fixed 365-day window and the
// listing flags it "soon" during the last 10 days.
const (
	insuranceCoverageDays = 365
	insuranceSoonDays     = 10

	InsuranceValid   = "valid"
	InsuranceSoon    = "soon"
	InsuranceExpired = "expired"
)

type Member struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	FamilyName    string    `json:"family_name"`
	NationalID    string    `json:"national_id"`
	Phone         string    `json:"phone"`
	Belt          string    `json:"belt"`
	BirthDate     null.Time `json:"birth_date"`     // Gregorian, date precision
	InsuranceDate null.Time `json:"insurance_date"` // start of coverage window
	BeltDate      null.Time `json:"belt_date"`      // date of last promotion
	SessionID     null.Int  `json:"session_id"`
	CreatedAt     time.Time `json:"created_at"` // UTC
	UpdatedAt     time.Time `json:"updated_at"` // UTC
}

func (m Member) FullName() string {
	return m.Name + " " + m.FamilyName
}

// InsuranceExpiry returns the end of the coverage window.
func (m Member) InsuranceExpiry() (time.Time, bool) {
	if !m.InsuranceDate.Valid {
		return time.Time{}, false
	}
	return m.InsuranceDate.Time.AddDate(0, 0, insuranceCoverageDays), true
}

// InsuranceStatus classifies the coverage window against today:
// valid, soon (10 days or fewer remain) or expired. Empty when no policy
// is on record.
func (m Member) InsuranceStatus(today time.Time) string {
	expiry, ok := m.InsuranceExpiry()
	if !ok {
		return ""
	}
	switch {
	case expiry.Before(today):
		return InsuranceExpired
	case !expiry.After(today.AddDate(0, 0, insuranceSoonDays)):
		return InsuranceSoon
	}
	return InsuranceValid
}

// NewMember contains information needed to register a new Member.
// Dates come in as Jalali "YYYY/MM/DD" strings, the way the enrollment
// forms collect them.
type NewMember struct {
	Name          string `json:"name" validate:"required"`
	FamilyName    string `json:"family_name" validate:"required"`
	NationalID    string `json:"national_id" validate:"required"`
	Phone         string `json:"phone"`
	Belt          string `json:"belt" validate:"omitempty,belt"`
	BirthDate     string `json:"birth_date" validate:"omitempty,jdate"`
	InsuranceDate string `json:"insurance_date" validate:"omitempty,jdate"`
	BeltDate      string `json:"belt_date" validate:"omitempty,jdate"`
	SessionID     int    `json:"session_id" validate:"required"`
}

func (nm *NewMember) Validate(validate *validator.Validate) error {
	nm.Name = core.CleanString(nm.Name)
	nm.FamilyName = core.CleanString(nm.FamilyName)
	nm.NationalID = core.CleanString(nm.NationalID)
	nm.Phone = core.CleanString(nm.Phone)
	return validate.Struct(nm)
}

// UpdateMember defines what information may be provided to modify an
// existing Member. Empty strings leave the original value untouched.
type UpdateMember struct {
	Name          string `json:"name"`
	FamilyName    string `json:"family_name"`
	NationalID    string `json:"national_id"`
	Phone         string `json:"phone"`
	Belt          string `json:"belt" validate:"omitempty,belt"`
	BirthDate     string `json:"birth_date" validate:"omitempty,jdate"`
	InsuranceDate string `json:"insurance_date" validate:"omitempty,jdate"`
	BeltDate      string `json:"belt_date" validate:"omitempty,jdate"`
	SessionID     int    `json:"session_id"`
}

func (um *UpdateMember) Validate(validate *validator.Validate) error {
	um.Name = core.CleanString(um.Name)
	um.FamilyName = core.CleanString(um.FamilyName)
	um.NationalID = core.CleanString(um.NationalID)
	um.Phone = core.CleanString(um.Phone)
	return validate.Struct(um)
}

type QueryFilter struct {
	Search      string    `query:"search"`
	ClubID      int       `query:"club_id"`
	SessionID   int       `query:"session_id"`
	Belt        string    `query:"belt"`
	Insurance   string    `query:"insurance"` // "expired" | "soon"
	CreatedFrom time.Time `query:"created_from"`
	CreatedTo   time.Time `query:"created_to"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.ClubID == 0 && qf.SessionID == 0 && qf.Belt == "" &&
		qf.Insurance == "" && qf.CreatedFrom.IsZero() && qf.CreatedTo.IsZero()
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Insurance = core.CleanString(qf.Insurance, true /* lower */)
}
