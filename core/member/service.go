package member

import (
	"errors"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/dojanghq/dojang/core"
)

var (
	// errors
	ErrNotFound = errors.New("member not found")
)

type (
	Repository interface {
		CreateMember(m Member) (Member, error)
		GetMemberByID(id int) (Member, error)
		QueryAllMembers() ([]Member, error)
		GetMembersBySession(sessionID int) ([]Member, error)
		// FilterMembers applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on one of Member.Name,
		// Member.FamilyName, Member.NationalID or Member.Phone.
		FilterMembers(filter QueryFilter, ordering []core.DBOrdering) ([]Member, error)
		UpdateMember(m Member) (Member, error)
		DeleteMembersByID(ids ...int) error
	}

	Service struct {
		repo Repository
		cal  core.Calendar
	}
)

func NewService(repo Repository, cal core.Calendar) *Service {
	return &Service{repo: repo, cal: cal}
}

func (svc *Service) Create(nm NewMember) (Member, error) {
	now := time.Now().UTC()
	mbr := Member{
		Name:       nm.Name,
		FamilyName: nm.FamilyName,
		NationalID: nm.NationalID,
		Phone:      nm.Phone,
		Belt:       nm.Belt,
		SessionID:  null.IntFrom(nm.SessionID),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	var err error
	if mbr.BirthDate, err = svc.jalaliDate(nm.BirthDate, "birth_date"); err != nil {
		return Member{}, err
	}
	if mbr.InsuranceDate, err = svc.jalaliDate(nm.InsuranceDate, "insurance_date"); err != nil {
		return Member{}, err
	}
	if mbr.BeltDate, err = svc.jalaliDate(nm.BeltDate, "belt_date"); err != nil {
		return Member{}, err
	}
	return svc.repo.CreateMember(mbr)
}

func (svc *Service) QueryAll() ([]Member, error) {
	return svc.repo.QueryAllMembers()
}

func (svc *Service) GetByID(id int) (Member, error) {
	return svc.repo.GetMemberByID(id)
}

func (svc *Service) GetBySession(sessionID int) ([]Member, error) {
	return svc.repo.GetMembersBySession(sessionID)
}

func (svc *Service) Filter(filter QueryFilter, ordering []core.DBOrdering) ([]Member, error) {
	filter.Clean()
	return svc.repo.FilterMembers(filter, ordering)
}

func (svc *Service) Update(id int, um UpdateMember) (Member, error) {
	orig, err := svc.repo.GetMemberByID(id)
	if err != nil {
		return Member{}, err
	}

	mbr := orig
	if um.Name != "" {
		mbr.Name = um.Name
	}
	if um.FamilyName != "" {
		mbr.FamilyName = um.FamilyName
	}
	if um.NationalID != "" {
		mbr.NationalID = um.NationalID
	}
	if um.Phone != "" {
		mbr.Phone = um.Phone
	}
	if um.Belt != "" {
		mbr.Belt = um.Belt
	}
	if um.SessionID != 0 {
		mbr.SessionID = null.IntFrom(um.SessionID)
	}
	if um.BirthDate != "" {
		if mbr.BirthDate, err = svc.jalaliDate(um.BirthDate, "birth_date"); err != nil {
			return Member{}, err
		}
	}
	if um.InsuranceDate != "" {
		if mbr.InsuranceDate, err = svc.jalaliDate(um.InsuranceDate, "insurance_date"); err != nil {
			return Member{}, err
		}
	}
	if um.BeltDate != "" {
		if mbr.BeltDate, err = svc.jalaliDate(um.BeltDate, "belt_date"); err != nil {
			return Member{}, err
		}
	}
	mbr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateMember(mbr)
}

func (svc *Service) Delete(ids ...int) error {
	return svc.repo.DeleteMembersByID(ids...)
}

// jalaliDate converts a Jalali form date into its stored Gregorian value.
// An empty string is a valid "not provided".
func (svc *Service) jalaliDate(s, field string) (null.Time, error) {
	if s == "" {
		return null.Time{}, nil
	}
	jd, err := core.ParseJDate(s)
	if err != nil {
		return null.Time{}, err
	}
	t, err := svc.cal.ToGregorian(jd)
	if err != nil {
		return null.Time{}, core.NewValidationError(err, core.FieldError{Field: field, Error: core.ErrBadJDate.Error()})
	}
	return null.TimeFrom(t), nil
}
