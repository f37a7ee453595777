package payment

import (
	"errors"
	"time"

	"github.com/dojanghq/dojang/core"
)

var (
	// errors
	ErrNotFound           = errors.New("payment not found")
	ErrPeriodExists       = errors.New("a payment for this member and billing month already exists")
	ErrTrackingCodeExists = errors.New("a payment with this tracking code already exists")
)

type (
	Repository interface {
		CreatePayment(p Payment) (Payment, error)
		GetPaymentByID(id int) (Payment, error)
		// GetLatestPayment returns the member's most recent payment ordered by
		// billing period (year, month) descending.
		GetLatestPayment(memberID int) (Payment, error)
		GetPaymentByPeriod(memberID int, period Period) (Payment, error)
		GetPaymentByTrackingCode(code string) (Payment, error)
		// PaidPeriodsSince returns the member's billing periods with a recorded
		// payment, strictly after `after` and up to `until` inclusive.
		PaidPeriodsSince(memberID int, after, until Period) ([]Period, error)
		// FilterPayments applies AND operation on available QueryFilter fields,
		// ordered by billing period descending.
		FilterPayments(filter QueryFilter) ([]Payment, error)
		DeletePayment(id int) error
	}

	Service struct {
		repo Repository
		cal  core.Calendar
	}
)

func NewService(repo Repository, cal core.Calendar) *Service {
	return &Service{repo: repo, cal: cal}
}

// Create records a payment after guarding the two uniqueness rules: one
// payment per (member, billing month) and a globally unique tracking code.
// The storage layer enforces both again under concurrency.
func (svc *Service) Create(np NewPayment) (Payment, error) {
	period := Period{Year: np.Year, Month: np.Month}

	if np.TrackingCode != "" {
		if _, err := svc.repo.GetPaymentByTrackingCode(np.TrackingCode); err == nil {
			return Payment{}, core.NewValidationError(ErrTrackingCodeExists,
				core.FieldError{Field: "tracking_code", Error: ErrTrackingCodeExists.Error()})
		} else if err != ErrNotFound {
			return Payment{}, err
		}
	}
	if _, err := svc.repo.GetPaymentByPeriod(np.MemberID, period); err == nil {
		return Payment{}, core.NewValidationError(ErrPeriodExists,
			core.FieldError{Field: "month", Error: ErrPeriodExists.Error()})
	} else if err != ErrNotFound {
		return Payment{}, err
	}

	jd, err := core.ParseJDate(np.PaymentDate)
	if err != nil {
		return Payment{}, err
	}
	paidAt, err := svc.cal.ToGregorian(jd)
	if err != nil {
		return Payment{}, core.NewValidationError(err,
			core.FieldError{Field: "payment_date", Error: core.ErrBadJDate.Error()})
	}

	return svc.repo.CreatePayment(Payment{
		MemberID:     np.MemberID,
		Amount:       np.Amount,
		PaymentDate:  paidAt,
		Period:       period,
		TrackingCode: np.TrackingCode,
		CreatedAt:    time.Now().UTC(),
	})
}

func (svc *Service) GetByID(id int) (Payment, error) {
	return svc.repo.GetPaymentByID(id)
}

func (svc *Service) Latest(memberID int) (Payment, error) {
	return svc.repo.GetLatestPayment(memberID)
}

// ByPeriod returns the member's payment for one billing month, or
// ErrNotFound when that month is unpaid.
func (svc *Service) ByPeriod(memberID int, period Period) (Payment, error) {
	return svc.repo.GetPaymentByPeriod(memberID, period)
}

// GetByTrackingCode looks a payment up by its bank tracking code, used to
// warn about an already-registered code before a new payment is saved.
func (svc *Service) GetByTrackingCode(code string) (Payment, error) {
	return svc.repo.GetPaymentByTrackingCode(core.NormalizeDigits(core.CleanString(code)))
}

func (svc *Service) Filter(filter QueryFilter) ([]Payment, error) {
	filter.Clean()
	return svc.repo.FilterPayments(filter)
}

func (svc *Service) Delete(id int) error {
	return svc.repo.DeletePayment(id)
}
