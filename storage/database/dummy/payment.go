package dummydb

import (
	"sort"
	"strings"

	"github.com/dojanghq/dojang/core/member"
	"github.com/dojanghq/dojang/core/payment"
)

var paymentPKCount int

type paymentRepository struct {
	db      *paymentTable
	members *memberTable
}

var _ payment.Repository = (*paymentRepository)(nil) // interface compliance check

func NewPaymentRepository(db *DB) payment.Repository {
	return &paymentRepository{db: db.payment, members: db.member}
}

func (repo *paymentRepository) query() []payment.Payment {
	payments := make([]payment.Payment, 0, len(repo.db.table))
	for _, p := range repo.db.table {
		payments = append(payments, *p)
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].ID < payments[j].ID })
	return payments
}

func (repo *paymentRepository) CreatePayment(p payment.Payment) (payment.Payment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, other := range repo.db.table {
		if other.MemberID == p.MemberID && other.Period == p.Period {
			return payment.Payment{}, payment.ErrPeriodExists
		}
		if p.TrackingCode != "" && other.TrackingCode == p.TrackingCode {
			return payment.Payment{}, payment.ErrTrackingCodeExists
		}
	}

	paymentPKCount++
	p.ID = paymentPKCount
	repo.db.table[p.ID] = &p
	return p, nil
}

func (repo *paymentRepository) GetPaymentByID(id int) (payment.Payment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if p, ok := repo.db.table[id]; ok {
		return *p, nil
	}
	return payment.Payment{}, payment.ErrNotFound
}

func (repo *paymentRepository) GetLatestPayment(memberID int) (payment.Payment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var latest *payment.Payment
	for _, p := range repo.db.table {
		if p.MemberID != memberID {
			continue
		}
		if latest == nil || p.Period.After(latest.Period) {
			latest = p
		}
	}
	if latest == nil {
		return payment.Payment{}, payment.ErrNotFound
	}
	return *latest, nil
}

func (repo *paymentRepository) GetPaymentByPeriod(memberID int, period payment.Period) (payment.Payment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, p := range repo.db.table {
		if p.MemberID == memberID && p.Period == period {
			return *p, nil
		}
	}
	return payment.Payment{}, payment.ErrNotFound
}

func (repo *paymentRepository) GetPaymentByTrackingCode(code string) (payment.Payment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if code == "" {
		return payment.Payment{}, payment.ErrNotFound
	}
	for _, p := range repo.db.table {
		if p.TrackingCode == code {
			return *p, nil
		}
	}
	return payment.Payment{}, payment.ErrNotFound
}

func (repo *paymentRepository) PaidPeriodsSince(memberID int, after, until payment.Period) ([]payment.Period, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var periods []payment.Period
	for _, p := range repo.db.table {
		if p.MemberID != memberID {
			continue
		}
		if p.Period.After(after) && !p.Period.After(until) {
			periods = append(periods, p.Period)
		}
	}
	sort.Slice(periods, func(i, j int) bool { return periods[j].After(periods[i]) })
	return periods, nil
}

func (repo *paymentRepository) FilterPayments(filter payment.QueryFilter) ([]payment.Payment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	payments := repo.query()

	if filter.Search != "" {
		var filtered []payment.Payment
		kw := strings.ToLower(filter.Search)
		for _, p := range payments {
			mbr, ok := repo.member(p.MemberID)
			if strings.Contains(strings.ToLower(p.TrackingCode), kw) ||
				(ok && (strings.Contains(strings.ToLower(mbr.Name), kw) ||
					strings.Contains(strings.ToLower(mbr.FamilyName), kw) ||
					strings.Contains(mbr.NationalID, filter.Search))) {
				filtered = append(filtered, p)
			}
		}
		payments = filtered
	}
	if payments != nil && filter.SessionID != 0 {
		var filtered []payment.Payment
		for _, p := range payments {
			if mbr, ok := repo.member(p.MemberID); ok &&
				mbr.SessionID.Valid && int(mbr.SessionID.Int) == filter.SessionID {
				filtered = append(filtered, p)
			}
		}
		payments = filtered
	}
	if payments != nil && filter.Month != 0 {
		var filtered []payment.Payment
		for _, p := range payments {
			if p.Period.Month == filter.Month {
				filtered = append(filtered, p)
			}
		}
		payments = filtered
	}
	if payments != nil && filter.Year != 0 {
		var filtered []payment.Payment
		for _, p := range payments {
			if p.Period.Year == filter.Year {
				filtered = append(filtered, p)
			}
		}
		payments = filtered
	}

	sort.Slice(payments, func(i, j int) bool { return payments[i].Period.After(payments[j].Period) })
	return payments, nil
}

func (repo *paymentRepository) member(id int) (member.Member, bool) {
	repo.members.RLock()
	defer repo.members.RUnlock()

	if m, ok := repo.members.table[id]; ok {
		return *m, true
	}
	return member.Member{}, false
}

func (repo *paymentRepository) DeletePayment(id int) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	delete(repo.db.table, id)
	return nil
}
