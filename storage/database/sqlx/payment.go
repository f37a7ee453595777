package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/dojanghq/dojang/core/payment"
)

const pqUniqueViolation = "23505"

type dbPayment struct {
	ID           int       `db:"id"`
	MemberID     int       `db:"member_id"`
	Amount       int       `db:"amount"`
	PaymentDate  time.Time `db:"payment_date"`
	Year         int       `db:"year"`
	Month        int       `db:"month"`
	TrackingCode string    `db:"tracking_code"`
	CreatedAt    time.Time `db:"created_at"`
}

func (p dbPayment) toCore() payment.Payment {
	return payment.Payment{
		ID:           p.ID,
		MemberID:     p.MemberID,
		Amount:       p.Amount,
		PaymentDate:  p.PaymentDate,
		Period:       payment.Period{Year: p.Year, Month: p.Month},
		TrackingCode: p.TrackingCode,
		CreatedAt:    p.CreatedAt,
	}
}

type paymentRepository struct {
	db *sqlx.DB
}

var _ payment.Repository = (*paymentRepository)(nil) // interface compliance check

func NewPaymentRepository(db *sqlx.DB) *paymentRepository {
	return &paymentRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to payment.ErrNotFound
func (repo paymentRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return payment.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo paymentRepository) CreatePayment(p payment.Payment) (payment.Payment, error) {
	q := `INSERT INTO payment (member_id, amount, payment_date, year, month, tracking_code, created_at)
          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := repo.db.Get(
		&p.ID, q,
		p.MemberID, p.Amount, p.PaymentDate, p.Period.Year, p.Period.Month,
		p.TrackingCode, p.CreatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pqUniqueViolation {
			if pqErr.Constraint == "payment_tracking_code_uniq" {
				return payment.Payment{}, payment.ErrTrackingCodeExists
			}
			return payment.Payment{}, payment.ErrPeriodExists
		}
		return payment.Payment{}, errors.Wrap(err, "inserting payment")
	}
	return p, nil
}

func (repo paymentRepository) GetPaymentByID(id int) (payment.Payment, error) {
	var row dbPayment
	if err := repo.db.Get(&row, `SELECT * FROM payment WHERE id = $1`, id); err != nil {
		return payment.Payment{}, repo.trapNoRowsErr(err, "finding payment by ID")
	}
	return row.toCore(), nil
}

func (repo paymentRepository) GetLatestPayment(memberID int) (payment.Payment, error) {
	var row dbPayment
	q := `SELECT * FROM payment WHERE member_id = $1 ORDER BY year DESC, month DESC LIMIT 1`
	if err := repo.db.Get(&row, q, memberID); err != nil {
		return payment.Payment{}, repo.trapNoRowsErr(err, "finding latest payment")
	}
	return row.toCore(), nil
}

func (repo paymentRepository) GetPaymentByPeriod(memberID int, period payment.Period) (payment.Payment, error) {
	var row dbPayment
	q := `SELECT * FROM payment WHERE member_id = $1 AND year = $2 AND month = $3`
	if err := repo.db.Get(&row, q, memberID, period.Year, period.Month); err != nil {
		return payment.Payment{}, repo.trapNoRowsErr(err, "finding payment by period")
	}
	return row.toCore(), nil
}

func (repo paymentRepository) GetPaymentByTrackingCode(code string) (payment.Payment, error) {
	var row dbPayment
	q := `SELECT * FROM payment WHERE tracking_code = $1 AND tracking_code <> ''`
	if err := repo.db.Get(&row, q, code); err != nil {
		return payment.Payment{}, repo.trapNoRowsErr(err, "finding payment by tracking code")
	}
	return row.toCore(), nil
}

func (repo paymentRepository) PaidPeriodsSince(memberID int, after, until payment.Period) ([]payment.Period, error) {
	var rows []dbPayment
	q := `SELECT * FROM payment
          WHERE member_id = $1
            AND (year * 12 + month) > ($2 * 12 + $3)
            AND (year * 12 + month) <= ($4 * 12 + $5)
          ORDER BY year, month`
	err := repo.db.Select(&rows, q, memberID, after.Year, after.Month, until.Year, until.Month)
	if err != nil {
		return nil, errors.Wrap(err, "querying paid periods")
	}
	periods := make([]payment.Period, 0, len(rows))
	for _, row := range rows {
		periods = append(periods, payment.Period{Year: row.Year, Month: row.Month})
	}
	return periods, nil
}

func (repo paymentRepository) FilterPayments(filter payment.QueryFilter) ([]payment.Payment, error) {
	q := `SELECT p.* FROM payment p`
	var conds []string
	var args []interface{}

	if filter.Search != "" || filter.SessionID != 0 {
		q += ` JOIN member m ON m.id = p.member_id`
	}
	if filter.Search != "" {
		val := "%" + filter.Search + "%"
		conds = append(conds, `(m.name ILIKE ? OR m.family_name ILIKE ? OR m.national_id ILIKE ? OR p.tracking_code ILIKE ?)`)
		args = append(args, val, val, val, val)
	}
	if filter.SessionID != 0 {
		conds = append(conds, `m.session_id = ?`)
		args = append(args, filter.SessionID)
	}
	if filter.Month != 0 {
		conds = append(conds, `p.month = ?`)
		args = append(args, filter.Month)
	}
	if filter.Year != 0 {
		conds = append(conds, `p.year = ?`)
		args = append(args, filter.Year)
	}

	if len(conds) > 0 {
		q += ` WHERE ` + conds[0]
		for _, c := range conds[1:] {
			q += ` AND ` + c
		}
	}
	q += ` ORDER BY p.year DESC, p.month DESC`

	var rows []dbPayment
	if err := repo.db.Select(&rows, repo.db.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "filtering payments")
	}
	payments := make([]payment.Payment, 0, len(rows))
	for _, row := range rows {
		payments = append(payments, row.toCore())
	}
	return payments, nil
}

func (repo paymentRepository) DeletePayment(id int) error {
	if _, err := repo.db.Exec(`DELETE FROM payment WHERE id = $1`, id); err != nil {
		return errors.Wrap(err, "deleting payment")
	}
	return nil
}
