package sqlxrepos

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/dojanghq/dojang/core"
	"github.com/dojanghq/dojang/core/attendance"
)

type dbRecord struct {
	ID        int       `db:"id"`
	MemberID  int       `db:"member_id"`
	SessionID int       `db:"session_id"`
	JDate     string    `db:"jdate"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r dbRecord) toCore() (attendance.Record, error) {
	date, err := core.ParseJDate(r.JDate)
	if err != nil {
		return attendance.Record{}, errors.Wrapf(err, "stored attendance date %q", r.JDate)
	}
	return attendance.Record{
		ID:        r.ID,
		MemberID:  r.MemberID,
		SessionID: r.SessionID,
		Date:      date,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

func toCoreRecords(rows []dbRecord) ([]attendance.Record, error) {
	records := make([]attendance.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toCore()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

type attendanceRepository struct {
	db *sqlx.DB
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *sqlx.DB) *attendanceRepository {
	return &attendanceRepository{db: db}
}

func (repo attendanceRepository) UpsertRecord(rec attendance.Record) (attendance.Record, bool, error) {
	// created_at equals updated_at only on the insert path; compared
	// server-side so both sides carry the same timestamp precision
	q := `INSERT INTO attendance (member_id, session_id, jdate, status, created_at, updated_at)
          VALUES ($1, $2, $3, $4, $5, $6)
          ON CONFLICT (member_id, session_id, jdate)
          DO UPDATE SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at
          RETURNING id, created_at, created_at = updated_at AS created`
	var created bool
	err := repo.db.QueryRow(
		q,
		rec.MemberID, rec.SessionID, rec.Date.String(), rec.Status,
		rec.CreatedAt, rec.UpdatedAt,
	).Scan(&rec.ID, &rec.CreatedAt, &created)
	if err != nil {
		return attendance.Record{}, false, errors.Wrap(err, "upserting attendance record")
	}
	return rec, created, nil
}

func (repo attendanceRepository) GetRecordsBySessionDate(sessionID int, date core.JDate) ([]attendance.Record, error) {
	var rows []dbRecord
	q := `SELECT * FROM attendance WHERE session_id = $1 AND jdate = $2 ORDER BY member_id`
	if err := repo.db.Select(&rows, q, sessionID, date.String()); err != nil {
		return nil, errors.Wrap(err, "querying session attendance")
	}
	return toCoreRecords(rows)
}

func (repo attendanceRepository) GetRecordsByMember(memberID int) ([]attendance.Record, error) {
	var rows []dbRecord
	q := `SELECT * FROM attendance WHERE member_id = $1 ORDER BY jdate`
	if err := repo.db.Select(&rows, q, memberID); err != nil {
		return nil, errors.Wrap(err, "querying member attendance")
	}
	return toCoreRecords(rows)
}

func (repo attendanceRepository) UpdateStatusFrom(memberID, sessionID int, from core.JDate, onlyStatus, newStatus string) (int, error) {
	// zero-padded jdate strings compare chronologically
	q := `UPDATE attendance SET status = $1, updated_at = $2
          WHERE member_id = $3 AND session_id = $4 AND jdate >= $5`
	args := []interface{}{newStatus, time.Now().UTC(), memberID, sessionID, from.String()}
	if onlyStatus != "" {
		q += ` AND status = $6`
		args = append(args, onlyStatus)
	}
	res, err := repo.db.Exec(q, args...)
	if err != nil {
		return 0, errors.Wrap(err, "updating attendance statuses")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "updating attendance statuses")
	}
	return int(n), nil
}
