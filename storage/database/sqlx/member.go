package sqlxrepos

import (
	"database/sql"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/dojanghq/dojang/core"
	"github.com/dojanghq/dojang/core/member"
)

// orderable columns, injection guard
var memberOrderFields = map[string]struct{}{
	"name":           {},
	"family_name":    {},
	"belt":           {},
	"insurance_date": {},
	"created_at":     {},
}

type dbMember struct {
	ID            int       `db:"id"`
	Name          string    `db:"name"`
	FamilyName    string    `db:"family_name"`
	NationalID    string    `db:"national_id"`
	Phone         string    `db:"phone"`
	Belt          string    `db:"belt"`
	BirthDate     null.Time `db:"birth_date"`
	InsuranceDate null.Time `db:"insurance_date"`
	BeltDate      null.Time `db:"belt_date"`
	SessionID     null.Int  `db:"session_id"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (m dbMember) toCore() member.Member {
	return member.Member{
		ID:            m.ID,
		Name:          m.Name,
		FamilyName:    m.FamilyName,
		NationalID:    m.NationalID,
		Phone:         m.Phone,
		Belt:          m.Belt,
		BirthDate:     m.BirthDate,
		InsuranceDate: m.InsuranceDate,
		BeltDate:      m.BeltDate,
		SessionID:     m.SessionID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toCoreMembers(rows []dbMember) []member.Member {
	members := make([]member.Member, 0, len(rows))
	for _, row := range rows {
		members = append(members, row.toCore())
	}
	return members
}

type memberRepository struct {
	db *sqlx.DB
}

var _ member.Repository = (*memberRepository)(nil) // interface compliance check

func NewMemberRepository(db *sqlx.DB) *memberRepository {
	return &memberRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to member.ErrNotFound
func (repo memberRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return member.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo memberRepository) CreateMember(mbr member.Member) (member.Member, error) {
	q := `INSERT INTO member (name, family_name, national_id, phone, belt, birth_date, insurance_date, belt_date, session_id, created_at, updated_at)
          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	err := repo.db.Get(
		&mbr.ID, q,
		mbr.Name, mbr.FamilyName, mbr.NationalID, mbr.Phone, mbr.Belt,
		mbr.BirthDate, mbr.InsuranceDate, mbr.BeltDate, mbr.SessionID,
		mbr.CreatedAt, mbr.UpdatedAt,
	)
	if err != nil {
		return member.Member{}, errors.Wrap(err, "inserting member")
	}
	return mbr, nil
}

func (repo memberRepository) GetMemberByID(id int) (member.Member, error) {
	var row dbMember
	if err := repo.db.Get(&row, `SELECT * FROM member WHERE id = $1`, id); err != nil {
		return member.Member{}, repo.trapNoRowsErr(err, "finding member by ID")
	}
	return row.toCore(), nil
}

func (repo memberRepository) QueryAllMembers() ([]member.Member, error) {
	var rows []dbMember
	if err := repo.db.Select(&rows, `SELECT * FROM member ORDER BY family_name, name`); err != nil {
		return nil, errors.Wrap(err, "querying members")
	}
	return toCoreMembers(rows), nil
}

func (repo memberRepository) GetMembersBySession(sessionID int) ([]member.Member, error) {
	var rows []dbMember
	q := `SELECT * FROM member WHERE session_id = $1 ORDER BY family_name, name`
	if err := repo.db.Select(&rows, q, sessionID); err != nil {
		return nil, errors.Wrap(err, "querying session members")
	}
	return toCoreMembers(rows), nil
}

func (repo memberRepository) FilterMembers(filter member.QueryFilter, ordering []core.DBOrdering) ([]member.Member, error) {
	q := `SELECT m.* FROM member m`
	var conds []string
	var args []interface{}

	if filter.ClubID != 0 {
		q += ` JOIN session s ON s.id = m.session_id`
		conds = append(conds, `s.club_id = ?`)
		args = append(args, filter.ClubID)
	}
	if filter.Search != "" {
		val := "%" + filter.Search + "%"
		conds = append(conds, `(m.name ILIKE ? OR m.family_name ILIKE ? OR m.national_id ILIKE ? OR m.phone ILIKE ?)`)
		args = append(args, val, val, val, val)
	}
	if filter.SessionID != 0 {
		conds = append(conds, `m.session_id = ?`)
		args = append(args, filter.SessionID)
	}
	if filter.Belt != "" {
		conds = append(conds, `m.belt = ?`)
		args = append(args, filter.Belt)
	}
	switch filter.Insurance {
	case member.InsuranceExpired:
		conds = append(conds, `m.insurance_date IS NOT NULL AND m.insurance_date + 365 < current_date`)
	case member.InsuranceSoon:
		conds = append(conds, `m.insurance_date IS NOT NULL AND m.insurance_date + 365 >= current_date AND m.insurance_date + 355 <= current_date`)
	}
	if !filter.CreatedFrom.IsZero() {
		conds = append(conds, `m.created_at >= ?`)
		args = append(args, filter.CreatedFrom.UTC())
	}
	if !filter.CreatedTo.IsZero() {
		conds = append(conds, `m.created_at <= ?`)
		args = append(args, filter.CreatedTo.UTC())
	}

	if len(conds) > 0 {
		q += ` WHERE ` + conds[0]
		for _, c := range conds[1:] {
			q += ` AND ` + c
		}
	}
	if len(ordering) > 0 {
		orderList := make([]string, 0, len(ordering))
		for _, ord := range ordering {
			if _, ok := memberOrderFields[ord.Field]; ok {
				// qualify: session carries a created_at column too
				orderList = append(orderList, "m."+ord.String())
			}
		}
		if len(orderList) > 0 {
			q += ` ORDER BY ` + strings.Join(orderList, ", ")
		}
	} else {
		q += ` ORDER BY m.family_name, m.name`
	}

	var rows []dbMember
	if err := repo.db.Select(&rows, repo.db.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "filtering members")
	}
	return toCoreMembers(rows), nil
}

func (repo memberRepository) UpdateMember(mbr member.Member) (member.Member, error) {
	q := `UPDATE member SET name = $1, family_name = $2, national_id = $3, phone = $4, belt = $5,
          birth_date = $6, insurance_date = $7, belt_date = $8, session_id = $9, updated_at = $10
          WHERE id = $11`
	res, err := repo.db.Exec(
		q,
		mbr.Name, mbr.FamilyName, mbr.NationalID, mbr.Phone, mbr.Belt,
		mbr.BirthDate, mbr.InsuranceDate, mbr.BeltDate, mbr.SessionID,
		mbr.UpdatedAt, mbr.ID,
	)
	if err != nil {
		return member.Member{}, errors.Wrap(err, "updating member")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return member.Member{}, member.ErrNotFound
	}
	return mbr, nil
}

func (repo memberRepository) DeleteMembersByID(ids ...int) error {
	q, args, err := sqlx.In(`DELETE FROM member WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "deleting members")
	}
	if _, err = repo.db.Exec(repo.db.Rebind(q), args...); err != nil {
		return errors.Wrap(err, "deleting members")
	}
	return nil
}
