package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/dojanghq/dojang/core/club"
)

type dbClub struct {
	ID        int       `db:"id"`
	Name      string    `db:"name"`
	Address   string    `db:"address"`
	Phone     string    `db:"phone"`
	CreatedAt time.Time `db:"created_at"`
}

func (c dbClub) toCore() club.Club {
	return club.Club{ID: c.ID, Name: c.Name, Address: c.Address, Phone: c.Phone, CreatedAt: c.CreatedAt}
}

type dbSession struct {
	ID        int       `db:"id"`
	ClubID    int       `db:"club_id"`
	CoachName string    `db:"coach_name"`
	DayType   string    `db:"day_type"`
	ClassTime string    `db:"class_time"`
	CreatedAt time.Time `db:"created_at"`
}

func (s dbSession) toCore() club.Session {
	return club.Session{
		ID:        s.ID,
		ClubID:    s.ClubID,
		CoachName: s.CoachName,
		DayType:   s.DayType,
		ClassTime: s.ClassTime,
		CreatedAt: s.CreatedAt,
	}
}

type clubRepository struct {
	db *sqlx.DB
}

var _ club.Repository = (*clubRepository)(nil) // interface compliance check

func NewClubRepository(db *sqlx.DB) *clubRepository {
	return &clubRepository{db: db}
}

func (repo clubRepository) CreateClub(c club.Club) (club.Club, error) {
	q := `INSERT INTO club (name, address, phone, created_at) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := repo.db.Get(&c.ID, q, c.Name, c.Address, c.Phone, c.CreatedAt); err != nil {
		return club.Club{}, errors.Wrap(err, "inserting club")
	}
	return c, nil
}

func (repo clubRepository) GetClubByID(id int) (club.Club, error) {
	var row dbClub
	if err := repo.db.Get(&row, `SELECT * FROM club WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return club.Club{}, club.ErrNotFound
		}
		return club.Club{}, errors.Wrap(err, "finding club by ID")
	}
	return row.toCore(), nil
}

func (repo clubRepository) QueryAllClubs() ([]club.Club, error) {
	var rows []dbClub
	if err := repo.db.Select(&rows, `SELECT * FROM club ORDER BY name`); err != nil {
		return nil, errors.Wrap(err, "querying clubs")
	}
	clubs := make([]club.Club, 0, len(rows))
	for _, row := range rows {
		clubs = append(clubs, row.toCore())
	}
	return clubs, nil
}

func (repo clubRepository) UpdateClub(c club.Club) (club.Club, error) {
	q := `UPDATE club SET name = $1, address = $2, phone = $3 WHERE id = $4`
	res, err := repo.db.Exec(q, c.Name, c.Address, c.Phone, c.ID)
	if err != nil {
		return club.Club{}, errors.Wrap(err, "updating club")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return club.Club{}, club.ErrNotFound
	}
	return c, nil
}

func (repo clubRepository) DeleteClub(id int) error {
	if _, err := repo.db.Exec(`DELETE FROM club WHERE id = $1`, id); err != nil {
		return errors.Wrap(err, "deleting club")
	}
	return nil
}

func (repo clubRepository) CountClubSessions(clubID int) (int, error) {
	var count int
	if err := repo.db.Get(&count, `SELECT COUNT(*) FROM session WHERE club_id = $1`, clubID); err != nil {
		return 0, errors.Wrap(err, "counting club sessions")
	}
	return count, nil
}

func (repo clubRepository) CreateSession(s club.Session) (club.Session, error) {
	q := `INSERT INTO session (club_id, coach_name, day_type, class_time, created_at)
          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := repo.db.Get(&s.ID, q, s.ClubID, s.CoachName, s.DayType, s.ClassTime, s.CreatedAt); err != nil {
		return club.Session{}, errors.Wrap(err, "inserting session")
	}
	return s, nil
}

func (repo clubRepository) GetSessionByID(id int) (club.Session, error) {
	var row dbSession
	if err := repo.db.Get(&row, `SELECT * FROM session WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return club.Session{}, club.ErrSessionNotFound
		}
		return club.Session{}, errors.Wrap(err, "finding session by ID")
	}
	return row.toCore(), nil
}

func (repo clubRepository) GetSessionsByClub(clubID int) ([]club.Session, error) {
	var rows []dbSession
	q := `SELECT * FROM session WHERE club_id = $1 ORDER BY class_time`
	if err := repo.db.Select(&rows, q, clubID); err != nil {
		return nil, errors.Wrap(err, "querying club sessions")
	}
	sessions := make([]club.Session, 0, len(rows))
	for _, row := range rows {
		sessions = append(sessions, row.toCore())
	}
	return sessions, nil
}

func (repo clubRepository) UpdateSession(s club.Session) (club.Session, error) {
	q := `UPDATE session SET coach_name = $1, day_type = $2, class_time = $3 WHERE id = $4`
	res, err := repo.db.Exec(q, s.CoachName, s.DayType, s.ClassTime, s.ID)
	if err != nil {
		return club.Session{}, errors.Wrap(err, "updating session")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return club.Session{}, club.ErrSessionNotFound
	}
	return s, nil
}

func (repo clubRepository) DeleteSession(id int) error {
	if _, err := repo.db.Exec(`DELETE FROM session WHERE id = $1`, id); err != nil {
		return errors.Wrap(err, "deleting session")
	}
	return nil
}

func (repo clubRepository) CountSessionMembers(sessionID int) (int, error) {
	var count int
	if err := repo.db.Get(&count, `SELECT COUNT(*) FROM member WHERE session_id = $1`, sessionID); err != nil {
		return 0, errors.Wrap(err, "counting session members")
	}
	return count, nil
}
