package dummydb

import (
	"sort"

	"github.com/dojanghq/dojang/core/club"
)

var (
	clubPKCount    int
	sessionPKCount int
)

type clubRepository struct {
	db       *clubTable
	sessions *sessionTable
	members  *memberTable
}

var _ club.Repository = (*clubRepository)(nil) // interface compliance check

func NewClubRepository(db *DB) club.Repository {
	return &clubRepository{db: db.club, sessions: db.session, members: db.member}
}

func (repo *clubRepository) CreateClub(c club.Club) (club.Club, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	clubPKCount++
	c.ID = clubPKCount
	repo.db.table[c.ID] = &c
	return c, nil
}

func (repo *clubRepository) QueryAllClubs() ([]club.Club, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	clubs := make([]club.Club, 0, len(repo.db.table))
	for _, c := range repo.db.table {
		clubs = append(clubs, *c)
	}
	sort.Slice(clubs, func(i, j int) bool { return clubs[i].ID < clubs[j].ID })
	return clubs, nil
}

func (repo *clubRepository) GetClubByID(id int) (club.Club, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if c, ok := repo.db.table[id]; ok {
		return *c, nil
	}
	return club.Club{}, club.ErrNotFound
}

func (repo *clubRepository) UpdateClub(c club.Club) (club.Club, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[c.ID]; !ok {
		return club.Club{}, club.ErrNotFound
	}
	repo.db.table[c.ID] = &c
	return c, nil
}

func (repo *clubRepository) DeleteClub(id int) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	delete(repo.db.table, id)
	return nil
}

func (repo *clubRepository) CountClubSessions(clubID int) (int, error) {
	repo.sessions.RLock()
	defer repo.sessions.RUnlock()

	var count int
	for _, s := range repo.sessions.table {
		if s.ClubID == clubID {
			count++
		}
	}
	return count, nil
}

func (repo *clubRepository) CreateSession(s club.Session) (club.Session, error) {
	repo.sessions.Lock()
	defer repo.sessions.Unlock()

	sessionPKCount++
	s.ID = sessionPKCount
	repo.sessions.table[s.ID] = &s
	return s, nil
}

func (repo *clubRepository) GetSessionByID(id int) (club.Session, error) {
	repo.sessions.RLock()
	defer repo.sessions.RUnlock()

	if s, ok := repo.sessions.table[id]; ok {
		return *s, nil
	}
	return club.Session{}, club.ErrSessionNotFound
}

func (repo *clubRepository) GetSessionsByClub(clubID int) ([]club.Session, error) {
	repo.sessions.RLock()
	defer repo.sessions.RUnlock()

	var sessions []club.Session
	for _, s := range repo.sessions.table {
		if s.ClubID == clubID {
			sessions = append(sessions, *s)
		}
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].ID < sessions[j].ID })
	return sessions, nil
}

func (repo *clubRepository) UpdateSession(s club.Session) (club.Session, error) {
	repo.sessions.Lock()
	defer repo.sessions.Unlock()

	if _, ok := repo.sessions.table[s.ID]; !ok {
		return club.Session{}, club.ErrSessionNotFound
	}
	repo.sessions.table[s.ID] = &s
	return s, nil
}

func (repo *clubRepository) DeleteSession(id int) error {
	repo.sessions.Lock()
	defer repo.sessions.Unlock()
	delete(repo.sessions.table, id)
	return nil
}

func (repo *clubRepository) CountSessionMembers(sessionID int) (int, error) {
	repo.members.RLock()
	defer repo.members.RUnlock()

	var count int
	for _, m := range repo.members.table {
		if m.SessionID.Valid && int(m.SessionID.Int) == sessionID {
			count++
		}
	}
	return count, nil
}
