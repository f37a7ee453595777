package club

import (
	"errors"
	"time"
)

var (
	// errors
	ErrNotFound        = errors.New("club not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrHasSessions     = errors.New("club still has sessions attached")
	ErrHasMembers      = errors.New("session still has members attached")
)

type (
	Repository interface {
		CreateClub(c Club) (Club, error)
		QueryAllClubs() ([]Club, error)
		GetClubByID(id int) (Club, error)
		UpdateClub(c Club) (Club, error)
		DeleteClub(id int) error
		CountClubSessions(clubID int) (int, error)

		CreateSession(s Session) (Session, error)
		GetSessionByID(id int) (Session, error)
		GetSessionsByClub(clubID int) ([]Session, error)
		UpdateSession(s Session) (Session, error)
		DeleteSession(id int) error
		CountSessionMembers(sessionID int) (int, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(nc NewClub) (Club, error) {
	return svc.repo.CreateClub(Club{
		Name:      nc.Name,
		Address:   nc.Address,
		Phone:     nc.Phone,
		CreatedAt: time.Now().UTC(),
	})
}

func (svc *Service) QueryAll() ([]Club, error) {
	return svc.repo.QueryAllClubs()
}

func (svc *Service) GetByID(id int) (Club, error) {
	return svc.repo.GetClubByID(id)
}

func (svc *Service) Update(id int, uc UpdateClub) (Club, error) {
	orig, err := svc.repo.GetClubByID(id)
	if err != nil {
		return Club{}, err
	}
	if uc.Name != "" {
		orig.Name = uc.Name
	}
	if uc.Address != "" {
		orig.Address = uc.Address
	}
	if uc.Phone != "" {
		orig.Phone = uc.Phone
	}
	return svc.repo.UpdateClub(orig)
}

// Delete removes a club. A club with sessions attached cannot be deleted.
func (svc *Service) Delete(id int) error {
	count, err := svc.repo.CountClubSessions(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrHasSessions
	}
	return svc.repo.DeleteClub(id)
}

func (svc *Service) AddSession(ns NewSession) (Session, error) {
	if _, err := svc.repo.GetClubByID(ns.ClubID); err != nil {
		return Session{}, err
	}
	return svc.repo.CreateSession(Session{
		ClubID:    ns.ClubID,
		CoachName: ns.CoachName,
		DayType:   ns.DayType,
		ClassTime: ns.ClassTime,
		CreatedAt: time.Now().UTC(),
	})
}

func (svc *Service) GetSession(id int) (Session, error) {
	return svc.repo.GetSessionByID(id)
}

func (svc *Service) SessionsByClub(clubID int) ([]Session, error) {
	return svc.repo.GetSessionsByClub(clubID)
}

func (svc *Service) UpdateSession(id int, us UpdateSession) (Session, error) {
	orig, err := svc.repo.GetSessionByID(id)
	if err != nil {
		return Session{}, err
	}
	if us.CoachName != "" {
		orig.CoachName = us.CoachName
	}
	if us.DayType != "" {
		orig.DayType = us.DayType
	}
	if us.ClassTime != "" {
		orig.ClassTime = us.ClassTime
	}
	return svc.repo.UpdateSession(orig)
}

// DeleteSession removes a session. A session with members assigned cannot
// be deleted.
func (svc *Service) DeleteSession(id int) error {
	count, err := svc.repo.CountSessionMembers(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrHasMembers
	}
	return svc.repo.DeleteSession(id)
}
