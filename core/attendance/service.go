package attendance

import (
	"errors"
	"time"

	"github.com/dojanghq/dojang/core"
)

var (
	// errors
	ErrNotFound = errors.New("attendance record not found")
)

type (
	Repository interface {
		// UpsertRecord inserts the record, or overwrites the status of the
		// existing record with the same (member, session, date) triple.
		// It reports whether a new record was created.
		UpsertRecord(rec Record) (Record, bool, error)
		GetRecordsBySessionDate(sessionID int, date core.JDate) ([]Record, error)
		GetRecordsByMember(memberID int) ([]Record, error)
		// UpdateStatusFrom rewrites the status of the member's records in one
		// session, dated on or after `from`. A non-empty `onlyStatus`
		// restricts the update to records currently in that status. It
		// returns the number of records changed.
		UpdateStatusFrom(memberID, sessionID int, from core.JDate, onlyStatus, newStatus string) (int, error)
	}

	Service struct {
		repo Repository
		cal  core.Calendar
	}
)

func NewService(repo Repository, cal core.Calendar) *Service {
	return &Service{repo: repo, cal: cal}
}

// Record saves one attendance mark. Saving the same (member, session, date)
// twice overwrites the earlier status. The second return reports whether a
// new record was created rather than an existing one updated.
func (svc *Service) Record(nr NewRecord) (Record, bool, error) {
	date, err := core.ParseJDate(nr.Date)
	if err != nil {
		return Record{}, false, err
	}
	now := time.Now().UTC()
	rec := Record{
		MemberID:  nr.MemberID,
		SessionID: nr.SessionID,
		Date:      date,
		Status:    nr.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.UpsertRecord(rec)
}

func (svc *Service) BySessionDate(sessionID int, date core.JDate) ([]Record, error) {
	return svc.repo.GetRecordsBySessionDate(sessionID, date)
}

func (svc *Service) ByMember(memberID int) ([]Record, error) {
	return svc.repo.GetRecordsByMember(memberID)
}

// Suspend marks the member's records in the given session from today onward
// as suspended, regardless of their current status. Past records and the
// member's other sessions are left untouched.
func (svc *Service) Suspend(memberID, sessionID int) (int, error) {
	return svc.repo.UpdateStatusFrom(memberID, sessionID, svc.cal.Today(), "", StatusSuspended)
}

// Reactivate turns the member's suspended records in the given session from
// today onward into absences. Statuses held before the suspension are not
// restored.
func (svc *Service) Reactivate(memberID, sessionID int) (int, error) {
	return svc.repo.UpdateStatusFrom(memberID, sessionID, svc.cal.Today(), StatusSuspended, StatusAbsent)
}
