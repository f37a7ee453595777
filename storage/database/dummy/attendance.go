package dummydb

import (
	"sort"
	"time"

	"github.com/dojanghq/dojang/core"
	"github.com/dojanghq/dojang/core/attendance"
)

var attendancePKCount int

type attendanceRepository struct {
	db *attendanceTable
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db.attendance}
}

func (repo *attendanceRepository) UpsertRecord(rec attendance.Record) (attendance.Record, bool, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, other := range repo.db.table {
		if other.MemberID == rec.MemberID && other.SessionID == rec.SessionID && other.Date == rec.Date {
			other.Status = rec.Status
			other.UpdatedAt = rec.UpdatedAt
			return *other, false, nil
		}
	}

	attendancePKCount++
	rec.ID = attendancePKCount
	repo.db.table[rec.ID] = &rec
	return rec, true, nil
}

func (repo *attendanceRepository) GetRecordsBySessionDate(sessionID int, date core.JDate) ([]attendance.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var records []attendance.Record
	for _, rec := range repo.db.table {
		if rec.SessionID == sessionID && rec.Date == date {
			records = append(records, *rec)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].MemberID < records[j].MemberID })
	return records, nil
}

func (repo *attendanceRepository) GetRecordsByMember(memberID int) ([]attendance.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var records []attendance.Record
	for _, rec := range repo.db.table {
		if rec.MemberID == memberID {
			records = append(records, *rec)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })
	return records, nil
}

func (repo *attendanceRepository) UpdateStatusFrom(memberID, sessionID int, from core.JDate, onlyStatus, newStatus string) (int, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	now := time.Now().UTC()
	var count int
	for _, rec := range repo.db.table {
		if rec.MemberID != memberID || rec.SessionID != sessionID || rec.Date.Before(from) {
			continue
		}
		if onlyStatus != "" && rec.Status != onlyStatus {
			continue
		}
		rec.Status = newStatus
		rec.UpdatedAt = now
		count++
	}
	return count, nil
}
