package dummydb

import (
	"sync"

	"github.com/dojanghq/dojang/core/attendance"
	"github.com/dojanghq/dojang/core/club"
	"github.com/dojanghq/dojang/core/member"
	"github.com/dojanghq/dojang/core/payment"
)

type (
	DB struct {
		member     *memberTable
		club       *clubTable
		session    *sessionTable
		payment    *paymentTable
		attendance *attendanceTable
	}

	memberTable struct {
		sync.RWMutex
		table map[int]*member.Member
	}

	clubTable struct {
		sync.RWMutex
		table map[int]*club.Club
	}

	sessionTable struct {
		sync.RWMutex
		table map[int]*club.Session
	}

	paymentTable struct {
		sync.RWMutex
		table map[int]*payment.Payment
	}

	attendanceTable struct {
		sync.RWMutex
		table map[int]*attendance.Record
	}
)

func Open() (*DB, error) {
	db := &DB{
		member:     &memberTable{table: make(map[int]*member.Member)},
		club:       &clubTable{table: make(map[int]*club.Club)},
		session:    &sessionTable{table: make(map[int]*club.Session)},
		payment:    &paymentTable{table: make(map[int]*payment.Payment)},
		attendance: &attendanceTable{table: make(map[int]*attendance.Record)},
	}
	return db, nil
}
