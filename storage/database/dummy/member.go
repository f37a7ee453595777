package dummydb

import (
	"sort"
	"strings"
	"time"

	"github.com/dojanghq/dojang/core"
	"github.com/dojanghq/dojang/core/member"
)

var memberPKCount int

type memberRepository struct {
	db       *memberTable
	sessions *sessionTable
}

var _ member.Repository = (*memberRepository)(nil) // interface compliance check

func NewMemberRepository(db *DB) member.Repository {
	return &memberRepository{db: db.member, sessions: db.session}
}

func (repo *memberRepository) query() []member.Member {
	members := make([]member.Member, 0, len(repo.db.table))
	for _, m := range repo.db.table {
		members = append(members, *m)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	return members
}

func (repo *memberRepository) CreateMember(mbr member.Member) (member.Member, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	memberPKCount++
	mbr.ID = memberPKCount
	repo.db.table[mbr.ID] = &mbr
	return mbr, nil
}

func (repo *memberRepository) GetMemberByID(id int) (member.Member, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if mbr, ok := repo.db.table[id]; ok {
		return *mbr, nil
	}
	return member.Member{}, member.ErrNotFound
}

func (repo *memberRepository) QueryAllMembers() ([]member.Member, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *memberRepository) GetMembersBySession(sessionID int) ([]member.Member, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var members []member.Member
	for _, m := range repo.query() {
		if m.SessionID.Valid && int(m.SessionID.Int) == sessionID {
			members = append(members, m)
		}
	}
	return members, nil
}

func (repo *memberRepository) FilterMembers(filter member.QueryFilter, ordering []core.DBOrdering) ([]member.Member, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	members := repo.query()

	if filter.Search != "" {
		var filtered []member.Member
		kw := strings.ToLower(filter.Search)
		for _, m := range members {
			if strings.Contains(strings.ToLower(m.Name), kw) ||
				strings.Contains(strings.ToLower(m.FamilyName), kw) ||
				strings.Contains(m.NationalID, filter.Search) ||
				strings.Contains(m.Phone, filter.Search) {
				filtered = append(filtered, m)
			}
		}
		members = filtered
	}
	if members != nil && filter.ClubID != 0 {
		sessionIDs := repo.clubSessionIDs(filter.ClubID)
		var filtered []member.Member
		for _, m := range members {
			if m.SessionID.Valid {
				if _, ok := sessionIDs[int(m.SessionID.Int)]; ok {
					filtered = append(filtered, m)
				}
			}
		}
		members = filtered
	}
	if members != nil && filter.SessionID != 0 {
		var filtered []member.Member
		for _, m := range members {
			if m.SessionID.Valid && int(m.SessionID.Int) == filter.SessionID {
				filtered = append(filtered, m)
			}
		}
		members = filtered
	}
	if members != nil && filter.Belt != "" {
		var filtered []member.Member
		for _, m := range members {
			if m.Belt == filter.Belt {
				filtered = append(filtered, m)
			}
		}
		members = filtered
	}
	if members != nil && filter.Insurance != "" {
		var filtered []member.Member
		today := time.Now().UTC()
		for _, m := range members {
			if m.InsuranceStatus(today) == filter.Insurance {
				filtered = append(filtered, m)
			}
		}
		members = filtered
	}
	if members != nil && !filter.CreatedFrom.IsZero() {
		var filtered []member.Member
		timeUTC := filter.CreatedFrom.UTC()
		for _, m := range members {
			if m.CreatedAt.Equal(timeUTC) || m.CreatedAt.After(timeUTC) {
				filtered = append(filtered, m)
			}
		}
		members = filtered
	}
	if members != nil && !filter.CreatedTo.IsZero() {
		var filtered []member.Member
		timeUTC := filter.CreatedTo.UTC()
		for _, m := range members {
			if m.CreatedAt.Before(timeUTC) || m.CreatedAt.Equal(timeUTC) {
				filtered = append(filtered, m)
			}
		}
		members = filtered
	}

	orderMembers(members, ordering)
	return members, nil
}

// orderMembers applies the first recognized ordering; enough for tests.
func orderMembers(members []member.Member, ordering []core.DBOrdering) {
	for _, ord := range ordering {
		var less func(a, b member.Member) bool
		switch ord.Field {
		case "name":
			less = func(a, b member.Member) bool { return a.Name < b.Name }
		case "family_name":
			less = func(a, b member.Member) bool { return a.FamilyName < b.FamilyName }
		case "belt":
			less = func(a, b member.Member) bool { return a.Belt < b.Belt }
		case "created_at":
			less = func(a, b member.Member) bool { return a.CreatedAt.Before(b.CreatedAt) }
		default:
			continue
		}
		sort.SliceStable(members, func(i, j int) bool {
			if ord.Ascending {
				return less(members[i], members[j])
			}
			return less(members[j], members[i])
		})
		return
	}
}

func (repo *memberRepository) clubSessionIDs(clubID int) map[int]struct{} {
	repo.sessions.RLock()
	defer repo.sessions.RUnlock()

	ids := make(map[int]struct{})
	for _, s := range repo.sessions.table {
		if s.ClubID == clubID {
			ids[s.ID] = struct{}{}
		}
	}
	return ids
}

func (repo *memberRepository) UpdateMember(mbr member.Member) (member.Member, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[mbr.ID]; !ok {
		return member.Member{}, member.ErrNotFound
	}
	repo.db.table[mbr.ID] = &mbr
	return mbr, nil
}

func (repo *memberRepository) DeleteMembersByID(ids ...int) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
