package reservation

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/metinatakli/bus-booking-system/internal/domain"
)

type holdKey struct {
	scheduleID int
	sessionID  string
}

type memoryHold struct {
	hold          domain.Hold
	pinned        bool
	origExpiresAt time.Time
}

// MemoryHoldStore keeps holds in process memory. It is only suitable for a
// single API instance.
type MemoryHoldStore struct {
	mu      sync.Mutex
	now     func() time.Time
	holds   map[holdKey]*memoryHold
	holders map[int]map[int]string
	booked  map[int]map[int]struct{}
}

func NewMemoryHoldStore(now func() time.Time) *MemoryHoldStore {
	if now == nil {
		now = time.Now
	}

	return &MemoryHoldStore{
		now:     now,
		holds:   make(map[holdKey]*memoryHold),
		holders: make(map[int]map[int]string),
		booked:  make(map[int]map[int]struct{}),
	}
}

func (s *MemoryHoldStore) Acquire(ctx context.Context, hold domain.Hold) (*domain.Hold, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	key := holdKey{hold.ScheduleID, hold.SessionID}
	prev := s.holds[key]

	if prev != nil && prev.pinned && prev.hold.Live(now) {
		return nil, domain.ErrCommitInProgress
	}

	var conflicts []domain.SeatConflict
	for _, seatID := range hold.SeatIDs {
		if _, ok := s.booked[hold.ScheduleID][seatID]; ok {
			conflicts = append(conflicts, domain.SeatConflict{SeatID: seatID, HolderRef: domain.BookedHolderRef})
			continue
		}

		owner, ok := s.liveOwner(hold.ScheduleID, seatID, now)
		if ok && owner != hold.SessionID {
			conflicts = append(conflicts, domain.SeatConflict{SeatID: seatID, HolderRef: domain.HolderRef(owner)})
		}
	}

	if len(conflicts) > 0 {
		return nil, &domain.SeatsUnavailableError{ScheduleID: hold.ScheduleID, Conflicts: conflicts}
	}

	holders := s.scheduleHolders(hold.ScheduleID)

	var previous *domain.Hold
	if prev != nil {
		var released []int
		for _, seatID := range prev.hold.SeatIDs {
			if !hold.Covers(seatID) && holders[seatID] == hold.SessionID {
				delete(holders, seatID)
				released = append(released, seatID)
			}
		}

		if len(released) > 0 {
			previous = cloneHold(prev.hold)
			previous.SeatIDs = released
		}
	}

	for _, seatID := range hold.SeatIDs {
		holders[seatID] = hold.SessionID
	}

	s.holds[key] = &memoryHold{hold: *cloneHold(hold)}

	return previous, nil
}

func (s *MemoryHoldStore) Release(ctx context.Context, scheduleID int, sessionID string, seatIDs []int) (*domain.Hold, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	key := holdKey{scheduleID, sessionID}
	mh := s.holds[key]

	live := mh != nil && mh.hold.Live(now)
	if live && mh.pinned {
		return nil, domain.ErrCommitInProgress
	}

	notHeld := &domain.NotHeldError{ScheduleID: scheduleID}
	for _, seatID := range seatIDs {
		if live && mh.hold.Covers(seatID) {
			continue
		}

		notHeld.SeatIDs = append(notHeld.SeatIDs, seatID)
		if owner, ok := s.liveOwner(scheduleID, seatID, now); ok && owner != sessionID {
			notHeld.HeldByOthers = append(notHeld.HeldByOthers, seatID)
		}
	}

	if len(notHeld.SeatIDs) > 0 {
		return nil, notHeld
	}

	holders := s.scheduleHolders(scheduleID)
	for _, seatID := range seatIDs {
		if holders[seatID] == sessionID {
			delete(holders, seatID)
		}
	}

	mh.hold.SeatIDs = slices.DeleteFunc(mh.hold.SeatIDs, func(seatID int) bool {
		return slices.Contains(seatIDs, seatID)
	})

	if len(mh.hold.SeatIDs) == 0 {
		delete(s.holds, key)
		return nil, nil
	}

	return cloneHold(mh.hold), nil
}

func (s *MemoryHoldStore) Get(ctx context.Context, scheduleID int, sessionID string) (*domain.Hold, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mh := s.holds[holdKey{scheduleID, sessionID}]
	if mh == nil || !mh.hold.Live(s.now()) {
		return nil, domain.ErrRecordNotFound
	}

	return cloneHold(mh.hold), nil
}

func (s *MemoryHoldStore) Pin(ctx context.Context, scheduleID int, sessionID string, seatIDs []int, until time.Time) (*domain.Hold, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mh := s.holds[holdKey{scheduleID, sessionID}]
	if mh == nil {
		return nil, &domain.NotHeldError{ScheduleID: scheduleID, SeatIDs: seatIDs}
	}

	if !mh.hold.Live(s.now()) {
		return nil, domain.ErrHoldExpired
	}

	if mh.pinned {
		return nil, domain.ErrCommitInProgress
	}

	if !sameSeats(mh.hold.SeatIDs, seatIDs) {
		return nil, seatMismatchError(mh.hold.SeatIDs, seatIDs)
	}

	mh.pinned = true
	mh.origExpiresAt = mh.hold.ExpiresAt
	if until.After(mh.hold.ExpiresAt) {
		mh.hold.ExpiresAt = until
	}

	return cloneHold(mh.hold), nil
}

func (s *MemoryHoldStore) Unpin(ctx context.Context, hold domain.Hold) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mh := s.holds[holdKey{hold.ScheduleID, hold.SessionID}]
	if mh == nil || mh.hold.ID != hold.ID || !mh.pinned {
		return nil
	}

	mh.pinned = false
	mh.hold.ExpiresAt = mh.origExpiresAt

	return nil
}

func (s *MemoryHoldStore) Promote(ctx context.Context, hold domain.Hold) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	booked := s.booked[hold.ScheduleID]
	if booked == nil {
		booked = make(map[int]struct{})
		s.booked[hold.ScheduleID] = booked
	}

	holders := s.scheduleHolders(hold.ScheduleID)
	for _, seatID := range hold.SeatIDs {
		booked[seatID] = struct{}{}
		if holders[seatID] == hold.SessionID {
			delete(holders, seatID)
		}
	}

	key := holdKey{hold.ScheduleID, hold.SessionID}
	if mh := s.holds[key]; mh != nil && mh.hold.ID == hold.ID {
		delete(s.holds, key)
	}

	return nil
}

func (s *MemoryHoldStore) Unbook(ctx context.Context, scheduleID int, seatIDs []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, seatID := range seatIDs {
		delete(s.booked[scheduleID], seatID)
	}

	return nil
}

func (s *MemoryHoldStore) Holders(ctx context.Context, scheduleID int) (map[int]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	result := make(map[int]string)

	for seatID := range s.holders[scheduleID] {
		if owner, ok := s.liveOwner(scheduleID, seatID, now); ok {
			result[seatID] = owner
		}
	}

	return result, nil
}

func (s *MemoryHoldStore) SweepExpired(ctx context.Context) ([]domain.Hold, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	var swept []domain.Hold
	for key, mh := range s.holds {
		if mh.hold.Live(now) {
			continue
		}

		holders := s.scheduleHolders(key.scheduleID)

		freed := make([]int, 0, len(mh.hold.SeatIDs))
		for _, seatID := range mh.hold.SeatIDs {
			if holders[seatID] == key.sessionID {
				delete(holders, seatID)
				freed = append(freed, seatID)
			}
		}

		expired := cloneHold(mh.hold)
		expired.SeatIDs = freed
		swept = append(swept, *expired)

		delete(s.holds, key)
	}

	return swept, nil
}

// liveOwner reports the session whose live hold covers the seat. Callers must hold s.mu.
func (s *MemoryHoldStore) liveOwner(scheduleID, seatID int, now time.Time) (string, bool) {
	owner, ok := s.holders[scheduleID][seatID]
	if !ok {
		return "", false
	}

	mh := s.holds[holdKey{scheduleID, owner}]
	if mh == nil || !mh.hold.Live(now) || !mh.hold.Covers(seatID) {
		return "", false
	}

	return owner, true
}

func (s *MemoryHoldStore) scheduleHolders(scheduleID int) map[int]string {
	holders := s.holders[scheduleID]
	if holders == nil {
		holders = make(map[int]string)
		s.holders[scheduleID] = holders
	}

	return holders
}

func cloneHold(h domain.Hold) *domain.Hold {
	h.SeatIDs = slices.Clone(h.SeatIDs)
	return &h
}

func sameSeats(held, requested []int) bool {
	if len(held) != len(requested) {
		return false
	}

	for _, seatID := range requested {
		if !slices.Contains(held, seatID) {
			return false
		}
	}

	return true
}

func seatMismatchError(held, requested []int) error {
	return domain.NewInvalidRequestError("requested seats %v do not match the held seats %v", requested, held)
}
