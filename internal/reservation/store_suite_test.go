package reservation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/metinatakli/bus-booking-system/internal/domain"
	"github.com/stretchr/testify/suite"
)

const (
	testScheduleID = 7
	testWindow     = 120 * time.Second
	sessionA       = "session-a"
	sessionB       = "session-b"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// HoldStoreSuite runs the same behavioural checks against every HoldStore implementation.
type HoldStoreSuite struct {
	suite.Suite
	newStore func(now func() time.Time) domain.HoldStore
	reset    func()
	clock    *fakeClock
	store    domain.HoldStore
	ctx      context.Context
}

func (s *HoldStoreSuite) SetupTest() {
	if s.reset != nil {
		s.reset()
	}

	s.ctx = context.Background()
	s.clock = newFakeClock()
	s.store = s.newStore(s.clock.Now)
}

func (s *HoldStoreSuite) acquire(sessionID string, seatIDs ...int) (*domain.Hold, error) {
	hold := domain.NewHold(testScheduleID, seatIDs, sessionID, s.clock.Now(), testWindow)
	return s.store.Acquire(s.ctx, hold)
}

func (s *HoldStoreSuite) mustAcquire(sessionID string, seatIDs ...int) {
	_, err := s.acquire(sessionID, seatIDs...)
	s.Require().NoError(err)
}

func (s *HoldStoreSuite) holders() map[int]string {
	holders, err := s.store.Holders(s.ctx, testScheduleID)
	s.Require().NoError(err)
	return holders
}

func (s *HoldStoreSuite) TestAcquireReportsOnlyBlockedSeats() {
	s.mustAcquire(sessionA, 1, 2)

	_, err := s.acquire(sessionB, 2, 3)

	var unavailable *domain.SeatsUnavailableError
	s.Require().ErrorAs(err, &unavailable)
	s.Equal([]domain.SeatConflict{{SeatID: 2, HolderRef: domain.HolderRef(sessionA)}}, unavailable.Conflicts)
	s.Equal(map[int]string{1: sessionA, 2: sessionA}, s.holders())
}

func (s *HoldStoreSuite) TestExpiredHoldDoesNotBlock() {
	s.mustAcquire(sessionA, 1, 2)

	s.clock.Advance(testWindow + 5*time.Second)

	s.mustAcquire(sessionB, 2, 3)
	s.Equal(map[int]string{2: sessionB, 3: sessionB}, s.holders())

	_, err := s.store.Get(s.ctx, testScheduleID, sessionA)
	s.ErrorIs(err, domain.ErrRecordNotFound)
}

func (s *HoldStoreSuite) TestAcquireSupersedesPreviousHold() {
	s.mustAcquire(sessionA, 1, 2)

	prev, err := s.acquire(sessionA, 2, 3)
	s.Require().NoError(err)
	s.Require().NotNil(prev)
	s.Equal([]int{1}, prev.SeatIDs)

	s.Equal(map[int]string{2: sessionA, 3: sessionA}, s.holders())

	s.mustAcquire(sessionB, 1)
}

func (s *HoldStoreSuite) TestAcquireAfterExpiryReportsOnlyFreedSeats() {
	tests := []struct {
		name     string
		retaken  []int
		next     []int
		expected []int
	}{
		{name: "seat retaken by another session", retaken: []int{1}, next: []int{3}, expected: []int{2}},
		{name: "every seat retaken", retaken: []int{1, 2}, next: []int{3}},
		{name: "nothing retaken", next: []int{2, 3}, expected: []int{1}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			s.mustAcquire(sessionA, 1, 2)
			s.clock.Advance(testWindow + time.Second)

			if len(tt.retaken) > 0 {
				s.mustAcquire(sessionB, tt.retaken...)
			}

			prev, err := s.acquire(sessionA, tt.next...)
			s.Require().NoError(err)

			if tt.expected == nil {
				s.Nil(prev)
			} else {
				s.Require().NotNil(prev)
				s.Equal(tt.expected, prev.SeatIDs)
			}

			for _, seatID := range tt.retaken {
				s.Equal(sessionB, s.holders()[seatID])
			}
		})
	}
}

func (s *HoldStoreSuite) TestReleaseSubsetKeepsRemainder() {
	s.mustAcquire(sessionA, 1, 2, 3)

	remaining, err := s.store.Release(s.ctx, testScheduleID, sessionA, []int{2})
	s.Require().NoError(err)
	s.Require().NotNil(remaining)
	s.ElementsMatch([]int{1, 3}, remaining.SeatIDs)

	hold, err := s.store.Get(s.ctx, testScheduleID, sessionA)
	s.Require().NoError(err)
	s.ElementsMatch([]int{1, 3}, hold.SeatIDs)

	s.mustAcquire(sessionB, 2)
}

func (s *HoldStoreSuite) TestReleaseAllRemovesHold() {
	s.mustAcquire(sessionA, 1, 2)

	remaining, err := s.store.Release(s.ctx, testScheduleID, sessionA, []int{1, 2})
	s.Require().NoError(err)
	s.Nil(remaining)

	_, err = s.store.Get(s.ctx, testScheduleID, sessionA)
	s.ErrorIs(err, domain.ErrRecordNotFound)
	s.Empty(s.holders())
}

func (s *HoldStoreSuite) TestReleaseNotHeldChangesNothing() {
	s.mustAcquire(sessionA, 1, 2)
	s.mustAcquire(sessionB, 3)

	_, err := s.store.Release(s.ctx, testScheduleID, sessionA, []int{1, 3, 4})

	var notHeld *domain.NotHeldError
	s.Require().ErrorAs(err, &notHeld)
	s.ErrorIs(err, domain.ErrNotHeld)
	s.Equal([]int{3, 4}, notHeld.SeatIDs)
	s.Equal([]int{3}, notHeld.HeldByOthers)

	s.Equal(map[int]string{1: sessionA, 2: sessionA, 3: sessionB}, s.holders())
}

func (s *HoldStoreSuite) TestPinKeepsHoldThroughCommit() {
	s.mustAcquire(sessionA, 1, 2)
	original, err := s.store.Get(s.ctx, testScheduleID, sessionA)
	s.Require().NoError(err)

	s.clock.Advance(testWindow - time.Second)

	pinned, err := s.store.Pin(s.ctx, testScheduleID, sessionA, []int{1, 2}, s.clock.Now().Add(30*time.Second))
	s.Require().NoError(err)
	s.True(pinned.ExpiresAt.After(original.ExpiresAt))
	s.Equal(original.ID, pinned.ID)

	_, err = s.acquire(sessionA, 3)
	s.ErrorIs(err, domain.ErrCommitInProgress)

	_, err = s.store.Release(s.ctx, testScheduleID, sessionA, []int{1})
	s.ErrorIs(err, domain.ErrCommitInProgress)

	_, err = s.store.Pin(s.ctx, testScheduleID, sessionA, []int{1, 2}, s.clock.Now().Add(30*time.Second))
	s.ErrorIs(err, domain.ErrCommitInProgress)

	s.clock.Advance(5 * time.Second)

	expired, err := s.store.SweepExpired(s.ctx)
	s.Require().NoError(err)
	s.Empty(expired)
	s.Equal(map[int]string{1: sessionA, 2: sessionA}, s.holders())
}

func (s *HoldStoreSuite) TestUnpinRestoresOriginalExpiry() {
	s.mustAcquire(sessionA, 1)
	original, err := s.store.Get(s.ctx, testScheduleID, sessionA)
	s.Require().NoError(err)

	pinned, err := s.store.Pin(s.ctx, testScheduleID, sessionA, []int{1}, s.clock.Now().Add(testWindow*2))
	s.Require().NoError(err)

	s.Require().NoError(s.store.Unpin(s.ctx, *pinned))

	restored, err := s.store.Get(s.ctx, testScheduleID, sessionA)
	s.Require().NoError(err)
	s.True(original.ExpiresAt.Equal(restored.ExpiresAt))

	_, err = s.store.Release(s.ctx, testScheduleID, sessionA, []int{1})
	s.NoError(err)
}

func (s *HoldStoreSuite) TestPinFailures() {
	_, err := s.store.Pin(s.ctx, testScheduleID, sessionA, []int{1}, s.clock.Now())
	s.ErrorIs(err, domain.ErrNotHeld)

	s.mustAcquire(sessionA, 1, 2)

	_, err = s.store.Pin(s.ctx, testScheduleID, sessionA, []int{1}, s.clock.Now())
	var invalid *domain.InvalidRequestError
	s.ErrorAs(err, &invalid)

	s.clock.Advance(testWindow)

	_, err = s.store.Pin(s.ctx, testScheduleID, sessionA, []int{1, 2}, s.clock.Now().Add(time.Minute))
	s.ErrorIs(err, domain.ErrHoldExpired)
}

func (s *HoldStoreSuite) TestPromoteBooksSeats() {
	s.mustAcquire(sessionA, 1, 2)

	pinned, err := s.store.Pin(s.ctx, testScheduleID, sessionA, []int{1, 2}, s.clock.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.store.Promote(s.ctx, *pinned))

	_, err = s.store.Get(s.ctx, testScheduleID, sessionA)
	s.ErrorIs(err, domain.ErrRecordNotFound)
	s.Empty(s.holders())

	_, err = s.acquire(sessionB, 2, 3)
	var unavailable *domain.SeatsUnavailableError
	s.Require().ErrorAs(err, &unavailable)
	s.Equal([]domain.SeatConflict{{SeatID: 2, HolderRef: domain.BookedHolderRef}}, unavailable.Conflicts)

	s.Require().NoError(s.store.Unbook(s.ctx, testScheduleID, []int{1, 2}))
	s.mustAcquire(sessionB, 2, 3)
}

func (s *HoldStoreSuite) TestSweepExpiredFreesOnlyOwnedSeats() {
	s.mustAcquire(sessionA, 1, 2)
	s.clock.Advance(testWindow)

	// seat 2 is taken over by B after A's hold lapsed
	s.mustAcquire(sessionB, 2)

	expired, err := s.store.SweepExpired(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(expired, 1)
	s.Equal(sessionA, expired[0].SessionID)
	s.Equal([]int{1}, expired[0].SeatIDs)

	s.Equal(map[int]string{2: sessionB}, s.holders())

	expired, err = s.store.SweepExpired(s.ctx)
	s.Require().NoError(err)
	s.Empty(expired)
}

func (s *HoldStoreSuite) TestConcurrentAcquireHasSingleWinner() {
	const contenders = 10

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners []string
		losers  []*domain.SeatsUnavailableError
	)

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(sessionID string) {
			defer wg.Done()

			_, err := s.acquire(sessionID, 5)

			mu.Lock()
			defer mu.Unlock()

			var unavailable *domain.SeatsUnavailableError
			switch {
			case err == nil:
				winners = append(winners, sessionID)
			case errors.As(err, &unavailable):
				losers = append(losers, unavailable)
			default:
				s.Fail("unexpected error", err)
			}
		}(string(rune('a' + i)))
	}

	wg.Wait()

	s.Require().Len(winners, 1)
	s.Len(losers, contenders-1)
	for _, l := range losers {
		s.Equal([]domain.SeatConflict{{SeatID: 5, HolderRef: domain.HolderRef(winners[0])}}, l.Conflicts)
	}
}
