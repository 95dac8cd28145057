// Package reservation arbitrates concurrent seat holds on a schedule and turns
// paid holds into bookings.
//
// Seats move from available to held by exactly one session, and from held to
// booked through Commit. Holds expire after the configured window; expired
// holds never block other sessions, and the sweeper only removes them and
// announces the freed seats.
package reservation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/metinatakli/bus-booking-system/internal/domain"
	"go.opentelemetry.io/otel/metric"
)

const (
	DefaultHoldWindow      = 10 * time.Minute
	DefaultMaxSeatsPerHold = 6
	DefaultCommitGrace     = 30 * time.Second
)

type Config struct {
	HoldWindow      time.Duration
	MaxSeatsPerHold int
	// CommitGrace is how long a hold stays valid once a commit has started,
	// even if its window ends in the meantime.
	CommitGrace time.Duration
}

type Coordinator struct {
	cfg         Config
	holds       domain.HoldStore
	seats       domain.SeatRepository
	bookings    domain.BookingRepository
	broadcaster domain.Broadcaster
	logger      *slog.Logger
	now         func() time.Time
	meter       metric.Meter
	metrics     *coordinatorMetrics
}

type Option func(*Coordinator)

func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		c.now = now
	}
}

func WithMeter(meter metric.Meter) Option {
	return func(c *Coordinator) {
		c.meter = meter
	}
}

func NewCoordinator(
	cfg Config,
	holds domain.HoldStore,
	seats domain.SeatRepository,
	bookings domain.BookingRepository,
	broadcaster domain.Broadcaster,
	logger *slog.Logger,
	opts ...Option) (*Coordinator, error) {

	if cfg.HoldWindow <= 0 {
		cfg.HoldWindow = DefaultHoldWindow
	}
	if cfg.MaxSeatsPerHold <= 0 {
		cfg.MaxSeatsPerHold = DefaultMaxSeatsPerHold
	}
	if cfg.CommitGrace <= 0 {
		cfg.CommitGrace = DefaultCommitGrace
	}

	c := &Coordinator{
		cfg:         cfg,
		holds:       holds,
		seats:       seats,
		bookings:    bookings,
		broadcaster: broadcaster,
		logger:      logger,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	m, err := newCoordinatorMetrics(c.meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create reservation metrics: %w", err)
	}
	c.metrics = m

	return c, nil
}

func (c *Coordinator) Config() Config {
	return c.cfg
}

// AttemptHold gives the session a hold on seatIDs, replacing its previous hold
// on the schedule. It fails with *domain.SeatsUnavailableError listing every
// requested seat that is booked or held by another session.
func (c *Coordinator) AttemptHold(ctx context.Context, scheduleID int, seatIDs []int, sessionID string) (*domain.Hold, error) {
	if sessionID == "" {
		return nil, domain.NewInvalidRequestError("a session is required to hold seats")
	}

	seatIDs, err := c.validateSeats(ctx, scheduleID, seatIDs)
	if err != nil {
		return nil, err
	}

	booked, err := c.bookings.GetBookedSeats(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get booked seats: %w", err)
	}

	if conflicts := bookedConflicts(seatIDs, booked); len(conflicts) > 0 {
		return nil, c.rejectBooked(ctx, scheduleID, seatIDs, sessionID, conflicts)
	}

	ref := domain.HolderRef(sessionID)
	now := c.now()

	c.broadcast(ctx, domain.SeatEvent{
		Type:       domain.EventSeatsBeingLocked,
		ScheduleID: scheduleID,
		SeatIDs:    seatIDs,
		SessionID:  ref,
		Timestamp:  now,
	})

	hold := domain.NewHold(scheduleID, seatIDs, sessionID, now, c.cfg.HoldWindow)

	prev, err := c.holds.Acquire(ctx, hold)
	if err != nil {
		var unavailable *domain.SeatsUnavailableError
		switch {
		case errors.As(err, &unavailable):
			c.metrics.holdConflicts.Add(ctx, 1, scheduleAttr(scheduleID))
			return nil, err
		case errors.Is(err, domain.ErrCommitInProgress):
			return nil, err
		default:
			return nil, fmt.Errorf("failed to acquire hold: %w", err)
		}
	}

	if prev != nil {
		dropped := slices.DeleteFunc(slices.Clone(prev.SeatIDs), hold.Covers)
		if len(dropped) > 0 {
			c.broadcast(ctx, domain.SeatEvent{
				Type:       domain.EventSeatsUnlocked,
				ScheduleID: scheduleID,
				SeatIDs:    dropped,
				SessionID:  ref,
				Timestamp:  now,
			})
		}
	}

	c.metrics.holdsAcquired.Add(ctx, 1, scheduleAttr(scheduleID))

	c.broadcast(ctx, domain.SeatEvent{
		Type:       domain.EventSeatsLocked,
		ScheduleID: scheduleID,
		SeatIDs:    hold.SeatIDs,
		SessionID:  ref,
		ExpiresAt:  &hold.ExpiresAt,
		Timestamp:  now,
	})

	return &hold, nil
}

// rejectBooked builds the conflict for a request that includes booked seats,
// adding the requested seats other sessions hold at the moment.
func (c *Coordinator) rejectBooked(
	ctx context.Context,
	scheduleID int,
	seatIDs []int,
	sessionID string,
	conflicts []domain.SeatConflict) error {

	c.metrics.holdConflicts.Add(ctx, 1, scheduleAttr(scheduleID))

	holders, err := c.holds.Holders(ctx, scheduleID)
	if err != nil {
		c.logger.Warn("failed to get seat holders", "schedule_id", scheduleID, "error", err)
		return &domain.SeatsUnavailableError{ScheduleID: scheduleID, Conflicts: conflicts}
	}

	for _, seatID := range seatIDs {
		owner, ok := holders[seatID]
		if !ok || owner == sessionID {
			continue
		}

		if slices.ContainsFunc(conflicts, func(sc domain.SeatConflict) bool { return sc.SeatID == seatID }) {
			continue
		}

		conflicts = append(conflicts, domain.SeatConflict{SeatID: seatID, HolderRef: domain.HolderRef(owner)})
	}

	slices.SortFunc(conflicts, func(a, b domain.SeatConflict) int { return a.SeatID - b.SeatID })

	return &domain.SeatsUnavailableError{ScheduleID: scheduleID, Conflicts: conflicts}
}

// Release removes seatIDs from the session's hold and returns what is left of
// it, or nil when nothing is left.
func (c *Coordinator) Release(ctx context.Context, scheduleID int, seatIDs []int, sessionID string) (*domain.Hold, error) {
	seatIDs, err := c.normalizeSeats(scheduleID, seatIDs)
	if err != nil {
		return nil, err
	}

	remaining, err := c.holds.Release(ctx, scheduleID, sessionID, seatIDs)
	if err != nil {
		return nil, err
	}

	c.broadcast(ctx, domain.SeatEvent{
		Type:       domain.EventSeatsUnlocked,
		ScheduleID: scheduleID,
		SeatIDs:    seatIDs,
		SessionID:  domain.HolderRef(sessionID),
		Timestamp:  c.now(),
	})

	return remaining, nil
}

// Commit books the seats of the session's hold. The hold is pinned while the
// booking is written, so it can neither expire nor be swept halfway. On any
// failure the hold is left exactly as it was.
func (c *Coordinator) Commit(ctx context.Context, req domain.CommitRequest) (*domain.Booking, error) {
	if req.Payment.Status != domain.PaymentStatusSucceeded {
		c.metrics.commitFailed(ctx, req.ScheduleID, "payment")
		return nil, domain.ErrPaymentNotConfirmed
	}

	seatIDs, err := c.normalizeSeats(req.ScheduleID, req.SeatIDs)
	if err != nil {
		return nil, err
	}

	err = validatePassengers(seatIDs, req.Passengers)
	if err != nil {
		return nil, err
	}

	hold, err := c.holds.Pin(ctx, req.ScheduleID, req.SessionID, seatIDs, c.now().Add(c.cfg.CommitGrace))
	if err != nil {
		var invalid *domain.InvalidRequestError
		switch {
		case errors.Is(err, domain.ErrNotHeld):
			c.metrics.commitFailed(ctx, req.ScheduleID, "expired")
			return nil, fmt.Errorf("%w: %w", domain.ErrHoldExpired, err)
		case errors.Is(err, domain.ErrHoldExpired):
			c.metrics.commitFailed(ctx, req.ScheduleID, "expired")
			return nil, err
		case errors.Is(err, domain.ErrCommitInProgress), errors.As(err, &invalid):
			return nil, err
		default:
			return nil, fmt.Errorf("failed to pin hold: %w", err)
		}
	}

	token, err := domain.GenerateToken(domain.BookingAccessScope)
	if err != nil {
		c.unpin(ctx, *hold)
		return nil, err
	}

	req.SeatIDs = seatIDs
	booking := domain.NewBooking(req, token)

	// The insert must not outlive the pinned hold, or the sweeper could hand
	// its seats to another session while the transaction is still open.
	insertCtx, cancel := context.WithDeadline(ctx, time.Now().Add(hold.ExpiresAt.Sub(c.now())))
	defer cancel()

	err = c.bookings.InsertBookingIfSeatsFree(insertCtx, &booking, c.stillPinned(*hold))
	if err != nil {
		c.unpin(ctx, *hold)

		var unavailable *domain.SeatsUnavailableError
		switch {
		case errors.As(err, &unavailable):
			c.metrics.commitFailed(ctx, req.ScheduleID, "conflict")
			return nil, err
		case errors.Is(err, domain.ErrHoldExpired):
			c.metrics.commitFailed(ctx, req.ScheduleID, "expired")
			return nil, err
		case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
			c.metrics.commitFailed(ctx, req.ScheduleID, "expired")
			return nil, fmt.Errorf("%w: booking insert outlasted the hold: %w", domain.ErrHoldExpired, err)
		}

		c.metrics.commitFailed(ctx, req.ScheduleID, "persistence")
		return nil, &domain.PersistenceError{Op: "insert booking", Err: err}
	}

	err = c.holds.Promote(context.WithoutCancel(ctx), *hold)
	if err != nil {
		// The booking is durable and the database keeps the seats exclusive.
		c.logger.Error("failed to promote hold after commit",
			"schedule_id", req.ScheduleID, "booking_id", booking.ID, "error", err)
	}

	c.metrics.bookingsCommitted.Add(ctx, 1, scheduleAttr(req.ScheduleID))

	c.broadcast(ctx, domain.SeatEvent{
		Type:       domain.EventSeatsBooked,
		ScheduleID: req.ScheduleID,
		SeatIDs:    seatIDs,
		BookingID:  booking.ID,
		Timestamp:  c.now(),
	})

	return &booking, nil
}

// stillPinned reports ErrHoldExpired once the pinned hold has run out or was
// replaced, so the booking transaction rolls back instead of committing seats
// that may already belong to someone else.
func (c *Coordinator) stillPinned(hold domain.Hold) func(context.Context) error {
	return func(ctx context.Context) error {
		current, err := c.holds.Get(ctx, hold.ScheduleID, hold.SessionID)
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.ErrHoldExpired
		}
		if err != nil {
			return fmt.Errorf("failed to recheck hold: %w", err)
		}

		if current.ID != hold.ID || !c.now().Before(hold.ExpiresAt) {
			return domain.ErrHoldExpired
		}

		return nil
	}
}

func (c *Coordinator) unpin(ctx context.Context, hold domain.Hold) {
	err := c.holds.Unpin(context.WithoutCancel(ctx), hold)
	if err != nil {
		c.logger.Error("failed to unpin hold",
			"schedule_id", hold.ScheduleID, "hold_id", hold.ID, "error", err)
	}
}

// Cancel cancels a booking and makes its seats available again.
func (c *Coordinator) Cancel(ctx context.Context, bookingID int) (*domain.Booking, error) {
	booking, err := c.bookings.Cancel(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	seatIDs := booking.SeatIDs()

	err = c.holds.Unbook(context.WithoutCancel(ctx), booking.ScheduleID, seatIDs)
	if err != nil {
		c.logger.Error("failed to unbook seats of canceled booking",
			"booking_id", booking.ID, "schedule_id", booking.ScheduleID, "error", err)
	}

	c.broadcast(ctx, domain.SeatEvent{
		Type:       domain.EventSeatsUnlocked,
		ScheduleID: booking.ScheduleID,
		SeatIDs:    seatIDs,
		BookingID:  booking.ID,
		Timestamp:  c.now(),
	})

	return booking, nil
}

// SeatStates reports the state of every seat of the schedule.
func (c *Coordinator) SeatStates(ctx context.Context, scheduleID int) (map[int]domain.SeatState, error) {
	seats, err := c.seats.GetSeatsBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	booked, err := c.bookings.GetBookedSeats(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	holders, err := c.holds.Holders(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	states := make(map[int]domain.SeatState, len(seats))
	for _, seat := range seats {
		state := domain.SeatState{Status: domain.SeatAvailable}
		if owner, ok := holders[seat.ID]; ok {
			state = domain.SeatState{Status: domain.SeatHeld, HolderRef: domain.HolderRef(owner)}
		}
		states[seat.ID] = state
	}

	for _, seatID := range booked {
		if _, ok := states[seatID]; ok {
			states[seatID] = domain.SeatState{Status: domain.SeatBooked, HolderRef: domain.BookedHolderRef}
		}
	}

	return states, nil
}

// CurrentHold returns the session's live hold, or domain.ErrRecordNotFound.
func (c *Coordinator) CurrentHold(ctx context.Context, scheduleID int, sessionID string) (*domain.Hold, error) {
	return c.holds.Get(ctx, scheduleID, sessionID)
}

func (c *Coordinator) broadcast(ctx context.Context, event domain.SeatEvent) {
	if c.broadcaster == nil {
		return
	}

	err := c.broadcaster.Broadcast(context.WithoutCancel(ctx), event)
	if err != nil {
		c.logger.Warn("failed to broadcast seat event",
			"type", event.Type, "schedule_id", event.ScheduleID, "error", err)
	}
}

func (c *Coordinator) normalizeSeats(scheduleID int, seatIDs []int) ([]int, error) {
	if scheduleID < 1 {
		return nil, domain.NewInvalidRequestError("schedule ID must be greater than zero")
	}

	if len(seatIDs) == 0 {
		return nil, domain.NewInvalidRequestError("at least one seat must be selected")
	}

	if len(seatIDs) > c.cfg.MaxSeatsPerHold {
		return nil, domain.NewInvalidRequestError("at most %d seats can be selected", c.cfg.MaxSeatsPerHold)
	}

	sorted := slices.Clone(seatIDs)
	slices.Sort(sorted)

	if len(slices.Compact(slices.Clone(sorted))) != len(sorted) {
		return nil, domain.NewInvalidRequestError("seat list contains duplicates")
	}

	return sorted, nil
}

func (c *Coordinator) validateSeats(ctx context.Context, scheduleID int, seatIDs []int) ([]int, error) {
	seatIDs, err := c.normalizeSeats(scheduleID, seatIDs)
	if err != nil {
		return nil, err
	}

	seats, err := c.seats.GetSeatsByScheduleAndSeatIds(ctx, scheduleID, seatIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get seats: %w", err)
	}

	if len(seats) != len(seatIDs) {
		unknown := slices.DeleteFunc(slices.Clone(seatIDs), func(id int) bool {
			return slices.ContainsFunc(seats, func(s domain.Seat) bool { return s.ID == id })
		})

		return nil, domain.NewInvalidRequestError("seat(s) %v do not belong to schedule %d", unknown, scheduleID)
	}

	return seatIDs, nil
}

func validatePassengers(seatIDs []int, passengers []domain.Passenger) error {
	if len(passengers) != len(seatIDs) {
		return domain.NewInvalidRequestError("exactly one passenger is required per seat")
	}

	seen := make(map[int]bool, len(passengers))
	for _, p := range passengers {
		if !slices.Contains(seatIDs, p.SeatID) || seen[p.SeatID] {
			return domain.NewInvalidRequestError("passenger seat %d does not match the selected seats", p.SeatID)
		}
		seen[p.SeatID] = true
	}

	return nil
}

func bookedConflicts(seatIDs, booked []int) []domain.SeatConflict {
	var conflicts []domain.SeatConflict
	for _, seatID := range seatIDs {
		if slices.Contains(booked, seatID) {
			conflicts = append(conflicts, domain.SeatConflict{SeatID: seatID, HolderRef: domain.BookedHolderRef})
		}
	}

	return conflicts
}
