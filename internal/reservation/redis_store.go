package reservation

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/metinatakli/bus-booking-system/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	sweepBatchSize = 200
	// Schedules whose latest hold expired longer ago than this are dropped from the sweep index.
	sweepIndexRetention = time.Hour
	holdSchedulesKey    = "hold_schedules"
)

// Every script receives the current time in milliseconds so that expiry is
// judged by the caller's clock, and takes the hold key prefix of the schedule
// to look up the holds of other sessions.

// KEYS = [seat_holders, seats_booked, hold_expiry, hold]
// ARGV = [sessionID, now, holdKeyPrefix, holdID, createdAt, expiresAt, seatIDs...]
var acquireScript = redis.NewScript(`
	local session = ARGV[1]
	local now = tonumber(ARGV[2])
	local prefix = ARGV[3]

	local prev = redis.call("HMGET", KEYS[4], "seats", "expiresAt", "pinned")
	if prev[3] == "1" and tonumber(prev[2]) > now then
		return {"IN_PROGRESS"}
	end

	local conflicts = {}
	for i = 7, #ARGV do
		local seat = ARGV[i]
		if redis.call("SISMEMBER", KEYS[2], seat) == 1 then
			table.insert(conflicts, seat)
			table.insert(conflicts, "")
		else
			local owner = redis.call("HGET", KEYS[1], seat)
			if owner and owner ~= session then
				local expiresAt = redis.call("HGET", prefix .. owner, "expiresAt")
				if expiresAt and tonumber(expiresAt) > now then
					table.insert(conflicts, seat)
					table.insert(conflicts, owner)
				end
			end
		end
	end

	if #conflicts > 0 then
		table.insert(conflicts, 1, "CONFLICT")
		return conflicts
	end

	local released = {}
	if prev[1] then
		local keep = {}
		for i = 7, #ARGV do
			keep[ARGV[i]] = true
		end
		for seat in string.gmatch(prev[1], "[^,]+") do
			if not keep[seat] and redis.call("HGET", KEYS[1], seat) == session then
				redis.call("HDEL", KEYS[1], seat)
				table.insert(released, seat)
			end
		end
	end
	local previous = table.concat(released, ",")

	for i = 7, #ARGV do
		redis.call("HSET", KEYS[1], ARGV[i], session)
	end

	redis.call("DEL", KEYS[4])
	redis.call("HSET", KEYS[4],
		"id", ARGV[4],
		"seats", table.concat(ARGV, ",", 7, #ARGV),
		"createdAt", ARGV[5],
		"expiresAt", ARGV[6],
		"pinned", "0")
	redis.call("ZADD", KEYS[3], ARGV[6], session)

	return {"OK", previous}
`)

// KEYS = [seat_holders, hold_expiry, hold]
// ARGV = [sessionID, now, holdKeyPrefix, seatIDs...]
var releaseScript = redis.NewScript(`
	local session = ARGV[1]
	local now = tonumber(ARGV[2])
	local prefix = ARGV[3]

	local hold = redis.call("HMGET", KEYS[3], "id", "seats", "createdAt", "expiresAt", "pinned")
	local held = {}
	if hold[1] and tonumber(hold[4]) > now then
		if hold[5] == "1" then
			return {"IN_PROGRESS"}
		end
		for seat in string.gmatch(hold[2], "[^,]+") do
			held[seat] = true
		end
	end

	local missing = {}
	for i = 4, #ARGV do
		local seat = ARGV[i]
		if not held[seat] then
			local byOther = "0"
			local owner = redis.call("HGET", KEYS[1], seat)
			if owner and owner ~= session then
				local expiresAt = redis.call("HGET", prefix .. owner, "expiresAt")
				if expiresAt and tonumber(expiresAt) > now then
					byOther = "1"
				end
			end
			table.insert(missing, seat)
			table.insert(missing, byOther)
		end
	end

	if #missing > 0 then
		table.insert(missing, 1, "NOT_HELD")
		return missing
	end

	for i = 4, #ARGV do
		held[ARGV[i]] = nil
		if redis.call("HGET", KEYS[1], ARGV[i]) == session then
			redis.call("HDEL", KEYS[1], ARGV[i])
		end
	end

	local remaining = {}
	for seat in string.gmatch(hold[2], "[^,]+") do
		if held[seat] then
			table.insert(remaining, seat)
		end
	end

	if #remaining == 0 then
		redis.call("DEL", KEYS[3])
		redis.call("ZREM", KEYS[2], session)
		return {"OK", ""}
	end

	local seats = table.concat(remaining, ",")
	redis.call("HSET", KEYS[3], "seats", seats)

	return {"OK", seats, hold[1], hold[3], hold[4]}
`)

// KEYS = [hold, hold_expiry]
// ARGV = [sessionID, now, until, seatIDs...]
var pinScript = redis.NewScript(`
	local hold = redis.call("HMGET", KEYS[1], "id", "seats", "createdAt", "expiresAt", "pinned")
	if not hold[1] then
		return {"NOT_HELD"}
	end

	local expiresAt = tonumber(hold[4])
	if expiresAt <= tonumber(ARGV[2]) then
		return {"EXPIRED"}
	end

	if hold[5] == "1" then
		return {"IN_PROGRESS"}
	end

	local held = {}
	local count = 0
	for seat in string.gmatch(hold[2], "[^,]+") do
		held[seat] = true
		count = count + 1
	end

	if count ~= #ARGV - 3 then
		return {"MISMATCH", hold[2]}
	end
	for i = 4, #ARGV do
		if not held[ARGV[i]] then
			return {"MISMATCH", hold[2]}
		end
	end

	local newExpiry = hold[4]
	if tonumber(ARGV[3]) > expiresAt then
		newExpiry = ARGV[3]
	end

	redis.call("HSET", KEYS[1], "pinned", "1", "origExpiresAt", hold[4], "expiresAt", newExpiry)
	redis.call("ZADD", KEYS[2], newExpiry, ARGV[1])

	return {"OK", hold[1], hold[2], hold[3], newExpiry}
`)

// KEYS = [hold, hold_expiry]
// ARGV = [sessionID, holdID]
var unpinScript = redis.NewScript(`
	local hold = redis.call("HMGET", KEYS[1], "id", "pinned", "origExpiresAt")
	if hold[1] ~= ARGV[2] or hold[2] ~= "1" then
		return 0
	end

	redis.call("HSET", KEYS[1], "pinned", "0", "expiresAt", hold[3])
	redis.call("HDEL", KEYS[1], "origExpiresAt")
	redis.call("ZADD", KEYS[2], hold[3], ARGV[1])

	return 1
`)

// KEYS = [seat_holders, seats_booked, hold_expiry, hold]
// ARGV = [sessionID, holdID, seatIDs...]
var promoteScript = redis.NewScript(`
	for i = 3, #ARGV do
		redis.call("SADD", KEYS[2], ARGV[i])
		if redis.call("HGET", KEYS[1], ARGV[i]) == ARGV[1] then
			redis.call("HDEL", KEYS[1], ARGV[i])
		end
	end

	if redis.call("HGET", KEYS[4], "id") == ARGV[2] then
		redis.call("DEL", KEYS[4])
		redis.call("ZREM", KEYS[3], ARGV[1])
	end

	return 1
`)

// Returns live seat/holder pairs and drops entries whose hold no longer exists.
// KEYS = [seat_holders]
// ARGV = [holdKeyPrefix, now]
var holdersScript = redis.NewScript(`
	local now = tonumber(ARGV[2])
	local cursor = "0"
	local batchSize = 100
	local orphaned = {}
	local valid = {}

	repeat
		local result = redis.call("HSCAN", KEYS[1], cursor, "COUNT", batchSize)
		cursor = result[1]
		local entries = result[2]

		for i = 1, #entries, 2 do
			local seat, owner = entries[i], entries[i + 1]
			local expiresAt = redis.call("HGET", ARGV[1] .. owner, "expiresAt")
			if not expiresAt then
				table.insert(orphaned, seat)
			elseif tonumber(expiresAt) > now then
				table.insert(valid, seat)
				table.insert(valid, owner)
			end
		end
	until cursor == "0"

	if #orphaned > 0 then
		redis.call("HDEL", KEYS[1], unpack(orphaned))
	end

	return valid
`)

// KEYS = [seat_holders, hold_expiry]
// ARGV = [holdKeyPrefix, now, limit]
var sweepScript = redis.NewScript(`
	local now = tonumber(ARGV[2])
	local sessions = redis.call("ZRANGEBYSCORE", KEYS[2], "-inf", ARGV[2], "LIMIT", 0, ARGV[3])
	local swept = {}

	for _, session in ipairs(sessions) do
		local key = ARGV[1] .. session
		local hold = redis.call("HMGET", key, "id", "seats", "createdAt", "expiresAt")

		if not hold[1] then
			redis.call("ZREM", KEYS[2], session)
		elseif tonumber(hold[4]) > now then
			redis.call("ZADD", KEYS[2], hold[4], session)
		else
			local freed = {}
			for seat in string.gmatch(hold[2], "[^,]+") do
				if redis.call("HGET", KEYS[1], seat) == session then
					redis.call("HDEL", KEYS[1], seat)
					table.insert(freed, seat)
				end
			end

			redis.call("DEL", key)
			redis.call("ZREM", KEYS[2], session)

			table.insert(swept, session)
			table.insert(swept, hold[1])
			table.insert(swept, table.concat(freed, ","))
			table.insert(swept, hold[3])
			table.insert(swept, hold[4])
		end
	end

	return swept
`)

// RedisHoldStore keeps holds in Redis so that every API instance shares them.
// All keys of a schedule carry the same hash tag, so each script touches a single slot.
type RedisHoldStore struct {
	client redis.UniversalClient
	now    func() time.Time
}

func NewRedisHoldStore(client redis.UniversalClient, now func() time.Time) *RedisHoldStore {
	if now == nil {
		now = time.Now
	}

	return &RedisHoldStore{client: client, now: now}
}

func (s *RedisHoldStore) Acquire(ctx context.Context, hold domain.Hold) (*domain.Hold, error) {
	err := s.indexSchedule(ctx, hold.ScheduleID, hold.ExpiresAt)
	if err != nil {
		return nil, err
	}

	keys := []string{
		seatHoldersKey(hold.ScheduleID),
		seatsBookedKey(hold.ScheduleID),
		holdExpiryKey(hold.ScheduleID),
		redisHoldKey(hold.ScheduleID, hold.SessionID),
	}

	args := []interface{}{
		hold.SessionID,
		millis(s.now()),
		holdKeyPrefix(hold.ScheduleID),
		hold.ID,
		millis(hold.CreatedAt),
		millis(hold.ExpiresAt),
	}
	args = append(args, seatArgs(hold.SeatIDs)...)

	result, err := acquireScript.Run(ctx, s.client, keys, args...).StringSlice()
	if err != nil {
		return nil, fmt.Errorf("acquire script: %w", err)
	}

	switch result[0] {
	case "IN_PROGRESS":
		return nil, domain.ErrCommitInProgress
	case "CONFLICT":
		conflicts := make([]domain.SeatConflict, 0, (len(result)-1)/2)
		for i := 1; i+1 < len(result); i += 2 {
			seatID, err := strconv.Atoi(result[i])
			if err != nil {
				return nil, err
			}

			ref := domain.BookedHolderRef
			if result[i+1] != "" {
				ref = domain.HolderRef(result[i+1])
			}

			conflicts = append(conflicts, domain.SeatConflict{SeatID: seatID, HolderRef: ref})
		}

		return nil, &domain.SeatsUnavailableError{ScheduleID: hold.ScheduleID, Conflicts: conflicts}
	case "OK":
		if len(result) < 2 || result[1] == "" {
			return nil, nil
		}

		seatIDs, err := parseSeatIDs(result[1])
		if err != nil {
			return nil, err
		}

		return &domain.Hold{ScheduleID: hold.ScheduleID, SessionID: hold.SessionID, SeatIDs: seatIDs}, nil
	}

	return nil, unexpectedReply("acquire", result)
}

func (s *RedisHoldStore) Release(ctx context.Context, scheduleID int, sessionID string, seatIDs []int) (*domain.Hold, error) {
	keys := []string{
		seatHoldersKey(scheduleID),
		holdExpiryKey(scheduleID),
		redisHoldKey(scheduleID, sessionID),
	}

	args := []interface{}{sessionID, millis(s.now()), holdKeyPrefix(scheduleID)}
	args = append(args, seatArgs(seatIDs)...)

	result, err := releaseScript.Run(ctx, s.client, keys, args...).StringSlice()
	if err != nil {
		return nil, fmt.Errorf("release script: %w", err)
	}

	switch result[0] {
	case "IN_PROGRESS":
		return nil, domain.ErrCommitInProgress
	case "NOT_HELD":
		notHeld := &domain.NotHeldError{ScheduleID: scheduleID}
		for i := 1; i+1 < len(result); i += 2 {
			seatID, err := strconv.Atoi(result[i])
			if err != nil {
				return nil, err
			}

			notHeld.SeatIDs = append(notHeld.SeatIDs, seatID)
			if result[i+1] == "1" {
				notHeld.HeldByOthers = append(notHeld.HeldByOthers, seatID)
			}
		}

		return nil, notHeld
	case "OK":
		if len(result) < 5 {
			return nil, nil
		}

		return parseHold(scheduleID, sessionID, result[2], result[1], result[3], result[4])
	}

	return nil, unexpectedReply("release", result)
}

func (s *RedisHoldStore) Get(ctx context.Context, scheduleID int, sessionID string) (*domain.Hold, error) {
	fields, err := s.client.HMGet(ctx, redisHoldKey(scheduleID, sessionID), "id", "seats", "createdAt", "expiresAt").Result()
	if err != nil {
		return nil, err
	}

	values := make([]string, len(fields))
	for i, f := range fields {
		v, ok := f.(string)
		if !ok {
			return nil, domain.ErrRecordNotFound
		}
		values[i] = v
	}

	hold, err := parseHold(scheduleID, sessionID, values[0], values[1], values[2], values[3])
	if err != nil {
		return nil, err
	}

	if !hold.Live(s.now()) {
		return nil, domain.ErrRecordNotFound
	}

	return hold, nil
}

func (s *RedisHoldStore) Pin(ctx context.Context, scheduleID int, sessionID string, seatIDs []int, until time.Time) (*domain.Hold, error) {
	err := s.indexSchedule(ctx, scheduleID, until)
	if err != nil {
		return nil, err
	}

	keys := []string{redisHoldKey(scheduleID, sessionID), holdExpiryKey(scheduleID)}

	args := []interface{}{sessionID, millis(s.now()), millis(until)}
	args = append(args, seatArgs(seatIDs)...)

	result, err := pinScript.Run(ctx, s.client, keys, args...).StringSlice()
	if err != nil {
		return nil, fmt.Errorf("pin script: %w", err)
	}

	switch result[0] {
	case "NOT_HELD":
		return nil, &domain.NotHeldError{ScheduleID: scheduleID, SeatIDs: seatIDs}
	case "EXPIRED":
		return nil, domain.ErrHoldExpired
	case "IN_PROGRESS":
		return nil, domain.ErrCommitInProgress
	case "MISMATCH":
		held, err := parseSeatIDs(result[1])
		if err != nil {
			return nil, err
		}

		return nil, seatMismatchError(held, seatIDs)
	case "OK":
		return parseHold(scheduleID, sessionID, result[1], result[2], result[3], result[4])
	}

	return nil, unexpectedReply("pin", result)
}

func (s *RedisHoldStore) Unpin(ctx context.Context, hold domain.Hold) error {
	keys := []string{redisHoldKey(hold.ScheduleID, hold.SessionID), holdExpiryKey(hold.ScheduleID)}

	return unpinScript.Run(ctx, s.client, keys, hold.SessionID, hold.ID).Err()
}

func (s *RedisHoldStore) Promote(ctx context.Context, hold domain.Hold) error {
	keys := []string{
		seatHoldersKey(hold.ScheduleID),
		seatsBookedKey(hold.ScheduleID),
		holdExpiryKey(hold.ScheduleID),
		redisHoldKey(hold.ScheduleID, hold.SessionID),
	}

	args := []interface{}{hold.SessionID, hold.ID}
	args = append(args, seatArgs(hold.SeatIDs)...)

	return promoteScript.Run(ctx, s.client, keys, args...).Err()
}

func (s *RedisHoldStore) Unbook(ctx context.Context, scheduleID int, seatIDs []int) error {
	if len(seatIDs) == 0 {
		return nil
	}

	return s.client.SRem(ctx, seatsBookedKey(scheduleID), seatArgs(seatIDs)...).Err()
}

func (s *RedisHoldStore) Holders(ctx context.Context, scheduleID int) (map[int]string, error) {
	keys := []string{seatHoldersKey(scheduleID)}

	result, err := holdersScript.Run(ctx, s.client, keys, holdKeyPrefix(scheduleID), millis(s.now())).StringSlice()
	if err != nil {
		return nil, fmt.Errorf("holders script: %w", err)
	}

	holders := make(map[int]string, len(result)/2)
	for i := 0; i+1 < len(result); i += 2 {
		seatID, err := strconv.Atoi(result[i])
		if err != nil {
			return nil, err
		}

		holders[seatID] = result[i+1]
	}

	return holders, nil
}

func (s *RedisHoldStore) SweepExpired(ctx context.Context) ([]domain.Hold, error) {
	now := s.now()

	cutoff := millis(now.Add(-sweepIndexRetention))
	err := s.client.ZRemRangeByScore(ctx, holdSchedulesKey, "-inf", "("+cutoff).Err()
	if err != nil {
		return nil, err
	}

	schedules, err := s.client.ZRange(ctx, holdSchedulesKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	var swept []domain.Hold
	for _, member := range schedules {
		scheduleID, err := strconv.Atoi(member)
		if err != nil {
			continue
		}

		holds, err := s.sweepSchedule(ctx, scheduleID, now)
		if err != nil {
			return swept, fmt.Errorf("sweep schedule %d: %w", scheduleID, err)
		}

		swept = append(swept, holds...)
	}

	return swept, nil
}

func (s *RedisHoldStore) sweepSchedule(ctx context.Context, scheduleID int, now time.Time) ([]domain.Hold, error) {
	keys := []string{seatHoldersKey(scheduleID), holdExpiryKey(scheduleID)}

	result, err := sweepScript.Run(ctx, s.client, keys, holdKeyPrefix(scheduleID), millis(now), sweepBatchSize).StringSlice()
	if err != nil {
		return nil, err
	}

	holds := make([]domain.Hold, 0, len(result)/5)
	for i := 0; i+4 < len(result); i += 5 {
		hold, err := parseHold(scheduleID, result[i], result[i+1], result[i+2], result[i+3], result[i+4])
		if err != nil {
			return nil, err
		}

		holds = append(holds, *hold)
	}

	return holds, nil
}

// indexSchedule records that the schedule has holds that expire at or before until.
func (s *RedisHoldStore) indexSchedule(ctx context.Context, scheduleID int, until time.Time) error {
	return s.client.ZAddGT(ctx, holdSchedulesKey, redis.Z{
		Score:  float64(until.UnixMilli()),
		Member: strconv.Itoa(scheduleID),
	}).Err()
}

func parseHold(scheduleID int, sessionID, id, seats, createdAt, expiresAt string) (*domain.Hold, error) {
	seatIDs, err := parseSeatIDs(seats)
	if err != nil {
		return nil, err
	}

	created, err := strconv.ParseInt(createdAt, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid createdAt %q: %w", createdAt, err)
	}

	expires, err := strconv.ParseInt(expiresAt, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid expiresAt %q: %w", expiresAt, err)
	}

	return &domain.Hold{
		ID:         id,
		ScheduleID: scheduleID,
		SeatIDs:    seatIDs,
		SessionID:  sessionID,
		CreatedAt:  time.UnixMilli(created),
		ExpiresAt:  time.UnixMilli(expires),
	}, nil
}

func parseSeatIDs(csv string) ([]int, error) {
	if csv == "" {
		return []int{}, nil
	}

	parts := strings.Split(csv, ",")
	seatIDs := make([]int, len(parts))

	for i, p := range parts {
		id, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid seat id %q: %w", p, err)
		}
		seatIDs[i] = id
	}

	return seatIDs, nil
}

func seatArgs(seatIDs []int) []interface{} {
	args := make([]interface{}, len(seatIDs))
	for i, id := range seatIDs {
		args[i] = strconv.Itoa(id)
	}

	return args
}

func millis(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

func unexpectedReply(script string, reply []string) error {
	return fmt.Errorf("unexpected %s script reply: %v", script, reply)
}

func seatHoldersKey(scheduleID int) string {
	return fmt.Sprintf("seat_holders:{%d}", scheduleID)
}

func seatsBookedKey(scheduleID int) string {
	return fmt.Sprintf("seats_booked:{%d}", scheduleID)
}

func holdExpiryKey(scheduleID int) string {
	return fmt.Sprintf("hold_expiry:{%d}", scheduleID)
}

func holdKeyPrefix(scheduleID int) string {
	return fmt.Sprintf("hold:{%d}:", scheduleID)
}

func redisHoldKey(scheduleID int, sessionID string) string {
	return holdKeyPrefix(scheduleID) + sessionID
}
