package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"codehunt/internal/common/cache"
	"codehunt/internal/common/clock"
	pkgerrors "codehunt/pkg/errors"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

const packetKeyPrefix = "cch23:12:packet:"

// TimeKeeper remembers when packets were saved.
type TimeKeeper struct {
	cache cache.BasicOps
	clock clock.Clock
}

// NewTimeKeeper creates a TimeKeeper storing timestamps in c.
func NewTimeKeeper(c cache.BasicOps, clk clock.Clock) *TimeKeeper {
	return &TimeKeeper{cache: c, clock: clk}
}

// Save records the current time for packet id.
func (t *TimeKeeper) Save(ctx context.Context, id string) error {
	now := strconv.FormatInt(t.clock.Now().UnixNano(), 10)
	if err := t.cache.Set(ctx, packetKeyPrefix+id, now, 0); err != nil {
		return pkgerrors.Wrap(fmt.Errorf("save packet failed: %w", err), pkgerrors.CacheSetFailed)
	}
	return nil
}

// Load returns the whole seconds elapsed since packet id was saved.
func (t *TimeKeeper) Load(ctx context.Context, id string) (int64, error) {
	raw, err := t.cache.Get(ctx, packetKeyPrefix+id)
	if err != nil {
		return 0, pkgerrors.Wrap(fmt.Errorf("load packet failed: %w", err), pkgerrors.CacheError)
	}
	if raw == "" {
		return 0, pkgerrors.Newf(pkgerrors.NotFound, "packet %s was never saved", id)
	}
	saved, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, pkgerrors.Wrap(fmt.Errorf("corrupt packet timestamp: %w", err), pkgerrors.CacheError)
	}
	elapsed := t.clock.Now().Sub(time.Unix(0, saved))
	return int64(elapsed / time.Second), nil
}

// DecodeULID parses a 26 character Crockford base32 ULID.
func DecodeULID(s string) (ulid.ULID, error) {
	id, err := ulid.ParseStrict(s)
	if err != nil {
		return ulid.ULID{}, pkgerrors.Wrapf(err, pkgerrors.InvalidFormat, "invalid ulid %q", s)
	}
	return id, nil
}

// ULIDsToUUIDs converts every ulid and returns them in reverse order.
func ULIDsToUUIDs(ulids []string) ([]string, error) {
	out := make([]string, len(ulids))
	for i, s := range ulids {
		id, err := DecodeULID(s)
		if err != nil {
			return nil, err
		}
		out[len(ulids)-1-i] = uuid.UUID(id).String()
	}
	return out, nil
}

// ULIDStats counts interesting properties of a batch of ulids.
type ULIDStats struct {
	ChristmasEve int `json:"christmas eve"`
	Weekday      int `json:"weekday"`
	InTheFuture  int `json:"in the future"`
	LSBIsOne     int `json:"LSB is 1"`
}

// CountULIDs inspects the timestamps of ulids. weekday is 0 for Monday.
func (t *TimeKeeper) CountULIDs(ulids []string, weekday int) (ULIDStats, error) {
	if weekday < 0 || weekday > 6 {
		return ULIDStats{}, pkgerrors.Newf(pkgerrors.InvalidParams, "weekday must be between 0 and 6")
	}
	now := t.clock.Now()
	var stats ULIDStats
	for _, s := range ulids {
		id, err := DecodeULID(s)
		if err != nil {
			return ULIDStats{}, err
		}
		ts := ulid.Time(id.Time()).UTC()
		if ts.Month() == time.December && ts.Day() == 24 {
			stats.ChristmasEve++
		}
		if (int(ts.Weekday())+6)%7 == weekday {
			stats.Weekday++
		}
		if ts.After(now) {
			stats.InTheFuture++
		}
		if id[15]&1 == 1 {
			stats.LSBIsOne++
		}
	}
	return stats, nil
}
