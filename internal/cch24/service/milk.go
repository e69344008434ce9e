package service

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"codehunt/internal/common/cache"
	"codehunt/internal/common/clock"
	pkgerrors "codehunt/pkg/errors"
)

const (
	BucketCapacity = 5
	RefillInterval = time.Second

	LitersPerGallon = 3.785411784
	LitresPerPint   = 0.56826125

	bucketKey     = "cch24:9:bucket"
	bucketLockKey = "cch24:9:bucket"
	bucketLockTTL = 5 * time.Second
)

// MilkBucket is a token bucket of milk shared by every client. It starts full
// and regains one unit per RefillInterval up to BucketCapacity.
type MilkBucket struct {
	cache cache.Cache
	clock clock.Clock
}

func NewMilkBucket(c cache.Cache, clk clock.Clock) *MilkBucket {
	return &MilkBucket{cache: c, clock: clk}
}

type bucketState struct {
	tokens float64
	at     time.Time
}

func (b *MilkBucket) load(ctx context.Context) (bucketState, error) {
	now := b.clock.Now()
	raw, err := b.cache.Get(ctx, bucketKey)
	if err != nil {
		return bucketState{}, pkgerrors.Wrap(err, pkgerrors.CacheError)
	}
	if raw == "" {
		return bucketState{tokens: BucketCapacity, at: now}, nil
	}
	tokensRaw, atRaw, ok := strings.Cut(raw, "|")
	if !ok {
		return bucketState{}, pkgerrors.Newf(pkgerrors.CacheError, "corrupt bucket state %q", raw)
	}
	tokens, err := strconv.ParseFloat(tokensRaw, 64)
	if err != nil {
		return bucketState{}, pkgerrors.Wrap(err, pkgerrors.CacheError)
	}
	at, err := strconv.ParseInt(atRaw, 10, 64)
	if err != nil {
		return bucketState{}, pkgerrors.Wrap(err, pkgerrors.CacheError)
	}
	state := bucketState{tokens: tokens, at: time.Unix(0, at)}
	if elapsed := now.Sub(state.at); elapsed > 0 {
		state.tokens = min(BucketCapacity, state.tokens+float64(elapsed)/float64(RefillInterval))
	}
	state.at = now
	return state, nil
}

func (b *MilkBucket) store(ctx context.Context, state bucketState) error {
	raw := strconv.FormatFloat(state.tokens, 'g', -1, 64) + "|" + strconv.FormatInt(state.at.UnixNano(), 10)
	if err := b.cache.Set(ctx, bucketKey, raw, 0); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CacheSetFailed)
	}
	return nil
}

// Withdraw takes one unit of milk. It fails with NoMilkAvailable when the
// bucket holds less than a whole unit.
func (b *MilkBucket) Withdraw(ctx context.Context) error {
	return cache.WithLock(ctx, b.cache, bucketLockKey, bucketLockTTL, func() error {
		state, err := b.load(ctx)
		if err != nil {
			return err
		}
		if state.tokens < 1 {
			if err := b.store(ctx, state); err != nil {
				return err
			}
			return pkgerrors.New(pkgerrors.NoMilkAvailable)
		}
		state.tokens--
		return b.store(ctx, state)
	})
}

// Refill fills the bucket to capacity.
func (b *MilkBucket) Refill(ctx context.Context) error {
	return cache.WithLock(ctx, b.cache, bucketLockKey, bucketLockTTL, func() error {
		return b.store(ctx, bucketState{tokens: BucketCapacity, at: b.clock.Now()})
	})
}

var conversions = map[string]struct {
	to     string
	factor float64
}{
	"liters":  {"gallons", 1 / LitersPerGallon},
	"gallons": {"liters", LitersPerGallon},
	"litres":  {"pints", 1 / LitresPerPint},
	"pints":   {"litres", LitresPerPint},
}

// ConvertMilk converts a JSON object holding exactly one known unit into the
// paired unit.
func ConvertMilk(body []byte) (map[string]float64, error) {
	var in map[string]*float64
	if err := json.Unmarshal(body, &in); err != nil {
		return nil, pkgerrors.Wrapf(err, pkgerrors.InvalidParams, "invalid milk amount")
	}
	if len(in) != 1 {
		return nil, pkgerrors.Newf(pkgerrors.InvalidParams, "exactly one unit is required")
	}
	var (
		unit   string
		amount *float64
	)
	for k, v := range in {
		unit, amount = k, v
	}
	conv, ok := conversions[unit]
	if !ok || amount == nil {
		return nil, pkgerrors.Newf(pkgerrors.InvalidParams, "unknown unit %q", unit)
	}
	return map[string]float64{conv.to: *amount * conv.factor}, nil
}
