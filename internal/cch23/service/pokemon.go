package service

import (
	"context"
	"math"
	"strconv"

	"codehunt/internal/common/cache"
	pkgerrors "codehunt/pkg/errors"
	"codehunt/pkg/utils/logger"

	"go.uber.org/zap"
)

const (
	chimneyGravity = 9.825
	chimneyHeight  = 10.0

	pokemonKeyPrefix = "cch23:8:weight:"
)

// Pokedex looks up pokemon weights in PokeAPI.
type Pokedex struct {
	api   upstream
	cache cache.BasicOps
}

// NewPokedex creates a Pokedex that remembers weights in c.
func NewPokedex(cfg UpstreamConfig, c cache.BasicOps) *Pokedex {
	cfg = cfg.WithDefaults()
	return &Pokedex{
		api:   newUpstream(cfg.PokeAPIURL, cfg.UserAgent, cfg.Timeout),
		cache: c,
	}
}

// Weight returns the weight of pokemon id in kilograms.
func (p *Pokedex) Weight(ctx context.Context, id int) (float64, error) {
	if id <= 0 {
		return 0, pkgerrors.Newf(pkgerrors.InvalidParams, "invalid pokedex number %d", id)
	}
	key := pokemonKeyPrefix + strconv.Itoa(id)
	if raw, err := p.cache.Get(ctx, key); err == nil && raw != "" {
		if hectograms, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return float64(hectograms) / 10, nil
		}
	}

	var pokemon struct {
		Weight *int64 `json:"weight"`
	}
	missing, err := p.api.getJSON(ctx, "/api/v2/pokemon/"+strconv.Itoa(id), &pokemon)
	if err != nil {
		return 0, err
	}
	if missing {
		return 0, pkgerrors.Newf(pkgerrors.NotFound, "pokemon %d not found", id)
	}
	if pokemon.Weight == nil {
		return 0, pkgerrors.Newf(pkgerrors.UpstreamFailed, "pokemon %d has no weight", id)
	}

	if err := p.cache.Set(ctx, key, strconv.FormatInt(*pokemon.Weight, 10), lookupCacheTTL); err != nil {
		logger.Warn(ctx, "cache pokemon weight failed", zap.Int("id", id), zap.Error(err))
	}
	return float64(*pokemon.Weight) / 10, nil
}

// Momentum returns the momentum in kg*m/s of pokemon id after falling down
// the chimney.
func (p *Pokedex) Momentum(ctx context.Context, id int) (float64, error) {
	weight, err := p.Weight(ctx, id)
	if err != nil {
		return 0, err
	}
	return weight * math.Sqrt(2*chimneyGravity*chimneyHeight), nil
}
