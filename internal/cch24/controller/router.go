// Package controller exposes the cch24 challenge endpoints over HTTP.
package controller

import (
	"context"
	"crypto/rsa"
	"net/http"
	"time"

	"codehunt/internal/cch24/assets"
	"codehunt/internal/cch24/repository"
	"codehunt/internal/cch24/service"
	"codehunt/internal/common/cache"
	"codehunt/internal/common/clock"
	"codehunt/internal/common/db"

	"github.com/gin-gonic/gin"
)

// Deps are the shared resources the cch24 handlers need.
type Deps struct {
	Cache    cache.Cache
	Database *db.Database
	Clock    clock.Clock

	// GiftSecret signs wrapped gifts.
	GiftSecret []byte
	// SantaKey verifies /16/decode tokens. Nil disables the endpoint.
	SantaKey *rsa.PublicKey
	// PageTokenTTL bounds how long quote page tokens stay valid. Zero keeps them forever.
	PageTokenTTL time.Duration
}

// Register mounts every cch24 endpoint on r. It creates the quote table when
// it is missing.
func Register(ctx context.Context, r gin.IRouter, deps Deps) error {
	puzzles := NewPuzzleController()
	r.GET("/", puzzles.Hello)
	r.GET("/-1/seek", puzzles.Seek)
	r.GET("/2/dest", puzzles.Dest)
	r.GET("/2/key", puzzles.Key)
	r.GET("/2/v6/dest", puzzles.DestV6)
	r.GET("/2/v6/key", puzzles.KeyV6)
	r.POST("/5/manifest", puzzles.Manifest)

	milk := NewMilkController(service.NewMilkBucket(deps.Cache, deps.Clock))
	r.POST("/9/milk", milk.Milk)
	r.POST("/9/refill", milk.Refill)

	game := NewGameController(service.NewGame())
	r.GET("/12/board", game.Board)
	r.POST("/12/reset", game.Reset)
	r.POST("/12/place/:team/:column", game.Place)
	r.GET("/12/random-board", game.RandomBoard)

	gifts := NewGiftController(service.NewGiftWrapper(deps.GiftSecret, deps.SantaKey, deps.Clock))
	r.POST("/16/wrap", gifts.Wrap)
	r.GET("/16/unwrap", gifts.Unwrap)
	r.POST("/16/decode", gifts.Decode)

	quoteSvc := service.NewQuoteService(repository.NewQuoteRepository(deps.Database), deps.Cache, deps.Clock, deps.PageTokenTTL)
	if err := quoteSvc.Migrate(ctx); err != nil {
		return err
	}
	quotes := NewQuoteController(quoteSvc)
	r.POST("/19/reset", quotes.Reset)
	r.GET("/19/cite/:id", quotes.Cite)
	r.DELETE("/19/remove/:id", quotes.Remove)
	r.PUT("/19/undo/:id", quotes.Undo)
	r.POST("/19/draft", quotes.Draft)
	r.GET("/19/list", quotes.List)

	decor := NewDecorController()
	r.StaticFS("/assets", http.FS(assets.FS))
	r.GET("/23/star", decor.Star)
	r.GET("/23/present/:color", decor.Present)
	r.GET("/23/ornament/:state/:id", decor.Ornament)
	r.POST("/23/lockfile", decor.Lockfile)
	return nil
}
