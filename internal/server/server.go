// Package server assembles the reference challenge server for one event.
package server

import (
	"context"
	"crypto/rsa"
	"fmt"
	"net/http"
	"time"

	cch23controller "codehunt/internal/cch23/controller"
	cch23service "codehunt/internal/cch23/service"
	cch24controller "codehunt/internal/cch24/controller"
	"codehunt/internal/common/cache"
	"codehunt/internal/common/clock"
	"codehunt/internal/common/db"
	"codehunt/internal/common/http/middleware"

	"github.com/gin-gonic/gin"
)

const (
	EventCCH23 = "cch23"
	EventCCH24 = "cch24"

	readyTimeout = 2 * time.Second
)

// Deps are the resources shared by every handler of the server.
type Deps struct {
	Event    string
	Cache    cache.Cache
	Database *db.Database
	Clock    clock.Clock

	Upstream cch23service.UpstreamConfig

	GiftSecret   []byte
	SantaKey     *rsa.PublicKey
	PageTokenTTL time.Duration

	CORS  middleware.CORSConfig
	Trace middleware.TraceContextConfig
}

// NewRouter builds the gin engine serving deps.Event.
func NewRouter(ctx context.Context, deps Deps) (*gin.Engine, error) {
	if deps.Clock == nil {
		deps.Clock = clock.Real()
	}

	router := gin.New()
	// Ornament ids may carry escaped slashes.
	router.UseRawPath = true
	router.Use(gin.Recovery())
	router.Use(middleware.TraceContextMiddlewareWithConfig(deps.Trace))
	router.Use(middleware.CORSMiddleware(deps.CORS))
	router.Use(middleware.RequestLogger())

	router.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/readyz", func(c *gin.Context) {
		if err := ready(c.Request.Context(), deps); err != nil {
			c.String(http.StatusServiceUnavailable, err.Error())
			return
		}
		c.Status(http.StatusOK)
	})

	switch deps.Event {
	case EventCCH23:
		cch23controller.Register(router, cch23controller.Deps{
			Cache:    deps.Cache,
			Database: deps.Database,
			Clock:    deps.Clock,
			Upstream: deps.Upstream,
		})
	case EventCCH24:
		err := cch24controller.Register(ctx, router, cch24controller.Deps{
			Cache:        deps.Cache,
			Database:     deps.Database,
			Clock:        deps.Clock,
			GiftSecret:   deps.GiftSecret,
			SantaKey:     deps.SantaKey,
			PageTokenTTL: deps.PageTokenTTL,
		})
		if err != nil {
			return nil, fmt.Errorf("register cch24 routes failed: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown event %q", deps.Event)
	}
	return router, nil
}

func ready(ctx context.Context, deps Deps) error {
	ctx, cancel := context.WithTimeout(ctx, readyTimeout)
	defer cancel()
	if err := deps.Cache.Ping(ctx); err != nil {
		return fmt.Errorf("cache not ready: %w", err)
	}
	if err := deps.Database.Ping(ctx); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}
	return nil
}
