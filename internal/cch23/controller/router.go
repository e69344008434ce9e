// Package controller exposes the cch23 challenge endpoints over HTTP.
package controller

import (
	"codehunt/internal/cch23/repository"
	"codehunt/internal/cch23/service"
	"codehunt/internal/common/cache"
	"codehunt/internal/common/clock"
	"codehunt/internal/common/db"

	"github.com/gin-gonic/gin"
)

// Deps are the shared resources the cch23 handlers need.
type Deps struct {
	Cache    cache.Cache
	Database *db.Database
	Clock    clock.Clock
	Upstream service.UpstreamConfig
}

// Register mounts every cch23 endpoint on r.
func Register(r gin.IRouter, deps Deps) {
	puzzles := NewPuzzleController()
	r.GET("/", puzzles.Hello)
	r.GET("/-1/error", puzzles.Fail)
	r.GET("/1/*ids", puzzles.CubeBits)
	r.POST("/4/strength", puzzles.Strength)
	r.POST("/4/contest", puzzles.Contest)
	r.POST("/5", puzzles.SliceNames)
	r.POST("/6", puzzles.CountElves)
	r.GET("/7/decode", puzzles.DecodeRecipe)
	r.GET("/7/bake", puzzles.Bake)
	r.POST("/14/unsafe", puzzles.UnsafePage)
	r.POST("/14/safe", puzzles.SafePage)
	r.POST("/15/nice", puzzles.Nice)
	r.POST("/15/game", puzzles.Game)
	r.POST("/22/integers", puzzles.Integers)
	r.POST("/22/rocket", puzzles.Rocket)

	lookups := NewLookupController(
		service.NewPokedex(deps.Upstream, deps.Cache),
		service.NewGeocoder(deps.Upstream, deps.Cache),
	)
	r.GET("/8/weight/:id", lookups.Weight)
	r.GET("/8/drop/:id", lookups.Drop)
	r.GET("/21/coords/:binary", lookups.Coords)
	r.GET("/21/country/:binary", lookups.Country)

	times := NewTimeController(service.NewTimeKeeper(deps.Cache, deps.Clock))
	r.POST("/12/save/:packet", times.Save)
	r.GET("/12/load/:packet", times.Load)
	r.POST("/12/ulids", times.ULIDs)
	r.POST("/12/ulids/:weekday", times.Weekday)

	orders := NewOrderController(service.NewOrderService(repository.NewOrderRepository(deps.Database)))
	r.GET("/13/sql", orders.Warmup)
	r.POST("/13/reset", orders.ResetOrders)
	r.POST("/13/orders", orders.AddOrders)
	r.GET("/13/orders/total", orders.Total)
	r.GET("/13/orders/popular", orders.Popular)
	r.POST("/18/reset", orders.ResetAll)
	r.POST("/18/orders", orders.AddOrders)
	r.POST("/18/regions", orders.AddRegions)
	r.GET("/18/regions/total", orders.RegionTotals)
	r.GET("/18/regions/top_list/:limit", orders.TopGifts)

	chat := NewChatController(service.NewChatHub(deps.Cache))
	r.GET("/19/ws/ping", chat.Ping)
	r.GET("/19/ws/room/:room/user/:user", chat.Room)
	r.POST("/19/reset", chat.Reset)
	r.GET("/19/views", chat.Views)
}
