package service_test

import (
	"context"
	"math"
	"strconv"
	"strings"
	"testing"
	"time"

	"codehunt/internal/cch24/service"
	"codehunt/internal/common/cache"
	"codehunt/internal/common/clock"
	pkgerrors "codehunt/pkg/errors"
)

func TestAddressRouting(t *testing.T) {
	cases := []struct {
		name string
		fn   func(string, string) (string, error)
		a, b string
		want string
	}{
		{"dest4", service.Dest4, "10.0.0.0", "1.2.3.255", "11.2.3.255"},
		{"dest4 overflow", service.Dest4, "128.128.33.0", "255.0.255.33", "127.128.32.33"},
		{"key4", service.Key4, "10.0.0.0", "11.2.3.255", "1.2.3.255"},
		{"key4 underflow", service.Key4, "128.128.33.0", "127.128.32.33", "255.0.255.33"},
		{"dest6", service.Dest6, "fe80::1", "5:6:7::3333", "fe85:6:7::3332"},
		{"key6", service.Key6, "aaaa::aaaa", "5555:ffff:c:0:0:c:1234:5555", "ffff:ffff:c::c:1234:ffff"},
	}
	for _, tc := range cases {
		got, err := tc.fn(tc.a, tc.b)
		if err != nil || got != tc.want {
			t.Fatalf("%s: got %q %v, want %q", tc.name, got, err, tc.want)
		}
	}

	bad := [][2]string{{"::1", "1.2.3.4"}, {"1.2.3", "1.2.3.4"}, {"1.2.3.4", ""}}
	for _, b := range bad {
		if _, err := service.Dest4(b[0], b[1]); !pkgerrors.Is(err, pkgerrors.InvalidParams) {
			t.Fatalf("expected invalid params for %v, got %v", b, err)
		}
	}
	if _, err := service.Dest6("1.2.3.4", "::1"); !pkgerrors.Is(err, pkgerrors.InvalidParams) {
		t.Fatalf("expected invalid params for v4 in v6 route, got %v", err)
	}
}

func TestMilkBucketRefillsOverTime(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewFake(time.Date(2024, 12, 9, 0, 0, 0, 0, time.UTC))
	bucket := service.NewMilkBucket(cache.NewMemoryCache(16), clk)

	for i := 0; i < service.BucketCapacity; i++ {
		if err := bucket.Withdraw(ctx); err != nil {
			t.Fatalf("withdraw %d failed: %v", i, err)
		}
	}
	if err := bucket.Withdraw(ctx); !pkgerrors.Is(err, pkgerrors.NoMilkAvailable) {
		t.Fatalf("expected empty bucket, got %v", err)
	}

	clk.Advance(500 * time.Millisecond)
	if err := bucket.Withdraw(ctx); !pkgerrors.Is(err, pkgerrors.NoMilkAvailable) {
		t.Fatalf("half a unit must not be enough, got %v", err)
	}
	clk.Advance(500 * time.Millisecond)
	if err := bucket.Withdraw(ctx); err != nil {
		t.Fatalf("expected refilled unit, got %v", err)
	}
	if err := bucket.Withdraw(ctx); !pkgerrors.Is(err, pkgerrors.NoMilkAvailable) {
		t.Fatalf("expected empty bucket, got %v", err)
	}

	clk.Advance(time.Hour)
	for i := 0; i < service.BucketCapacity; i++ {
		if err := bucket.Withdraw(ctx); err != nil {
			t.Fatalf("withdraw %d after long wait failed: %v", i, err)
		}
	}
	if err := bucket.Withdraw(ctx); err == nil {
		t.Fatalf("capacity must cap the refill")
	}

	if err := bucket.Refill(ctx); err != nil {
		t.Fatalf("refill failed: %v", err)
	}
	for i := 0; i < service.BucketCapacity; i++ {
		if err := bucket.Withdraw(ctx); err != nil {
			t.Fatalf("withdraw %d after refill failed: %v", i, err)
		}
	}
}

func TestMilkBucketSurvivesTokenChurn(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewFake(time.Date(2024, 12, 9, 0, 0, 0, 0, time.UTC))
	store := cache.NewMemoryCache(8)
	bucket := service.NewMilkBucket(store, clk)

	for i := 0; i < service.BucketCapacity; i++ {
		if err := bucket.Withdraw(ctx); err != nil {
			t.Fatalf("withdraw %d failed: %v", i, err)
		}
	}
	for i := 0; i < 16; i++ {
		if err := store.Set(ctx, "cch24:19:token:"+strconv.Itoa(i), "2", time.Hour); err != nil {
			t.Fatalf("set token failed: %v", err)
		}
	}
	if err := bucket.Withdraw(ctx); !pkgerrors.Is(err, pkgerrors.NoMilkAvailable) {
		t.Fatalf("expected bucket to stay empty, got %v", err)
	}
}

func TestConvertMilk(t *testing.T) {
	cases := []struct {
		body string
		unit string
		want float64
	}{
		{`{"gallons":1}`, "liters", service.LitersPerGallon},
		{`{"liters":5}`, "gallons", 5 / service.LitersPerGallon},
		{`{"pints":2}`, "litres", 2 * service.LitresPerPint},
		{`{"litres":0}`, "pints", 0},
	}
	for _, tc := range cases {
		got, err := service.ConvertMilk([]byte(tc.body))
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tc.body, err)
		}
		if len(got) != 1 || math.Abs(got[tc.unit]-tc.want) > 1e-9 {
			t.Fatalf("unexpected conversion for %s: %v", tc.body, got)
		}
	}

	for _, body := range []string{`{}`, `[]`, `{"liters":1,"gallons":1}`, `{"cups":1}`, `{"pints":null}`, `{"liters":"1"}`} {
		if _, err := service.ConvertMilk([]byte(body)); !pkgerrors.Is(err, pkgerrors.InvalidParams) {
			t.Fatalf("expected invalid params for %s, got %v", body, err)
		}
	}
}

// drawn renders rows of C, M and . cells the way the board prints them.
func drawn(rows ...string) string {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString("⬜")
		for _, c := range row {
			switch c {
			case 'C':
				b.WriteString("🍪")
			case 'M':
				b.WriteString("🥛")
			default:
				b.WriteString("⬛")
			}
		}
		b.WriteString("⬜\n")
	}
	return b.String() + "⬜⬜⬜⬜⬜⬜\n"
}

func TestGamePlacement(t *testing.T) {
	game := service.NewGame()
	if got := game.Reset(); got != drawn("....", "....", "....", "....") {
		t.Fatalf("unexpected empty board:\n%s", got)
	}

	var board string
	var err error
	for i := 0; i < 4; i++ {
		board, err = game.Place(service.TileCookie, 1)
		if err != nil {
			t.Fatalf("place %d failed: %v", i, err)
		}
	}
	won := drawn("C...", "C...", "C...", "C...") + "🍪 wins!\n"
	if board != won {
		t.Fatalf("unexpected winning board:\n%s", board)
	}
	board, err = game.Place(service.TileMilk, 2)
	if !pkgerrors.Is(err, pkgerrors.GameOver) || board != won {
		t.Fatalf("expected game over with board, got %v\n%s", err, board)
	}
	if game.Board() != won {
		t.Fatalf("board changed after game over")
	}

	game.Reset()
	for _, tile := range []service.Tile{service.TileCookie, service.TileMilk, service.TileCookie, service.TileMilk} {
		if _, err := game.Place(tile, 3); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	board, err = game.Place(service.TileCookie, 3)
	if !pkgerrors.Is(err, pkgerrors.ColumnFull) || board != drawn("..M.", "..C.", "..M.", "..C.") {
		t.Fatalf("expected full column, got %v\n%s", err, board)
	}

	for _, col := range []int{0, 5, -2} {
		if _, err := game.Place(service.TileCookie, col); !pkgerrors.Is(err, pkgerrors.InvalidParams) {
			t.Fatalf("expected invalid column %d, got %v", col, err)
		}
	}
	if _, err := service.ParseTeam("plastic"); !pkgerrors.Is(err, pkgerrors.InvalidParams) {
		t.Fatalf("expected unknown team, got %v", err)
	}
}

func TestGameDrawAndMilkWin(t *testing.T) {
	play := func(game *service.Game, moves string) string {
		var board string
		for _, m := range strings.Fields(moves) {
			tile := service.TileCookie
			if m[0] == 'm' {
				tile = service.TileMilk
			}
			var err error
			board, err = game.Place(tile, int(m[1]-'0'))
			if err != nil {
				t.Fatalf("move %s failed: %v", m, err)
			}
		}
		return board
	}

	game := service.NewGame()
	got := play(game, "c1 c1 c1 m1 m2 m2 m2 c2 c3 c3 c3 m3 m4 m4 m4 c4")
	if want := drawn("MCMC", "CMCM", "CMCM", "CMCM") + "No winner.\n"; got != want {
		t.Fatalf("unexpected draw:\n%s", got)
	}

	game.Reset()
	got = play(game, "c1 m2 c2 m2 m1 c1 c3 m3 m2 m4 c3 m1")
	if want := drawn("MM..", "CMC.", "MCM.", "CMCM") + "🥛 wins!\n"; got != want {
		t.Fatalf("unexpected milk win:\n%s", got)
	}
}

func TestRandomBoardsAreSeeded(t *testing.T) {
	want := []string{
		drawn("CCCC", "MCCM", "MMMM", "CMCM"),
		drawn("CMCC", "MCMC", "MCCC", "CMMM"),
		drawn("CCMC", "CMCC", "MCCM", "CMCC"),
	}
	game := service.NewGame()
	for i, w := range want {
		if got := game.RandomBoard(); !strings.HasPrefix(got, w) {
			t.Fatalf("random board %d:\n%s\nwant:\n%s", i, got, w)
		}
	}
	game.Reset()
	if got := game.RandomBoard(); !strings.HasPrefix(got, want[0]) {
		t.Fatalf("reset must reseed the generator:\n%s", got)
	}
}
