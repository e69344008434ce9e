package server_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	cch23service "codehunt/internal/cch23/service"
	"codehunt/internal/common/cache"
	"codehunt/internal/common/clock"
	"codehunt/internal/common/db"
	"codehunt/internal/server"
	"codehunt/internal/validator"
	cch23suite "codehunt/internal/validator/cch23"
	cch24suite "codehunt/internal/validator/cch24"

	"github.com/gin-gonic/gin"
)

var start = time.Date(2024, time.December, 1, 12, 0, 0, 0, time.UTC)

// fakeUpstreams stands in for PokeAPI and the reverse geocoder.
func fakeUpstreams(t *testing.T) cch23service.UpstreamConfig {
	t.Helper()
	weights := map[string]string{"16": "18", "92": "1", "143": "4600", "225": "160", "383": "9500", "393": "52"}
	pokeapi := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		weight, ok := weights[strings.TrimPrefix(r.URL.Path, "/api/v2/pokemon/")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = fmt.Fprintf(w, `{"weight":%s}`, weight)
	}))
	t.Cleanup(pokeapi.Close)

	countries := map[string]string{
		"-18.9,47.5":  "Madagascar",
		"4.9,115.0":   "Brunei",
		"-23.7,-46.7": "Brazil",
		"51.4,99.5":   "Mongolia",
		"27.8,86.7":   "Nepal",
		"51.4,4.9":    "Belgium",
		"66.6,-18.0":  "Iceland",
	}
	geocoder := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lat, _ := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
		lon, _ := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
		country, ok := countries[fmt.Sprintf("%.1f,%.1f", lat, lon)]
		if !ok {
			_, _ = w.Write([]byte(`{"error":"Unable to geocode"}`))
			return
		}
		_, _ = fmt.Fprintf(w, `{"address":{"country":%q}}`, country)
	}))
	t.Cleanup(geocoder.Close)

	return cch23service.UpstreamConfig{PokeAPIURL: pokeapi.URL, GeocoderURL: geocoder.URL}
}

func newServer(t *testing.T, event string, clk clock.Clock) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	database, err := db.Open(db.Config{Driver: db.DriverSQLite, DSN: ":memory:"})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	memory := cache.NewMemoryCache(1024)
	memory.SetClock(clk.Now)

	router, err := server.NewRouter(context.Background(), server.Deps{
		Event:      event,
		Cache:      memory,
		Database:   database,
		Clock:      clk,
		GiftSecret: []byte("north-pole"),
		Upstream:   fakeUpstreams(t),
	})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

// validate runs one challenge and returns the log lines it produced.
func validate(t *testing.T, srv *httptest.Server, suite *validator.Suite, number string, sleeper validator.Sleeper) ([]string, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	updates := make(chan validator.Update, 64)
	done := make(chan error, 1)
	go func() {
		defer close(updates)
		done <- validator.Validate(ctx, validator.Config{BaseURL: srv.URL, Sleeper: sleeper}, suite, number, updates)
	}()
	var lines []string
	for u := range updates {
		if u.Kind == validator.UpdateLogLine {
			lines = append(lines, u.Line)
		}
	}
	return lines, <-done
}

func TestNewRouterRejectsUnknownEvent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, err := server.NewRouter(context.Background(), server.Deps{Event: "cch22"})
	if err == nil {
		t.Fatalf("expected unknown event error")
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv := newServer(t, server.EventCCH24, clock.NewFake(start))
	for _, path := range []string{"/healthz", "/readyz"} {
		res, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("get %s: %v", path, err)
		}
		_ = res.Body.Close()
		if res.StatusCode != http.StatusOK {
			t.Fatalf("%s returned %d", path, res.StatusCode)
		}
	}
}

func TestCCH24Challenges(t *testing.T) {
	fake := clock.NewFake(start)
	srv := newServer(t, server.EventCCH24, fake)
	suite := cch24suite.Suite()

	for _, number := range []string{"-1", "2", "5", "9", "12", "19", "23"} {
		t.Run(number, func(t *testing.T) {
			lines, err := validate(t, srv, suite, number, fake)
			if err != nil {
				t.Fatalf("challenge %s failed: %v (log %q)", number, err, lines)
			}
		})
	}
}

func TestCCH24DecodeNeedsSantaKey(t *testing.T) {
	fake := clock.NewFake(start)
	srv := newServer(t, server.EventCCH24, fake)

	_, err := validate(t, srv, cch24suite.Suite(), "16", fake)
	var failed validator.TaskTest
	if !errors.As(err, &failed) {
		t.Fatalf("expected a failed check, got %v", err)
	}
	if failed != (validator.TaskTest{Task: 2, Test: 1}) {
		t.Fatalf("expected decode to fail first, got %v", failed)
	}
}

func TestCCH23Challenges(t *testing.T) {
	fake := clock.NewFake(start)
	srv := newServer(t, server.EventCCH23, fake)
	suite := cch23suite.Suite()

	cases := []struct {
		number  string
		sleeper validator.Sleeper
	}{
		{"-1", fake},
		{"1", fake},
		{"4", fake},
		{"5", fake},
		{"6", fake},
		{"7", fake},
		{"8", fake},
		{"12", fake},
		{"13", fake},
		{"14", fake},
		{"15", fake},
		{"18", fake},
		// The chat broadcast settles on the wall clock.
		{"19", validator.RealSleeper()},
		{"21", fake},
		{"22", fake},
	}
	for _, tc := range cases {
		t.Run(tc.number, func(t *testing.T) {
			lines, err := validate(t, srv, suite, tc.number, tc.sleeper)
			if err != nil {
				t.Fatalf("challenge %s failed: %v (log %q)", tc.number, err, lines)
			}
		})
	}
}
