package cch23

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"codehunt/internal/validator"

	"golang.org/x/sync/errgroup"
)

//go:embed testdata/phrases.txt
var phraseFile string

const (
	stressUsers = 20
	quietPeriod = time.Second
	pace        = 10 * time.Millisecond
)

func phrases() []string {
	return strings.Split(strings.TrimRight(phraseFile, "\n"), "\n")
}

func tweet(user, message string) string {
	data, _ := json.Marshal(map[string]string{"user": user, "message": message})
	return string(data)
}

type chat struct {
	s      *validator.Session
	client *http.Client
}

func (c chat) check(ctx context.Context, err error) error {
	if err != nil {
		return c.s.Fail(ctx, err)
	}
	return nil
}

func (c chat) join(ctx context.Context, room int, user string) (*validator.WSConn, error) {
	return c.s.DialWS(ctx, fmt.Sprintf("/19/ws/room/%d/user/%s", room, user))
}

func (c chat) reset(ctx context.Context) error {
	if err := postStatus(ctx, c.s, c.client, "/19/reset", "", http.StatusOK); err != nil {
		return err
	}
	return c.views(ctx, 0)
}

func (c chat) views(ctx context.Context, want int) error {
	return getText(ctx, c.s, c.client, "/19/views", strconv.Itoa(want))
}

func (c chat) expect(ctx context.Context, ws *validator.WSConn, user, message string) error {
	return c.check(ctx, ws.ExpectJSON(ctx, tweet(user, message)))
}

func (c chat) tweet(ctx context.Context, ws *validator.WSConn, message string) error {
	if err := c.check(ctx, ws.SendTweet(ctx, message)); err != nil {
		return err
	}
	return c.s.Sleep(ctx, pace)
}

func validateDay19(ctx context.Context, s *validator.Session) error {
	if err := validatePing(ctx, s); err != nil {
		return err
	}
	if err := s.Complete(ctx, true, 0); err != nil {
		return err
	}
	if err := validateRooms(ctx, s); err != nil {
		return err
	}
	return s.Complete(ctx, false, 500)
}

func validatePing(ctx context.Context, s *validator.Session) error {
	c := chat{s: s}

	s.Test(1, 1)
	ws, err := s.DialWS(ctx, "/19/ws/ping")
	if err != nil {
		return err
	}
	defer ws.Close()
	if err := c.check(ctx, ws.Send(ctx, "ping")); err != nil {
		return err
	}
	if err := c.check(ctx, ws.ExpectSilence(ctx, quietPeriod)); err != nil {
		return err
	}
	for _, msg := range []string{"serve", "ping"} {
		if err := c.check(ctx, ws.Send(ctx, msg)); err != nil {
			return err
		}
	}
	if err := c.check(ctx, ws.ExpectText(ctx, "pong")); err != nil {
		return err
	}

	s.Test(1, 2)
	if err := c.check(ctx, ws.Send(ctx, "ding")); err != nil {
		return err
	}
	if err := c.check(ctx, ws.ExpectSilence(ctx, quietPeriod)); err != nil {
		return err
	}

	s.Test(1, 3)
	for i := 0; i < 2; i++ {
		if err := c.check(ctx, ws.Send(ctx, "ping")); err != nil {
			return err
		}
	}
	for i := 0; i < 2; i++ {
		if err := c.check(ctx, ws.ExpectText(ctx, "pong")); err != nil {
			return err
		}
	}
	if err := c.check(ctx, ws.ExpectSilence(ctx, quietPeriod/2)); err != nil {
		return err
	}
	return c.check(ctx, ws.Close())
}

func validateRooms(ctx context.Context, s *validator.Session) error {
	c := chat{s: s, client: s.Client()}

	s.Test(2, 1)
	if err := c.reset(ctx); err != nil {
		return err
	}

	s.Test(2, 2)
	elon, err := c.join(ctx, 1, "elonmusk")
	if err != nil {
		return err
	}
	defer elon.Close()
	short := "Next I'm buying Coca-Cola to put the cocaine back in"
	if err := c.check(ctx, elon.SendTweet(ctx, short)); err != nil {
		return err
	}
	if err := c.expect(ctx, elon, "elonmusk", short); err != nil {
		return err
	}
	if err := c.views(ctx, 1); err != nil {
		return err
	}

	s.Test(2, 3)
	long := "I've concocted a whimsical idea to bring a bit of the ol' history back to life by attempting to put the cocaine back in Coca-Cola, rekindling the rebellious spirit of its original formulation"
	if err := c.check(ctx, elon.SendTweet(ctx, long)); err != nil {
		return err
	}
	if err := c.check(ctx, elon.ExpectSilence(ctx, quietPeriod)); err != nil {
		return err
	}
	if err := c.views(ctx, 1); err != nil {
		return err
	}
	if err := c.check(ctx, elon.Close()); err != nil {
		return err
	}
	if err := s.Sleep(ctx, pace); err != nil {
		return err
	}

	if err := validateBands(ctx, c); err != nil {
		return err
	}

	s.Test(2, 7)
	if err := c.reset(ctx); err != nil {
		return err
	}
	if err := stress(ctx, c); err != nil {
		return err
	}
	if err := s.Sleep(ctx, 100*time.Millisecond); err != nil {
		return err
	}
	return c.views(ctx, stressUsers*stressUsers*len(phrases()))
}

func validateBands(ctx context.Context, c chat) error {
	s := c.s
	s.Test(2, 4)
	if err := c.reset(ctx); err != nil {
		return err
	}
	a1, err := c.join(ctx, 44, "annifrid")
	if err != nil {
		return err
	}
	defer a1.Close()
	b1, err := c.join(ctx, 55, "bjorn")
	if err != nil {
		return err
	}
	defer b1.Close()
	b2, err := c.join(ctx, 55, "benny")
	if err != nil {
		return err
	}
	defer b2.Close()
	a2, err := c.join(ctx, 44, "agnetha")
	if err != nil {
		return err
	}
	defer a2.Close()

	lyrics := []struct {
		ws   *validator.WSConn
		user string
		line string
	}{
		{a1, "annifrid", "thank you for the music"},
		{a2, "agnetha", "the songs i'm singing"},
		{a1, "annifrid", "thanks for all"},
		{b1, "bjorn", "uhhhhhhhh?"},
		{a2, "agnetha", "the joy they're bringing"},
		{a1, "annifrid", "who can live without it"},
	}
	for _, l := range lyrics {
		if err := c.tweet(ctx, l.ws, l.line); err != nil {
			return err
		}
	}
	for _, l := range lyrics {
		if l.ws == b1 {
			continue
		}
		for _, member := range []*validator.WSConn{a1, a2} {
			if err := c.expect(ctx, member, l.user, l.line); err != nil {
				return err
			}
		}
	}
	if err := s.Sleep(ctx, pace); err != nil {
		return err
	}
	if err := c.views(ctx, 12); err != nil {
		return err
	}

	s.Test(2, 5)
	if err := c.check(ctx, a1.Close()); err != nil {
		return err
	}
	honesty := "i ask in all honesty"
	if err := c.check(ctx, a2.SendTweet(ctx, honesty)); err != nil {
		return err
	}
	if err := c.expect(ctx, a2, "agnetha", honesty); err != nil {
		return err
	}
	if err := s.Sleep(ctx, pace); err != nil {
		return err
	}
	if err := c.views(ctx, 13); err != nil {
		return err
	}

	s.Test(2, 6)
	newcomer, err := c.join(ctx, 55, "annifrid")
	if err != nil {
		return err
	}
	defer newcomer.Close()
	if err := c.check(ctx, newcomer.ExpectSilence(ctx, quietPeriod)); err != nil {
		return err
	}
	for _, member := range []*validator.WSConn{b1, b2} {
		if err := c.expect(ctx, member, "bjorn", "uhhhhhhhh?"); err != nil {
			return err
		}
	}
	wazza := "wazzaaaaa?"
	if err := c.tweet(ctx, newcomer, wazza); err != nil {
		return err
	}
	if err := c.check(ctx, b1.Close()); err != nil {
		return err
	}
	if err := c.check(ctx, newcomer.SendTweet(ctx, wazza)); err != nil {
		return err
	}
	for _, member := range []*validator.WSConn{b2, b2, newcomer, newcomer} {
		if err := c.expect(ctx, member, "annifrid", wazza); err != nil {
			return err
		}
	}
	if err := s.Sleep(ctx, pace); err != nil {
		return err
	}
	return c.views(ctx, 18)
}

// stress connects every user to one room and has each of them send every
// phrase while all users keep reading.
func stress(ctx context.Context, c chat) error {
	lines := phrases()
	users := make([]*validator.WSConn, 0, stressUsers)
	defer func() {
		for _, u := range users {
			_ = u.Close()
		}
	}()
	for i := 0; i < stressUsers; i++ {
		u, err := c.join(ctx, 1, strconv.Itoa(i))
		if err != nil {
			return err
		}
		users = append(users, u)
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, u := range users {
		i, u := i, u
		g.Go(func() error {
			u.Drain(gctx)
			return nil
		})
		g.Go(func() error {
			for n, line := range lines {
				if err := c.check(gctx, u.SendTweet(gctx, line)); err != nil {
					return err
				}
				if err := c.s.Sleep(gctx, time.Millisecond); err != nil {
					return err
				}
				if i == 0 && n == 100 {
					if _, err := c.s.Get(gctx, c.s.Client(), "/19/views"); err != nil {
						return err
					}
				}
			}
			if err := c.s.Sleep(gctx, 2*time.Second); err != nil {
				return err
			}
			return c.check(gctx, u.Close())
		})
	}
	return g.Wait()
}
