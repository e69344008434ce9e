package cch24

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"codehunt/internal/validator"
)

// board renders rows written with C (cookie), M (milk) and . (empty) the way
// the game endpoints print them, followed by an optional result line.
func board(result string, rows ...string) string {
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
	b.WriteString("⬜⬜⬜⬜⬜⬜\n")
	if result != "" {
		b.WriteString(result + "\n")
	}
	return b.String()
}

var emptyBoard = board("", "....", "....", "....", "....")

type move struct {
	team   string
	column int
}

// moves parses a compact list such as "c1 m2" into placements.
func moves(list string) []move {
	var out []move
	for _, f := range strings.Fields(list) {
		team := "cookie"
		if f[0] == 'm' {
			team = "milk"
		}
		col, _ := strconv.Atoi(f[1:])
		out = append(out, move{team, col})
	}
	return out
}

func place(ctx context.Context, s *validator.Session, client *http.Client, team, column string) (*validator.Response, error) {
	return post(ctx, s, client, "/12/place/"+team+"/"+column)
}

func reset12(ctx context.Context, s *validator.Session, client *http.Client) error {
	res, err := post(ctx, s, client, "/12/reset")
	if err != nil {
		return err
	}
	return s.StatusAndText(res, http.StatusOK, emptyBoard)
}

// playAll places every move and checks the final board.
func playAll(ctx context.Context, s *validator.Session, client *http.Client, list, want string) error {
	var last *validator.Response
	for _, m := range moves(list) {
		res, err := place(ctx, s, client, m.team, strconv.Itoa(m.column))
		if err != nil {
			return err
		}
		if err := s.ExpectStatus(res, http.StatusOK); err != nil {
			return err
		}
		last = res
	}
	return s.ExpectText(last, want)
}

var randomBoards = []string{
	board("", "CCCC", "MCCM", "MMMM", "CMCM"),
	board("", "CMCC", "MCMC", "MCCC", "CMMM"),
	board("", "CCMC", "CMCC", "MCCM", "CMCC"),
	board("", "MCCM", "MCCC", "CMMM", "CMCM"),
	board("", "MMMC", "CCCM", "MCCM", "CMMC"),
}

func validateDay12(ctx context.Context, s *validator.Session) error {
	client := s.Client()

	s.Test(1, 1)
	if err := reset12(ctx, s, client); err != nil {
		return err
	}
	s.Test(1, 2)
	if err := getText(ctx, s, client, "/12/board", emptyBoard); err != nil {
		return err
	}
	if err := s.Complete(ctx, false, 0); err != nil {
		return err
	}

	s.Test(2, 1)
	if err := reset12(ctx, s, client); err != nil {
		return err
	}
	stack := []string{
		board("", "....", "....", "....", "C..."),
		board("", "....", "....", "C...", "C..."),
		board("", "....", "C...", "C...", "C..."),
	}
	for _, want := range stack {
		res, err := place(ctx, s, client, "cookie", "1")
		if err != nil {
			return err
		}
		if err := s.StatusAndText(res, http.StatusOK, want); err != nil {
			return err
		}
	}
	won := board("🍪 wins!", "C...", "C...", "C...", "C...")
	res, err := place(ctx, s, client, "cookie", "1")
	if err != nil {
		return err
	}
	if err := s.StatusAndText(res, http.StatusOK, won); err != nil {
		return err
	}
	for _, m := range []move{{"cookie", 1}, {"milk", 2}} {
		res, err := place(ctx, s, client, m.team, strconv.Itoa(m.column))
		if err != nil {
			return err
		}
		if err := s.StatusAndText(res, http.StatusServiceUnavailable, won); err != nil {
			return err
		}
	}
	res, err = s.Get(ctx, client, "/12/board")
	if err != nil {
		return err
	}
	if err := s.StatusAndText(res, http.StatusOK, won); err != nil {
		return err
	}

	games := []struct {
		list string
		want string
	}{
		{"c1 m2 c2 m3 m3 c3 m4 m4 m4 c4", board("🍪 wins!", "...C", "..CM", ".CMM", "CMMM")},
		{"c1 c1 c1 m1 m2 m2 m2 c2 c3 c3 c3 m3 m4 m4 m4 c4", board("No winner.", "MCMC", "CMCM", "CMCM", "CMCM")},
		{"c1 m2 c2 m2 m1 c1 c3 m3 m2 m4 c3 m1", board("🥛 wins!", "MM..", "CMC.", "MCM.", "CMCM")},
	}
	for i, g := range games {
		s.Test(2, i+2)
		if err := reset12(ctx, s, client); err != nil {
			return err
		}
		if err := playAll(ctx, s, client, g.list, g.want); err != nil {
			return err
		}
		if i+1 < len(games) {
			if err := s.Sleep(ctx, time.Second); err != nil {
				return err
			}
		}
	}

	s.Test(2, 5)
	res, err = place(ctx, s, client, "milk", "4")
	if err != nil {
		return err
	}
	if err := s.ExpectStatus(res, http.StatusServiceUnavailable); err != nil {
		return err
	}
	res, err = post(ctx, s, client, "/12/reset")
	if err != nil {
		return err
	}
	if err := s.ExpectStatus(res, http.StatusOK); err != nil {
		return err
	}
	invalid := [][2]string{{"cookie", "0"}, {"cookie", "5"}, {"cookie", "-2"}, {"cookie", "one"}, {"plastic", "1"}}
	for _, p := range invalid {
		res, err := place(ctx, s, client, p[0], p[1])
		if err != nil {
			return err
		}
		if err := s.ExpectStatus(res, http.StatusBadRequest); err != nil {
			return err
		}
	}
	if err := s.Complete(ctx, true, 0); err != nil {
		return err
	}

	s.Test(3, 1)
	if err := reset12(ctx, s, client); err != nil {
		return err
	}
	for _, want := range randomBoards {
		if err := randomBoard(ctx, s, client, want); err != nil {
			return err
		}
	}
	if err := reset12(ctx, s, client); err != nil {
		return err
	}
	if err := randomBoard(ctx, s, client, randomBoards[0]); err != nil {
		return err
	}
	return s.Complete(ctx, false, 75)
}

func randomBoard(ctx context.Context, s *validator.Session, client *http.Client, want string) error {
	res, err := s.Get(ctx, client, "/12/random-board")
	if err != nil {
		return err
	}
	if err := s.ExpectStatus(res, http.StatusOK); err != nil {
		return err
	}
	return s.ExpectPrefix(res, want)
}
