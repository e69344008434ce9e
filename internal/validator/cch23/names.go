package cch23

import (
	"context"
	"net/http"

	"codehunt/internal/validator"
)

type sliceCase struct {
	query string
	in    string
	want  string
}

func validateDay5(ctx context.Context, s *validator.Session) error {
	core := []sliceCase{
		{
			"?offset=0&limit=8",
			`["Ava","Caleb","Mia","Owen","Lily","Ethan","Zoe","Nolan"]`,
			`["Ava","Caleb","Mia","Owen","Lily","Ethan","Zoe","Nolan"]`,
		},
		{
			"?offset=10&limit=4",
			`["Ava","Caleb","Mia","Owen","Lily","Ethan","Zoe","Nolan","Harper","Lucas","Stella","Mason","Olivia","Wyatt","Isabella","Logan"]`,
			`["Stella","Mason","Olivia","Wyatt"]`,
		},
	}
	if err := runSliceCases(ctx, s, 1, core); err != nil {
		return err
	}
	if err := s.Complete(ctx, true, 0); err != nil {
		return err
	}

	abcd := `["Alice","Bob","Charlie","David"]`
	bonus := []sliceCase{
		{"?offset=0&limit=5", `[]`, `[]`},
		{"", abcd, abcd},
		{"?offset=2", abcd, `["Charlie","David"]`},
		{"?offset=2&limit=0", abcd, `[]`},
		{
			"?split=6",
			`["Alice","Bob","Charlie","David","Eva","Frank","Grace","Hank","Ivy","Jack","Katie","Liam","Mia","Nathan","Olivia","Paul","Quinn","Rachel","Samuel","Tara","Aria","Jackson"]`,
			`[["Alice","Bob","Charlie","David","Eva","Frank"],["Grace","Hank","Ivy","Jack","Katie","Liam"],["Mia","Nathan","Olivia","Paul","Quinn","Rachel"],["Samuel","Tara","Aria","Jackson"]]`,
		},
		{
			"?offset=2&limit=4&split=1",
			`["Alice","Bob","Charlie","David","Alice","Bob","Charlie","David"]`,
			`[["Charlie"],["David"],["Alice"],["Bob"]]`,
		},
		{"?limit=0", abcd, `[]`},
		{"?offset=0&limit=0", abcd, `[]`},
	}
	if err := runSliceCases(ctx, s, 2, bonus); err != nil {
		return err
	}
	return s.Complete(ctx, false, 150)
}

func runSliceCases(ctx context.Context, s *validator.Session, task int, cases []sliceCase) error {
	for i, c := range cases {
		s.Test(task, i+1)
		if err := postJSON(ctx, s, s.Client(), "/5"+c.query, c.in, http.StatusOK, c.want); err != nil {
			return err
		}
	}
	return nil
}
