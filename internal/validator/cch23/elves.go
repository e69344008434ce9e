package cch23

import (
	"context"
	"encoding/json"
	"net/http"

	"codehunt/internal/validator"
)

func validateDay6(ctx context.Context, s *validator.Session) error {
	client := s.Client()
	count := func(text string) (*validator.Response, error) {
		return s.Send(ctx, client, http.MethodPost, "/6", "", text)
	}

	core := []struct {
		text string
		elf  int64
	}{
		{"elf elf elf", 3},
		{"In the quirky town of Elf stood an enchanting shop named 'The Elf & Shelf.' Managed by Wally, a mischievous elf with a knack for crafting exquisite shelves, the shop was a bustling hub of elf after elf who wanter to see their dear elf in Belfast.", 6},
	}
	for i, c := range core {
		s.Test(1, i+1)
		res, err := count(c.text)
		if err != nil {
			return err
		}
		var body map[string]json.Number
		if err := s.DecodeJSON(res, &body); err != nil {
			return err
		}
		n, err := body["elf"].Int64()
		if err != nil || n != c.elf {
			return s.Fail(ctx, err)
		}
	}
	if err := s.Complete(ctx, true, 0); err != nil {
		return err
	}

	bonus := []struct{ text, want string }{
		{
			"elf elf elf on a shelf",
			`{"elf":4,"elf on a shelf":1,"shelf with no elf on it":0}`,
		},
		{
			"In Belfast I heard an elf on a shelf on a shelf on a ",
			`{"elf":4,"elf on a shelf":2,"shelf with no elf on it":0}`,
		},
		{
			"Somewhere in Belfast under a shelf store but above the shelf realm there's an elf on a shelf on a shelf on a shelf on a elf on a shelf on a shelf on a shelf on a shelf on a elf on a elf on a elf on a shelf on a ",
			`{"elf":16,"elf on a shelf":8,"shelf with no elf on it":2}`,
		},
	}
	for i, c := range bonus {
		s.Test(2, i+1)
		res, err := count(c.text)
		if err != nil {
			return err
		}
		if err := s.ExpectJSON(res, c.want); err != nil {
			return err
		}
	}
	return s.Complete(ctx, false, 200)
}
