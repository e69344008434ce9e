package cch23

import (
	"context"
	"net/http"

	"codehunt/internal/validator"
)

func validateWarmup(ctx context.Context, s *validator.Session) error {
	client := s.Client()

	s.Test(1, 1)
	res, err := s.Get(ctx, client, "/")
	if err != nil {
		return err
	}
	if err := s.ExpectStatus(res, http.StatusOK); err != nil {
		return err
	}
	if err := s.Complete(ctx, true, 0); err != nil {
		return err
	}

	s.Test(2, 1)
	res, err = s.Get(ctx, client, "/-1/error")
	if err != nil {
		return err
	}
	if err := s.ExpectStatus(res, http.StatusInternalServerError); err != nil {
		return err
	}
	return s.Complete(ctx, false, 0)
}

func validateDay1(ctx context.Context, s *validator.Session) error {
	client := s.Client()
	core := []struct{ path, want string }{
		{"/1/2/3", "1"},
		{"/1/12/16", "21952"},
	}
	for i, c := range core {
		s.Test(1, i+1)
		if err := getText(ctx, s, client, c.path, c.want); err != nil {
			return err
		}
	}
	if err := s.Complete(ctx, true, 0); err != nil {
		return err
	}

	bonus := []struct{ path, want string }{
		{"/1/3/5/7/9", "512"},
		{"/1/0/0/0", "0"},
		{"/1/-3/1", "-64"},
		{"/1/3/5/7/9/2/13/12/16/18", "729"},
	}
	for i, c := range bonus {
		s.Test(2, i+1)
		if err := getText(ctx, s, client, c.path, c.want); err != nil {
			return err
		}
	}
	return s.Complete(ctx, false, 100)
}
