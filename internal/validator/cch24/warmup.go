package cch24

import (
	"context"
	"net/http"

	"codehunt/internal/validator"
)

const seekLocation = "https://www.youtube.com/watch?v=9Gc4QTqslN4"

func validateWarmup(ctx context.Context, s *validator.Session) error {
	s.Test(1, 1)
	res, err := s.Get(ctx, s.Client(), "/")
	if err != nil {
		return err
	}
	if err := s.StatusAndText(res, http.StatusOK, "Hello, bird!"); err != nil {
		return err
	}
	if err := s.Complete(ctx, true, 0); err != nil {
		return err
	}

	s.Test(2, 1)
	res, err = s.Get(ctx, s.NoRedirectClient(), "/-1/seek")
	if err != nil {
		return err
	}
	if err := s.ExpectStatus(res, http.StatusFound); err != nil {
		return err
	}
	if err := s.Check(res.Header.Get("Location") == seekLocation); err != nil {
		return err
	}
	return s.Complete(ctx, false, 0)
}
