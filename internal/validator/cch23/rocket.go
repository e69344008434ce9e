package cch23

import (
	"context"
	"embed"
	"net/http"
	"strconv"
	"strings"

	"codehunt/internal/validator"
)

//go:embed testdata/rocket
var starMaps embed.FS

type textCase struct {
	in   string
	want string
}

func runTextCases(ctx context.Context, s *validator.Session, task int, path string, cases []textCase) error {
	client := s.Client()
	for i, c := range cases {
		s.Test(task, i+1)
		res, err := s.Send(ctx, client, http.MethodPost, path, "", c.in)
		if err != nil {
			return err
		}
		if err := s.StatusAndText(res, http.StatusOK, c.want); err != nil {
			return err
		}
	}
	return nil
}

func starMap(n int) string {
	data, err := starMaps.ReadFile("testdata/rocket/" + strconv.Itoa(n) + ".txt")
	if err != nil {
		panic(err)
	}
	return string(data)
}

// The fifth integers check posts the large numbers.txt input, which is not
// shipped, so task 1 runs the first four checks only.
func validateDay22(ctx context.Context, s *validator.Session) error {
	integers := []textCase{
		{"1\n", strings.Repeat("🎁", 1)},
		{"1\n1\n2\n2\n3\n3\n4\n", strings.Repeat("🎁", 4)},
		{"1\n3\n1\n2\n4\n2\n3\n", strings.Repeat("🎁", 4)},
		{
			"11111111111111111111\n555555555555555\n33333333\n68\n555555555555555\n33333333\n4444\n11111111111111111111\n4444\n",
			strings.Repeat("🎁", 68),
		},
	}
	if err := runTextCases(ctx, s, 1, "/22/integers", integers); err != nil {
		return err
	}
	if err := s.Complete(ctx, true, 0); err != nil {
		return err
	}

	answers := []string{"1 1.000", "3 26.123", "2 18.776", "1 6.708", "1 6.708", "5 7167.055", "20 27826.439", "23 34029.320"}
	rockets := make([]textCase, len(answers))
	for i, want := range answers {
		rockets[i] = textCase{in: starMap(i + 1), want: want}
	}
	if err := runTextCases(ctx, s, 2, "/22/rocket", rockets); err != nil {
		return err
	}
	return s.Complete(ctx, false, 600)
}
