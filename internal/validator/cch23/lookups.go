package cch23

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"codehunt/internal/validator"
)

const floatTolerance = 0.001

func expectFloat(ctx context.Context, s *validator.Session, res *validator.Response, want float64) error {
	got, err := strconv.ParseFloat(strings.TrimSpace(res.Text()), 64)
	if err != nil {
		return s.Fail(ctx, err)
	}
	if math.IsNaN(got) || math.IsInf(got, 0) || math.Abs(got-want) >= floatTolerance {
		return s.Fail(ctx, fmt.Errorf("got %v, want %v", got, want))
	}
	return nil
}

type floatCase struct {
	path string
	want float64
}

func runFloatCases(ctx context.Context, s *validator.Session, task int, cases []floatCase) error {
	client := s.Client()
	for i, c := range cases {
		s.Test(task, i+1)
		res, err := s.Get(ctx, client, c.path)
		if err != nil {
			return err
		}
		if err := expectFloat(ctx, s, res, c.want); err != nil {
			return err
		}
	}
	return nil
}

func validateDay8(ctx context.Context, s *validator.Session) error {
	weights := []floatCase{
		{"/8/weight/225", 16},
		{"/8/weight/393", 5.2},
		{"/8/weight/92", 0.1},
	}
	if err := runFloatCases(ctx, s, 1, weights); err != nil {
		return err
	}
	if err := s.Complete(ctx, true, 0); err != nil {
		return err
	}

	drops := []floatCase{
		{"/8/drop/383", 13316.953480432378},
		{"/8/drop/16", 25.23212238397714},
		{"/8/drop/143", 6448.2090536830465},
	}
	if err := runFloatCases(ctx, s, 2, drops); err != nil {
		return err
	}
	return s.Complete(ctx, false, 160)
}

func validateDay21(ctx context.Context, s *validator.Session) error {
	client := s.Client()
	coords := []struct{ cell, want string }{
		{"0100111110010011000110011001010101011111000010100011110001011011", "83°39'54.324''N 30°37'40.584''W"},
		{"0010000111110000011111100000111010111100000100111101111011000101", "18°54'55.944''S 47°31'17.976''E"},
		{"0101110100010001110001111100100111000111100010111100111101110001", "51°26'57.804''N 99°28'33.204''E"},
	}
	for i, c := range coords {
		s.Test(1, i+1)
		if err := getText(ctx, s, client, "/21/coords/"+c.cell, c.want); err != nil {
			return err
		}
	}
	if err := s.Complete(ctx, true, 0); err != nil {
		return err
	}

	countries := []struct{ cell, want string }{
		{"0010000111110000011111100000111010111100000100111101111011000101", "Madagascar"},
		{"0011001000100010100010110001110100000111000010111000100000010101", "Brunei"},
		{"1001010011001110010011100110001000100110100111001001000100110001", "Brazil"},
		{"0101110100010001110001111100100111000111100010111100111101110001", "Mongolia"},
		{"0011100111101001000010001100001100111111101001100110000010101011", "Nepal"},
		{"0100011111000110101110101100011001101001111111001011000011101111", "Belgium"},
		{"0100111100110010101001010001010100100110110000100100101011011111", "Iceland"},
	}
	for i, c := range countries {
		s.Test(2, i+1)
		if err := getText(ctx, s, client, "/21/country/"+c.cell, c.want); err != nil {
			return err
		}
	}
	return s.Complete(ctx, false, 300)
}
