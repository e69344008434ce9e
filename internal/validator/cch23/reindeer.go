package cch23

import (
	"context"
	"net/http"

	"codehunt/internal/validator"
)

const strengthRoster = `[
	{"name":"Zeus","strength":8},
	{"name":"Oner","strength":6},
	{"name":"Faker","strength":7},
	{"name":"Gumayusi","strength":6},
	{"name":"Keria","strength":6}
]`

const contestRoster = `[
	{"name":"Zeus","strength":8,"speed":51.2,"height":81,"antler_width":31,"snow_magic_power":311,"favorite_food":"pizza","cAnD13s_3ATeN-yesT3rdAy":4},
	{"name":"Oner","strength":6,"speed":41.3,"height":51,"antler_width":30,"snow_magic_power":321,"favorite_food":"burger","cAnD13s_3ATeN-yesT3rdAy":1},
	{"name":"Faker","strength":7,"speed":50,"height":50,"antler_width":37,"snow_magic_power":6667,"favorite_food":"broccoli","cAnD13s_3ATeN-yesT3rdAy":1},
	{"name":"Gumayusi","strength":6,"speed":60.1,"height":50,"antler_width":34,"snow_magic_power":2323,"favorite_food":"pizza","cAnD13s_3ATeN-yesT3rdAy":1},
	{"name":"Keria","strength":6,"speed":48.2,"height":65,"antler_width":33,"snow_magic_power":5014,"favorite_food":"wok","cAnD13s_3ATeN-yesT3rdAy":5}
]`

const contestResult = `{
	"fastest":"Speeding past the finish line with a strength of 6 is Gumayusi",
	"tallest":"Zeus is standing tall with his 31 cm wide antlers",
	"magician":"Faker could blast you away with a snow magic power of 6667",
	"consumer":"Keria ate lots of candies, but also some wok"
}`

func validateDay4(ctx context.Context, s *validator.Session) error {
	client := s.Client()

	s.Test(1, 1)
	res, err := s.SendRawJSON(ctx, client, http.MethodPost, "/4/strength", strengthRoster)
	if err != nil {
		return err
	}
	if err := s.ExpectText(res, "33"); err != nil {
		return err
	}
	if err := s.Complete(ctx, true, 0); err != nil {
		return err
	}

	s.Test(2, 1)
	res, err = s.SendRawJSON(ctx, client, http.MethodPost, "/4/contest", contestRoster)
	if err != nil {
		return err
	}
	if err := s.ExpectJSON(res, contestResult); err != nil {
		return err
	}
	return s.Complete(ctx, false, 150)
}
