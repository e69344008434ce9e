package cch23

import (
	"context"
	"encoding/json"
	"net/http"

	"codehunt/internal/validator"
)

type verdict struct {
	input  string
	status int
	want   string
}

func inputBody(input string) string {
	data, _ := json.Marshal(map[string]string{"input": input})
	return string(data)
}

func naughty(reason string) string {
	data, _ := json.Marshal(map[string]string{"result": "naughty", "reason": reason})
	return string(data)
}

func validateDay15(ctx context.Context, s *validator.Session) error {
	client := s.Client()
	nice := []verdict{
		{"hello there", http.StatusOK, `{"result":"nice"}`},
		{"he77o there", http.StatusBadRequest, `{"result":"naughty"}`},
		{"hello", http.StatusBadRequest, `{"result":"naughty"}`},
		{"hello xylophone", http.StatusBadRequest, `{"result":"naughty"}`},
		{"password", http.StatusBadRequest, `{"result":"naughty"}`},
	}
	if err := runVerdicts(ctx, s, client, "/15/nice", 1, nice); err != nil {
		return err
	}
	s.Test(1, 6)
	res, err := s.SendRawJSON(ctx, client, http.MethodPost, "/15/nice", "WooooOOOooOOOoooOO 👻")
	if err != nil {
		return err
	}
	if err := s.ExpectStatus(res, http.StatusBadRequest); err != nil {
		return err
	}
	if err := s.Complete(ctx, true, 0); err != nil {
		return err
	}

	game := []verdict{
		{"mario", http.StatusBadRequest, naughty("8 chars")},
		{"mariobro", http.StatusBadRequest, naughty("more types of chars")},
		{"EEEEEEEEEEE", http.StatusBadRequest, naughty("more types of chars")},
		{"E3E3E3E3E3E", http.StatusBadRequest, naughty("more types of chars")},
		{"e3E3e#eE#ee3#EeE3", http.StatusBadRequest, naughty("55555")},
		{"Password12345", http.StatusBadRequest, naughty("math is hard")},
		{"2 00 2 3 OOgaBooga", http.StatusBadRequest, naughty("math is hard")},
		{"2+2/2-8*8 = 1-2000 OOgaBooga", http.StatusNotAcceptable, naughty("not joyful enough")},
		{"2000.23.A yoyoj", http.StatusNotAcceptable, naughty("not joyful enough")},
		{"2000.23.A joy joy", http.StatusNotAcceptable, naughty("not joyful enough")},
		{"2000.23.A joyo", http.StatusNotAcceptable, naughty("not joyful enough")},
		{"2000.23.A j  ;)  o  ;)  y ", http.StatusUnavailableForLegalReasons, naughty("illegal: no sandwich")},
		{"2020.3.A j  ;)  o  ;)  y", http.StatusUnavailableForLegalReasons, naughty("illegal: no sandwich")},
		{"2000.23.A j  ;)  o  ;)  y AzA", http.StatusRequestedRangeNotSatisfiable, naughty("outranged")},
		{"2000.23.A j  ;)  o  ;)  y⥿ AzA", http.StatusRequestedRangeNotSatisfiable, naughty("outranged")},
		{"2000.23.A j  ;)  o  ;)  y ⦄AzA", http.StatusUpgradeRequired, naughty("😳")},
		{"2000.23.A j  🥶  o  🍦  y ⦄AzA", http.StatusTeapot, naughty("not a coffee brewer")},
		{"2000.23.A j ⦖⦖⦖⦖⦖⦖⦖⦖ 🥶  o  🍦  y ⦄AzA", http.StatusOK, `{"result":"nice","reason":"that's a nice password"}`},
	}
	if err := runVerdicts(ctx, s, client, "/15/game", 2, game); err != nil {
		return err
	}
	return s.Complete(ctx, false, 400)
}

func runVerdicts(ctx context.Context, s *validator.Session, client *http.Client, path string, task int, cases []verdict) error {
	for i, c := range cases {
		s.Test(task, i+1)
		if err := postJSON(ctx, s, client, path, inputBody(c.input), c.status, c.want); err != nil {
			return err
		}
	}
	return nil
}
