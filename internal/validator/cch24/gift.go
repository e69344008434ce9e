package cch24

import (
	"context"
	_ "embed"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"codehunt/internal/validator"
)

//go:embed testdata/decode.json
var decodeCasesJSON []byte

type decodeCase struct {
	Test   int    `json:"test"`
	Token  string `json:"token"`
	Status int    `json:"status"`
	Claims string `json:"claims"`
}

// jwtHeader reports whether token starts with a decodable JOSE header.
func jwtHeader(token string) bool {
	head, _, ok := strings.Cut(token, ".")
	if !ok {
		return false
	}
	data, err := base64.RawURLEncoding.DecodeString(head)
	if err != nil {
		return false
	}
	var header struct {
		Alg string `json:"alg"`
	}
	return json.Unmarshal(data, &header) == nil && header.Alg != ""
}

func wrap(ctx context.Context, s *validator.Session, client *http.Client, payload string) (*validator.Response, error) {
	res, err := s.SendRawJSON(ctx, client, http.MethodPost, "/16/wrap", payload)
	if err != nil {
		return nil, err
	}
	return res, s.ExpectStatus(res, http.StatusOK)
}

func unwrap(ctx context.Context, s *validator.Session, client *http.Client, header http.Header) (*validator.Response, error) {
	return s.Do(ctx, client, validator.Request{Method: http.MethodGet, Path: "/16/unwrap", Header: header})
}

func validateDay16(ctx context.Context, s *validator.Session) error {
	s.Test(1, 1)
	client := s.CookieClient()
	res, err := wrap(ctx, s, client, `{"cookie":"yum"}`)
	if err != nil {
		return err
	}
	token, ok := strings.CutPrefix(res.Header.Get("Set-Cookie"), "gift=")
	if !ok {
		return s.Current()
	}
	token, _, _ = strings.Cut(token, ";")
	if err := s.Check(jwtHeader(token)); err != nil {
		return err
	}
	res, err = unwrap(ctx, s, client, nil)
	if err != nil {
		return err
	}
	if err := s.StatusAndText(res, http.StatusOK, `{"cookie":"yum"}`); err != nil {
		return err
	}

	s.Test(1, 2)
	clients := make([]*http.Client, 3)
	payloads := make([]string, 3)
	for i := range clients {
		clients[i] = s.CookieClient()
		payloads[i] = fmt.Sprintf(`{"recipient":"p%d","gifts":["Toy train","Caramel corn","Potato"]}`, i+1)
		if _, err := wrap(ctx, s, clients[i], payloads[i]); err != nil {
			return err
		}
	}
	for _, i := range []int{0, 2} {
		res, err := unwrap(ctx, s, clients[i], nil)
		if err != nil {
			return err
		}
		if err := s.StatusAndJSON(res, http.StatusOK, payloads[i]); err != nil {
			return err
		}
	}

	s.Test(1, 3)
	res, err = unwrap(ctx, s, s.Client(), nil)
	if err != nil {
		return err
	}
	if err := s.ExpectStatus(res, http.StatusBadRequest); err != nil {
		return err
	}
	s.Test(1, 4)
	res, err = unwrap(ctx, s, s.Client(), http.Header{"Cookie": {"candy=5"}})
	if err != nil {
		return err
	}
	if err := s.ExpectStatus(res, http.StatusBadRequest); err != nil {
		return err
	}
	if err := s.Complete(ctx, true, 0); err != nil {
		return err
	}

	var cases []decodeCase
	if err := json.Unmarshal(decodeCasesJSON, &cases); err != nil {
		return s.Fail(ctx, err)
	}
	plain := s.Client()
	for _, c := range cases {
		s.Test(2, c.Test)
		res, err := s.Send(ctx, plain, http.MethodPost, "/16/decode", "", c.Token)
		if err != nil {
			return err
		}
		if c.Claims != "" {
			err = s.StatusAndJSON(res, c.Status, c.Claims)
		} else {
			err = s.ExpectStatus(res, c.Status)
		}
		if err != nil {
			return err
		}
	}
	return s.Complete(ctx, false, 200)
}
