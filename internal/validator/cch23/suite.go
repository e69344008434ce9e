// Package cch23 validates solutions to the 2023 Christmas Code Hunt.
package cch23

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"codehunt/internal/validator"
)

// Banner is printed once before any challenge runs.
const Banner = `⋆｡°✩ ⋆⁺｡˚⋆˙‧₊✩₊‧˙⋆˚｡⁺⋆ ✩°｡⋆°✩ ⋆⁺｡˚⋆˙‧₊✩₊‧˙⋆˚｡⁺⋆ ✩°｡⋆
.・゜゜・・゜゜・．                .・゜゜・・゜゜・．
｡･ﾟﾟ･          SHUTTLE CCH23 VALIDATOR          ･ﾟﾟ･｡
.・゜゜・・゜゜・．                .・゜゜・・゜゜・．
⋆｡°✩ ⋆⁺｡˚⋆˙‧₊✩₊‧˙⋆˚｡⁺⋆ ✩°｡⋆°✩ ⋆⁺｡˚⋆˙‧₊✩₊‧˙⋆˚｡⁺⋆ ✩°｡⋆
`

// Suite returns the cch23 challenges in the order --all runs them.
func Suite() *validator.Suite {
	return validator.NewSuite("cch23", Banner,
		validator.Challenge{Number: "-1", Validate: validateWarmup},
		validator.Challenge{Number: "1", Validate: validateDay1},
		validator.Challenge{Number: "4", Validate: validateDay4},
		validator.Challenge{Number: "5", Validate: validateDay5},
		validator.Challenge{Number: "6", Validate: validateDay6},
		validator.Challenge{Number: "7", Validate: validateDay7},
		validator.Challenge{Number: "8", Validate: validateDay8},
		validator.Challenge{Number: "12", Validate: validateDay12},
		validator.Challenge{Number: "13", Validate: validateDay13},
		validator.Challenge{Number: "14", Validate: validateDay14},
		validator.Challenge{Number: "15", Validate: validateDay15},
		validator.Challenge{Number: "18", Validate: validateDay18},
		validator.Challenge{Number: "19", Validate: validateDay19},
		validator.Challenge{Number: "21", Validate: validateDay21},
		validator.Challenge{Number: "22", Validate: validateDay22},
	)
}

func getText(ctx context.Context, s *validator.Session, client *http.Client, path, want string) error {
	res, err := s.Get(ctx, client, path)
	if err != nil {
		return err
	}
	return s.ExpectText(res, want)
}

func getJSON(ctx context.Context, s *validator.Session, client *http.Client, path, want string) error {
	res, err := s.Get(ctx, client, path)
	if err != nil {
		return err
	}
	return s.ExpectJSON(res, want)
}

func postJSON(ctx context.Context, s *validator.Session, client *http.Client, path, body string, status int, want string) error {
	res, err := s.SendRawJSON(ctx, client, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	return s.StatusAndJSON(res, status, want)
}

func postStatus(ctx context.Context, s *validator.Session, client *http.Client, path, body string, status int) error {
	var (
		res *validator.Response
		err error
	)
	if body == "" {
		res, err = s.Do(ctx, client, validator.Request{Method: http.MethodPost, Path: path})
	} else {
		res, err = s.SendRawJSON(ctx, client, http.MethodPost, path, body)
	}
	if err != nil {
		return err
	}
	return s.ExpectStatus(res, status)
}

// compactJSON strips the formatting of a literal document before it is sent.
func compactJSON(doc string) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(doc)); err != nil {
		return doc
	}
	return buf.String()
}
