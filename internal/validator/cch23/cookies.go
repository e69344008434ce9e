package cch23

import (
	"context"
	"encoding/base64"
	"net/http"

	"codehunt/internal/validator"
)

type bakeCase struct {
	in   string
	want string
}

func recipeRequest(path, doc string) validator.Request {
	header := http.Header{}
	header.Set("Cookie", "recipe="+base64.StdEncoding.EncodeToString([]byte(doc)))
	return validator.Request{Method: http.MethodGet, Path: path, Header: header}
}

func validateDay7(ctx context.Context, s *validator.Session) error {
	client := s.Client()
	decode := []string{
		`{"recipe":{"flour":4,"sugar":3,"butter":3,"baking powder":1,"raisins":50}}`,
		`{"recipe":{"peanuts":26,"dough":37,"extra salt":1,"raisins":50}}`,
	}
	for i, doc := range decode {
		s.Test(1, i+1)
		res, err := s.Do(ctx, client, recipeRequest("/7/decode", doc))
		if err != nil {
			return err
		}
		if err := s.ExpectJSON(res, doc); err != nil {
			return err
		}
	}
	if err := s.Complete(ctx, true, 0); err != nil {
		return err
	}

	bake := []bakeCase{
		{
			`{"recipe":{"flour":35,"sugar":56,"butter":3,"baking powder":1001,"chocolate chips":55},
			  "pantry":{"flour":4045,"sugar":9606,"butter":99,"baking powder":8655432,"chocolate chips":4587}}`,
			`{"cookies":33,"pantry":{"flour":2890,"sugar":7758,"butter":0,"baking powder":8622399,"chocolate chips":2772}}`,
		},
		{
			`{"recipe":{"flour":35,"sugar":56,"butter":3,"baking powder":1001,"chocolate chips":55},
			  "pantry":{"flour":4045,"sugar":7606,"butter":100,"baking powder":865543211516164409,"chocolate chips":4587}}`,
			`{"cookies":33,"pantry":{"flour":2890,"sugar":5758,"butter":1,"baking powder":865543211516131376,"chocolate chips":2772}}`,
		},
	}
	if err := runBakeCases(ctx, s, 2, bake); err != nil {
		return err
	}
	if err := s.Complete(ctx, false, 120); err != nil {
		return err
	}

	missing := []bakeCase{
		{
			`{"recipe":{"chicken":1},"pantry":{"chicken":0}}`,
			`{"cookies":0,"pantry":{"chicken":0}}`,
		},
		{
			`{"recipe":{"cocoa bean":1,"chicken":0},"pantry":{"cocoa bean":5,"corn":5,"cucumber":0}}`,
			`{"cookies":5,"pantry":{"cocoa bean":0,"corn":5,"cucumber":0}}`,
		},
		{
			`{"recipe":{"cocoa bean":1,"chicken":0},"pantry":{"cocoa bean":5,"chicken":0}}`,
			`{"cookies":5,"pantry":{"cocoa bean":0,"chicken":0}}`,
		},
		{
			`{"recipe":{"cocoa bean":1,"chicken":0},"pantry":{"cocoa bean":5}}`,
			`{"cookies":5,"pantry":{"cocoa bean":0}}`,
		},
	}
	if err := runBakeCases(ctx, s, 3, missing); err != nil {
		return err
	}
	return s.Complete(ctx, false, 100)
}

func runBakeCases(ctx context.Context, s *validator.Session, task int, cases []bakeCase) error {
	for i, c := range cases {
		s.Test(task, i+1)
		res, err := s.Do(ctx, s.Client(), recipeRequest("/7/bake", compactJSON(c.in)))
		if err != nil {
			return err
		}
		if err := s.ExpectJSON(res, c.want); err != nil {
			return err
		}
	}
	return nil
}
