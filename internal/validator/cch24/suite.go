// Package cch24 validates solutions to the 2024 Christmas Code Hunt.
package cch24

import (
	"context"
	"net/http"

	"codehunt/internal/validator"
)

// Banner is printed once before any challenge runs.
const Banner = `⋆｡°✩ ⋆⁺｡˚⋆˙‧₊✩₊‧˙⋆˚｡⁺⋆ ✩°｡⋆°✩ ⋆⁺｡˚⋆˙‧₊✩₊‧˙⋆˚｡⁺⋆ ✩°｡⋆
.・゜゜・・゜゜・．                .・゜゜・・゜゜・．
｡･ﾟﾟ･          SHUTTLE CCH24 VALIDATOR          ･ﾟﾟ･｡
.・゜゜・・゜゜・．                .・゜゜・・゜゜・．
⋆｡°✩ ⋆⁺｡˚⋆˙‧₊✩₊‧˙⋆˚｡⁺⋆ ✩°｡⋆°✩ ⋆⁺｡˚⋆˙‧₊✩₊‧˙⋆˚｡⁺⋆ ✩°｡⋆
`

// Suite returns the cch24 challenges in the order --all runs them.
func Suite() *validator.Suite {
	return validator.NewSuite("cch24", Banner,
		validator.Challenge{Number: "-1", Validate: validateWarmup},
		validator.Challenge{Number: "2", Validate: validateDay2},
		validator.Challenge{Number: "5", Validate: validateDay5},
		validator.Challenge{Number: "9", Validate: validateDay9},
		validator.Challenge{Number: "12", Validate: validateDay12},
		validator.Challenge{Number: "16", Validate: validateDay16},
		validator.Challenge{Number: "19", Validate: validateDay19},
		validator.Challenge{Number: "23", Validate: validateDay23},
	)
}

func getText(ctx context.Context, s *validator.Session, client *http.Client, path, want string) error {
	res, err := s.Get(ctx, client, path)
	if err != nil {
		return err
	}
	return s.ExpectText(res, want)
}

func post(ctx context.Context, s *validator.Session, client *http.Client, path string) (*validator.Response, error) {
	return s.Do(ctx, client, validator.Request{Method: http.MethodPost, Path: path})
}
