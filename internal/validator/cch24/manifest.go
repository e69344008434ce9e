package cch24

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"

	"codehunt/internal/validator"
)

//go:embed testdata/manifests.json
var manifestCasesJSON []byte

type manifestCase struct {
	Task        int     `json:"task"`
	Test        int     `json:"test"`
	ContentType string  `json:"contentType"`
	Body        string  `json:"body"`
	Status      int     `json:"status"`
	Text        *string `json:"text"`
}

// manifestRewards is the (core, bonus) pair reported after each task.
var manifestRewards = map[int]struct {
	core  bool
	bonus int
}{
	1: {false, 0},
	2: {false, 0},
	3: {true, 0},
	4: {false, 70},
}

func loadManifestCases() ([]manifestCase, error) {
	var cases []manifestCase
	if err := json.Unmarshal(manifestCasesJSON, &cases); err != nil {
		return nil, fmt.Errorf("decode manifest cases failed: %w", err)
	}
	return cases, nil
}

func validateDay5(ctx context.Context, s *validator.Session) error {
	cases, err := loadManifestCases()
	if err != nil {
		return err
	}
	client := s.Client()
	for i, c := range cases {
		s.Test(c.Task, c.Test)
		res, err := s.Send(ctx, client, http.MethodPost, "/5/manifest", c.ContentType, c.Body)
		if err != nil {
			return err
		}
		if c.Text != nil {
			err = s.StatusAndText(res, c.Status, *c.Text)
		} else {
			err = s.ExpectStatus(res, c.Status)
		}
		if err != nil {
			return err
		}
		if i+1 < len(cases) && cases[i+1].Task == c.Task {
			continue
		}
		reward := manifestRewards[c.Task]
		if err := s.Complete(ctx, reward.core, reward.bonus); err != nil {
			return err
		}
	}
	return nil
}
