package cch23

import (
	"context"
	"net/http"
	"time"

	"codehunt/internal/validator"
)

const ulidBatch = `["01BJQ0E1C3Z56ABCD0E11HYX4M","01BJQ0E1C3Z56ABCD0E11HYX5N","01BJQ0E1C3Z56ABCD0E11HYX6Q","01BJQ0E1C3Z56ABCD0E11HYX7R","01BJQ0E1C3Z56ABCD0E11HYX8P"]`

const uuidBatch = `["015cae07-0583-f94c-a5b1-a070431f7516","015cae07-0583-f94c-a5b1-a070431f74f8","015cae07-0583-f94c-a5b1-a070431f74d7","015cae07-0583-f94c-a5b1-a070431f74b5","015cae07-0583-f94c-a5b1-a070431f7494"]`

const datedULIDs = `["00WEGGF0G0J5HEYXS3D7RWZGV8","76EP4G39R8JD1N8AQNYDVJBRCF","018CJ7KMG0051CDCS3B7BFJ3AK","00Y986KPG0AMGB78RD45E9109K","010451HTG0NYWMPWCEXG6AJ8F2","01HH9SJEG0KY16H81S3N1BMXM4","01HH9SJEG0P9M22Z9VGHH9C8CX","017F8YY0G0NQA16HHC2QT5JD6X","03QCPC7P003V1NND3B3QJW72QJ"]`

// timeStep is one action of the packet timekeeper scenario.
type timeStep struct {
	save  string
	load  string
	want  string
	sleep time.Duration
}

func validateDay12(ctx context.Context, s *validator.Session) error {
	client := s.Client()
	scenarios := [][]timeStep{
		{
			{save: "cch23", sleep: 2 * time.Second},
			{load: "cch23", want: "2", sleep: 2 * time.Second},
			{load: "cch23", want: "4"},
		},
		{
			{save: "alpha", sleep: 2 * time.Second},
			{save: "omega", sleep: 2 * time.Second},
			{load: "alpha", want: "4"},
			{save: "alpha", sleep: time.Second},
			{load: "omega", want: "3"},
			{load: "alpha", want: "1"},
		},
	}
	for i, steps := range scenarios {
		s.Test(1, i+1)
		for _, step := range steps {
			if err := runTimeStep(ctx, s, client, step); err != nil {
				return err
			}
		}
	}
	if err := s.Complete(ctx, true, 0); err != nil {
		return err
	}

	s.Test(2, 1)
	if err := postJSON(ctx, s, client, "/12/ulids", ulidBatch, http.StatusOK, uuidBatch); err != nil {
		return err
	}
	s.Test(2, 2)
	if err := postJSON(ctx, s, client, "/12/ulids", `[]`, http.StatusOK, `[]`); err != nil {
		return err
	}
	if err := s.Complete(ctx, false, 100); err != nil {
		return err
	}

	weekdays := []struct {
		path, body, want string
	}{
		{"/12/ulids/5", datedULIDs, `{"christmas eve":3,"weekday":1,"in the future":2,"LSB is 1":5}`},
		{"/12/ulids/0", datedULIDs, `{"christmas eve":3,"weekday":0,"in the future":2,"LSB is 1":5}`},
		{"/12/ulids/2", `["04BJK8N300BAMR9SQQWPWHVYKZ"]`, `{"christmas eve":1,"weekday":1,"in the future":1,"LSB is 1":1}`},
	}
	for i, c := range weekdays {
		s.Test(3, i+1)
		if err := postJSON(ctx, s, client, c.path, c.body, http.StatusOK, c.want); err != nil {
			return err
		}
	}
	return s.Complete(ctx, false, 200)
}

func runTimeStep(ctx context.Context, s *validator.Session, client *http.Client, step timeStep) error {
	if step.save != "" {
		if err := postStatus(ctx, s, client, "/12/save/"+step.save, "", http.StatusOK); err != nil {
			return err
		}
	}
	if step.load != "" {
		if err := getText(ctx, s, client, "/12/load/"+step.load, step.want); err != nil {
			return err
		}
	}
	if step.sleep > 0 {
		return s.Sleep(ctx, step.sleep)
	}
	return nil
}
