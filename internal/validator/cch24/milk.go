package cch24

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"time"

	"codehunt/internal/validator"
)

const (
	milkWithdrawn   = "Milk withdrawn\n"
	noMilkAvailable = "No milk available\n"
	latencyNotice   = "Info: High network latency detected. This test is timing-sensitive and might therefore fail."
	latencyLimit    = 500 * time.Millisecond
	bucketRefill    = 5 * time.Second
)

// milkStep is one request against the bucket. A zero status means a plain
// withdrawal that must succeed.
type milkStep struct {
	test        int
	sleep       time.Duration
	contentType string
	body        string
	status      int
	unit        string
	amount      float64
}

func withdraw(ctx context.Context, s *validator.Session, client *http.Client, ok bool) error {
	res, err := post(ctx, s, client, "/9/milk")
	if err != nil {
		return err
	}
	if ok {
		return s.StatusAndText(res, http.StatusOK, milkWithdrawn)
	}
	return s.StatusAndText(res, http.StatusTooManyRequests, noMilkAvailable)
}

func withdrawAll(ctx context.Context, s *validator.Session, client *http.Client, outcomes ...bool) error {
	for _, ok := range outcomes {
		if err := withdraw(ctx, s, client, ok); err != nil {
			return err
		}
	}
	return nil
}

// expectAmount checks a conversion result: one key holding a number within
// 1e-4 relative error of want, or exactly zero when want is zero.
func expectAmount(s *validator.Session, res *validator.Response, unit string, want float64) error {
	if err := s.ExpectStatus(res, http.StatusOK); err != nil {
		return err
	}
	var obj map[string]any
	if err := s.DecodeJSON(res, &obj); err != nil {
		return err
	}
	num, ok := obj[unit].(json.Number)
	if len(obj) != 1 || !ok {
		return s.Current()
	}
	got, err := num.Float64()
	if err != nil {
		return s.Current()
	}
	if want == 0 {
		return s.Check(got == 0)
	}
	return s.Check(math.Abs(got/want-1) < 1e-4)
}

func runMilkSteps(ctx context.Context, s *validator.Session, client *http.Client, task int, steps []milkStep) error {
	for _, step := range steps {
		s.Test(task, step.test)
		if step.sleep > 0 {
			if err := s.Sleep(ctx, step.sleep); err != nil {
				return err
			}
		}
		if step.contentType == "" && step.body == "" {
			if err := withdraw(ctx, s, client, step.status != http.StatusTooManyRequests); err != nil {
				return err
			}
			continue
		}
		res, err := s.Send(ctx, client, http.MethodPost, "/9/milk", step.contentType, step.body)
		if err != nil {
			return err
		}
		switch {
		case step.unit != "":
			err = expectAmount(s, res, step.unit, step.amount)
		case step.status == http.StatusOK:
			err = s.StatusAndText(res, http.StatusOK, milkWithdrawn)
		default:
			err = s.ExpectStatus(res, step.status)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func jsonString(v string) string {
	data, _ := json.Marshal(v)
	return string(data)
}

func validateDay9(ctx context.Context, s *validator.Session) error {
	client := s.Client()
	const jsonType = "application/json"

	s.Test(1, 1)
	start := time.Now()
	if err := withdrawAll(ctx, s, client, true, true, true, true, true); err != nil {
		return err
	}
	if time.Since(start) > latencyLimit {
		if err := s.Log(ctx, latencyNotice); err != nil {
			return err
		}
	}
	if err := withdraw(ctx, s, client, false); err != nil {
		return err
	}
	if err := s.Sleep(ctx, time.Second); err != nil {
		return err
	}
	if err := withdrawAll(ctx, s, client, true, false); err != nil {
		return err
	}
	if err := s.Sleep(ctx, 2*time.Second); err != nil {
		return err
	}
	if err := withdrawAll(ctx, s, client, true, true, false, false); err != nil {
		return err
	}
	if err := s.Complete(ctx, false, 0); err != nil {
		return err
	}
	if err := s.Sleep(ctx, bucketRefill); err != nil {
		return err
	}

	gallons := []milkStep{
		{test: 1, contentType: jsonType, body: `{"liters":2}`, unit: "gallons", amount: 0.5283441},
		{test: 2, contentType: jsonType, body: `{"gallons":-2.000000000000001}`, unit: "liters", amount: -7.5708237},
		{test: 3},
		{test: 4, contentType: jsonType, body: `{}`, status: http.StatusBadRequest},
		{test: 5, contentType: jsonType, body: `{"liters":0,"gallons":1337}`, status: http.StatusBadRequest},
		{test: 6, status: http.StatusTooManyRequests},
		{test: 7, sleep: time.Second, contentType: jsonType, status: http.StatusBadRequest},
		{test: 8, sleep: time.Second, contentType: jsonType, status: http.StatusBadRequest},
		{test: 9, sleep: time.Second, contentType: jsonType, body: `{'liters':0}`, status: http.StatusBadRequest},
		{test: 10, sleep: time.Second, contentType: jsonType, body: `{"liters":123123123123.0}`, unit: "gallons", amount: 32525687000},
		{test: 11, sleep: time.Second, contentType: "text/html", body: `{"liters":0}`, status: http.StatusOK},
	}
	if err := runMilkSteps(ctx, s, client, 2, gallons); err != nil {
		return err
	}
	if err := s.Complete(ctx, false, 0); err != nil {
		return err
	}
	if err := s.Sleep(ctx, bucketRefill); err != nil {
		return err
	}

	pints := []milkStep{
		{test: 1, contentType: jsonType, body: `{"litres":7.4}`, unit: "pints", amount: 13.02218},
		{test: 2, contentType: jsonType, body: `{"pints":32630.25}`, unit: "litres", amount: 18542.508},
		{test: 3, contentType: jsonType, body: `{"litres":-0.0}`, unit: "pints", amount: 0},
		{test: 4, contentType: jsonType, body: `{"litres":7.4,"liters":7.4}`, status: http.StatusBadRequest},
		{test: 5, contentType: jsonType, body: jsonString(`{"litres": 7.4, "litres": 7.6}`), status: http.StatusBadRequest},
		{test: 6, sleep: time.Second, contentType: jsonType, body: `{"gallons":2,"pints":0}`, status: http.StatusBadRequest},
		{test: 7, status: http.StatusTooManyRequests},
	}
	if err := runMilkSteps(ctx, s, client, 3, pints); err != nil {
		return err
	}
	if err := s.Complete(ctx, true, 0); err != nil {
		return err
	}

	s.Test(4, 1)
	if err := refill(ctx, s, client); err != nil {
		return err
	}
	s.Test(4, 2)
	if err := withdrawAll(ctx, s, client, true, true, true, true, true, false); err != nil {
		return err
	}
	if err := refill(ctx, s, client); err != nil {
		return err
	}
	if err := withdrawAll(ctx, s, client, true, true, true, true, true, false, false); err != nil {
		return err
	}
	return s.Complete(ctx, false, 75)
}

func refill(ctx context.Context, s *validator.Session, client *http.Client) error {
	res, err := post(ctx, s, client, "/9/refill")
	if err != nil {
		return err
	}
	return s.ExpectStatus(res, http.StatusOK)
}
