package cch23

import (
	"context"
	_ "embed"
	"net/http"

	"codehunt/internal/validator"
)

//go:embed testdata/popular_orders.json
var popularOrders string

const firstOrders = `[
	{"id":1,"region_id":2,"gift_name":"Toy Train","quantity":5},
	{"id":2,"region_id":2,"gift_name":"Doll","quantity":8},
	{"id":3,"region_id":3,"gift_name":"Action Figure","quantity":12},
	{"id":4,"region_id":4,"gift_name":"Board Game","quantity":10},
	{"id":5,"region_id":2,"gift_name":"Teddy Bear","quantity":6},
	{"id":6,"region_id":3,"gift_name":"Toy Train","quantity":3}
]`

func validateDay13(ctx context.Context, s *validator.Session) error {
	client := s.Client()

	s.Test(1, 1)
	if err := getText(ctx, s, client, "/13/sql", "20231213"); err != nil {
		return err
	}
	if err := s.Complete(ctx, false, 0); err != nil {
		return err
	}

	s.Test(2, 1)
	if err := postStatus(ctx, s, client, "/13/reset", "", http.StatusOK); err != nil {
		return err
	}
	if err := postStatus(ctx, s, client, "/13/orders", compactJSON(firstOrders), http.StatusOK); err != nil {
		return err
	}
	if err := getJSON(ctx, s, client, "/13/orders/total", `{"total":44}`); err != nil {
		return err
	}
	s.Test(2, 2)
	more := `[{"id":123,"region_id":6,"gift_name":"Unknown","quantity":333}]`
	if err := postStatus(ctx, s, client, "/13/orders", more, http.StatusOK); err != nil {
		return err
	}
	if err := getJSON(ctx, s, client, "/13/orders/total", `{"total":377}`); err != nil {
		return err
	}
	if err := s.Complete(ctx, true, 0); err != nil {
		return err
	}

	s.Test(3, 1)
	if err := postStatus(ctx, s, client, "/13/reset", "", http.StatusOK); err != nil {
		return err
	}
	if err := getJSON(ctx, s, client, "/13/orders/popular", `{"popular":null}`); err != nil {
		return err
	}
	s.Test(3, 2)
	if err := postStatus(ctx, s, client, "/13/orders", compactJSON(popularOrders), http.StatusOK); err != nil {
		return err
	}
	if err := getJSON(ctx, s, client, "/13/orders/popular", `{"popular":"Action Figure"}`); err != nil {
		return err
	}
	return s.Complete(ctx, false, 100)
}
