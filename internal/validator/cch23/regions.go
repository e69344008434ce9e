package cch23

import (
	"context"
	"net/http"

	"codehunt/internal/validator"
)

// regionCase resets the database, loads regions and orders, then reads one
// report.
type regionCase struct {
	regions string
	orders  string
	report  string
	want    string
}

const worldRegions = `[
	{"id":1,"name":"North Pole"},
	{"id":2,"name":"Europe"},
	{"id":3,"name":"North America"},
	{"id":4,"name":"South America"},
	{"id":5,"name":"Africa"},
	{"id":6,"name":"Asia"},
	{"id":7,"name":"Oceania"}
]`

const worldOrders = `[
	{"id":1,"region_id":2,"gift_name":"Toy Train","quantity":5},
	{"id":2,"region_id":2,"gift_name":"Toy Train","quantity":3},
	{"id":3,"region_id":2,"gift_name":"Doll","quantity":8},
	{"id":4,"region_id":3,"gift_name":"Toy Train","quantity":3},
	{"id":5,"region_id":2,"gift_name":"Teddy Bear","quantity":6},
	{"id":6,"region_id":3,"gift_name":"Action Figure","quantity":12},
	{"id":7,"region_id":4,"gift_name":"Board Game","quantity":10},
	{"id":8,"region_id":3,"gift_name":"Teddy Bear","quantity":1},
	{"id":9,"region_id":3,"gift_name":"Teddy Bear","quantity":2}
]`

func validateDay18(ctx context.Context, s *validator.Session) error {
	const total = "/18/regions/total"
	totals := []regionCase{
		{`[{"id":1,"name":"North Pole"}]`, `[]`, total, `[]`},
		{`[]`, `[{"id":1,"region_id":2,"gift_name":"Board Game","quantity":5}]`, total, `[]`},
		{
			`[{"id":1,"name":"A"}]`,
			`[{"id":1,"region_id":1,"gift_name":"A","quantity":1}]`,
			total,
			`[{"region":"A","total":1}]`,
		},
		{
			`[{"id":1,"name":"A"}]`,
			`[{"id":1,"region_id":1,"gift_name":"A","quantity":1},{"id":2,"region_id":1,"gift_name":"A","quantity":1},{"id":3,"region_id":1,"gift_name":"A","quantity":1}]`,
			total,
			`[{"region":"A","total":3}]`,
		},
		{
			`[{"id":1,"name":"A"},{"id":2,"name":"B"}]`,
			`[{"id":1,"region_id":1,"gift_name":"A","quantity":1},{"id":2,"region_id":1,"gift_name":"A","quantity":1},{"id":3,"region_id":2,"gift_name":"B","quantity":1}]`,
			total,
			`[{"region":"A","total":2},{"region":"B","total":1}]`,
		},
		{
			`[{"id":1,"name":"A"},{"id":2,"name":"B"}]`,
			`[{"id":1,"region_id":1,"gift_name":"A","quantity":1},{"id":2,"region_id":1,"gift_name":"A","quantity":1},{"id":3,"region_id":3,"gift_name":"C","quantity":1}]`,
			total,
			`[{"region":"A","total":2}]`,
		},
		{
			`[{"id":1,"name":"A"}]`,
			`[{"id":1,"region_id":1,"gift_name":"A","quantity":555555555}]`,
			total,
			`[{"region":"A","total":555555555}]`,
		},
		{
			`[{"id":-1,"name":"A"}]`,
			`[{"id":-1,"region_id":-1,"gift_name":"A","quantity":-1},{"id":0,"region_id":-1,"gift_name":"A","quantity":1}]`,
			total,
			`[{"region":"A","total":0}]`,
		},
	}
	if err := runRegionCases(ctx, s, 1, totals); err != nil {
		return err
	}
	if err := s.Complete(ctx, true, 0); err != nil {
		return err
	}

	const top2 = "/18/regions/top_list/2"
	tops := []regionCase{
		{`[]`, `[]`, top2, `[]`},
		{`[{"id":1,"name":"A"}]`, `[]`, top2, `[{"region":"A","top_gifts":[]}]`},
		{`[]`, `[{"id":1,"region_id":2,"gift_name":"B","quantity":5}]`, top2, `[]`},
		{
			`[{"id":1,"name":"A"}]`,
			`[{"id":1,"region_id":2,"gift_name":"B","quantity":5}]`,
			top2,
			`[{"region":"A","top_gifts":[]}]`,
		},
		{
			`[{"id":1,"name":"A"}]`,
			`[{"id":1,"region_id":1,"gift_name":"B","quantity":10},{"id":2,"region_id":1,"gift_name":"A","quantity":5},{"id":3,"region_id":1,"gift_name":"A","quantity":5},{"id":4,"region_id":1,"gift_name":"C","quantity":9}]`,
			top2,
			`[{"region":"A","top_gifts":["A","B"]}]`,
		},
		{
			worldRegions,
			worldOrders,
			top2,
			`[
				{"region":"Africa","top_gifts":[]},
				{"region":"Asia","top_gifts":[]},
				{"region":"Europe","top_gifts":["Doll","Toy Train"]},
				{"region":"North America","top_gifts":["Action Figure","Teddy Bear"]},
				{"region":"North Pole","top_gifts":[]},
				{"region":"Oceania","top_gifts":[]},
				{"region":"South America","top_gifts":["Board Game"]}
			]`,
		},
		{
			worldRegions,
			worldOrders,
			"/18/regions/top_list/3",
			`[
				{"region":"Africa","top_gifts":[]},
				{"region":"Asia","top_gifts":[]},
				{"region":"Europe","top_gifts":["Doll","Toy Train","Teddy Bear"]},
				{"region":"North America","top_gifts":["Action Figure","Teddy Bear","Toy Train"]},
				{"region":"North Pole","top_gifts":[]},
				{"region":"Oceania","top_gifts":[]},
				{"region":"South America","top_gifts":["Board Game"]}
			]`,
		},
		{
			`[{"id":1,"name":"A"}]`,
			`[{"id":1,"region_id":1,"gift_name":"A","quantity":555555555}]`,
			"/18/regions/top_list/0",
			`[{"region":"A","top_gifts":[]}]`,
		},
	}
	if err := runRegionCases(ctx, s, 2, tops); err != nil {
		return err
	}
	return s.Complete(ctx, false, 600)
}

func runRegionCases(ctx context.Context, s *validator.Session, task int, cases []regionCase) error {
	client := s.Client()
	for i, c := range cases {
		s.Test(task, i+1)
		if err := postStatus(ctx, s, client, "/18/reset", "", http.StatusOK); err != nil {
			return err
		}
		if err := postStatus(ctx, s, client, "/18/regions", compactJSON(c.regions), http.StatusOK); err != nil {
			return err
		}
		if err := postStatus(ctx, s, client, "/18/orders", compactJSON(c.orders), http.StatusOK); err != nil {
			return err
		}
		res, err := s.Get(ctx, client, c.report)
		if err != nil {
			return err
		}
		if err := s.StatusAndJSON(res, http.StatusOK, c.want); err != nil {
			return err
		}
	}
	return nil
}
