package cch24

import (
	"context"

	"codehunt/internal/validator"
)

type addressCase struct {
	path string
	want string
}

func validateDay2(ctx context.Context, s *validator.Session) error {
	client := s.Client()
	tasks := []struct {
		cases []addressCase
		core  bool
		bonus int
	}{
		{cases: []addressCase{
			{"/2/dest?from=10.0.0.0&key=1.2.3.255", "11.2.3.255"},
			{"/2/dest?from=128.128.33.0&key=255.0.255.33", "127.128.32.33"},
			{"/2/dest?from=192.168.0.1&key=72.96.8.7", "8.8.8.8"},
		}},
		{cases: []addressCase{
			{"/2/key?from=10.0.0.0&to=11.2.3.255", "1.2.3.255"},
			{"/2/key?from=128.128.33.0&to=127.128.32.33", "255.0.255.33"},
			{"/2/key?from=192.168.0.1&to=8.8.8.8", "72.96.8.7"},
		}, core: true},
		{cases: []addressCase{
			{"/2/v6/dest?from=fe80::1&key=5:6:7::3333", "fe85:6:7::3332"},
			{"/2/v6/dest?from=aaaa:0:0:0::aaaa&key=ffff:ffff:c:0:0:c:1234:ffff", "5555:ffff:c::c:1234:5555"},
			{"/2/v6/dest?from=feed:beef:deaf:bad:cafe::&key=::dab:bed:ace:dad", "feed:beef:deaf:bad:c755:bed:ace:dad"},
			{"/2/v6/key?from=fe80::1&to=fe85:6:7::3332", "5:6:7::3333"},
			{"/2/v6/key?from=aaaa::aaaa&to=5555:ffff:c:0:0:c:1234:5555", "ffff:ffff:c::c:1234:ffff"},
			{"/2/v6/key?from=feed:beef:deaf:bad:cafe::&to=feed:beef:deaf:bad:c755:bed:ace:dad", "::dab:bed:ace:dad"},
		}, bonus: 50},
	}
	for i, task := range tasks {
		for j, c := range task.cases {
			s.Test(i+1, j+1)
			if err := getText(ctx, s, client, c.path, c.want); err != nil {
				return err
			}
		}
		if err := s.Complete(ctx, task.core, task.bonus); err != nil {
			return err
		}
	}
	return nil
}
