package cch24

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"codehunt/internal/validator"

	"github.com/google/uuid"
)

const nilQuoteID = "00000000-0000-0000-0000-000000000000"

type quote struct {
	Author string `json:"author"`
	Quote  string `json:"quote"`
}

var (
	quote1 = quote{"Santa", "Ho ho ho! Spread cheer and kindness, for that's the true magic of the season!"}
	quote2 = quote{"Santa's best elf", "In the glow of snow and twinkling light, dreams take flight on a magical night!"}
	quote3 = quote{"Dasher", "Whoosh and clatter, my hooves pitter-patter!"}
	quote4 = quote{"Polar Bear", "Roar!"}
)

type versioned struct {
	quote   quote
	version int64
}

type quotePage struct {
	Page      json.Number       `json:"page"`
	Quotes    []json.RawMessage `json:"quotes"`
	NextToken *string           `json:"next_token"`
}

// matchQuote checks one stored quote against what was sent and returns its id.
func matchQuote(s *validator.Session, raw []byte, want quote, version int64) (uuid.UUID, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || len(obj) != 5 {
		return uuid.Nil, s.Current()
	}
	var got struct {
		ID        string      `json:"id"`
		Author    *string     `json:"author"`
		Quote     *string     `json:"quote"`
		CreatedAt string      `json:"created_at"`
		Version   json.Number `json:"version"`
	}
	if err := json.Unmarshal(raw, &got); err != nil {
		return uuid.Nil, s.Current()
	}
	if got.Author == nil || *got.Author != want.Author || got.Quote == nil || *got.Quote != want.Quote {
		return uuid.Nil, s.Current()
	}
	if v, err := got.Version.Int64(); err != nil || v != version {
		return uuid.Nil, s.Current()
	}
	if _, err := time.Parse(time.RFC3339, got.CreatedAt); err != nil {
		return uuid.Nil, s.Current()
	}
	id, err := uuid.Parse(got.ID)
	if err != nil {
		return uuid.Nil, s.Current()
	}
	return id, nil
}

type quoteClient struct {
	s      *validator.Session
	client *http.Client
}

func (q quoteClient) call(ctx context.Context, method, path string, body *quote, status int) (*validator.Response, error) {
	var (
		res *validator.Response
		err error
	)
	if body != nil {
		res, err = q.s.SendJSON(ctx, q.client, method, path, body)
	} else {
		res, err = q.s.Do(ctx, q.client, validator.Request{Method: method, Path: path})
	}
	if err != nil {
		return nil, err
	}
	return res, q.s.ExpectStatus(res, status)
}

// expect performs a request that must answer with a single quote.
func (q quoteClient) expect(ctx context.Context, method, path string, body *quote, status int, want quote, version int64) (uuid.UUID, error) {
	res, err := q.call(ctx, method, path, body, status)
	if err != nil {
		return uuid.Nil, err
	}
	return matchQuote(q.s, res.Body, want, version)
}

func (q quoteClient) draft(ctx context.Context, body quote) (uuid.UUID, error) {
	return q.expect(ctx, http.MethodPost, "/19/draft", &body, http.StatusCreated, body, 1)
}

func (q quoteClient) undo(ctx context.Context, id uuid.UUID, body quote, version int64) error {
	_, err := q.expect(ctx, http.MethodPut, "/19/undo/"+id.String(), &body, http.StatusOK, body, version)
	return err
}

func (q quoteClient) cite(ctx context.Context, id uuid.UUID, want quote, version int64) error {
	_, err := q.expect(ctx, http.MethodGet, "/19/cite/"+id.String(), nil, http.StatusOK, want, version)
	return err
}

func (q quoteClient) remove(ctx context.Context, id uuid.UUID, want quote, version int64) error {
	_, err := q.expect(ctx, http.MethodDelete, "/19/remove/"+id.String(), nil, http.StatusOK, want, version)
	return err
}

// list fetches one page and checks its quotes in order. The returned token
// is empty on the last page.
func (q quoteClient) list(ctx context.Context, token string, page int64, want []versioned) (string, error) {
	path := "/19/list"
	if token != "" {
		path += "?token=" + token
	}
	res, err := q.call(ctx, http.MethodGet, path, nil, http.StatusOK)
	if err != nil {
		return "", err
	}
	var got quotePage
	if err := q.s.DecodeJSON(res, &got); err != nil {
		return "", err
	}
	if n, err := got.Page.Int64(); err != nil || n != page {
		return "", q.s.Current()
	}
	for i := 0; i < len(want) && i < len(got.Quotes); i++ {
		if _, err := matchQuote(q.s, got.Quotes[i], want[i].quote, want[i].version); err != nil {
			return "", err
		}
	}
	if got.NextToken == nil {
		return "", nil
	}
	if !validToken(*got.NextToken) {
		return "", q.s.Current()
	}
	return *got.NextToken, nil
}

func validToken(t string) bool {
	if len(t) != 16 {
		return false
	}
	for _, c := range t {
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9') {
			return false
		}
	}
	return true
}

// walk lists pages until the end and checks each against pages.
func (q quoteClient) walk(ctx context.Context, pages ...[]versioned) error {
	token := ""
	for i, want := range pages {
		next, err := q.list(ctx, token, int64(i+1), want)
		if err != nil {
			return err
		}
		last := i == len(pages)-1
		if err := q.s.Check((next == "") == last); err != nil {
			return err
		}
		token = next
	}
	return nil
}

func validateDay19(ctx context.Context, s *validator.Session) error {
	q := quoteClient{s: s, client: s.Client()}

	s.Test(1, 1)
	if _, err := q.call(ctx, http.MethodPost, "/19/reset", nil, http.StatusOK); err != nil {
		return err
	}
	id, err := q.draft(ctx, quote1)
	if err != nil {
		return err
	}
	if err := q.cite(ctx, id, quote1, 1); err != nil {
		return err
	}
	same, err := q.expect(ctx, http.MethodPut, "/19/undo/"+id.String(), &quote2, http.StatusOK, quote2, 2)
	if err != nil {
		return err
	}
	if err := s.Check(same == id); err != nil {
		return err
	}
	if err := q.remove(ctx, id, quote2, 2); err != nil {
		return err
	}
	if _, err := q.call(ctx, http.MethodGet, "/19/cite/"+id.String(), nil, http.StatusNotFound); err != nil {
		return err
	}

	s.Test(1, 2)
	id, err = q.draft(ctx, quote1)
	if err != nil {
		return err
	}
	id2, err := q.draft(ctx, quote1)
	if err != nil {
		return err
	}
	if err := s.Check(id != id2); err != nil {
		return err
	}
	if err := q.undo(ctx, id, quote2, 2); err != nil {
		return err
	}
	if err := q.cite(ctx, id2, quote1, 1); err != nil {
		return err
	}
	if err := q.cite(ctx, id, quote2, 2); err != nil {
		return err
	}
	if err := q.undo(ctx, id, quote3, 3); err != nil {
		return err
	}
	if err := q.undo(ctx, id, quote1, 4); err != nil {
		return err
	}

	s.Test(1, 3)
	missing := []struct {
		method string
		path   string
		body   *quote
		status int
	}{
		{http.MethodPut, "/19/undo/" + nilQuoteID, &quote4, http.StatusNotFound},
		{http.MethodDelete, "/19/remove/" + nilQuoteID, nil, http.StatusNotFound},
		{http.MethodGet, "/19/cite/" + nilQuoteID, nil, http.StatusNotFound},
		{http.MethodPut, "/19/undo/1234", &quote4, http.StatusBadRequest},
	}
	for _, m := range missing {
		if _, err := q.call(ctx, m.method, m.path, m.body, m.status); err != nil {
			return err
		}
	}
	if err := s.Complete(ctx, true, 0); err != nil {
		return err
	}

	s.Test(2, 1)
	if err := q.walk(ctx, []versioned{{quote1, 4}, {quote1, 1}}); err != nil {
		return err
	}
	id3, err := q.draft(ctx, quote3)
	if err != nil {
		return err
	}
	if _, err := q.draft(ctx, quote3); err != nil {
		return err
	}
	if err := q.walk(ctx, []versioned{{quote1, 4}, {quote1, 1}, {quote3, 1}}, []versioned{{quote3, 1}}); err != nil {
		return err
	}

	s.Test(2, 2)
	if err := q.remove(ctx, id3, quote3, 1); err != nil {
		return err
	}
	page1 := []versioned{{quote1, 4}, {quote1, 1}, {quote3, 1}}
	if err := q.walk(ctx, page1); err != nil {
		return err
	}

	s.Test(2, 3)
	page2 := []versioned{{quote2, 1}, {quote2, 1}, {quote3, 1}}
	page3 := []versioned{{quote2, 1}, {quote3, 1}, {quote1, 1}}
	for _, v := range append(append([]versioned{}, page2...), page3...) {
		if _, err := q.draft(ctx, v.quote); err != nil {
			return err
		}
	}
	if err := q.walk(ctx, page1, page2, page3); err != nil {
		return err
	}

	s.Test(2, 4)
	if _, err := q.call(ctx, http.MethodGet, "/19/list?token=asd987f69as87d6q", nil, http.StatusBadRequest); err != nil {
		return err
	}

	s.Test(2, 5)
	n1, err := q.list(ctx, "", 1, page1)
	if err != nil {
		return err
	}
	n2, err := q.list(ctx, "", 1, page1)
	if err != nil {
		return err
	}
	if err := s.Check(n1 != "" && n2 != ""); err != nil {
		return err
	}
	for _, token := range []string{n1, n2} {
		next, err := q.list(ctx, token, 2, page2)
		if err != nil {
			return err
		}
		if err := s.Check(next != ""); err != nil {
			return err
		}
		last, err := q.list(ctx, next, 3, page3)
		if err != nil {
			return err
		}
		if err := s.Check(last == ""); err != nil {
			return err
		}
	}
	return s.Complete(ctx, false, 75)
}
