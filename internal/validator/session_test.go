package validator_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"codehunt/internal/validator"

	"github.com/gorilla/websocket"
)

type recordingSleeper struct {
	mu    sync.Mutex
	slept []time.Duration
}

func (r *recordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	r.slept = append(r.slept, d)
	r.mu.Unlock()
	time.Sleep(100 * time.Millisecond)
	return ctx.Err()
}

func newSession(t *testing.T, baseURL string, sleeper validator.Sleeper) (*validator.Session, chan validator.Update) {
	t.Helper()
	updates := make(chan validator.Update, 16)
	return validator.NewSession(baseURL+"/", "sub-1", updates, sleeper, validator.ClientConfig{}), updates
}

func TestSessionDoSendsSubmissionHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(validator.SubmissionIDHeader) != "sub-1" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(r.URL.Path))
	}))
	defer srv.Close()

	s, _ := newSession(t, srv.URL, nil)
	if s.BaseURL() != srv.URL {
		t.Fatalf("trailing slash not trimmed: %s", s.BaseURL())
	}
	s.Test(1, 1)
	res, err := s.Send(context.Background(), s.Client(), http.MethodPost, "/1/2/3", "text/plain", "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.StatusAndText(res, http.StatusOK, "/1/2/3"); err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	if err := s.ExpectPrefix(res, "/1/"); err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	if err := s.ExpectText(res, "nope"); !errors.Is(err, validator.TaskTest{Task: 1, Test: 1}) {
		t.Fatalf("expected current test as failure, got %v", err)
	}
}

func TestSessionTransportErrorFailsCurrentTest(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	s, _ := newSession(t, url, nil)
	s.Test(3, 7)
	_, err := s.Get(context.Background(), s.Client(), "/")
	var tt validator.TaskTest
	if !errors.As(err, &tt) || tt != (validator.TaskTest{Task: 3, Test: 7}) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRedirectClients(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/seek", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/target", http.StatusFound)
	})
	mux.HandleFunc("/target", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Referer") != "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte("arrived"))
	})
	mux.HandleFunc("/loop", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/loop", http.StatusFound)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	s, _ := newSession(t, srv.URL, nil)
	ctx := context.Background()

	res, err := s.Get(ctx, s.NoRedirectClient(), "/seek")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != http.StatusFound || res.Header.Get("Location") != "/target" {
		t.Fatalf("unexpected redirect response: %d %s", res.Status, res.Header.Get("Location"))
	}

	res, err = s.Get(ctx, s.Client(), "/seek")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.StatusAndText(res, http.StatusOK, "arrived"); err != nil {
		t.Fatalf("redirect not followed cleanly: %d %q", res.Status, res.Text())
	}

	if _, err := s.Get(ctx, s.Client(), "/loop"); err == nil {
		t.Fatalf("expected redirect loop to fail")
	}
}

func TestCookieClientKeepsCookies(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/set", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "gift", Value: "abc", Path: "/"})
	})
	mux.HandleFunc("/get", func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie("gift")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(c.Value))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	s, _ := newSession(t, srv.URL, nil)
	ctx := context.Background()
	client := s.CookieClient()
	if _, err := s.Get(ctx, client, "/set"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res, err := s.Get(ctx, client, "/get")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text() != "abc" {
		t.Fatalf("cookie not sent back: %d %q", res.Status, res.Text())
	}
	res, err = s.Get(ctx, s.Client(), "/get")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != http.StatusBadRequest {
		t.Fatalf("plain client should not keep cookies")
	}
}

func TestSessionCompleteAndLog(t *testing.T) {
	s, updates := newSession(t, "http://x", nil)
	ctx := context.Background()
	if err := s.Complete(ctx, true, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Log(ctx, "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []validator.Update{validator.TaskCompleted(true, 10), validator.Save(), validator.LogLine("hello")}
	for _, w := range want {
		if got := <-updates; got != w {
			t.Fatalf("unexpected update %v, want %v", got, w)
		}
	}
}

func TestJSONEqual(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{`{"a":1,"b":[1,2]}`, `{"b":[1,2],"a":1}`, true},
		{`{"a":1}`, `{"a":1.0}`, false},
		{`{"a":1.5}`, `{"a":1.50}`, true},
		{`865543211516164409`, `865543211516164409`, true},
		{`865543211516164409`, `865543211516164408`, false},
		{`[1,2]`, `[2,1]`, false},
		{`{"a":null}`, `{}`, false},
		{`"x"`, `"x"`, true},
	}
	for _, tc := range cases {
		got, err := validator.JSONEqual([]byte(tc.a), []byte(tc.b))
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tc.a, err)
		}
		if got != tc.want {
			t.Fatalf("JSONEqual(%s, %s) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
	if _, err := validator.JSONEqual([]byte(`{`), []byte(`{}`)); err == nil {
		t.Fatalf("expected error for invalid json")
	}
	if _, err := validator.JSONEqual([]byte(`{} {}`), []byte(`{}`)); err == nil {
		t.Fatalf("expected error for trailing data")
	}
}

func TestHTMLEqual(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{`<div id="star" class="lit"></div>`, `<div class="lit" id="star"></div>`, true},
		{`<div id="star" class="lit"></div>`, "\n  <div class=\"lit\"   id=\"star\">\n</div>\n", true},
		{`<div id="star" class="lit"></div>`, `<div id="star"></div>`, false},
		{`<div id="a&quot;b"></div>`, `<div id='a"b'></div>`, true},
		{`<div id="a&quot;&gt;&lt;script&gt;"></div>`, `<div id="a"><script>"></div>`, false},
		{`<p>hello   world</p>`, `<p>hello world</p><!-- note -->`, true},
		{`<p>hello</p>`, `<span>hello</span>`, false},
		{`<p>hello world</p>`, `<p>helloworld</p>`, false},
		{`<p>hello world</p>`, `<p>Hello world</p>`, false},
		{`<p>a <b>b</b></p>`, "<p>\ta\n<b> b </b></p>", true},
	}
	for _, tc := range cases {
		got, err := validator.HTMLEqual(tc.a, tc.b)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tc.want {
			t.Fatalf("HTMLEqual(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestWSConn(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if string(data) == "quiet" {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	sleeper := &recordingSleeper{}
	s, _ := newSession(t, srv.URL, sleeper)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ws, err := s.DialWS(ctx, "/echo")
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer ws.Close()

	if err := ws.Send(ctx, "ping"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if err := ws.ExpectText(ctx, "ping"); err != nil {
		t.Fatalf("unexpected echo: %v", err)
	}
	if err := ws.SendTweet(ctx, "hi"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if err := ws.ExpectJSON(ctx, `{"message":"hi"}`); err != nil {
		t.Fatalf("unexpected echo: %v", err)
	}
	if err := ws.Send(ctx, "quiet"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if err := ws.ExpectSilence(ctx, time.Second); err != nil {
		t.Fatalf("expected silence: %v", err)
	}
	if err := ws.Send(ctx, "loud"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if err := ws.ExpectSilence(ctx, time.Second); err == nil {
		t.Fatalf("expected message to break silence")
	}
	sleeper.mu.Lock()
	defer sleeper.mu.Unlock()
	if len(sleeper.slept) != 2 || sleeper.slept[0] != time.Second {
		t.Fatalf("unexpected sleeps: %v", sleeper.slept)
	}
}
