package validator

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"codehunt/pkg/utils/logger"

	"go.uber.org/zap"
)

// SubmissionIDHeader carries the submission id on every challenge request.
const SubmissionIDHeader = "X-Submission-Id"

// Sleeper pauses a challenge between checks.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type realSleeper struct{}

// RealSleeper waits on the wall clock.
func RealSleeper() Sleeper { return realSleeper{} }

func (realSleeper) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Request describes one challenge request. Path is relative to the base URL.
type Request struct {
	Method      string
	Path        string
	ContentType string
	Body        []byte
	Header      http.Header
}

// Response is a fully read challenge response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// Session is handed to each challenge. It tracks the check currently running
// and forwards progress updates.
type Session struct {
	baseURL string
	id      string
	updates chan<- Update
	sleeper Sleeper
	clients ClientConfig
	current TaskTest
}

// NewSession creates a session for one submission.
func NewSession(baseURL, id string, updates chan<- Update, sleeper Sleeper, clients ClientConfig) *Session {
	if sleeper == nil {
		sleeper = RealSleeper()
	}
	return &Session{
		baseURL: strings.TrimRight(baseURL, "/"),
		id:      id,
		updates: updates,
		sleeper: sleeper,
		clients: clients,
	}
}

// BaseURL returns the URL under test without a trailing slash.
func (s *Session) BaseURL() string { return s.baseURL }

// ID returns the submission id.
func (s *Session) ID() string { return s.id }

// URL joins path onto the base URL.
func (s *Session) URL(path string) string {
	return s.baseURL + path
}

// Test marks the check that runs next.
func (s *Session) Test(task, test int) {
	s.current = TaskTest{Task: task, Test: test}
}

// Current returns the check that is running.
func (s *Session) Current() TaskTest { return s.current }

// Fail records why the current check failed and returns it as an error.
func (s *Session) Fail(ctx context.Context, cause error) error {
	if cause != nil {
		logger.Debug(ctx, "check failed",
			zap.Int("task", s.current.Task),
			zap.Int("test", s.current.Test),
			zap.Error(cause),
		)
	}
	return s.current
}

// Check fails the current check unless ok holds.
func (s *Session) Check(ok bool) error {
	if ok {
		return nil
	}
	return s.current
}

// Complete reports a finished task and asks for it to be saved.
func (s *Session) Complete(ctx context.Context, lastCoreTask bool, bonus int) error {
	if err := s.send(ctx, TaskCompleted(lastCoreTask, bonus)); err != nil {
		return err
	}
	return s.send(ctx, Save())
}

// Log appends a line to the submission log.
func (s *Session) Log(ctx context.Context, line string) error {
	return s.send(ctx, LogLine(line))
}

// Sleep pauses using the configured sleeper.
func (s *Session) Sleep(ctx context.Context, d time.Duration) error {
	return s.sleeper.Sleep(ctx, d)
}

func (s *Session) send(ctx context.Context, u Update) error {
	return emit(ctx, s.updates, u)
}

// Client returns a fresh default client.
func (s *Session) Client() *http.Client { return NewClient(s.clients) }

// NoRedirectClient returns a fresh client that does not follow redirects.
func (s *Session) NoRedirectClient() *http.Client { return NewNoRedirectClient(s.clients) }

// CookieClient returns a fresh client with a cookie store.
func (s *Session) CookieClient() *http.Client { return NewCookieClient(s.clients) }

// Do sends req and reads the whole response. Transport and read errors fail
// the current check.
func (s *Session) Do(ctx context.Context, client *http.Client, req Request) (*Response, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, s.URL(req.Path), body)
	if err != nil {
		return nil, s.Fail(ctx, err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}
	if s.id != "" {
		httpReq.Header.Set(SubmissionIDHeader, s.id)
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, s.Fail(ctx, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, s.Fail(ctx, err)
	}
	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

// Get sends a GET request.
func (s *Session) Get(ctx context.Context, client *http.Client, path string) (*Response, error) {
	return s.Do(ctx, client, Request{Method: http.MethodGet, Path: path})
}

// Send sends a request with a raw body of the given content type.
func (s *Session) Send(ctx context.Context, client *http.Client, method, path, contentType, body string) (*Response, error) {
	return s.Do(ctx, client, Request{Method: method, Path: path, ContentType: contentType, Body: []byte(body)})
}

// SendJSON marshals v and sends it as application/json.
func (s *Session) SendJSON(ctx context.Context, client *http.Client, method, path string, v any) (*Response, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, s.Fail(ctx, err)
	}
	return s.Do(ctx, client, Request{Method: method, Path: path, ContentType: "application/json", Body: data})
}

// SendRawJSON sends an already encoded JSON document.
func (s *Session) SendRawJSON(ctx context.Context, client *http.Client, method, path, raw string) (*Response, error) {
	return s.Send(ctx, client, method, path, "application/json", raw)
}
