package validator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const closeWait = time.Second

var errWSClosed = errors.New("websocket closed")

type wsMessage struct {
	text string
	err  error
}

// WSConn is a websocket client used by challenges. A reader goroutine pumps
// incoming text frames into a channel so reads can honor contexts.
type WSConn struct {
	conn     *websocket.Conn
	sleeper  Sleeper
	incoming chan wsMessage
	done     chan struct{}
	exited   chan struct{}
	writeMu  sync.Mutex
	once     sync.Once
}

// DialWS opens a websocket to path under the base URL.
func (s *Session) DialWS(ctx context.Context, path string) (*WSConn, error) {
	target := s.URL(path)
	switch {
	case strings.HasPrefix(target, "https://"):
		target = "wss://" + strings.TrimPrefix(target, "https://")
	case strings.HasPrefix(target, "http://"):
		target = "ws://" + strings.TrimPrefix(target, "http://")
	}
	header := http.Header{}
	if s.id != "" {
		header.Set(SubmissionIDHeader, s.id)
	}
	dialer := websocket.Dialer{HandshakeTimeout: s.clients.withDefaults().ConnectTimeout}
	conn, resp, err := dialer.DialContext(ctx, target, header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, s.Fail(ctx, fmt.Errorf("dial %s failed: %w", path, err))
	}
	w := &WSConn{
		conn:     conn,
		sleeper:  s.sleeper,
		incoming: make(chan wsMessage, 256),
		done:     make(chan struct{}),
		exited:   make(chan struct{}),
	}
	go w.readLoop()
	return w, nil
}

func (w *WSConn) readLoop() {
	defer close(w.exited)
	defer close(w.incoming)
	for {
		kind, data, err := w.conn.ReadMessage()
		if err != nil {
			select {
			case w.incoming <- wsMessage{err: err}:
			case <-w.done:
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		select {
		case w.incoming <- wsMessage{text: string(data)}:
		case <-w.done:
			return
		}
	}
}

// Send writes one text frame.
func (w *WSConn) Send(ctx context.Context, text string) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()
	if deadline, ok := ctx.Deadline(); ok {
		_ = w.conn.SetWriteDeadline(deadline)
	}
	return w.conn.WriteMessage(websocket.TextMessage, []byte(text))
}

// SendTweet writes {"message": msg}.
func (w *WSConn) SendTweet(ctx context.Context, msg string) error {
	data, err := json.Marshal(struct {
		Message string `json:"message"`
	}{Message: msg})
	if err != nil {
		return err
	}
	return w.Send(ctx, string(data))
}

// Receive waits for the next text frame.
func (w *WSConn) Receive(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case m, ok := <-w.incoming:
		if !ok {
			return "", errWSClosed
		}
		if m.err != nil {
			return "", m.err
		}
		return m.text, nil
	}
}

// ExpectText receives one frame and compares it with want.
func (w *WSConn) ExpectText(ctx context.Context, want string) error {
	got, err := w.Receive(ctx)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("unexpected message %q, want %q", got, want)
	}
	return nil
}

// ExpectJSON receives one frame and compares it with want as JSON.
func (w *WSConn) ExpectJSON(ctx context.Context, want string) error {
	got, err := w.Receive(ctx)
	if err != nil {
		return err
	}
	ok, err := JSONEqual([]byte(got), []byte(want))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("unexpected message %s, want %s", got, want)
	}
	return nil
}

// ExpectSilence waits for d and fails if anything arrived meanwhile.
func (w *WSConn) ExpectSilence(ctx context.Context, d time.Duration) error {
	if err := w.sleeper.Sleep(ctx, d); err != nil {
		return err
	}
	select {
	case m, ok := <-w.incoming:
		if !ok {
			return nil
		}
		if m.err != nil {
			return nil
		}
		return fmt.Errorf("unexpected message %q", m.text)
	default:
		return nil
	}
}

// Drain discards incoming frames until the connection closes or ctx ends.
func (w *WSConn) Drain(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-w.incoming:
			if !ok || m.err != nil {
				return
			}
		}
	}
}

// Close sends a close frame, waits briefly for the peer to answer it and
// releases the connection.
func (w *WSConn) Close() error {
	var err error
	w.once.Do(func() {
		w.writeMu.Lock()
		_ = w.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		w.writeMu.Unlock()
		close(w.done)
		select {
		case <-w.exited:
		case <-time.After(closeWait):
		}
		err = w.conn.Close()
	})
	return err
}
