package service

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"
	"unicode/utf8"

	"codehunt/internal/common/cache"
	pkgerrors "codehunt/pkg/errors"
	"codehunt/pkg/utils/logger"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	MaxTweetLength = 128

	viewsKey       = "cch23:19:views"
	memberBuffer   = 1024
	controlTimeout = time.Second
)

// ServePing plays ping pong on conn until it closes. Pings are ignored until
// the client says "serve".
func ServePing(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close()
	started := false
	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		switch string(data) {
		case "serve":
			started = true
		case "ping":
			if !started {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte("pong")); err != nil {
				logger.Debug(ctx, "pong failed", zap.Error(err))
				return
			}
		}
	}
}

type tweetIn struct {
	Message string `json:"message"`
}

type tweetOut struct {
	User    string `json:"user"`
	Message string `json:"message"`
}

type chatMember struct {
	room int
	user string
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func (m *chatMember) stop() {
	m.once.Do(func() { close(m.done) })
}

// ChatHub relays tweets between members of the same room and counts how many
// times a tweet was delivered.
type ChatHub struct {
	mu    sync.Mutex
	rooms map[int]map[*chatMember]struct{}
	views cache.BasicOps
}

func NewChatHub(views cache.BasicOps) *ChatHub {
	return &ChatHub{
		rooms: make(map[int]map[*chatMember]struct{}),
		views: views,
	}
}

// Join serves conn as user in room until the connection closes.
func (h *ChatHub) Join(ctx context.Context, conn *websocket.Conn, room int, user string) {
	m := &chatMember{
		room: room,
		user: user,
		conn: conn,
		send: make(chan []byte, memberBuffer),
		done: make(chan struct{}),
	}
	h.register(m)
	conn.SetCloseHandler(func(code int, text string) error {
		h.leave(m)
		msg := websocket.FormatCloseMessage(code, "")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(controlTimeout))
		return nil
	})

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		h.writeLoop(ctx, m)
	}()

	defer func() {
		h.leave(m)
		<-writerDone
		_ = conn.Close()
	}()
	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		var in tweetIn
		if err := json.Unmarshal(data, &in); err != nil {
			logger.Debug(ctx, "ignoring malformed tweet", zap.String("user", user), zap.Error(err))
			continue
		}
		if utf8.RuneCountInString(in.Message) > MaxTweetLength {
			continue
		}
		if err := h.broadcast(ctx, room, tweetOut{User: user, Message: in.Message}); err != nil {
			logger.Warn(ctx, "broadcast tweet failed", zap.Error(err))
		}
	}
}

func (h *ChatHub) writeLoop(ctx context.Context, m *chatMember) {
	for {
		select {
		case <-m.done:
			return
		case data := <-m.send:
			// Counted before the write so a reader never sees its tweet ahead
			// of the view; a failed write takes the view back.
			h.countView(ctx, 1)
			if err := m.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				logger.Debug(ctx, "deliver tweet failed", zap.String("user", m.user), zap.Error(err))
				h.countView(ctx, -1)
				h.leave(m)
				return
			}
		}
	}
}

func (h *ChatHub) register(m *chatMember) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[m.room]
	if !ok {
		members = make(map[*chatMember]struct{})
		h.rooms[m.room] = members
	}
	members[m] = struct{}{}
}

func (h *ChatHub) leave(m *chatMember) {
	h.mu.Lock()
	if members, ok := h.rooms[m.room]; ok {
		delete(members, m)
		if len(members) == 0 {
			delete(h.rooms, m.room)
		}
	}
	h.mu.Unlock()
	m.stop()
}

func (h *ChatHub) snapshot(room int) []*chatMember {
	h.mu.Lock()
	defer h.mu.Unlock()
	members := make([]*chatMember, 0, len(h.rooms[room]))
	for m := range h.rooms[room] {
		members = append(members, m)
	}
	return members
}

func (h *ChatHub) broadcast(ctx context.Context, room int, tweet tweetOut) error {
	data, err := json.Marshal(tweet)
	if err != nil {
		return err
	}
	for _, m := range h.snapshot(room) {
		select {
		case m.send <- data:
		case <-m.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (h *ChatHub) countView(ctx context.Context, delta int64) {
	if _, err := h.views.IncrBy(ctx, viewsKey, delta); err != nil {
		logger.Warn(ctx, "count views failed", zap.Error(err))
	}
}

// Views returns the number of deliveries since the last reset.
func (h *ChatHub) Views(ctx context.Context) (int64, error) {
	raw, err := h.views.Get(ctx, viewsKey)
	if err != nil {
		return 0, pkgerrors.Wrap(err, pkgerrors.CacheError)
	}
	if raw == "" {
		return 0, nil
	}
	views, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, pkgerrors.Wrap(err, pkgerrors.CacheError)
	}
	return views, nil
}

// ResetViews sets the view counter back to zero.
func (h *ChatHub) ResetViews(ctx context.Context) error {
	if err := h.views.Del(ctx, viewsKey); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CacheError)
	}
	return nil
}
