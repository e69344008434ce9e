package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"codehunt/internal/cch23/service"
	"codehunt/internal/common/cache"

	"github.com/gorilla/websocket"
)

func chatServer(t *testing.T, hub *service.ChatHub) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		if r.URL.Path == "/ping" {
			service.ServePing(r.Context(), conn)
			return
		}
		room, _ := strconv.Atoi(r.URL.Query().Get("room"))
		hub.Join(r.Context(), conn, room, r.URL.Query().Get("user"))
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readText(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return string(data)
}

func expectQuiet(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, data, err := conn.ReadMessage(); err == nil {
		t.Fatalf("unexpected message %q", data)
	}
}

func TestServePing(t *testing.T) {
	base := chatServer(t, service.NewChatHub(cache.NewMemoryCache(16)))
	conn := dial(t, base+"/ping")

	for _, msg := range []string{"ping", "serve", "ding", "ping"} {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
	if got := readText(t, conn); got != "pong" {
		t.Fatalf("unexpected reply %q", got)
	}
	expectQuiet(t, conn)
}

func TestChatHubRooms(t *testing.T) {
	ctx := context.Background()
	hub := service.NewChatHub(cache.NewMemoryCache(16))
	base := chatServer(t, hub)

	// Each member echoes a greeting to itself, which proves it is registered.
	join := func(room, user string) *websocket.Conn {
		conn := dial(t, base+"/room?room="+room+"&user="+user)
		if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"message":"hi"}`)); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		if got := readText(t, conn); got != `{"user":"`+user+`","message":"hi"}` {
			t.Fatalf("unexpected greeting %q", got)
		}
		return conn
	}
	a := join("1", "agnetha")
	b := join("1", "bjorn")
	_ = readText(t, a)
	c := join("2", "benny")
	if err := hub.ResetViews(ctx); err != nil {
		t.Fatalf("unexpected reset error: %v", err)
	}

	if err := a.WriteJSON(map[string]string{"message": "thank you for the music"}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	want := `{"user":"agnetha","message":"thank you for the music"}`
	for _, conn := range []*websocket.Conn{a, b} {
		if got := readText(t, conn); got != want {
			t.Fatalf("unexpected tweet %q", got)
		}
	}

	long := strings.Repeat("x", service.MaxTweetLength+1)
	if err := a.WriteJSON(map[string]string{"message": long}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	expectQuiet(t, c)
	expectQuiet(t, a)

	views, err := hub.Views(ctx)
	if err != nil || views != 2 {
		t.Fatalf("unexpected views: %d %v", views, err)
	}
}

func TestChatHubSkipsDepartedMembers(t *testing.T) {
	ctx := context.Background()
	hub := service.NewChatHub(cache.NewMemoryCache(16))
	base := chatServer(t, hub)

	a := dial(t, base+"/room?room=7&user=frida")
	b := dial(t, base+"/room?room=7&user=anni")
	if err := b.WriteJSON(map[string]string{"message": "hello"}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	for _, conn := range []*websocket.Conn{a, b} {
		_ = readText(t, conn)
	}

	closing := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := b.WriteControl(websocket.CloseMessage, closing, time.Now().Add(time.Second)); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	// Wait for the server to answer the close, which happens after it left the room.
	_ = b.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := b.ReadMessage(); err == nil {
		t.Fatalf("expected the connection to close")
	}
	if err := hub.ResetViews(ctx); err != nil {
		t.Fatalf("unexpected reset error: %v", err)
	}

	if err := a.WriteJSON(map[string]string{"message": "dancing queen"}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if got := readText(t, a); got != `{"user":"frida","message":"dancing queen"}` {
		t.Fatalf("unexpected tweet %q", got)
	}
	expectQuiet(t, a)

	views, err := hub.Views(ctx)
	if err != nil || views != 1 {
		t.Fatalf("expected only the written tweet to count, got %d %v", views, err)
	}
}
