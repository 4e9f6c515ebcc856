package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/hub"
	"github.com/gorilla/websocket"
)

func dialEvents(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to dial %s: %v", wsURL, err)
	}
	return conn
}

func waitForCount(t *testing.T, h *hub.Hub, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.Count() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("hub never reached %d consumers, have %d", want, h.Count())
}

func TestEventsHandler_DeliversEvents(t *testing.T) {
	h := hub.New()
	h.Start()
	defer h.Stop()

	ts := httptest.NewServer(New(Config{Hub: h}))
	defer ts.Close()

	conn := dialEvents(t, ts)
	defer conn.Close()

	waitForCount(t, h, 1)

	h.Publish(gesture.NewEvent(gesture.SwipeLeft))
	h.Publish(gesture.NewPinchEvent(0.5))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var first struct {
		Type string                 `json:"type"`
		Data map[string]interface{} `json:"data"`
	}
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read first event: %v", err)
	}
	if err := json.Unmarshal(msg, &first); err != nil {
		t.Fatalf("failed to decode first event: %v", err)
	}
	if first.Type != "swipe_left" {
		t.Errorf("expected first event swipe_left, got %s", first.Type)
	}
	if first.Data == nil || len(first.Data) != 0 {
		t.Errorf("expected empty data object, got %v", first.Data)
	}

	var second struct {
		Type string                 `json:"type"`
		Data map[string]interface{} `json:"data"`
	}
	_, msg, err = conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read second event: %v", err)
	}
	if err := json.Unmarshal(msg, &second); err != nil {
		t.Fatalf("failed to decode second event: %v", err)
	}
	if second.Type != "pinch" {
		t.Errorf("expected second event pinch, got %s", second.Type)
	}
	if second.Data["strength"] != 0.5 {
		t.Errorf("expected pinch strength 0.5, got %v", second.Data["strength"])
	}
}

func TestEventsHandler_ConsumerMessagesIgnored(t *testing.T) {
	h := hub.New()
	h.Start()
	defer h.Stop()

	ts := httptest.NewServer(New(Config{Hub: h}))
	defer ts.Close()

	conn := dialEvents(t, ts)
	defer conn.Close()

	waitForCount(t, h, 1)

	// Consumers are receive-only; anything they send is drained.
	if err := conn.WriteMessage(websocket.TextMessage, []byte("hello")); err != nil {
		t.Fatalf("failed to write client message: %v", err)
	}

	h.Publish(gesture.NewEvent(gesture.ClosedFist))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read event after client write: %v", err)
	}
	if !strings.Contains(string(msg), "closed_fist") {
		t.Errorf("expected closed_fist event, got %s", msg)
	}
}

func TestEventsHandler_DisconnectDetaches(t *testing.T) {
	h := hub.New()
	h.Start()
	defer h.Stop()

	ts := httptest.NewServer(New(Config{Hub: h}))
	defer ts.Close()

	conn := dialEvents(t, ts)
	waitForCount(t, h, 1)

	conn.Close()
	waitForCount(t, h, 0)
}
