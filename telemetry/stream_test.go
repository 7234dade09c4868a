package telemetry

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestStreamBroadcast(t *testing.T) {
	s := NewStream(8, 6)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var h hello
	if err := conn.ReadJSON(&h); err != nil {
		t.Fatalf("reading hello: %v", err)
	}
	if h.Type != "config" || h.W != 8 || h.H != 6 {
		t.Errorf("hello = %+v, want config 8x6", h)
	}

	deadline := time.Now().Add(5 * time.Second)
	for s.Clients() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	s.Broadcast(TickFrame{
		Type: "tick",
		Tick: 7,
		Prey: 1,
		Creatures: []CreatureView{
			{ID: 3, X: 1, Y: 2, Species: "prey", Sex: "female", Adult: true, Health: 0.5},
		},
	})

	var f TickFrame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("reading frame: %v", err)
	}
	if f.Tick != 7 || f.Prey != 1 || len(f.Creatures) != 1 {
		t.Fatalf("frame = %+v", f)
	}
	if c := f.Creatures[0]; c.ID != 3 || c.X != 1 || c.Y != 2 || c.Species != "prey" {
		t.Errorf("creature = %+v", c)
	}
}

func TestStreamBroadcastNoClients(t *testing.T) {
	s := NewStream(4, 4)
	s.Broadcast(TickFrame{Type: "tick"})
	if s.Clients() != 0 {
		t.Errorf("clients = %d, want 0", s.Clients())
	}
}
