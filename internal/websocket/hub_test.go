package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dukerupert/familytree/internal/model"
)

func mockClient(hub *Hub) *Client {
	return mockUser(hub, "")
}

// mockUser creates a Client with a send channel but no real connection.
func mockUser(hub *Hub, uid string) *Client {
	return &Client{
		hub:  hub,
		uid:  uid,
		send: make(chan []byte, sendBufferSize),
	}
}

func receive(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case data := <-c.send:
		var got Message
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		return got
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for message")
	}
	return Message{}
}

func TestRegisterUnregister(t *testing.T) {
	hub := NewHub(slog.Default())

	c1 := mockClient(hub)
	c2 := mockClient(hub)
	hub.Register(c1)
	hub.Register(c2)

	if got := hub.ClientCount(); got != 2 {
		t.Fatalf("client count = %d, want 2", got)
	}

	hub.Unregister(c1)
	hub.Unregister(c1) // second call is a no-op

	if got := hub.ClientCount(); got != 1 {
		t.Fatalf("client count = %d, want 1", got)
	}
	hub.Unregister(c2)
}

func TestProfileRegisteredBroadcast(t *testing.T) {
	hub := NewHub(slog.Default())

	c1 := mockClient(hub)
	c2 := mockClient(hub)
	hub.Register(c1)
	hub.Register(c2)
	defer hub.Unregister(c1)
	defer hub.Unregister(c2)

	hub.ProfileRegistered(&model.Profile{ID: 7, DisplayName: "Mary Johnson"})

	for _, c := range []*Client{c1, c2} {
		got := receive(t, c)
		if got.Type != "profile_registered" {
			t.Errorf("type = %q, want %q", got.Type, "profile_registered")
		}
		if got.ID != 7 {
			t.Errorf("id = %d, want 7", got.ID)
		}
		if got.Extra["displayName"] != "Mary Johnson" {
			t.Errorf("displayName = %v, want Mary Johnson", got.Extra["displayName"])
		}
	}
}

func TestGalleryImageAddedBroadcast(t *testing.T) {
	hub := NewHub(slog.Default())
	c := mockClient(hub)
	hub.Register(c)
	defer hub.Unregister(c)

	hub.GalleryImageAdded(&model.GalleryImage{ID: 10, Title: "Garden Party", Src: "/photos/a.jpg"})

	got := receive(t, c)
	if got.Type != "gallery_image_created" {
		t.Errorf("type = %q, want %q", got.Type, "gallery_image_created")
	}
	if got.Extra["title"] != "Garden Party" {
		t.Errorf("title = %v, want Garden Party", got.Extra["title"])
	}
}

func TestBroadcastEmptyHub(t *testing.T) {
	hub := NewHub(slog.Default())
	hub.Broadcast(NewMessage("profile", "registered", 1, nil))
}

func TestBroadcastFullBuffer(t *testing.T) {
	hub := NewHub(slog.Default())

	c := mockClient(hub)
	hub.Register(c)

	for i := 0; i < sendBufferSize; i++ {
		hub.Broadcast(NewMessage("test", "fill", int64(i), nil))
	}
	// Dropped, not blocked.
	hub.Broadcast(NewMessage("test", "dropped", 999, nil))

	count := 0
	for len(c.send) > 0 {
		<-c.send
		count++
	}
	if count != sendBufferSize {
		t.Errorf("messages = %d, want %d", count, sendBufferSize)
	}

	hub.Unregister(c)
}

func TestConcurrentAccess(t *testing.T) {
	hub := NewHub(slog.Default())
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := mockClient(hub)
			hub.Register(c)
			hub.Broadcast(NewMessage("test", "concurrent", 0, nil))
			for {
				select {
				case <-c.send:
				default:
					hub.Unregister(c)
					return
				}
			}
		}()
	}

	wg.Wait()

	if got := hub.ClientCount(); got != 0 {
		t.Errorf("client count = %d, want 0", got)
	}
}

func TestOnline(t *testing.T) {
	hub := NewHub(slog.Default())
	mary1 := mockUser(hub, "uid-mary")
	mary2 := mockUser(hub, "uid-mary")
	david := mockUser(hub, "uid-david")
	for _, c := range []*Client{mary1, mary2, david, mockClient(hub)} {
		hub.Register(c)
	}

	if diff := cmp.Diff([]string{"uid-david", "uid-mary"}, hub.Online()); diff != "" {
		t.Errorf("online mismatch (-want +got):\n%s", diff)
	}

	hub.Unregister(mary1)
	hub.Unregister(david)
	if diff := cmp.Diff([]string{"uid-mary"}, hub.Online()); diff != "" {
		t.Errorf("online after unregister mismatch (-want +got):\n%s", diff)
	}
}
