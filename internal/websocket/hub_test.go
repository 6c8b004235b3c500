package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(h *Hub) *Client {
	return &Client{
		Hub:    h,
		UserID: uuid.New(),
		Send:   make(chan []byte, 8),
	}
}

// receiveEvent reads the next payload off a client's send channel.
func receiveEvent(t *testing.T, c *Client) Event {
	t.Helper()

	select {
	case payload, ok := <-c.Send:
		require.True(t, ok, "send channel closed")
		var event Event
		require.NoError(t, json.Unmarshal(payload, &event))
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func onlineSet(t *testing.T, event Event) map[string]bool {
	t.Helper()

	require.Equal(t, EventOnlineUsers, event.Event)
	raw, ok := event.Data.([]interface{})
	require.True(t, ok, "expected a list of IDs, got %T", event.Data)

	set := map[string]bool{}
	for _, v := range raw {
		set[v.(string)] = true
	}
	return set
}

func TestRegisterBroadcastsOnlineSet(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c1 := newTestClient(hub)
	hub.Register(c1)

	set := onlineSet(t, receiveEvent(t, c1))
	assert.True(t, set[c1.UserID.String()])
	assert.Len(t, set, 1)

	c2 := newTestClient(hub)
	hub.Register(c2)

	// Both connections see the updated online set.
	for _, c := range []*Client{c1, c2} {
		set := onlineSet(t, receiveEvent(t, c))
		assert.True(t, set[c1.UserID.String()])
		assert.True(t, set[c2.UserID.String()])
		assert.Len(t, set, 2)
	}
}

func TestUnregisterBroadcastsShrunkenSet(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c1 := newTestClient(hub)
	c2 := newTestClient(hub)
	hub.Register(c1)
	receiveEvent(t, c1)
	hub.Register(c2)
	receiveEvent(t, c1)
	receiveEvent(t, c2)

	hub.Unregister(c2)

	set := onlineSet(t, receiveEvent(t, c1))
	assert.True(t, set[c1.UserID.String()])
	assert.False(t, set[c2.UserID.String()])
	assert.Len(t, set, 1)

	assert.ElementsMatch(t, []uuid.UUID{c1.UserID}, hub.OnlineUsers())
}

func TestSendToUser(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c := newTestClient(hub)
	hub.Register(c)
	receiveEvent(t, c)

	payload, err := MarshalEvent(EventNewMessage, map[string]string{"text": "hi"})
	require.NoError(t, err)

	assert.True(t, hub.SendToUser(c.UserID, payload))
	event := receiveEvent(t, c)
	assert.Equal(t, EventNewMessage, event.Event)

	// An absent receiver is a no-op, not an error.
	assert.False(t, hub.SendToUser(uuid.New(), payload))
}

func TestNewConnectionReplacesOld(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	userID := uuid.New()
	old := &Client{Hub: hub, UserID: userID, Send: make(chan []byte, 8)}
	hub.Register(old)
	receiveEvent(t, old)

	replacement := &Client{Hub: hub, UserID: userID, Send: make(chan []byte, 8)}
	hub.Register(replacement)
	receiveEvent(t, replacement)

	// Still exactly one presence entry for the user.
	assert.ElementsMatch(t, []uuid.UUID{userID}, hub.OnlineUsers())

	// Pushes go to the replacement connection.
	payload, err := MarshalEvent(EventNewMessage, map[string]string{"text": "hi"})
	require.NoError(t, err)
	require.True(t, hub.SendToUser(userID, payload))
	event := receiveEvent(t, replacement)
	assert.Equal(t, EventNewMessage, event.Event)

	// The old connection's channel is closed so its write pump exits.
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-old.Send:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("old connection was never closed")
		}
	}
}

func TestStaleUnregisterKeepsReplacement(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	userID := uuid.New()
	old := &Client{Hub: hub, UserID: userID, Send: make(chan []byte, 8)}
	hub.Register(old)
	receiveEvent(t, old)

	replacement := &Client{Hub: hub, UserID: userID, Send: make(chan []byte, 8)}
	hub.Register(replacement)
	receiveEvent(t, replacement)

	// The old connection's read pump eventually unregisters it; the
	// replacement must survive that.
	hub.Unregister(old)

	require.Eventually(t, func() bool {
		return hub.SendToUser(userID, []byte("ping"))
	}, time.Second, 10*time.Millisecond)
	assert.ElementsMatch(t, []uuid.UUID{userID}, hub.OnlineUsers())
}
