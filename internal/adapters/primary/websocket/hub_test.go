package websocket

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/chat-relay-backend/internal/core/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(hub *Hub, sessionID string) *Client {
	// The connection is never touched by Register, Broadcast or Unregister.
	return NewClient(hub, nil, sessionID, testLogger())
}

// received drains exactly the frames currently buffered for the client.
func received(c *Client) [][]byte {
	var frames [][]byte
	for {
		select {
		case frame, ok := <-c.send:
			if !ok {
				return frames
			}
			frames = append(frames, frame)
		default:
			return frames
		}
	}
}

func TestHub_BroadcastReachesActiveClients(t *testing.T) {
	hub := NewHub(testLogger())

	a := newTestClient(hub, "sess-a")
	b := newTestClient(hub, "sess-b")
	hub.Register(a)
	hub.Register(b)
	require.Equal(t, 2, hub.ClientCount())

	event := domain.NewMessageEvent("cust-1", domain.Message{
		ID:        "wamid.1",
		Text:      "hello",
		Timestamp: 1700000000000,
		Sender:    domain.SenderUser,
	})

	require.NoError(t, hub.Broadcast(event))

	framesA := received(a)
	framesB := received(b)
	require.Len(t, framesA, 1)
	require.Len(t, framesB, 1)

	// Both clients got the same serialized frame.
	assert.Equal(t, framesA[0], framesB[0])
	assert.Contains(t, string(framesA[0]), `"type":"newMessage"`)
	assert.Contains(t, string(framesA[0]), `"contactId":"cust-1"`)
}

func TestHub_UnregisteredClientGetsNothing(t *testing.T) {
	hub := NewHub(testLogger())

	a := newTestClient(hub, "sess-a")
	b := newTestClient(hub, "sess-b")
	hub.Register(a)
	hub.Register(b)

	hub.Unregister(b)
	require.Equal(t, 1, hub.ClientCount())

	require.NoError(t, hub.Broadcast(domain.NewMessageEvent("cust-1", domain.Message{Text: "hi"})))

	assert.Len(t, received(a), 1)
	assert.Empty(t, received(b))
}

func TestHub_LateJoinerGetsNoReplay(t *testing.T) {
	hub := NewHub(testLogger())

	require.NoError(t, hub.Broadcast(domain.NewMessageEvent("cust-1", domain.Message{Text: "before"})))

	late := newTestClient(hub, "sess-late")
	hub.Register(late)

	assert.Empty(t, received(late))

	require.NoError(t, hub.Broadcast(domain.NewMessageEvent("cust-1", domain.Message{Text: "after"})))
	assert.Len(t, received(late), 1)
}

func TestHub_SerializationFailureDeliversToNobody(t *testing.T) {
	hub := NewHub(testLogger())

	a := newTestClient(hub, "sess-a")
	hub.Register(a)

	// Channels are not JSON-serializable.
	err := hub.Broadcast(domain.Event{Type: "broken", Payload: make(chan int)})
	require.Error(t, err)
	assert.Empty(t, received(a))
}

func TestHub_SlowClientIsSkippedNotBlockedOn(t *testing.T) {
	hub := NewHub(testLogger())

	slow := newTestClient(hub, "sess-slow")
	healthy := newTestClient(hub, "sess-healthy")
	hub.Register(slow)
	hub.Register(healthy)

	for i := 0; i < sendBufferSize; i++ {
		slow.send <- []byte("backlog")
	}

	// Must return promptly even though slow's buffer is full.
	require.NoError(t, hub.Broadcast(domain.NewMessageEvent("cust-1", domain.Message{Text: "hi"})))

	assert.Len(t, received(healthy), 1)
	assert.Len(t, received(slow), sendBufferSize)
}

func TestHub_UnregisterIsIdempotent(t *testing.T) {
	hub := NewHub(testLogger())

	a := newTestClient(hub, "sess-a")
	hub.Register(a)

	hub.Unregister(a)
	hub.Unregister(a)
	assert.Equal(t, 0, hub.ClientCount())

	// Unknown client is a no-op too.
	hub.Unregister(newTestClient(hub, "sess-ghost"))
	assert.Equal(t, 0, hub.ClientCount())
}

func TestClient_TrySendAfterCloseReportsFalse(t *testing.T) {
	hub := NewHub(testLogger())

	c := newTestClient(hub, "sess-a")
	c.CloseSend()
	c.CloseSend()

	assert.False(t, c.TrySend([]byte("late")))
}
