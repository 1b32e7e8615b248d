package websocket

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockClient is a test double for Client that captures sent messages
type mockClient struct {
	id        string
	profileID string
	messages  [][]byte
	mu        sync.Mutex
	closed    bool
}

func newMockClient(id, profileID string) *mockClient {
	return &mockClient{
		id:        id,
		profileID: profileID,
		messages:  make([][]byte, 0),
	}
}

func (m *mockClient) ID() string {
	return m.id
}

func (m *mockClient) ProfileID() string {
	return m.profileID
}

func (m *mockClient) Send(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClientClosed
	}
	m.messages = append(m.messages, data)
	return nil
}

func (m *mockClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockClient) GetMessages() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make([][]byte, len(m.messages))
	copy(copied, m.messages)
	return copied
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub()

	client1 := newMockClient("client-1", "p1")
	client2 := newMockClient("client-2", "p1")
	client3 := newMockClient("client-3", "p2")

	hub.Register(client1)
	hub.Register(client2)
	hub.Register(client3)

	assert.Equal(t, 2, hub.ClientCount("p1"))
	assert.Equal(t, 1, hub.ClientCount("p2"))
	assert.Equal(t, 0, hub.ClientCount("missing"))
	assert.Equal(t, 3, hub.TotalClientCount())

	hub.Unregister(client1)
	assert.Equal(t, 1, hub.ClientCount("p1"))

	hub.Unregister(client2)
	hub.Unregister(client3)
	assert.Equal(t, 0, hub.ClientCount("p1"))
	assert.Equal(t, 0, hub.TotalClientCount())
}

func TestHub_Broadcast_ProfileIsolation(t *testing.T) {
	hub := NewHub()

	client1a := newMockClient("client-1a", "p1")
	client1b := newMockClient("client-1b", "p1")
	client2 := newMockClient("client-2", "p2")

	hub.Register(client1a)
	hub.Register(client1b)
	hub.Register(client2)

	hub.Broadcast("p1", JournalCreated(map[string]interface{}{"id": "a"}))

	assert.Eventually(t, func() bool {
		return len(client1a.GetMessages()) == 1 && len(client1b.GetMessages()) == 1
	}, time.Second, 5*time.Millisecond)

	// Give stray goroutines a moment before asserting absence
	time.Sleep(10 * time.Millisecond)
	assert.Len(t, client2.GetMessages(), 0, "client2 should not receive events for p1")
}

func TestHub_ConcurrentAccess(t *testing.T) {
	hub := NewHub()

	var wg sync.WaitGroup
	clientCount := 50

	clients := make([]*mockClient, clientCount)
	for i := 0; i < clientCount; i++ {
		clients[i] = newMockClient(fmt.Sprintf("client-%d", i), fmt.Sprintf("p%d", i%5))
	}

	for i := 0; i < clientCount; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			hub.Register(clients[idx])
		}(i)
	}
	wg.Wait()

	assert.Equal(t, clientCount, hub.TotalClientCount())

	for i := 0; i < clientCount; i++ {
		wg.Add(2)
		go func(idx int) {
			defer wg.Done()
			hub.Broadcast(fmt.Sprintf("p%d", idx%5), DashboardUpdated(map[string]interface{}{"n": idx}))
		}(i)
		go func(idx int) {
			defer wg.Done()
			hub.Unregister(clients[idx])
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, hub.TotalClientCount())
}

func TestHub_UnregisterNonexistent(t *testing.T) {
	hub := NewHub()

	require.NotPanics(t, func() {
		hub.Unregister(newMockClient("client-1", "p1"))
	})
}

func TestHub_BroadcastToEmptyProfile(t *testing.T) {
	hub := NewHub()

	require.NotPanics(t, func() {
		hub.Broadcast("nobody", RiskBreached(map[string]interface{}{"id": "x"}))
	})
}

func (m *mockClient) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func TestHub_DisconnectProfile(t *testing.T) {
	hub := NewHub()
	a1 := newMockClient("a1", "a")
	a2 := newMockClient("a2", "a")
	b1 := newMockClient("b1", "b")
	hub.Register(a1)
	hub.Register(a2)
	hub.Register(b1)

	dropped := hub.DisconnectProfile("a", ProfileDeactivated(map[string]string{"activeProfileId": "b"}))

	assert.Equal(t, 2, dropped)
	assert.Equal(t, 0, hub.ClientCount("a"))
	assert.Equal(t, 1, hub.ClientCount("b"))

	for _, c := range []*mockClient{a1, a2} {
		assert.True(t, c.IsClosed(), c.ID())
		messages := c.GetMessages()
		require.Len(t, messages, 1, c.ID())
		assert.Contains(t, string(messages[0]), `"type":"profile.deactivated"`)
	}
	assert.False(t, b1.IsClosed())

	// Later broadcasts no longer reach the dropped clients
	hub.Broadcast("a", NewEvent(EventTypeUpdated, EntityTypeDashboard, nil))
	time.Sleep(20 * time.Millisecond)
	assert.Len(t, a1.GetMessages(), 1)

	assert.Equal(t, 0, hub.DisconnectProfile("ghost", ProfileDeactivated(nil)))
}
