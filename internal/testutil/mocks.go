package testutil

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/MikhailONe12/App-Risk-Manager/internal/domain"
	"github.com/MikhailONe12/App-Risk-Manager/internal/websocket"
)

// MockBlobStore is an in-memory implementation of domain.BlobStore
type MockBlobStore struct {
	mu     sync.Mutex
	Blobs  map[string][]byte
	PutErr error
	GetErr error
	Puts   int
}

// NewMockBlobStore creates a new MockBlobStore
func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{Blobs: make(map[string][]byte)}
}

// Get returns a copy of a stored blob
func (m *MockBlobStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}
	data, ok := m.Blobs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

// Put stores a copy of data
func (m *MockBlobStore) Put(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PutErr != nil {
		return m.PutErr
	}
	m.Blobs[key] = append([]byte(nil), data...)
	m.Puts++
	return nil
}

// MockStateRepository is an in-memory implementation of domain.StateRepository
type MockStateRepository struct {
	mu              sync.Mutex
	Profiles        []domain.RiskProfile
	Journal         []domain.DailyStat
	SaveErr         error
	// SaveProfilesErr fails only SaveProfiles, leaving journal saves through
	SaveProfilesErr error
	Saves           int
}

// NewMockStateRepository creates a new MockStateRepository
func NewMockStateRepository() *MockStateRepository {
	return &MockStateRepository{}
}

// LoadProfiles returns the stored profiles
func (m *MockStateRepository) LoadProfiles(ctx context.Context) ([]domain.RiskProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.RiskProfile(nil), m.Profiles...), nil
}

// SaveProfiles stores profiles
func (m *MockStateRepository) SaveProfiles(ctx context.Context, profiles []domain.RiskProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if m.SaveProfilesErr != nil {
		return m.SaveProfilesErr
	}
	m.Profiles = append([]domain.RiskProfile(nil), profiles...)
	m.Saves++
	return nil
}

// LoadJournal returns the stored journal
func (m *MockStateRepository) LoadJournal(ctx context.Context) ([]domain.DailyStat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.DailyStat(nil), m.Journal...), nil
}

// SaveJournal stores journal
func (m *MockStateRepository) SaveJournal(ctx context.Context, journal []domain.DailyStat) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Journal = append([]domain.DailyStat(nil), journal...)
	m.Saves++
	return nil
}

// MockRemoteSyncClient is a scripted implementation of domain.RemoteSyncClient
type MockRemoteSyncClient struct {
	mu       sync.Mutex
	ReadData json.RawMessage
	ReadErr  error
	WriteErr error
	// Block, when set, makes every call wait until it is closed
	Block    chan struct{}
	Reads    int
	Payloads []domain.SyncPayload
}

// NewMockRemoteSyncClient creates a client that answers reads with data
func NewMockRemoteSyncClient(data string) *MockRemoteSyncClient {
	return &MockRemoteSyncClient{ReadData: json.RawMessage(data)}
}

func (m *MockRemoteSyncClient) wait(ctx context.Context) error {
	m.mu.Lock()
	block := m.Block
	m.mu.Unlock()
	if block == nil {
		return nil
	}
	select {
	case <-block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Read returns ReadData or ReadErr
func (m *MockRemoteSyncClient) Read(ctx context.Context, cfg domain.SyncConfig) (json.RawMessage, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reads++
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	return m.ReadData, nil
}

// Write records the payload and returns WriteErr
func (m *MockRemoteSyncClient) Write(ctx context.Context, cfg domain.SyncConfig, payload domain.SyncPayload) error {
	if err := m.wait(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Payloads = append(m.Payloads, payload)
	return m.WriteErr
}

// WriteCount returns the number of writes received
func (m *MockRemoteSyncClient) WriteCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Payloads)
}

// LastPayload returns the most recent write
func (m *MockRemoteSyncClient) LastPayload() (domain.SyncPayload, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Payloads) == 0 {
		return domain.SyncPayload{}, false
	}
	return m.Payloads[len(m.Payloads)-1], true
}

// PublishedEvent is one call to MockEventPublisher.Publish
type PublishedEvent struct {
	ProfileID string
	Event     websocket.Event
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mu     sync.Mutex
	events []PublishedEvent
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

// Publish records the event
func (m *MockEventPublisher) Publish(profileID string, event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, PublishedEvent{ProfileID: profileID, Event: event})
}

// Events returns a copy of the recorded events
func (m *MockEventPublisher) Events() []PublishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PublishedEvent(nil), m.events...)
}

// EventTypes returns the type of every recorded event in order
func (m *MockEventPublisher) EventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, len(m.events))
	for i, e := range m.events {
		types[i] = e.Event.Type
	}
	return types
}

// MockPusher records background push requests
type MockPusher struct {
	mu       sync.Mutex
	Profiles []string
}

// PushInBackground records the profile id
func (m *MockPusher) PushInBackground(profileID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Profiles = append(m.Profiles, profileID)
}

// Count returns the number of push requests
func (m *MockPusher) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Profiles)
}
