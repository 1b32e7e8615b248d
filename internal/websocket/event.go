package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents what happened to an entity
type EventType string

const (
	EventTypeCreated  EventType = "created"
	EventTypeUpdated  EventType = "updated"
	EventTypeDeleted  EventType = "deleted"
	EventTypeSynced   EventType = "synced"
	EventTypeFailed   EventType = "failed"
	EventTypeBreached EventType = "breached"

	// EventTypeDeactivated is the last event a client sees before its profile's clients are dropped
	EventTypeDeactivated EventType = "deactivated"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeJournal   EntityType = "journal"
	EntityTypeProfile   EntityType = "profile"
	EntityTypeDashboard EntityType = "dashboard"
	EntityTypeSync      EntityType = "sync"
	EntityTypeRisk      EntityType = "risk"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "journal.created"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "journal"
	Payload   interface{} `json:"payload"`   // Full entity data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// JournalCreated creates a journal.created event
func JournalCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeJournal, payload)
}

// JournalDeleted creates a journal.deleted event
func JournalDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeJournal, payload)
}

// ProfileUpdated creates a profile.updated event
func ProfileUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeProfile, payload)
}

// ProfileSynced creates a profile.synced event, sent after a successful pull
func ProfileSynced(payload interface{}) Event {
	return NewEvent(EventTypeSynced, EntityTypeProfile, payload)
}

// ProfileDeactivated creates a profile.deactivated event
func ProfileDeactivated(payload interface{}) Event {
	return NewEvent(EventTypeDeactivated, EntityTypeProfile, payload)
}

// DashboardUpdated creates a dashboard.updated event
func DashboardUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeDashboard, payload)
}

// SyncFailed creates a sync.failed event
func SyncFailed(payload interface{}) Event {
	return NewEvent(EventTypeFailed, EntityTypeSync, payload)
}

// RiskBreached creates a risk.breached event
func RiskBreached(payload interface{}) Event {
	return NewEvent(EventTypeBreached, EntityTypeRisk, payload)
}
