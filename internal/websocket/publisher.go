package websocket

// EventPublisher defines the interface for publishing events to WebSocket clients
type EventPublisher interface {
	// Publish sends an event to all clients watching the specified profile
	Publish(profileID string, event Event)
}

// ProfileDisconnector drops every client watching a profile after a final event
type ProfileDisconnector interface {
	DisconnectProfile(profileID string, farewell Event) int
}

// Ensure Hub implements EventPublisher and ProfileDisconnector
var (
	_ EventPublisher      = (*Hub)(nil)
	_ ProfileDisconnector = (*Hub)(nil)
)

// Publish implements EventPublisher by broadcasting the event to the profile's clients
func (h *Hub) Publish(profileID string, event Event) {
	h.Broadcast(profileID, event)
}

// NoOpPublisher is a publisher that does nothing (for the CLI or when WebSocket is disabled)
type NoOpPublisher struct{}

// Publish does nothing
func (n *NoOpPublisher) Publish(profileID string, event Event) {}
