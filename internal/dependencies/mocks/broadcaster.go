package mocks

import (
	"github.com/mcoot/quickdrawgame-go/internal/broadcast"
	"github.com/mcoot/quickdrawgame-go/internal/model"
)

// SentEvent records one delivery made through the MockBroadcaster
type SentEvent struct {
	To    model.PlayerID // set for direct sends
	Group string         // set for group sends
	All   bool           // set for broadcasts
	Event model.Event
}

// MockBroadcaster is a mock implementation of Broadcaster that records
// every delivery and group membership change for assertions
type MockBroadcaster struct {
	Sent   []SentEvent
	Groups map[string]map[model.PlayerID]bool
	Closed []model.PlayerID
}

// Ensure MockBroadcaster implements Broadcaster
var _ broadcast.Broadcaster = (*MockBroadcaster)(nil)

// NewMockBroadcaster creates a new MockBroadcaster
func NewMockBroadcaster() *MockBroadcaster {
	return &MockBroadcaster{
		Groups: make(map[string]map[model.PlayerID]bool),
	}
}

// Send records a direct delivery
func (b *MockBroadcaster) Send(id model.PlayerID, event model.Event) {
	b.Sent = append(b.Sent, SentEvent{To: id, Event: event})
}

// SendGroup records a group delivery
func (b *MockBroadcaster) SendGroup(group string, event model.Event) {
	b.Sent = append(b.Sent, SentEvent{Group: group, Event: event})
}

// SendAll records a broadcast delivery
func (b *MockBroadcaster) SendAll(event model.Event) {
	b.Sent = append(b.Sent, SentEvent{All: true, Event: event})
}

// AddToGroup records a group join
func (b *MockBroadcaster) AddToGroup(id model.PlayerID, group string) {
	if b.Groups[group] == nil {
		b.Groups[group] = make(map[model.PlayerID]bool)
	}
	b.Groups[group][id] = true
}

// RemoveFromGroup records a group leave
func (b *MockBroadcaster) RemoveFromGroup(id model.PlayerID, group string) {
	delete(b.Groups[group], id)
}

// DropGroup removes a group entirely
func (b *MockBroadcaster) DropGroup(group string) {
	delete(b.Groups, group)
}

// Close records a forced disconnect
func (b *MockBroadcaster) Close(id model.PlayerID) {
	b.Closed = append(b.Closed, id)
}

// EventsTo returns all events sent directly to the given connection
func (b *MockBroadcaster) EventsTo(id model.PlayerID) []model.Event {
	var events []model.Event
	for _, s := range b.Sent {
		if s.To == id {
			events = append(events, s.Event)
		}
	}
	return events
}

// EventsOfType returns all recorded deliveries of the given event type
func (b *MockBroadcaster) EventsOfType(t model.EventType) []SentEvent {
	var sent []SentEvent
	for _, s := range b.Sent {
		if s.Event.Type == t {
			sent = append(sent, s)
		}
	}
	return sent
}

// LastOfType returns the most recent delivery of the given event type,
// or nil if none was recorded
func (b *MockBroadcaster) LastOfType(t model.EventType) *SentEvent {
	for i := len(b.Sent) - 1; i >= 0; i-- {
		if b.Sent[i].Event.Type == t {
			return &b.Sent[i]
		}
	}
	return nil
}

// Reset clears all recorded deliveries
func (b *MockBroadcaster) Reset() {
	b.Sent = nil
	b.Closed = nil
}
