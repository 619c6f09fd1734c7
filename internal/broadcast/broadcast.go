package broadcast

import "github.com/mcoot/quickdrawgame-go/internal/model"

// Broadcaster delivers events to live connections. The transport is
// expected to deliver events in order per connection; ordering across
// different connections or groups is not guaranteed.
//
// Group membership is managed by the caller: rooms join their occupants
// to a group named after the room id and drop the group on teardown.
type Broadcaster interface {
	// Send delivers an event to a single connection
	Send(id model.PlayerID, event model.Event)

	// SendGroup delivers an event to every member of a named group
	SendGroup(group string, event model.Event)

	// SendAll delivers an event to every connection
	SendAll(event model.Event)

	// AddToGroup adds a connection to a named group
	AddToGroup(id model.PlayerID, group string)

	// RemoveFromGroup removes a connection from a named group
	RemoveFromGroup(id model.PlayerID, group string)

	// DropGroup removes a group and all its memberships
	DropGroup(group string)

	// Close forcibly disconnects a connection
	Close(id model.PlayerID)
}
