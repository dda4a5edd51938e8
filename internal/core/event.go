package core

import "time"

// EventKind describes a membership change the dispatcher committed.
type EventKind int

const (
	// EventChannelCreated fires when the first member joins an absent name.
	EventChannelCreated EventKind = iota
	// EventChannelDestroyed fires when the last member leaves.
	EventChannelDestroyed
	// EventJoined notifies about a client joining a channel.
	EventJoined
	// EventParted notifies about a client leaving a channel with PART.
	EventParted
	// EventKicked notifies about a client removed by an operator.
	EventKicked
	// EventQuit notifies about a client removed by QUIT or disconnect.
	EventQuit
	// EventOpGranted notifies about operator rights granted with MODE +o.
	EventOpGranted
	// EventOpRevoked notifies about operator rights revoked with MODE -o.
	EventOpRevoked
)

func (k EventKind) String() string {
	switch k {
	case EventChannelCreated:
		return "channel_created"
	case EventChannelDestroyed:
		return "channel_destroyed"
	case EventJoined:
		return "joined"
	case EventParted:
		return "parted"
	case EventKicked:
		return "kicked"
	case EventQuit:
		return "quit"
	case EventOpGranted:
		return "op_granted"
	case EventOpRevoked:
		return "op_revoked"
	default:
		return "unknown"
	}
}

// Event describes what happened inside one dispatch step.
type Event struct {
	Kind     EventKind
	Channel  string
	ClientID string
	Nick     string
	Target   string // affected nick for kick and mode events
	Reason   string
	Members  int // member count after the change
	Peak     int // for EventChannelDestroyed
	At       time.Time
}

// EventSink receives committed events in dispatch order.
// Record is called with the dispatcher lock held and must not block.
type EventSink interface {
	Record(Event)
}

type nopSink struct{}

func (nopSink) Record(Event) {}
