package lib

import "encoding/json"

// EventType names the lifecycle transitions recorded in the append-only history
type EventType string

const (
	EventTypeProposalCreated   EventType = "proposal-created"
	EventTypeProposalEndorsed  EventType = "proposal-endorsed"
	EventTypeEndorsementRevoke EventType = "endorsement-revoked"
	EventTypeProposalExecuted  EventType = "proposal-executed"
	EventTypeProposalCancelled EventType = "proposal-cancelled"
	EventTypeProposalExpired   EventType = "proposal-expired"
	EventTypeMemberAdded       EventType = "member-added"
	EventTypeMemberRemoved     EventType = "member-removed"
	EventTypeThresholdChanged  EventType = "threshold-changed"
	EventTypeDeposit           EventType = "deposit"
	EventTypePaused            EventType = "paused"
	EventTypeUnpaused          EventType = "unpaused"
)

// Event is a single history record; Msg carries the type-specific payload
type Event struct {
	EventType  EventType       `json:"eventType"`
	Height     uint64          `json:"height"`
	Seq        uint64          `json:"seq"`
	ProposalId uint64          `json:"proposalId,omitempty"`
	Address    HexBytes        `json:"address,omitempty"`
	Msg        json.RawMessage `json:"msg,omitempty"`
}

type Events []*Event

// EventsTracker accumulates the events of a single operation before they
// are flushed to the store at commit
type EventsTracker struct {
	Events Events
}

// Add() adds an event to the tracker
func (t *EventsTracker) Add(event *Event) (e ErrorI) {
	if t == nil {
		return ErrEmptyEventsTracker()
	}
	t.Events = append(t.Events, event)
	return
}

// Reset() resets the event tracker and returns the captured events
func (t *EventsTracker) Reset() (e Events) {
	if t == nil {
		return
	}
	e = t.Events
	t.Events = nil
	return
}
