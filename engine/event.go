package engine

import (
	"github.com/custodia-network/custodia/lib"
)

/*
	Each successful mutating operation emits structured events. They are
	accumulated in the in-operation tracker, persisted under the event prefix
	when the operation commits (stamped with the height that commit creates),
	and then offered once to the optional sink. The history is append-only;
	a failed operation leaves no events behind.
*/

// flushEvents() stamps the tracked events with the upcoming commit height
// and writes them into the open transaction
func (e *Engine) flushEvents() lib.ErrorI {
	events := e.events.Reset()
	height := e.db.Version() + 1
	for i, event := range events {
		event.Height, event.Seq = height, uint64(i)
		if err := e.Set(KeyForEvent(height, uint64(i)), event); err != nil {
			return err
		}
	}
	e.flushed = events
	return nil
}

// deliverEvents() offers the committed events to the sink, if one is registered
func (e *Engine) deliverEvents() {
	events := e.flushed
	e.flushed = nil
	if e.sink == nil {
		return
	}
	for _, event := range events {
		e.sink(event)
	}
}

// EventsByHeight() returns the events persisted at one logical height
func (e *Engine) EventsByHeight(height uint64) (lib.Events, lib.ErrorI) {
	e.l.RLock()
	defer e.l.RUnlock()
	it, err := e.Iterator(EventsPrefixForHeight(height))
	if err != nil {
		return nil, err
	}
	defer it.Close()
	var events lib.Events
	for ; it.Valid(); it.Next() {
		event := new(lib.Event)
		if err = lib.Unmarshal(it.Value(), event); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

// addEvent() places one event in the in-operation tracker
func (e *Engine) addEvent(eventType lib.EventType, proposalId uint64, address lib.HexBytes, msg any) lib.ErrorI {
	event := &lib.Event{EventType: eventType, ProposalId: proposalId, Address: address}
	if msg != nil {
		bz, err := lib.Marshal(msg)
		if err != nil {
			return err
		}
		event.Msg = bz
	}
	return e.events.Add(event)
}

func (e *Engine) emitProposalCreated(proposal *Proposal) lib.ErrorI {
	return e.addEvent(lib.EventTypeProposalCreated, proposal.Id, proposal.Proposer,
		map[string]any{"kind": proposal.Kind})
}

func (e *Engine) emitEndorsed(id uint64, address lib.HexBytes) lib.ErrorI {
	return e.addEvent(lib.EventTypeProposalEndorsed, id, address, nil)
}

func (e *Engine) emitRevoked(id uint64, address lib.HexBytes) lib.ErrorI {
	return e.addEvent(lib.EventTypeEndorsementRevoke, id, address, nil)
}

func (e *Engine) emitExecuted(proposal *Proposal, caller lib.HexBytes) lib.ErrorI {
	return e.addEvent(lib.EventTypeProposalExecuted, proposal.Id, caller,
		map[string]any{"kind": proposal.Kind})
}

func (e *Engine) emitCancelled(id uint64, caller lib.HexBytes) lib.ErrorI {
	return e.addEvent(lib.EventTypeProposalCancelled, id, caller, nil)
}

func (e *Engine) emitExpired(id uint64) lib.ErrorI {
	return e.addEvent(lib.EventTypeProposalExpired, id, nil, nil)
}

func (e *Engine) emitMemberAdded(address lib.HexBytes) lib.ErrorI {
	return e.addEvent(lib.EventTypeMemberAdded, 0, address, nil)
}

func (e *Engine) emitMemberRemoved(address lib.HexBytes) lib.ErrorI {
	return e.addEvent(lib.EventTypeMemberRemoved, 0, address, nil)
}

func (e *Engine) emitThresholdChanged(newValue uint64) lib.ErrorI {
	return e.addEvent(lib.EventTypeThresholdChanged, 0, nil, map[string]any{"threshold": newValue})
}

func (e *Engine) emitPaused() lib.ErrorI {
	return e.addEvent(lib.EventTypePaused, 0, nil, nil)
}

func (e *Engine) emitUnpaused() lib.ErrorI {
	return e.addEvent(lib.EventTypeUnpaused, 0, nil, nil)
}

func (e *Engine) emitDeposit(asset string, amount uint64) lib.ErrorI {
	return e.addEvent(lib.EventTypeDeposit, 0, nil, map[string]any{"asset": asset, "amount": amount})
}
