package engine

import "github.com/custodia-network/custodia/lib"

// LedgerI is the value-transfer primitive the executors call synchronously
// from within execute. A nil from address names the committee-controlled
// treasury. The engine never retries a failed transfer.
type LedgerI interface {
	Transfer(asset string, amount uint64, from, to lib.HexBytes) lib.ErrorI
}

// applyProposal() dispatches a quorum-cleared proposal to its kind executor.
// Every executor re-validates its own preconditions at execution time, since
// state may have changed between proposal and execution.
func (e *Engine) applyProposal(proposal *Proposal) lib.ErrorI {
	switch proposal.Kind {
	case KindTransfer:
		return e.executeTransfer(proposal.Transfer)
	case KindBatchTransfer:
		return e.executeBatchTransfer(proposal.Batch)
	case KindAddMember:
		return e.executeAddMember(proposal.Member)
	case KindRemoveMember:
		return e.executeRemoveMember(proposal.Member)
	case KindSetThreshold:
		return e.setStandardThreshold(proposal.Threshold)
	case KindPause:
		return e.executePause()
	case KindUnpause:
		return e.executeUnpause()
	default:
		return ErrInvalidProposalKind(proposal.Kind)
	}
}

// executeTransfer() moves value from the treasury to the recipient
func (e *Engine) executeTransfer(transfer *TransferPayload) lib.ErrorI {
	if transfer == nil || transfer.Amount == 0 {
		return ErrInvalidAmount()
	}
	return e.ledger.Transfer(transfer.Asset, transfer.Amount, nil, transfer.Recipient)
}

// executeBatchTransfer() applies the transfers sequentially; the first
// failure aborts the operation, and since the whole execute runs in one
// transaction no sub-transfer is ever partially applied
func (e *Engine) executeBatchTransfer(batch []*TransferPayload) lib.ErrorI {
	if n := len(batch); n < 1 || n > MaxBatchTransfers {
		return ErrBatchTooLarge(len(batch))
	}
	for _, transfer := range batch {
		if err := e.executeTransfer(transfer); err != nil {
			return err
		}
	}
	return nil
}

// executeAddMember() seats a new committee member
func (e *Engine) executeAddMember(address lib.HexBytes) lib.ErrorI {
	if err := checkAddress(address); err != nil {
		return err
	}
	isMember, err := e.isMember(address)
	if err != nil {
		return err
	}
	if isMember {
		return ErrInvalidMember(address, "already a member")
	}
	if err = e.setMember(&Member{Address: address, AddedHeight: e.Height()}); err != nil {
		return err
	}
	mode, err := e.getMode()
	if err != nil {
		return err
	}
	mode.MemberCount++
	if err = e.SetMode(mode); err != nil {
		return err
	}
	return e.emitMemberAdded(address)
}

// executeRemoveMember() unseats a committee member; removal that would
// empty the committee is refused
func (e *Engine) executeRemoveMember(address lib.HexBytes) lib.ErrorI {
	if err := checkAddress(address); err != nil {
		return err
	}
	isMember, err := e.isMember(address)
	if err != nil {
		return err
	}
	if !isMember {
		return ErrInvalidMember(address, "not a member")
	}
	mode, err := e.getMode()
	if err != nil {
		return err
	}
	if mode.MemberCount <= 1 {
		return ErrInvalidMember(address, "removal would empty the committee")
	}
	if err = e.delMember(address); err != nil {
		return err
	}
	mode.MemberCount--
	if err = e.SetMode(mode); err != nil {
		return err
	}
	return e.emitMemberRemoved(address)
}

// executePause() halts all operations until an Unpause executes
func (e *Engine) executePause() lib.ErrorI {
	mode, err := e.getMode()
	if err != nil {
		return err
	}
	if mode.Paused {
		return ErrAlreadyPaused()
	}
	mode.Paused = true
	if err = e.SetMode(mode); err != nil {
		return err
	}
	return e.emitPaused()
}

// executeUnpause() lifts the pause
func (e *Engine) executeUnpause() lib.ErrorI {
	mode, err := e.getMode()
	if err != nil {
		return err
	}
	if !mode.Paused {
		return ErrNotPaused()
	}
	mode.Paused = false
	if err = e.SetMode(mode); err != nil {
		return err
	}
	return e.emitUnpaused()
}
