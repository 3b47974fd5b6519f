package engine

import "github.com/custodia-network/custodia/lib"

/*
	The proposal state machine: Pending -> { Executed | Cancelled }, with
	Expired as a lazily observed read-time state. Executed and Cancelled are
	permanent; expiry never resurrects and is evaluated against the logical
	clock at the start of endorse / revoke / execute.

	Each operation is one atomic unit: guards run first, mutations second,
	and any failure rolls the whole unit back. The single deliberate
	exception is the expiry latch, which persists on the failing operation
	so the expired counter increments exactly once.
*/

// Propose() records a new proposal and self-endorses it for the proposer.
// The submission carries the kind, its payload, and optional metadata; the
// engine assigns the id and stamps the approval window.
func (e *Engine) Propose(caller lib.HexBytes, submission *Proposal) (id uint64, err lib.ErrorI) {
	err = e.withTransaction(func() (err lib.ErrorI) {
		id, err = e.propose(caller, submission)
		return
	})
	return
}

func (e *Engine) propose(caller lib.HexBytes, submission *Proposal) (uint64, lib.ErrorI) {
	if _, err := e.checkReady(); err != nil {
		return 0, err
	}
	if err := e.checkMember(caller); err != nil {
		return 0, err
	}
	if err := e.validateProposal(submission); err != nil {
		return 0, err
	}
	policy, err := e.getPolicy()
	if err != nil {
		return 0, err
	}
	stats, err := e.getStats()
	if err != nil {
		return 0, err
	}
	// ids are assigned sequentially from zero; total counts every proposal
	// ever created, so it is the next id
	height := e.Height()
	proposal := &Proposal{
		Id:        stats.Total,
		Proposer:  caller,
		Kind:      submission.Kind,
		Transfer:  submission.Transfer,
		Batch:     submission.Batch,
		Member:    submission.Member,
		Threshold: submission.Threshold,
		CreatedAt: height,
		ExpiresAt: height + policy.ExpiryBlocks,
		Metadata:  submission.Metadata,
	}
	if err = e.setProposal(proposal); err != nil {
		return 0, err
	}
	if err = e.updateStats(func(s *Stats) { s.Total++ }); err != nil {
		return 0, err
	}
	if err = e.emitProposalCreated(proposal); err != nil {
		return 0, err
	}
	// the proposer's endorsement is automatic and identical to endorse()
	if err = e.addApproval(proposal, caller); err != nil {
		return 0, err
	}
	if err = e.emitEndorsed(proposal.Id, caller); err != nil {
		return 0, err
	}
	return proposal.Id, nil
}

// Endorse() records the caller's one-time affirmative vote on a proposal
func (e *Engine) Endorse(id uint64, caller lib.HexBytes) lib.ErrorI {
	return e.withTransaction(func() lib.ErrorI { return e.endorse(id, caller) })
}

func (e *Engine) endorse(id uint64, caller lib.HexBytes) lib.ErrorI {
	if _, err := e.checkReady(); err != nil {
		return err
	}
	if err := e.checkMember(caller); err != nil {
		return err
	}
	proposal, err := e.getProposal(id)
	if err != nil {
		return err
	}
	if err = e.checkOpen(proposal); err != nil {
		return err
	}
	if err = e.checkExpiry(proposal); err != nil {
		return err
	}
	if err = e.addApproval(proposal, caller); err != nil {
		return err
	}
	return e.emitEndorsed(id, caller)
}

// Revoke() withdraws the caller's prior endorsement of a proposal
func (e *Engine) Revoke(id uint64, caller lib.HexBytes) lib.ErrorI {
	return e.withTransaction(func() lib.ErrorI { return e.revoke(id, caller) })
}

func (e *Engine) revoke(id uint64, caller lib.HexBytes) lib.ErrorI {
	if _, err := e.checkReady(); err != nil {
		return err
	}
	if err := e.checkMember(caller); err != nil {
		return err
	}
	proposal, err := e.getProposal(id)
	if err != nil {
		return err
	}
	if err = e.checkOpen(proposal); err != nil {
		return err
	}
	if err = e.checkExpiry(proposal); err != nil {
		return err
	}
	if err = e.removeApproval(proposal, caller); err != nil {
		return err
	}
	return e.emitRevoked(id, caller)
}

// Execute() applies a proposal's effect once quorum is met. It is a public,
// permissionless trigger: any caller may finalize so members need not wait
// on each other. The executed latch is written before the effect runs, so a
// reentrant call mid-effect observes the proposal as already executed; an
// effect failure aborts the whole unit including the latch write.
func (e *Engine) Execute(id uint64, caller lib.HexBytes) lib.ErrorI {
	return e.withTransaction(func() lib.ErrorI { return e.execute(id, caller) })
}

func (e *Engine) execute(id uint64, caller lib.HexBytes) lib.ErrorI {
	if err := checkAddress(caller); err != nil {
		return err
	}
	mode, err := e.getMode()
	if err != nil {
		return err
	}
	if !mode.Initialized {
		return ErrNotInitialized()
	}
	proposal, err := e.getProposal(id)
	if err != nil {
		return err
	}
	// a paused engine still executes the Unpause that lifts the pause;
	// every other kind waits
	if mode.Paused && proposal.Kind != KindUnpause {
		return ErrContractPaused()
	}
	if err = e.checkOpen(proposal); err != nil {
		return err
	}
	if err = e.checkExpiry(proposal); err != nil {
		return err
	}
	required, err := e.requiredThreshold(proposal.Kind)
	if err != nil {
		return err
	}
	if proposal.ApprovalCount < required {
		return ErrInsufficientApprovals(id, proposal.ApprovalCount, required)
	}
	// latch before effect
	proposal.Executed = true
	if err = e.setProposal(proposal); err != nil {
		return err
	}
	if err = e.applyProposal(proposal); err != nil {
		return err
	}
	if err = e.updateStats(func(s *Stats) { s.Executed++ }); err != nil {
		return err
	}
	return e.emitExecuted(proposal, caller)
}

// Cancel() terminally withdraws a proposal. The proposer may always cancel;
// anyone else needs the proposal to already hold the standard threshold.
// Cancellation never requires the elevated threshold, even for governance
// kinds, and it remains available after the approval window lapses.
func (e *Engine) Cancel(id uint64, caller lib.HexBytes) lib.ErrorI {
	return e.withTransaction(func() lib.ErrorI { return e.cancel(id, caller) })
}

func (e *Engine) cancel(id uint64, caller lib.HexBytes) lib.ErrorI {
	if err := checkAddress(caller); err != nil {
		return err
	}
	if _, err := e.checkReady(); err != nil {
		return err
	}
	proposal, err := e.getProposal(id)
	if err != nil {
		return err
	}
	if err = e.checkOpen(proposal); err != nil {
		return err
	}
	policy, err := e.getPolicy()
	if err != nil {
		return err
	}
	if !caller.Equals(proposal.Proposer) && proposal.ApprovalCount < policy.StandardThreshold {
		return ErrUnauthorizedCancel(id, caller)
	}
	proposal.Cancelled = true
	if err = e.setProposal(proposal); err != nil {
		return err
	}
	// a proposal already counted expired stays in the expired bucket; the
	// cancelled latch still closes it to further operations
	if !proposal.ExpiryNoted {
		if err = e.updateStats(func(s *Stats) { s.Cancelled++ }); err != nil {
			return err
		}
	}
	return e.emitCancelled(id, caller)
}

// checkOpen() fails when a proposal has reached a terminal latch
func (e *Engine) checkOpen(proposal *Proposal) lib.ErrorI {
	if proposal.Executed {
		return ErrAlreadyExecuted(proposal.Id)
	}
	if proposal.Cancelled {
		return ErrAlreadyCancelled(proposal.Id)
	}
	return nil
}

// checkExpiry() lazily evaluates the approval window against the logical
// clock. The first observation of a lapse latches ExpiryNoted and counts the
// proposal expired; that bookkeeping persists even though the observing
// operation fails.
func (e *Engine) checkExpiry(proposal *Proposal) lib.ErrorI {
	if e.Height() <= proposal.ExpiresAt {
		return nil
	}
	if !proposal.ExpiryNoted {
		proposal.ExpiryNoted = true
		if err := e.setProposal(proposal); err != nil {
			return err
		}
		if err := e.updateStats(func(s *Stats) { s.Expired++ }); err != nil {
			return err
		}
		if err := e.emitExpired(proposal.Id); err != nil {
			return err
		}
		e.keepOnError = true
	}
	return ErrProposalExpired(proposal.Id)
}
