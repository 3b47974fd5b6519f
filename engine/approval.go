package engine

import "github.com/custodia-network/custodia/lib"

// Approvals is one approval ledger entry: the insertion-ordered set of
// addresses that have endorsed a proposal. Set semantics are enforced by a
// membership test before every insert, and the entry is capacity bounded at
// the committee size.
type Approvals struct {
	ProposalId uint64         `json:"proposalId"`
	Addresses  []lib.HexBytes `json:"addresses"`
}

// Has() checks whether an address is in the set
func (a *Approvals) Has(address lib.HexBytes) bool {
	for _, approved := range a.Addresses {
		if approved.Equals(address) {
			return true
		}
	}
	return false
}

// GetApprovals() reads the approval ledger entry for a proposal; the entry
// is materialized empty for proposals that exist but have no endorsements
func (e *Engine) GetApprovals(id uint64) (*Approvals, lib.ErrorI) {
	e.l.RLock()
	defer e.l.RUnlock()
	if _, err := e.getProposal(id); err != nil {
		return nil, err
	}
	return e.getApprovals(id)
}

func (e *Engine) getApprovals(id uint64) (*Approvals, lib.ErrorI) {
	approvals := &Approvals{ProposalId: id}
	if _, err := e.Get(KeyForApprovals(id), approvals); err != nil {
		return nil, err
	}
	return approvals, nil
}

// setApprovals() writes the approval ledger entry
func (e *Engine) setApprovals(approvals *Approvals) lib.ErrorI {
	return e.Set(KeyForApprovals(approvals.ProposalId), approvals)
}

// HasApproved() checks whether an address has endorsed a proposal
func (e *Engine) HasApproved(id uint64, address lib.HexBytes) (bool, lib.ErrorI) {
	approvals, err := e.GetApprovals(id)
	if err != nil {
		return false, err
	}
	return approvals.Has(address), nil
}

// ApprovalCount() returns the endorsement count of a proposal
func (e *Engine) ApprovalCount(id uint64) (uint64, lib.ErrorI) {
	proposal, err := e.GetProposal(id)
	if err != nil {
		return 0, err
	}
	return proposal.ApprovalCount, nil
}

// addApproval() inserts an address into the entry, enforcing at most one
// endorsement per identity per proposal
func (e *Engine) addApproval(proposal *Proposal, address lib.HexBytes) lib.ErrorI {
	approvals, err := e.getApprovals(proposal.Id)
	if err != nil {
		return err
	}
	if approvals.Has(address) {
		return ErrAlreadyApproved(proposal.Id, address)
	}
	if len(approvals.Addresses) >= CommitteeSize {
		return ErrApprovalLedgerOverflow(proposal.Id)
	}
	approvals.Addresses = append(approvals.Addresses, address)
	if err = e.setApprovals(approvals); err != nil {
		return err
	}
	// the count mirrors the set cardinality at all times
	proposal.ApprovalCount = uint64(len(approvals.Addresses))
	return e.setProposal(proposal)
}

// removeApproval() removes an address from the entry
func (e *Engine) removeApproval(proposal *Proposal, address lib.HexBytes) lib.ErrorI {
	approvals, err := e.getApprovals(proposal.Id)
	if err != nil {
		return err
	}
	if !approvals.Has(address) {
		return ErrNotApproved(proposal.Id, address)
	}
	filtered := make([]lib.HexBytes, 0, len(approvals.Addresses)-1)
	for _, approved := range approvals.Addresses {
		if !approved.Equals(address) {
			filtered = append(filtered, approved)
		}
	}
	approvals.Addresses = filtered
	if err = e.setApprovals(approvals); err != nil {
		return err
	}
	proposal.ApprovalCount = uint64(len(approvals.Addresses))
	return e.setProposal(proposal)
}
