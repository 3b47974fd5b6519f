package engine

import "github.com/custodia-network/custodia/lib"

// ProposalKind names the governed action a proposal carries
type ProposalKind string

const (
	KindTransfer      ProposalKind = "transfer"
	KindBatchTransfer ProposalKind = "batch-transfer"
	KindAddMember     ProposalKind = "add-member"
	KindRemoveMember  ProposalKind = "remove-member"
	KindSetThreshold  ProposalKind = "set-threshold"
	KindPause         ProposalKind = "pause"
	KindUnpause       ProposalKind = "unpause"
)

// TransferPayload is one value movement: amount of an asset to a recipient;
// an empty asset names the default asset
type TransferPayload struct {
	Recipient lib.HexBytes `json:"recipient"`
	Amount    uint64       `json:"amount"`
	Asset     string       `json:"asset,omitempty"`
}

// Proposal is the central entity: a recorded intent to perform one governed
// action, pending committee endorsement. Exactly one payload field is set,
// matching the kind. Executed and Cancelled are mutually exclusive one-way
// latches; ExpiryNoted latches the first lazy observation of the lapse so
// the expired counter increments exactly once.
type Proposal struct {
	Id            uint64             `json:"id"`
	Proposer      lib.HexBytes       `json:"proposer"`
	Kind          ProposalKind       `json:"kind"`
	Transfer      *TransferPayload   `json:"transfer,omitempty"`
	Batch         []*TransferPayload `json:"batch,omitempty"`
	Member        lib.HexBytes       `json:"member,omitempty"`
	Threshold     uint64             `json:"threshold,omitempty"`
	ApprovalCount uint64             `json:"approvalCount"`
	CreatedAt     uint64             `json:"createdAt"`
	ExpiresAt     uint64             `json:"expiresAt"`
	Executed      bool               `json:"executed"`
	Cancelled     bool               `json:"cancelled"`
	ExpiryNoted   bool               `json:"expiryNoted"`
	Metadata      string             `json:"metadata,omitempty"`
}

// GetProposal() looks a proposal up by id
func (e *Engine) GetProposal(id uint64) (*Proposal, lib.ErrorI) {
	e.l.RLock()
	defer e.l.RUnlock()
	return e.getProposal(id)
}

func (e *Engine) getProposal(id uint64) (*Proposal, lib.ErrorI) {
	proposal := new(Proposal)
	found, err := e.Get(KeyForProposal(id), proposal)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrProposalNotFound(id)
	}
	return proposal, nil
}

// setProposal() writes a proposal record under its id
func (e *Engine) setProposal(proposal *Proposal) lib.ErrorI {
	return e.Set(KeyForProposal(proposal.Id), proposal)
}

// Proposals() returns up to limit proposals starting at a given id, in id order
func (e *Engine) Proposals(startId uint64, limit int) ([]*Proposal, lib.ErrorI) {
	e.l.RLock()
	defer e.l.RUnlock()
	it, err := e.Iterator(ProposalsPrefix())
	if err != nil {
		return nil, err
	}
	defer it.Close()
	var proposals []*Proposal
	for ; it.Valid(); it.Next() {
		proposal := new(Proposal)
		if err = lib.Unmarshal(it.Value(), proposal); err != nil {
			return nil, err
		}
		if proposal.Id < startId {
			continue
		}
		proposals = append(proposals, proposal)
		// a non-positive limit means unbounded
		if limit > 0 && len(proposals) >= limit {
			break
		}
	}
	return proposals, nil
}

// validateProposal() enforces kind-specific payload validity at proposal time
func (e *Engine) validateProposal(proposal *Proposal) lib.ErrorI {
	if proposal == nil {
		return ErrEmptyProposal()
	}
	switch proposal.Kind {
	case KindTransfer:
		return e.validateTransfer(proposal.Transfer)
	case KindBatchTransfer:
		if n := len(proposal.Batch); n < 1 || n > MaxBatchTransfers {
			return ErrBatchTooLarge(len(proposal.Batch))
		}
		for _, transfer := range proposal.Batch {
			if err := e.validateTransfer(transfer); err != nil {
				return err
			}
		}
		return nil
	case KindAddMember:
		if err := checkAddress(proposal.Member); err != nil {
			return err
		}
		isMember, err := e.isMember(proposal.Member)
		if err != nil {
			return err
		}
		if isMember {
			return ErrInvalidMember(proposal.Member, "already a member")
		}
		return nil
	case KindRemoveMember:
		if err := checkAddress(proposal.Member); err != nil {
			return err
		}
		isMember, err := e.isMember(proposal.Member)
		if err != nil {
			return err
		}
		if !isMember {
			return ErrInvalidMember(proposal.Member, "not a member")
		}
		return nil
	case KindSetThreshold:
		mode, err := e.getMode()
		if err != nil {
			return err
		}
		return checkThreshold(proposal.Threshold, mode.MemberCount)
	case KindPause, KindUnpause:
		return nil
	default:
		return ErrInvalidProposalKind(proposal.Kind)
	}
}

// validateTransfer() enforces a well-formed value movement
func (e *Engine) validateTransfer(transfer *TransferPayload) lib.ErrorI {
	if transfer == nil || transfer.Amount == 0 {
		return ErrInvalidAmount()
	}
	return checkAddress(transfer.Recipient)
}
