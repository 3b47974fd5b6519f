package engine

import "github.com/custodia-network/custodia/lib"

// Policy is the quorum policy: capital movement clears the mutable standard
// threshold, governance and structural changes clear the fixed elevated one
type Policy struct {
	StandardThreshold uint64 `json:"standardThreshold"` // quorum for Transfer / BatchTransfer; mutable via SetThreshold
	ElevatedThreshold uint64 `json:"elevatedThreshold"` // quorum for governance kinds; fixed
	ExpiryBlocks      uint64 `json:"expiryBlocks"`      // approval window in logical heights
}

// GetPolicy() reads the quorum policy record
func (e *Engine) GetPolicy() (*Policy, lib.ErrorI) {
	e.l.RLock()
	defer e.l.RUnlock()
	return e.getPolicy()
}

func (e *Engine) getPolicy() (*Policy, lib.ErrorI) {
	policy := new(Policy)
	found, err := e.Get(KeyForPolicy(), policy)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrEmptyPolicy()
	}
	return policy, nil
}

// SetPolicy() writes the quorum policy record
func (e *Engine) SetPolicy(policy *Policy) lib.ErrorI {
	if policy == nil {
		return ErrEmptyPolicy()
	}
	return e.Set(KeyForPolicy(), policy)
}

// RequiredThreshold() maps a proposal kind to the quorum it must clear
func (e *Engine) RequiredThreshold(kind ProposalKind) (uint64, lib.ErrorI) {
	e.l.RLock()
	defer e.l.RUnlock()
	return e.requiredThreshold(kind)
}

func (e *Engine) requiredThreshold(kind ProposalKind) (uint64, lib.ErrorI) {
	policy, err := e.getPolicy()
	if err != nil {
		return 0, err
	}
	switch kind {
	case KindTransfer, KindBatchTransfer:
		return policy.StandardThreshold, nil
	case KindAddMember, KindRemoveMember, KindSetThreshold, KindPause, KindUnpause:
		return policy.ElevatedThreshold, nil
	default:
		return 0, ErrInvalidProposalKind(kind)
	}
}

// setStandardThreshold() applies a new standard threshold; only the
// elevated-quorum-gated SetThreshold executor reaches this
func (e *Engine) setStandardThreshold(newValue uint64) lib.ErrorI {
	mode, err := e.getMode()
	if err != nil {
		return err
	}
	if err = checkThreshold(newValue, mode.MemberCount); err != nil {
		return err
	}
	policy, err := e.getPolicy()
	if err != nil {
		return err
	}
	policy.StandardThreshold = newValue
	if err = e.SetPolicy(policy); err != nil {
		return err
	}
	return e.emitThresholdChanged(newValue)
}

// checkThreshold() bounds a standard threshold to (0, memberCount]
func checkThreshold(value, memberCount uint64) lib.ErrorI {
	if value == 0 || value > memberCount {
		return ErrInvalidThreshold(value, memberCount)
	}
	return nil
}
