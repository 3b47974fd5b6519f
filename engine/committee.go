package engine

import (
	"bytes"
	"sort"

	"github.com/custodia-network/custodia/lib"
)

// Member is one committee seat
type Member struct {
	Address     lib.HexBytes `json:"address"`
	AddedHeight uint64       `json:"addedHeight"` // logical height the seat was granted
}

// Initialize() seats the committee exactly once. The member list must hold
// exactly CommitteeSize distinct, well-formed addresses; the duplicate pass
// is explicit because a bulk insert would silently deduplicate.
func (e *Engine) Initialize(members []lib.HexBytes) lib.ErrorI {
	return e.withTransaction(func() lib.ErrorI { return e.initialize(members) })
}

func (e *Engine) initialize(members []lib.HexBytes) lib.ErrorI {
	mode, err := e.getMode()
	if err != nil {
		return err
	}
	if mode.Initialized {
		return ErrAlreadyInitialized()
	}
	if len(members) != CommitteeSize {
		return ErrWrongCommitteeSize(len(members))
	}
	seen := make(map[string]struct{}, len(members))
	for _, address := range members {
		if err = checkAddress(address); err != nil {
			return err
		}
		if _, found := seen[string(address)]; found {
			return ErrDuplicateMember(address)
		}
		seen[string(address)] = struct{}{}
	}
	height := e.Height()
	for _, address := range members {
		if err = e.setMember(&Member{Address: address, AddedHeight: height}); err != nil {
			return err
		}
	}
	if err = e.SetPolicy(&Policy{
		StandardThreshold: DefaultStandardThreshold,
		ElevatedThreshold: ElevatedThreshold,
		ExpiryBlocks:      e.expiryBlocks(),
	}); err != nil {
		return err
	}
	if err = e.SetStats(new(Stats)); err != nil {
		return err
	}
	return e.SetMode(&Mode{Initialized: true, MemberCount: CommitteeSize})
}

// expiryBlocks() resolves the configured approval window
func (e *Engine) expiryBlocks() uint64 {
	if e.config.ProposalExpiryBlocks == 0 {
		return DefaultProposalExpiryBlocks
	}
	return e.config.ProposalExpiryBlocks
}

// IsMember() checks whether an address holds a committee seat
func (e *Engine) IsMember(address lib.HexBytes) (bool, lib.ErrorI) {
	e.l.RLock()
	defer e.l.RUnlock()
	return e.isMember(address)
}

func (e *Engine) isMember(address lib.HexBytes) (bool, lib.ErrorI) {
	return e.Get(KeyForMember(address), new(Member))
}

// MemberCount() returns the number of seated committee members
func (e *Engine) MemberCount() (uint64, lib.ErrorI) {
	e.l.RLock()
	defer e.l.RUnlock()
	mode, err := e.getMode()
	if err != nil {
		return 0, err
	}
	return mode.MemberCount, nil
}

// Members() returns the full committee roster in address order
func (e *Engine) Members() ([]*Member, lib.ErrorI) {
	e.l.RLock()
	defer e.l.RUnlock()
	it, err := e.Iterator(MembersPrefix())
	if err != nil {
		return nil, err
	}
	defer it.Close()
	var members []*Member
	for ; it.Valid(); it.Next() {
		member := new(Member)
		if err = lib.Unmarshal(it.Value(), member); err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	sort.Slice(members, func(i, j int) bool {
		return bytes.Compare(members[i].Address, members[j].Address) < 0
	})
	return members, nil
}

// setMember() writes one committee seat record
func (e *Engine) setMember(member *Member) lib.ErrorI {
	return e.Set(KeyForMember(member.Address), member)
}

// delMember() removes one committee seat record
func (e *Engine) delMember(address lib.HexBytes) lib.ErrorI {
	return e.Delete(KeyForMember(address))
}

// checkMember() fails with an authorization error unless the caller is seated
func (e *Engine) checkMember(address lib.HexBytes) lib.ErrorI {
	if err := checkAddress(address); err != nil {
		return err
	}
	isMember, err := e.isMember(address)
	if err != nil {
		return err
	}
	if !isMember {
		return ErrNotBoardMember(address)
	}
	return nil
}
