package engine

import "github.com/custodia-network/custodia/lib"

/*
	The key-value space of the engine is carved up by single byte prefixes.
	Segments after the prefix are length-prefixed so compound keys parse
	unambiguously, and numeric segments are big-endian so lexicographic key
	order matches numeric order under iteration.
*/

var (
	membersPrefix   = []byte{1} // store key prefix for committee members
	proposalsPrefix = []byte{2} // store key prefix for proposals
	approvalsPrefix = []byte{3} // store key prefix for approval ledger entries
	policyPrefix    = []byte{4} // store key prefix for the quorum policy
	modePrefix      = []byte{5} // store key prefix for the contract mode
	statsPrefix     = []byte{6} // store key prefix for lifecycle statistics
	accountsPrefix  = []byte{7} // store key prefix for external accounts
	treasuryPrefix  = []byte{8} // store key prefix for treasury pools
	eventsPrefix    = []byte{9} // store key prefix for the event history
)

// KeyForMember() returns the store key for a committee member record
func KeyForMember(address lib.HexBytes) []byte {
	return lib.JoinLenPrefix(membersPrefix, address)
}

// KeyForProposal() returns the store key for a proposal record
func KeyForProposal(id uint64) []byte {
	return lib.JoinLenPrefix(proposalsPrefix, lib.FormatUint64(id))
}

// KeyForApprovals() returns the store key for a proposal's approval ledger entry
func KeyForApprovals(id uint64) []byte {
	return lib.JoinLenPrefix(approvalsPrefix, lib.FormatUint64(id))
}

// KeyForPolicy() returns the store key for the quorum policy record
func KeyForPolicy() []byte { return lib.JoinLenPrefix(policyPrefix) }

// KeyForMode() returns the store key for the contract mode record
func KeyForMode() []byte { return lib.JoinLenPrefix(modePrefix) }

// KeyForStats() returns the store key for the statistics record
func KeyForStats() []byte { return lib.JoinLenPrefix(statsPrefix) }

// KeyForAccount() returns the store key for an external account record
func KeyForAccount(address lib.HexBytes, asset string) []byte {
	return lib.JoinLenPrefix(accountsPrefix, address, []byte(asset))
}

// KeyForPool() returns the store key for a treasury pool record
func KeyForPool(asset string) []byte {
	return lib.JoinLenPrefix(treasuryPrefix, []byte(asset))
}

// KeyForEvent() returns the store key for one event at a height and sequence
func KeyForEvent(height, seq uint64) []byte {
	return lib.JoinLenPrefix(eventsPrefix, lib.FormatUint64(height), lib.FormatUint64(seq))
}

// EventsPrefixForHeight() returns the iteration prefix for all events at a height
func EventsPrefixForHeight(height uint64) []byte {
	return lib.JoinLenPrefix(eventsPrefix, lib.FormatUint64(height))
}

// MembersPrefix() returns the iteration prefix for all committee members
func MembersPrefix() []byte { return lib.JoinLenPrefix(membersPrefix) }

// ProposalsPrefix() returns the iteration prefix for all proposals
func ProposalsPrefix() []byte { return lib.JoinLenPrefix(proposalsPrefix) }

// EventsPrefix() returns the iteration prefix for the whole event history
func EventsPrefix() []byte { return lib.JoinLenPrefix(eventsPrefix) }

// IdFromProposalKey() extracts the proposal id from a proposal store key
func IdFromProposalKey(key []byte) (uint64, lib.ErrorI) {
	segments := lib.DecodeLengthPrefixed(key)
	if len(segments) != 2 || len(segments[1]) != 8 {
		return 0, ErrInvalidDBKey(key)
	}
	return lib.Uint64FromBytes(segments[1]), nil
}

// AddressFromMemberKey() extracts the member address from a member store key
func AddressFromMemberKey(key []byte) (lib.HexBytes, lib.ErrorI) {
	segments := lib.DecodeLengthPrefixed(key)
	if len(segments) != 2 || len(segments[1]) != AddressSize {
		return nil, ErrInvalidDBKey(key)
	}
	return segments[1], nil
}
