package engine

import (
	"testing"

	"github.com/custodia-network/custodia/lib"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	full := func(t *testing.T) []lib.HexBytes { return newTestCommittee(t) }
	tests := []struct {
		name    string
		detail  string
		members func(t *testing.T) []lib.HexBytes
		code    lib.ErrorCode
	}{
		{
			name:    "exactly twenty distinct members",
			detail:  "a full distinct roster initializes successfully",
			members: full,
		},
		{
			name:   "nineteen members",
			detail: "an undersized roster is rejected",
			members: func(t *testing.T) []lib.HexBytes {
				return newTestCommittee(t)[:CommitteeSize-1]
			},
			code: lib.CodeWrongCommitteeSize,
		},
		{
			name:   "twenty one members",
			detail: "an oversized roster is rejected",
			members: func(t *testing.T) []lib.HexBytes {
				return append(newTestCommittee(t), newTestAddress(t, CommitteeSize))
			},
			code: lib.CodeWrongCommitteeSize,
		},
		{
			name:   "duplicate member",
			detail: "a repeated address is rejected before any insert",
			members: func(t *testing.T) []lib.HexBytes {
				members := newTestCommittee(t)
				members[CommitteeSize-1] = members[0]
				return members
			},
			code: lib.CodeDuplicateMember,
		},
		{
			name:   "malformed address",
			detail: "addresses must be exactly twenty bytes",
			members: func(t *testing.T) []lib.HexBytes {
				members := newTestCommittee(t)
				members[3] = members[3][:AddressSize-1]
				return members
			},
			code: lib.CodeAddressSize,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			e := newTestEngine(t)
			err := e.Initialize(test.members(t))
			if test.code != 0 {
				requireErrCode(t, err, test.code)
				// nothing persists on a failed initialize
				mode, mErr := e.GetMode()
				require.NoError(t, mErr)
				require.False(t, mode.Initialized)
				require.Zero(t, mode.MemberCount)
				return
			}
			require.NoError(t, err)
			count, cErr := e.MemberCount()
			require.NoError(t, cErr)
			require.EqualValues(t, CommitteeSize, count)
		})
	}
}

func TestInitializeIsOneShot(t *testing.T) {
	e, members := newInitializedEngine(t)
	requireErrCode(t, e.Initialize(members), lib.CodeAlreadyInitialized)
	// the roster is untouched by the failed repeat
	count, err := e.MemberCount()
	require.NoError(t, err)
	require.EqualValues(t, CommitteeSize, count)
}

func TestIsMember(t *testing.T) {
	e, members := newInitializedEngine(t)
	for _, member := range members {
		isMember, err := e.IsMember(member)
		require.NoError(t, err)
		require.True(t, isMember)
	}
	outsider := newTestAddress(t, 99)
	isMember, err := e.IsMember(outsider)
	require.NoError(t, err)
	require.False(t, isMember)
}

func TestMembersRoster(t *testing.T) {
	e, members := newInitializedEngine(t)
	roster, err := e.Members()
	require.NoError(t, err)
	require.Len(t, roster, CommitteeSize)
	seen := make(map[string]struct{})
	for _, member := range roster {
		seen[member.Address.String()] = struct{}{}
	}
	for _, member := range members {
		require.Contains(t, seen, member.String())
	}
}

func TestOperationsBeforeInitialize(t *testing.T) {
	e := newTestEngine(t)
	caller := newTestAddress(t, 1)
	_, err := e.Propose(caller, &Proposal{Kind: KindPause})
	requireErrCode(t, err, lib.CodeNotInitialized)
	requireErrCode(t, e.Endorse(0, caller), lib.CodeNotInitialized)
	requireErrCode(t, e.Execute(0, caller), lib.CodeNotInitialized)
	requireErrCode(t, e.Cancel(0, caller), lib.CodeNotInitialized)
}
