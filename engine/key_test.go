package engine

import (
	"bytes"
	"testing"

	"github.com/custodia-network/custodia/lib"
	"github.com/stretchr/testify/require"
)

func TestProposalKeysIterateInIdOrder(t *testing.T) {
	// big-endian ids keep lexicographic key order equal to numeric order
	ids := []uint64{0, 1, 2, 9, 10, 255, 256, 1 << 32}
	for i := 1; i < len(ids); i++ {
		prev, next := KeyForProposal(ids[i-1]), KeyForProposal(ids[i])
		require.Negative(t, bytes.Compare(prev, next), "id %d must sort before %d", ids[i-1], ids[i])
	}
}

func TestKeyPrefixIsolation(t *testing.T) {
	address := bytes.Repeat([]byte{0xAA}, AddressSize)
	keys := [][]byte{
		KeyForMember(address),
		KeyForProposal(7),
		KeyForApprovals(7),
		KeyForPolicy(),
		KeyForMode(),
		KeyForStats(),
		KeyForAccount(address, "usd"),
		KeyForPool("usd"),
		KeyForEvent(1, 0),
	}
	// every record lives under exactly one single-byte prefix
	for i, a := range keys {
		for j, b := range keys {
			if i == j {
				continue
			}
			require.NotEqual(t, a[:2], b[:2], "keys %d and %d collide on prefix", i, j)
		}
	}
	require.True(t, bytes.HasPrefix(KeyForProposal(7), ProposalsPrefix()))
	require.False(t, bytes.HasPrefix(KeyForApprovals(7), ProposalsPrefix()))
	require.True(t, bytes.HasPrefix(KeyForMember(address), MembersPrefix()))
	require.True(t, bytes.HasPrefix(KeyForEvent(3, 1), EventsPrefixForHeight(3)))
	require.False(t, bytes.HasPrefix(KeyForEvent(4, 0), EventsPrefixForHeight(3)))
	require.True(t, bytes.HasPrefix(EventsPrefixForHeight(3), EventsPrefix()))
}

func TestProposalKeyRoundTrip(t *testing.T) {
	id, err := IdFromProposalKey(KeyForProposal(42))
	require.NoError(t, err)
	require.EqualValues(t, 42, id)
	_, err = IdFromProposalKey([]byte{2, 1, 0xFF})
	requireErrCode(t, err, lib.CodeInvalidDBKey)
}

func TestMemberKeyRoundTrip(t *testing.T) {
	address := lib.HexBytes(bytes.Repeat([]byte{0xAB}, AddressSize))
	got, err := AddressFromMemberKey(KeyForMember(address))
	require.NoError(t, err)
	require.True(t, address.Equals(got))
	_, err = AddressFromMemberKey(KeyForProposal(1))
	requireErrCode(t, err, lib.CodeInvalidDBKey)
}
