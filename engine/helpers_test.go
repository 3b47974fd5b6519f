package engine

import (
	"bytes"
	"testing"

	"github.com/custodia-network/custodia/lib"
	"github.com/custodia-network/custodia/store"
	"github.com/stretchr/testify/require"
)

// newTestEngine() creates an Engine over an in-memory store
func newTestEngine(t *testing.T, opts ...func(*lib.Config)) *Engine {
	config := lib.DefaultConfig()
	config.InMemory = true
	for _, opt := range opts {
		opt(&config)
	}
	db, err := store.NewStoreInMemory(lib.NewNullLogger())
	require.NoError(t, err)
	e := New(config, db, lib.NewNullLogger())
	t.Cleanup(func() { e.Close() })
	return e
}

// newTestAddress() creates a deterministic 20 byte address from a variation
func newTestAddress(t *testing.T, variation ...int) lib.HexBytes {
	v := 0
	if len(variation) != 0 {
		v = variation[0]
	}
	require.Less(t, v, 256)
	address := bytes.Repeat([]byte{0xAA}, AddressSize)
	address[AddressSize-1] = byte(v)
	return address
}

// newTestCommittee() creates a full distinct roster
func newTestCommittee(t *testing.T) (members []lib.HexBytes) {
	for i := 0; i < CommitteeSize; i++ {
		members = append(members, newTestAddress(t, i))
	}
	return
}

// newInitializedEngine() creates an engine with a seated committee
func newInitializedEngine(t *testing.T, opts ...func(*lib.Config)) (*Engine, []lib.HexBytes) {
	e := newTestEngine(t, opts...)
	members := newTestCommittee(t)
	require.NoError(t, e.Initialize(members))
	return e, members
}

// tick() advances the logical clock by n heights using no-op deposits
func tick(t *testing.T, e *Engine, n int) {
	for i := 0; i < n; i++ {
		require.NoError(t, e.Deposit("", 1))
	}
}

// endorseUpTo() endorses a proposal until its approval count reaches target,
// drawing endorsers from the roster after the proposer
func endorseUpTo(t *testing.T, e *Engine, id uint64, members []lib.HexBytes, target uint64) {
	count, err := e.ApprovalCount(id)
	require.NoError(t, err)
	for _, member := range members {
		if count >= target {
			return
		}
		approved, err := e.HasApproved(id, member)
		require.NoError(t, err)
		if approved {
			continue
		}
		require.NoError(t, e.Endorse(id, member))
		count++
	}
	require.GreaterOrEqual(t, count, target, "roster exhausted before reaching quorum")
}

// requireStatsSum() asserts the counter sum invariant
func requireStatsSum(t *testing.T, e *Engine) {
	stats, err := e.GetStats()
	require.NoError(t, err)
	require.Equal(t, stats.Total, stats.Executed+stats.Cancelled+stats.Expired+stats.Pending)
}

// requireApprovalMirror() asserts the count equals the ledger set cardinality
func requireApprovalMirror(t *testing.T, e *Engine, id uint64) {
	proposal, err := e.GetProposal(id)
	require.NoError(t, err)
	approvals, err := e.GetApprovals(id)
	require.NoError(t, err)
	require.EqualValues(t, len(approvals.Addresses), proposal.ApprovalCount)
}

// requireErrCode() asserts a typed error carries the expected code and module
func requireErrCode(t *testing.T, err lib.ErrorI, code lib.ErrorCode) {
	require.Error(t, err)
	require.Equal(t, code, err.Code())
}
