package engine

import (
	"errors"
	"testing"

	"github.com/custodia-network/custodia/lib"
	"github.com/stretchr/testify/require"
)

// failingLedger is a value-transfer primitive that always fails
type failingLedger struct{}

func (f *failingLedger) Transfer(_ string, _ uint64, _, _ lib.HexBytes) lib.ErrorI {
	return ErrTransferFailed(errors.New("ledger unavailable"))
}

func TestExecutorFailureRollsBackExecution(t *testing.T) {
	e, members := newInitializedEngine(t)
	require.NoError(t, e.Deposit("", 5000))
	e.WithLedger(&failingLedger{})
	id, err := e.Propose(members[0], &Proposal{
		Kind:     KindTransfer,
		Transfer: &TransferPayload{Recipient: newTestAddress(t, 99), Amount: 1000},
	})
	require.NoError(t, err)
	endorseUpTo(t, e, id, members, DefaultStandardThreshold)
	requireErrCode(t, e.Execute(id, members[0]), lib.CodeTransferFailed)
	// the executed latch was written before the effect but rolled back with it
	proposal, err := e.GetProposal(id)
	require.NoError(t, err)
	require.False(t, proposal.Executed)
	stats, err := e.GetStats()
	require.NoError(t, err)
	require.Zero(t, stats.Executed)
	requireStatsSum(t, e)
	// a working ledger can still finalize the same proposal
	e.WithLedger(&poolLedger{engine: e})
	require.NoError(t, e.Execute(id, members[0]))
}

func TestTransferInsufficientFunds(t *testing.T) {
	e, members := newInitializedEngine(t)
	require.NoError(t, e.Deposit("", 500))
	id, err := e.Propose(members[0], &Proposal{
		Kind:     KindTransfer,
		Transfer: &TransferPayload{Recipient: newTestAddress(t, 99), Amount: 1000},
	})
	require.NoError(t, err)
	endorseUpTo(t, e, id, members, DefaultStandardThreshold)
	requireErrCode(t, e.Execute(id, members[0]), lib.CodeInsufficientFunds)
	// nothing moved and nothing latched
	pool, err := e.Treasury("")
	require.NoError(t, err)
	require.EqualValues(t, 500, pool.Amount)
	proposal, err := e.GetProposal(id)
	require.NoError(t, err)
	require.False(t, proposal.Executed)
}

func TestBatchTransferAllOrNothing(t *testing.T) {
	e, members := newInitializedEngine(t)
	require.NoError(t, e.Deposit("", 1000))
	first, second := newTestAddress(t, 98), newTestAddress(t, 99)
	// the second transfer overdraws the pool after the first applies
	id, err := e.Propose(members[0], &Proposal{
		Kind: KindBatchTransfer,
		Batch: []*TransferPayload{
			{Recipient: first, Amount: 600},
			{Recipient: second, Amount: 600},
		},
	})
	require.NoError(t, err)
	endorseUpTo(t, e, id, members, DefaultStandardThreshold)
	requireErrCode(t, e.Execute(id, members[0]), lib.CodeInsufficientFunds)
	// the first sub-transfer did not partially apply
	account, err := e.GetAccount(first, "")
	require.NoError(t, err)
	require.Zero(t, account.Amount)
	pool, err := e.Treasury("")
	require.NoError(t, err)
	require.EqualValues(t, 1000, pool.Amount)
}

func TestBatchTransferExecutes(t *testing.T) {
	e, members := newInitializedEngine(t)
	require.NoError(t, e.Deposit("", 1000))
	require.NoError(t, e.Deposit("alt", 300))
	first, second := newTestAddress(t, 98), newTestAddress(t, 99)
	id, err := e.Propose(members[0], &Proposal{
		Kind: KindBatchTransfer,
		Batch: []*TransferPayload{
			{Recipient: first, Amount: 400},
			{Recipient: second, Amount: 250, Asset: "alt"},
		},
	})
	require.NoError(t, err)
	endorseUpTo(t, e, id, members, DefaultStandardThreshold)
	require.NoError(t, e.Execute(id, members[0]))
	account, err := e.GetAccount(first, "")
	require.NoError(t, err)
	require.EqualValues(t, 400, account.Amount)
	account, err = e.GetAccount(second, "alt")
	require.NoError(t, err)
	require.EqualValues(t, 250, account.Amount)
	pool, err := e.Treasury("alt")
	require.NoError(t, err)
	require.EqualValues(t, 50, pool.Amount)
}

func TestAddMemberRevalidatesAtExecution(t *testing.T) {
	e, members := newInitializedEngine(t)
	target := newTestAddress(t, 120)
	// two competing proposals to seat the same address
	first, err := e.Propose(members[0], &Proposal{Kind: KindAddMember, Member: target})
	require.NoError(t, err)
	second, err := e.Propose(members[1], &Proposal{Kind: KindAddMember, Member: target})
	require.NoError(t, err)
	endorseUpTo(t, e, first, members, ElevatedThreshold)
	endorseUpTo(t, e, second, members, ElevatedThreshold)
	require.NoError(t, e.Execute(first, members[0]))
	// the second now fails execution-time re-validation
	requireErrCode(t, e.Execute(second, members[0]), lib.CodeInvalidMember)
	proposal, err := e.GetProposal(second)
	require.NoError(t, err)
	require.False(t, proposal.Executed)
	count, err := e.MemberCount()
	require.NoError(t, err)
	require.EqualValues(t, CommitteeSize+1, count)
}

func TestRemoveMemberKeepsStaleApprovals(t *testing.T) {
	e, members := newInitializedEngine(t)
	require.NoError(t, e.Deposit("", 5000))
	// a transfer endorsed by members[5] among others
	transferId, err := e.Propose(members[0], &Proposal{
		Kind:     KindTransfer,
		Transfer: &TransferPayload{Recipient: newTestAddress(t, 99), Amount: 100},
	})
	require.NoError(t, err)
	endorseUpTo(t, e, transferId, members, DefaultStandardThreshold)
	// remove members[5] from the committee
	removeId, err := e.Propose(members[0], &Proposal{Kind: KindRemoveMember, Member: members[5]})
	require.NoError(t, err)
	endorseUpTo(t, e, removeId, members, ElevatedThreshold)
	require.NoError(t, e.Execute(removeId, members[0]))
	isMember, err := e.IsMember(members[5])
	require.NoError(t, err)
	require.False(t, isMember)
	// the stale approval keeps counting toward quorum
	approved, err := e.HasApproved(transferId, members[5])
	require.NoError(t, err)
	require.True(t, approved)
	require.NoError(t, e.Execute(transferId, members[0]))
	// but the removed member can no longer act: the membership guard runs
	// before any proposal-state check
	requireErrCode(t, e.Endorse(removeId, members[5]), lib.CodeNotBoardMember)
	_, err = e.Propose(members[5], &Proposal{Kind: KindPause})
	requireErrCode(t, err, lib.CodeNotBoardMember)
}

func TestSetThresholdExecution(t *testing.T) {
	e, members := newInitializedEngine(t)
	require.NoError(t, e.Deposit("", 5000))
	id, err := e.Propose(members[0], &Proposal{Kind: KindSetThreshold, Threshold: 5})
	require.NoError(t, err)
	endorseUpTo(t, e, id, members, ElevatedThreshold)
	require.NoError(t, e.Execute(id, members[0]))
	required, err := e.RequiredThreshold(KindTransfer)
	require.NoError(t, err)
	require.EqualValues(t, 5, required)
	// the elevated tier is unaffected
	required, err = e.RequiredThreshold(KindAddMember)
	require.NoError(t, err)
	require.EqualValues(t, ElevatedThreshold, required)
	// a transfer now executes at the lowered quorum
	transferId, err := e.Propose(members[0], &Proposal{
		Kind:     KindTransfer,
		Transfer: &TransferPayload{Recipient: newTestAddress(t, 99), Amount: 100},
	})
	require.NoError(t, err)
	endorseUpTo(t, e, transferId, members, 5)
	require.NoError(t, e.Execute(transferId, members[0]))
}

func TestPauseAndUnpause(t *testing.T) {
	e, members := newInitializedEngine(t)
	// the unpause must be proposed before the pause lands, because a paused
	// engine accepts no new proposals
	pauseId, err := e.Propose(members[0], &Proposal{Kind: KindPause})
	require.NoError(t, err)
	unpauseId, err := e.Propose(members[0], &Proposal{Kind: KindUnpause})
	require.NoError(t, err)
	endorseUpTo(t, e, pauseId, members, ElevatedThreshold)
	endorseUpTo(t, e, unpauseId, members, ElevatedThreshold)
	// unpausing a running engine fails its executor
	requireErrCode(t, e.Execute(unpauseId, members[0]), lib.CodeNotPaused)
	require.NoError(t, e.Execute(pauseId, members[0]))
	mode, err := e.GetMode()
	require.NoError(t, err)
	require.True(t, mode.Paused)
	// everything but the unpause path is blocked
	_, err = e.Propose(members[0], &Proposal{Kind: KindPause})
	requireErrCode(t, err, lib.CodeContractPaused)
	requireErrCode(t, e.Endorse(unpauseId, members[16]), lib.CodeContractPaused)
	requireErrCode(t, e.Cancel(unpauseId, members[0]), lib.CodeContractPaused)
	requireErrCode(t, e.Execute(pauseId, members[0]), lib.CodeContractPaused)
	// the already-endorsed unpause still executes and lifts the pause
	require.NoError(t, e.Execute(unpauseId, members[0]))
	mode, err = e.GetMode()
	require.NoError(t, err)
	require.False(t, mode.Paused)
	_, err = e.Propose(members[0], &Proposal{Kind: KindPause})
	require.NoError(t, err)
}

func TestRemoveMemberFloor(t *testing.T) {
	e := newTestEngine(t)
	// drive MemberCount to one artificially to hit the floor guard
	require.NoError(t, e.Initialize(newTestCommittee(t)))
	e.l.Lock()
	mode, err := e.getMode()
	require.NoError(t, err)
	mode.MemberCount = 1
	require.NoError(t, e.SetMode(mode))
	removeErr := e.executeRemoveMember(newTestAddress(t, 0))
	e.l.Unlock()
	requireErrCode(t, removeErr, lib.CodeInvalidMember)
}
