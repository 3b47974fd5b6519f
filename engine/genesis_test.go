package engine

import (
	"testing"

	"github.com/custodia-network/custodia/lib"
	"github.com/stretchr/testify/require"
)

func TestNewFromGenesisFile(t *testing.T) {
	dataDir := t.TempDir()
	members := newTestCommittee(t)
	require.NoError(t, lib.SaveJSONToFile(&Genesis{
		Members:              members,
		Treasury:             []*Pool{{Amount: 9000}, {Asset: "alt", Amount: 100}},
		ProposalExpiryBlocks: 7,
	}, dataDir, lib.GenesisFilePath))
	e := newTestEngine(t, func(c *lib.Config) { c.DataDirPath = dataDir })
	require.NoError(t, e.NewFromGenesisFile())
	count, err := e.MemberCount()
	require.NoError(t, err)
	require.EqualValues(t, CommitteeSize, count)
	pool, err := e.Treasury("")
	require.NoError(t, err)
	require.EqualValues(t, 9000, pool.Amount)
	pool, err = e.Treasury("alt")
	require.NoError(t, err)
	require.EqualValues(t, 100, pool.Amount)
	// the genesis override reaches the policy record
	id, err := e.Propose(members[0], &Proposal{Kind: KindPause})
	require.NoError(t, err)
	proposal, err := e.GetProposal(id)
	require.NoError(t, err)
	require.Equal(t, proposal.CreatedAt+7, proposal.ExpiresAt)
	// a second boot is a no-op
	require.NoError(t, e.NewFromGenesisFile())
}

func TestGenesisRollbackOnBadRoster(t *testing.T) {
	dataDir := t.TempDir()
	members := newTestCommittee(t)
	members[1] = members[0]
	require.NoError(t, lib.SaveJSONToFile(&Genesis{
		Members:  members,
		Treasury: []*Pool{{Amount: 9000}},
	}, dataDir, lib.GenesisFilePath))
	e := newTestEngine(t, func(c *lib.Config) { c.DataDirPath = dataDir })
	requireErrCode(t, e.NewFromGenesisFile(), lib.CodeDuplicateMember)
	// neither the roster nor the treasury funding survived
	mode, err := e.GetMode()
	require.NoError(t, err)
	require.False(t, mode.Initialized)
	pool, err := e.Treasury("")
	require.NoError(t, err)
	require.Zero(t, pool.Amount)
}

func TestExportState(t *testing.T) {
	e, members := newInitializedEngine(t)
	require.NoError(t, e.Deposit("", 4000))
	exported, err := e.ExportState()
	require.NoError(t, err)
	require.Len(t, exported.Members, CommitteeSize)
	seen := make(map[string]struct{})
	for _, address := range exported.Members {
		seen[address.String()] = struct{}{}
	}
	for _, member := range members {
		require.Contains(t, seen, member.String())
	}
	require.Len(t, exported.Treasury, 1)
	require.EqualValues(t, 4000, exported.Treasury[0].Amount)
	require.EqualValues(t, DefaultProposalExpiryBlocks, exported.ProposalExpiryBlocks)
}
