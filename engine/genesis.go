package engine

import (
	"github.com/custodia-network/custodia/lib"
)

// Genesis is the bootstrap state read from genesis.json at first start:
// the committee roster, optional treasury funding, and an optional
// override of the approval window
type Genesis struct {
	Members              []lib.HexBytes `json:"members"`
	Treasury             []*Pool        `json:"treasury,omitempty"`
	ProposalExpiryBlocks uint64         `json:"proposalExpiryBlocks,omitempty"`
}

// NewFromGenesisFile() seats the committee and funds the treasury from the
// genesis file in the data directory. A store that is already initialized
// is left untouched, so restarts are safe.
func (e *Engine) NewFromGenesisFile() lib.ErrorI {
	mode, err := e.GetMode()
	if err != nil {
		return err
	}
	if mode.Initialized {
		e.log.Info("state already initialized, skipping genesis")
		return nil
	}
	genesis := new(Genesis)
	if err = lib.NewJSONFromFile(genesis, e.config.DataDirPath, lib.GenesisFilePath); err != nil {
		return ErrReadGenesisFile(err)
	}
	if genesis.ProposalExpiryBlocks != 0 {
		e.config.ProposalExpiryBlocks = genesis.ProposalExpiryBlocks
	}
	e.log.Infof("Initializing committee of %d from %s", len(genesis.Members), lib.GenesisFilePath)
	return e.withTransaction(func() lib.ErrorI {
		if err := e.initialize(genesis.Members); err != nil {
			return err
		}
		for _, pool := range genesis.Treasury {
			if pool == nil || pool.Amount == 0 {
				continue
			}
			if err := e.poolAdd(pool.Asset, pool.Amount); err != nil {
				return err
			}
		}
		return nil
	})
}

// ExportState() snapshots the roster and the treasury as a Genesis object,
// usable to seed a fresh store
func (e *Engine) ExportState() (*Genesis, lib.ErrorI) {
	members, err := e.Members()
	if err != nil {
		return nil, err
	}
	genesis := new(Genesis)
	for _, member := range members {
		genesis.Members = append(genesis.Members, member.Address)
	}
	e.l.RLock()
	defer e.l.RUnlock()
	policy, err := e.getPolicy()
	if err != nil {
		return nil, err
	}
	genesis.ProposalExpiryBlocks = policy.ExpiryBlocks
	it, err := e.Iterator(lib.JoinLenPrefix(treasuryPrefix))
	if err != nil {
		return nil, err
	}
	defer it.Close()
	for ; it.Valid(); it.Next() {
		pool := new(Pool)
		if err = lib.Unmarshal(it.Value(), pool); err != nil {
			return nil, err
		}
		if pool.Amount != 0 {
			genesis.Treasury = append(genesis.Treasury, pool)
		}
	}
	return genesis, nil
}

// WriteDefaultGenesisFile() lays down a placeholder genesis.json so an
// operator can fill in the committee roster before first start
func WriteDefaultGenesisFile(dataDirPath string) lib.ErrorI {
	return lib.SaveJSONToFile(&Genesis{
		Members:              []lib.HexBytes{},
		Treasury:             []*Pool{},
		ProposalExpiryBlocks: DefaultProposalExpiryBlocks,
	}, dataDirPath, lib.GenesisFilePath)
}
