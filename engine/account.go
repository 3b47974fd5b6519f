package engine

import "github.com/custodia-network/custodia/lib"

// Account holds the balance of an external recipient, per asset; an empty
// asset names the default asset
type Account struct {
	Address lib.HexBytes `json:"address"`
	Asset   string       `json:"asset,omitempty"`
	Amount  uint64       `json:"amount"`
}

// Pool holds a treasury balance, per asset
type Pool struct {
	Asset  string `json:"asset,omitempty"`
	Amount uint64 `json:"amount"`
}

// GetAccount() reads an account record; missing accounts read back zeroed
func (e *Engine) GetAccount(address lib.HexBytes, asset string) (*Account, lib.ErrorI) {
	e.l.RLock()
	defer e.l.RUnlock()
	return e.getAccount(address, asset)
}

func (e *Engine) getAccount(address lib.HexBytes, asset string) (*Account, lib.ErrorI) {
	account := &Account{Address: address, Asset: asset}
	if _, err := e.Get(KeyForAccount(address, asset), account); err != nil {
		return nil, err
	}
	return account, nil
}

// setAccount() writes an account record
func (e *Engine) setAccount(account *Account) lib.ErrorI {
	return e.Set(KeyForAccount(account.Address, account.Asset), account)
}

// Treasury() reads a treasury pool record; missing pools read back zeroed
func (e *Engine) Treasury(asset string) (*Pool, lib.ErrorI) {
	e.l.RLock()
	defer e.l.RUnlock()
	return e.getPool(asset)
}

func (e *Engine) getPool(asset string) (*Pool, lib.ErrorI) {
	pool := &Pool{Asset: asset}
	if _, err := e.Get(KeyForPool(asset), pool); err != nil {
		return nil, err
	}
	return pool, nil
}

// setPool() writes a treasury pool record
func (e *Engine) setPool(pool *Pool) lib.ErrorI {
	return e.Set(KeyForPool(pool.Asset), pool)
}

// Deposit() credits the treasury pool for an asset; the funding path is
// ungoverned since it only ever adds value under committee control
func (e *Engine) Deposit(asset string, amount uint64) lib.ErrorI {
	return e.withTransaction(func() lib.ErrorI {
		if amount == 0 {
			return ErrInvalidAmount()
		}
		if err := e.poolAdd(asset, amount); err != nil {
			return err
		}
		return e.emitDeposit(asset, amount)
	})
}

// poolAdd() credits a treasury pool
func (e *Engine) poolAdd(asset string, amount uint64) lib.ErrorI {
	pool, err := e.getPool(asset)
	if err != nil {
		return err
	}
	pool.Amount += amount
	return e.setPool(pool)
}

// poolSub() debits a treasury pool, failing on insufficient funds
func (e *Engine) poolSub(asset string, amount uint64) lib.ErrorI {
	pool, err := e.getPool(asset)
	if err != nil {
		return err
	}
	if pool.Amount < amount {
		return ErrInsufficientFunds(asset, amount, pool.Amount)
	}
	pool.Amount -= amount
	return e.setPool(pool)
}

// accountAdd() credits an account
func (e *Engine) accountAdd(address lib.HexBytes, asset string, amount uint64) lib.ErrorI {
	account, err := e.getAccount(address, asset)
	if err != nil {
		return err
	}
	account.Amount += amount
	return e.setAccount(account)
}

// accountSub() debits an account, failing on insufficient funds
func (e *Engine) accountSub(address lib.HexBytes, asset string, amount uint64) lib.ErrorI {
	account, err := e.getAccount(address, asset)
	if err != nil {
		return err
	}
	if account.Amount < amount {
		return ErrInsufficientFunds(asset, amount, account.Amount)
	}
	account.Amount -= amount
	return e.setAccount(account)
}

// LedgerI interface enforcement
var _ LedgerI = &poolLedger{}

// poolLedger is the default value-transfer primitive: it moves value between
// the treasury pools and account records inside the operation's transaction,
// so a later failure of the surrounding execute rolls the movement back
type poolLedger struct {
	engine *Engine
}

// Transfer() moves amount of an asset; a nil from address debits the treasury
func (p *poolLedger) Transfer(asset string, amount uint64, from, to lib.HexBytes) lib.ErrorI {
	if amount == 0 {
		return ErrInvalidAmount()
	}
	if err := checkAddress(to); err != nil {
		return err
	}
	if from == nil {
		if err := p.engine.poolSub(asset, amount); err != nil {
			return err
		}
	} else {
		if err := p.engine.accountSub(from, asset, amount); err != nil {
			return err
		}
	}
	return p.engine.accountAdd(to, asset, amount)
}
