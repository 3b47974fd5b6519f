package engine

import (
	"sync"

	"github.com/custodia-network/custodia/lib"
)

const (
	AddressSize                 = 20  // identities are fixed 20 byte addresses
	CommitteeSize               = 20  // the committee holds exactly this many members after initialize
	DefaultStandardThreshold    = 11  // initial quorum for value movement; mutable via SetThreshold
	ElevatedThreshold           = 15  // fixed quorum for governance and structural changes
	MaxBatchTransfers           = 10  // upper bound on transfers in one batch proposal
	DefaultProposalExpiryBlocks = 100 // fallback approval window in logical heights
)

/*
	Engine is the governance-gated custody state machine. A fixed committee
	of twenty addresses jointly controls the treasury pools and the engine's
	own configuration; no state-changing action takes effect until a quorum
	of the committee has endorsed the proposal that carries it.

	Every public mutating operation runs under the engine mutex inside a
	discardable store transaction and finishes with exactly one store
	commit, so the store version doubles as the logical clock: proposals
	are stamped with it at creation and expiry is evaluated against it.
*/
type Engine struct {
	store   lib.RWStoreI       // the current view: the committed store, or the open transaction mid-operation
	db      lib.StoreI         // the committed store
	config  lib.Config
	ledger  LedgerI            // the value-transfer primitive invoked by executors
	events  *lib.EventsTracker // events of the in-flight operation
	flushed lib.Events         // events written by the operation, pending sink delivery
	sink    EventSink          // optional post-commit event callback; must not block
	log     lib.LoggerI

	l sync.RWMutex

	// set when lazy expiry latched bookkeeping that must survive the
	// failing operation's rollback
	keepOnError bool
}

// EventSink receives each event of a committed operation; delivery beyond
// the callback is not the engine's responsibility
type EventSink func(*lib.Event)

// New() creates an Engine over the store; if the store is fresh the caller
// is expected to Initialize() or boot from a genesis file
func New(config lib.Config, db lib.StoreI, log lib.LoggerI) *Engine {
	e := &Engine{
		store:  db,
		db:     db,
		config: config,
		events: &lib.EventsTracker{},
		log:    log,
	}
	e.ledger = &poolLedger{engine: e}
	return e
}

// WithLedger() swaps the value-transfer primitive, used to inject failure in tests
func (e *Engine) WithLedger(ledger LedgerI) *Engine { e.ledger = ledger; return e }

// WithEventSink() registers a post-commit event callback
func (e *Engine) WithEventSink(sink EventSink) *Engine { e.sink = sink; return e }

// Height() returns the logical clock: the number of commits the store has seen
func (e *Engine) Height() uint64 { return e.db.Version() }

// Close() closes the underlying store
func (e *Engine) Close() lib.ErrorI { return e.db.Close() }

// withTransaction() wraps one mutating operation: the callback operates
// against a discardable overlay, a failure discards everything, and success
// flushes the overlay and commits the store, advancing the logical clock.
// When the callback latched expiry bookkeeping, the overlay commits even
// though the operation itself reports failure.
func (e *Engine) withTransaction(callback func() lib.ErrorI) lib.ErrorI {
	e.l.Lock()
	defer e.l.Unlock()
	txn := e.db.NewTxn()
	e.store, e.keepOnError = txn, false
	defer func() { e.store = e.db }()
	err := callback()
	if err != nil && !e.keepOnError {
		txn.Discard()
		e.events.Reset()
		return err
	}
	if flushErr := e.flushEvents(); flushErr != nil {
		txn.Discard()
		return flushErr
	}
	if writeErr := txn.Write(); writeErr != nil {
		txn.Discard()
		return writeErr
	}
	if _, commitErr := e.db.Commit(); commitErr != nil {
		e.db.Discard()
		return commitErr
	}
	e.deliverEvents()
	return err
}

// Set() marshals the record and writes it under the key in the current view
func (e *Engine) Set(key []byte, record any) lib.ErrorI {
	bz, err := lib.Marshal(record)
	if err != nil {
		return err
	}
	return e.store.Set(key, bz)
}

// Get() reads the key from the current view into ptr; found is false when the key is absent
func (e *Engine) Get(key []byte, ptr any) (found bool, err lib.ErrorI) {
	bz, err := e.store.Get(key)
	if err != nil {
		return false, err
	}
	if bz == nil {
		return false, nil
	}
	return true, lib.Unmarshal(bz, ptr)
}

// Delete() removes the key in the current view
func (e *Engine) Delete(key []byte) lib.ErrorI { return e.store.Delete(key) }

// Iterator() iterates the current view under a prefix
func (e *Engine) Iterator(prefix []byte) (lib.IteratorI, lib.ErrorI) {
	return e.store.Iterator(prefix)
}

// MODE BELOW

// Mode is the cross-cutting contract state every operation reads as a guard
type Mode struct {
	Initialized bool   `json:"initialized"` // one-way latch set by Initialize()
	Paused      bool   `json:"paused"`      // toggled by executed Pause / Unpause proposals
	MemberCount uint64 `json:"memberCount"` // always equal to the number of member records
}

// GetMode() reads the contract mode record
func (e *Engine) GetMode() (*Mode, lib.ErrorI) {
	e.l.RLock()
	defer e.l.RUnlock()
	return e.getMode()
}

func (e *Engine) getMode() (*Mode, lib.ErrorI) {
	mode := new(Mode)
	if _, err := e.Get(KeyForMode(), mode); err != nil {
		return nil, err
	}
	return mode, nil
}

// SetMode() writes the contract mode record
func (e *Engine) SetMode(mode *Mode) lib.ErrorI {
	if mode == nil {
		return ErrEmptyMode()
	}
	return e.Set(KeyForMode(), mode)
}

// checkReady() fails unless the engine is initialized and not paused
func (e *Engine) checkReady() (*Mode, lib.ErrorI) {
	mode, err := e.getMode()
	if err != nil {
		return nil, err
	}
	if !mode.Initialized {
		return nil, ErrNotInitialized()
	}
	if mode.Paused {
		return nil, ErrContractPaused()
	}
	return mode, nil
}

// checkAddress() validates the shape of an identity
func checkAddress(address lib.HexBytes) lib.ErrorI {
	if len(address) == 0 {
		return ErrAddressEmpty()
	}
	if len(address) != AddressSize {
		return ErrAddressSize(address)
	}
	return nil
}
