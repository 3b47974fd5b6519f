package store

import (
	"path/filepath"

	"github.com/custodia-network/custodia/lib"
	"github.com/dgraph-io/badger/v4"
)

/*
	Store is the persistent state of the custody engine, layered as:

	- badgerDB: the disk (or memory) key-value database
	- TxnWrapper: adapts a writable badger.Txn to the RWStoreI interface
	- Store: owns the current writable transaction plus a version counter
	  that increments on every Commit(); the version is the engine's
	  logical clock

	Every mutating custody operation builds its writes in a discardable
	Txn (see txn.go) layered over this Store, flushes it, then calls
	Commit() exactly once. A failed operation discards instead, so the
	version only ever advances on success.
*/

// the portion of the database reserved for state records
var statePrefix = []byte("s/")

// the key the committed version is persisted under, outside the state prefix
var versionKey = []byte("v/version")

// StoreI interface enforcement
var _ lib.StoreI = &Store{}

// Store is the badger-backed implementation of StoreI
type Store struct {
	db      *badger.DB
	writer  *TxnWrapper
	version uint64
	log     lib.LoggerI
}

// New() opens (or creates) the database in the configured data directory
func New(config lib.Config, log lib.LoggerI) (*Store, lib.ErrorI) {
	if config.InMemory {
		return NewStoreInMemory(log)
	}
	path := filepath.Join(config.DataDirPath, config.DBName)
	db, err := badger.Open(badger.DefaultOptions(path).WithLogger(nil))
	if err != nil {
		return nil, ErrOpenDB(err)
	}
	return newStore(db, log)
}

// NewStoreInMemory() opens a memory-only database, used for testing
func NewStoreInMemory(log lib.LoggerI) (*Store, lib.ErrorI) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, ErrOpenDB(err)
	}
	return newStore(db, log)
}

// newStore() restores the committed version and opens the first writable transaction
func newStore(db *badger.DB, log lib.LoggerI) (*Store, lib.ErrorI) {
	s := &Store{db: db, log: log}
	if err := s.loadVersion(); err != nil {
		return nil, err
	}
	s.writer = NewTxnWrapper(db.NewTransaction(true), log, statePrefix)
	return s, nil
}

// loadVersion() reads the last committed version from the database
func (s *Store) loadVersion() lib.ErrorI {
	return s.wrapDBErr(s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(versionKey)
		if err == badger.ErrKeyNotFound {
			s.version = 0
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			s.version = lib.Uint64FromBytes(val)
			return nil
		})
	}))
}

// Get() reads a key from the current transaction
func (s *Store) Get(key []byte) ([]byte, lib.ErrorI) { return s.writer.Get(key) }

// Set() writes a key in the current transaction
func (s *Store) Set(key, value []byte) lib.ErrorI { return s.writer.Set(key, value) }

// Delete() removes a key in the current transaction
func (s *Store) Delete(key []byte) lib.ErrorI { return s.writer.Delete(key) }

// Iterator() iterates forward over a key prefix in the current transaction
func (s *Store) Iterator(prefix []byte) (lib.IteratorI, lib.ErrorI) {
	return s.writer.Iterator(prefix)
}

// NewTxn() returns a discardable write-buffer layered over this store
func (s *Store) NewTxn() lib.StoreTxnI { return NewTxn(s) }

// Version() returns the number of commits this store has seen; it is the
// logical clock stamped onto proposals and events
func (s *Store) Version() uint64 { return s.version }

// Commit() atomically persists the current transaction, advances the version,
// and opens a fresh transaction
func (s *Store) Commit() (uint64, lib.ErrorI) {
	next := s.version + 1
	// the version key lives outside the state prefix, so write it raw
	if err := s.writer.db.Set(versionKey, lib.FormatUint64(next)); err != nil {
		return 0, ErrCommitDB(err)
	}
	if err := s.writer.db.Commit(); err != nil {
		return 0, ErrCommitDB(err)
	}
	s.version = next
	s.writer.setDB(s.db.NewTransaction(true))
	return s.version, nil
}

// Discard() throws away the current transaction and opens a fresh one
func (s *Store) Discard() {
	s.writer.Close()
	s.writer.setDB(s.db.NewTransaction(true))
}

// Close() discards any pending writes and closes the database
func (s *Store) Close() lib.ErrorI {
	s.writer.Close()
	if err := s.db.Close(); err != nil {
		return ErrCloseDB(err)
	}
	return nil
}

// wrapDBErr() converts a raw badger error into a typed storage error
func (s *Store) wrapDBErr(err error) lib.ErrorI {
	if err != nil {
		return ErrStoreGet(err)
	}
	return nil
}
