package lib

// RStoreI defines the interface for read operations against the state store;
// iteration is forward-only, in ascending key order
type RStoreI interface {
	Get(key []byte) ([]byte, ErrorI)
	Iterator(prefix []byte) (IteratorI, ErrorI)
}

// WStoreI defines the interface for write operations against the state store
type WStoreI interface {
	Set(key, value []byte) ErrorI
	Delete(key []byte) ErrorI
}

// RWStoreI combines the read and write store interfaces
type RWStoreI interface {
	RStoreI
	WStoreI
}

// StoreTxnI is a discardable in-memory overlay over a parent store;
// nothing reaches the parent until Write() is called
type StoreTxnI interface {
	RWStoreI
	Write() ErrorI
	Discard()
}

// StoreI is the complete persistent store a custody engine operates over
type StoreI interface {
	RWStoreI
	NewTxn() StoreTxnI
	Version() uint64
	Commit() (version uint64, err ErrorI)
	Discard()
	Close() ErrorI
}

// IteratorI defines the interface for iterating over key-value pairs under a prefix
type IteratorI interface {
	Valid() bool
	Next()
	Key() []byte
	Value() []byte
	Close()
}
