package store

import (
	"bytes"
	"sort"
	"strings"

	"github.com/custodia-network/custodia/lib"
)

// enforce the StoreTxnI interface
var _ lib.StoreTxnI = &Txn{}

/*
	Txn is a discardable write overlay over a parent store. Sets and deletes
	accumulate in memory; reads merge with the parent as if Write() had
	already happened.

	Each custody operation builds its whole mutation in a Txn and only
	flushes once its guards and the value effect both succeed, so the
	operation either applies every one of its writes or none of them.

	CONTRACT:
	- only safe when writing to another memory store like a badger.Txn() as Write() is not atomic.
	- not thread safe
	- nil values are supported; deleted values read back as nil
*/

type Txn struct {
	parent lib.RWStoreI  // store Write() flushes to
	ops    map[string]op // [string(key)] -> pending set/del operations
}

// op is one pending write: the value for a set, or a delete marker
type op struct {
	value  []byte
	delete bool
}

// NewTxn() creates an empty overlay over the parent store
func NewTxn(parent lib.RWStoreI) *Txn {
	return &Txn{parent: parent, ops: make(map[string]op)}
}

// Get() reads a key from the overlay first, falling through to the parent
func (c *Txn) Get(key []byte) ([]byte, lib.ErrorI) {
	if v, found := c.ops[string(key)]; found {
		if v.delete {
			return nil, nil
		}
		return v.value, nil
	}
	return c.parent.Get(key)
}

// Set() records a pending write for the key
func (c *Txn) Set(key, value []byte) lib.ErrorI {
	c.ops[string(key)] = op{value: value}
	return nil
}

// Delete() records a pending delete for the key
func (c *Txn) Delete(key []byte) lib.ErrorI {
	c.ops[string(key)] = op{delete: true}
	return nil
}

// Iterator() iterates the merged view of the overlay and the parent under a prefix
func (c *Txn) Iterator(prefix []byte) (lib.IteratorI, lib.ErrorI) {
	parent, err := c.parent.Iterator(prefix)
	if err != nil {
		return nil, err
	}
	return newTxnIterator(parent, c.ops, prefix), nil
}

// Discard() drops every pending operation
func (c *Txn) Discard() { c.ops = make(map[string]op) }

// Write() flushes the pending operations to the parent store and resets the overlay
func (c *Txn) Write() (err lib.ErrorI) {
	for k, v := range c.ops {
		if v.delete {
			if err = c.parent.Delete([]byte(k)); err != nil {
				return
			}
		} else {
			if err = c.parent.Set([]byte(k), v.value); err != nil {
				return
			}
		}
	}
	c.ops = make(map[string]op)
	return
}

// enforce the Iterator interface
var _ lib.IteratorI = &TxnIterator{}

// TxnIterator walks the parent iterator and the overlay's sorted keys in
// step. On equal keys the overlay shadows the parent; deleted overlay
// entries suppress the key entirely.
type TxnIterator struct {
	parent lib.IteratorI
	ops    map[string]op
	keys   []string // overlay keys under the prefix, ascending
	index  int
	useTxn bool
}

// newTxnIterator() snapshots the overlay keys under the prefix in sorted order
func newTxnIterator(parent lib.IteratorI, ops map[string]op, prefix []byte) *TxnIterator {
	keys := make([]string, 0, len(ops))
	for k := range ops {
		if strings.HasPrefix(k, string(prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return &TxnIterator{parent: parent, ops: ops, keys: keys}
}

// Close() closes the parent iterator
func (c *TxnIterator) Close() { c.parent.Close() }

// Valid() positions the iterator on the next live entry, skipping overlay
// deletes, and reports whether one exists. It must be called before Key()
// and Value(), as the for-Valid-Next loop does naturally.
func (c *TxnIterator) Valid() bool {
	for {
		overlayLive, parentLive := c.index < len(c.keys), c.parent.Valid()
		if !overlayLive && !parentLive {
			return false
		}
		if !overlayLive {
			c.useTxn = false
			return true
		}
		if !parentLive {
			if c.overlayValue().delete {
				c.index++
				continue
			}
			c.useTxn = true
			return true
		}
		switch bytes.Compare(c.overlayKey(), c.parent.Key()) {
		case 1: // parent first
			c.useTxn = false
			return true
		case 0: // overlay shadows parent
			if c.overlayValue().delete {
				c.parent.Next()
				c.index++
				continue
			}
			c.useTxn = true
			return true
		default: // overlay first
			if c.overlayValue().delete {
				c.index++
				continue
			}
			c.useTxn = true
			return true
		}
	}
}

// Next() advances past the current entry on whichever side(s) hold it
func (c *TxnIterator) Next() {
	if !c.parent.Valid() {
		c.index++
		return
	}
	if c.index >= len(c.keys) {
		c.parent.Next()
		return
	}
	switch bytes.Compare(c.overlayKey(), c.parent.Key()) {
	case 1:
		c.parent.Next()
	case 0:
		c.parent.Next()
		c.index++
	default:
		c.index++
	}
}

// Key() returns the current key from whichever side Valid() selected
func (c *TxnIterator) Key() []byte {
	if c.useTxn {
		return c.overlayKey()
	}
	return c.parent.Key()
}

// Value() returns the current value from whichever side Valid() selected
func (c *TxnIterator) Value() []byte {
	if c.useTxn {
		return c.overlayValue().value
	}
	return c.parent.Value()
}

func (c *TxnIterator) overlayKey() []byte { return []byte(c.keys[c.index]) }

func (c *TxnIterator) overlayValue() op { return c.ops[c.keys[c.index]] }
