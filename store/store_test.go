package store

import (
	"testing"

	"github.com/custodia-network/custodia/lib"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	s, err := NewStoreInMemory(lib.NewNullLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreSetGetDelete(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Set([]byte("1/a"), []byte("a")))
	val, err := s.Get([]byte("1/a"))
	require.NoError(t, err)
	require.Equal(t, []byte("a"), val)
	// missing keys read back as nil without error
	val, err = s.Get([]byte("1/b"))
	require.NoError(t, err)
	require.Nil(t, val)
	require.NoError(t, s.Delete([]byte("1/a")))
	val, err = s.Get([]byte("1/a"))
	require.NoError(t, err)
	require.Nil(t, val)
}

func TestStoreCommitAdvancesVersion(t *testing.T) {
	s := newTestStore(t)
	require.EqualValues(t, 0, s.Version())
	require.NoError(t, s.Set([]byte("1/a"), []byte("a")))
	version, err := s.Commit()
	require.NoError(t, err)
	require.EqualValues(t, 1, version)
	require.EqualValues(t, 1, s.Version())
	// committed writes survive into the next transaction
	val, err := s.Get([]byte("1/a"))
	require.NoError(t, err)
	require.Equal(t, []byte("a"), val)
	_, err = s.Commit()
	require.NoError(t, err)
	require.EqualValues(t, 2, s.Version())
}

func TestStoreDiscardDropsWrites(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Set([]byte("1/a"), []byte("a")))
	s.Discard()
	val, err := s.Get([]byte("1/a"))
	require.NoError(t, err)
	require.Nil(t, val)
	// version is untouched by a discard
	require.EqualValues(t, 0, s.Version())
}

func TestStoreIterator(t *testing.T) {
	s := newTestStore(t)
	for _, k := range []string{"1/c", "1/a", "2/z", "1/b"} {
		require.NoError(t, s.Set([]byte(k), []byte(k)))
	}
	it, err := s.Iterator([]byte("1/"))
	require.NoError(t, err)
	defer it.Close()
	var got []string
	for ; it.Valid(); it.Next() {
		got = append(got, string(it.Key()))
	}
	require.Equal(t, []string{"1/a", "1/b", "1/c"}, got)
}

func TestTxnShadowsParent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Set([]byte("1/a"), []byte("parent")))
	txn := s.NewTxn()
	require.NoError(t, txn.Set([]byte("1/a"), []byte("child")))
	require.NoError(t, txn.Set([]byte("1/b"), []byte("b")))
	// the overlay reads its own writes
	val, err := txn.Get([]byte("1/a"))
	require.NoError(t, err)
	require.Equal(t, []byte("child"), val)
	// the parent is untouched before Write()
	val, err = s.Get([]byte("1/a"))
	require.NoError(t, err)
	require.Equal(t, []byte("parent"), val)
	require.NoError(t, txn.Write())
	val, err = s.Get([]byte("1/a"))
	require.NoError(t, err)
	require.Equal(t, []byte("child"), val)
	val, err = s.Get([]byte("1/b"))
	require.NoError(t, err)
	require.Equal(t, []byte("b"), val)
}

func TestTxnDiscardDropsOps(t *testing.T) {
	s := newTestStore(t)
	txn := s.NewTxn()
	require.NoError(t, txn.Set([]byte("1/a"), []byte("a")))
	txn.Discard()
	val, err := s.Get([]byte("1/a"))
	require.NoError(t, err)
	require.Nil(t, val)
}

func TestTxnMergedIterator(t *testing.T) {
	s := newTestStore(t)
	// parent holds a and c; overlay adds b, deletes c, shadows a
	require.NoError(t, s.Set([]byte("1/a"), []byte("parent")))
	require.NoError(t, s.Set([]byte("1/c"), []byte("parent")))
	txn := s.NewTxn()
	require.NoError(t, txn.Set([]byte("1/a"), []byte("child")))
	require.NoError(t, txn.Set([]byte("1/b"), []byte("child")))
	require.NoError(t, txn.Delete([]byte("1/c")))
	it, err := txn.Iterator([]byte("1/"))
	require.NoError(t, err)
	defer it.Close()
	type kv struct{ k, v string }
	var got []kv
	for ; it.Valid(); it.Next() {
		got = append(got, kv{string(it.Key()), string(it.Value())})
	}
	require.Equal(t, []kv{{"1/a", "child"}, {"1/b", "child"}}, got)
}

func TestTxnIteratorTailCases(t *testing.T) {
	s := newTestStore(t)
	// parent holds the low keys; the overlay appends past the parent's last
	// key and deletes the parent's tail
	require.NoError(t, s.Set([]byte("1/a"), []byte("parent")))
	require.NoError(t, s.Set([]byte("1/b"), []byte("parent")))
	txn := s.NewTxn()
	require.NoError(t, txn.Delete([]byte("1/b")))
	require.NoError(t, txn.Set([]byte("1/y"), []byte("child")))
	require.NoError(t, txn.Set([]byte("1/z"), []byte("child")))
	require.NoError(t, txn.Delete([]byte("1/zz")))
	it, err := txn.Iterator([]byte("1/"))
	require.NoError(t, err)
	defer it.Close()
	var got []string
	for ; it.Valid(); it.Next() {
		got = append(got, string(it.Key()))
	}
	require.Equal(t, []string{"1/a", "1/y", "1/z"}, got)
	// deleted overlay keys read back as nil through the overlay
	val, err := txn.Get([]byte("1/b"))
	require.NoError(t, err)
	require.Nil(t, val)
	// the other prefix is invisible to this iterator
	require.NoError(t, txn.Set([]byte("2/a"), []byte("child")))
	it2, err := txn.Iterator([]byte("2/"))
	require.NoError(t, err)
	defer it2.Close()
	got = nil
	for ; it2.Valid(); it2.Next() {
		got = append(got, string(it2.Key()))
	}
	require.Equal(t, []string{"2/a"}, got)
}
