package repositories

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"
)

const (
	// Key prefixes for different entity types
	MediaKeyPrefix       = "media:"
	PostKeyPrefix        = "post:"
	PublicationKeyPrefix = "publication:"

	// Sequence keys for auto-incrementing IDs
	MediaSeqKey       = "seq:media"
	PostSeqKey        = "seq:post"
	PublicationSeqKey = "seq:publication"

	// Secondary keys
	mediaIdentityPrefix = "idx:media:"
	mediaRefPrefix      = "ref:media:"
	postRefPrefix       = "ref:post:"
)

// maxTxnAttempts bounds the retries of a transaction that lost a commit race.
const maxTxnAttempts = 5

// entityKey builds the primary key of an entity
func entityKey(prefix string, id int) []byte {
	return []byte(fmt.Sprintf("%s%d", prefix, id))
}

// mediaIdentityKey builds the unique index key of a (title, username) pair.
// The title is length-prefixed so no two pairs share a key, whatever bytes they hold.
func mediaIdentityKey(title, username string) []byte {
	return []byte(fmt.Sprintf("%s%d:%s%s", mediaIdentityPrefix, len(title), title, username))
}

func encodeUint(v uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return buf
}

func decodeUint(key string, val []byte) (uint64, error) {
	if len(val) != 8 {
		return 0, fmt.Errorf("corrupt counter %q: %d bytes", key, len(val))
	}
	return binary.BigEndian.Uint64(val), nil
}

// readUint reads a counter, returning 0 when the key does not exist
func readUint(txn *badger.Txn, key string) (uint64, error) {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var v uint64
	err = item.Value(func(val []byte) error {
		v, err = decodeUint(key, val)
		return err
	})
	return v, err
}

// getNextID gets the next available ID for a given sequence key
func getNextID(txn *badger.Txn, seqKey string) (int, error) {
	id, err := readUint(txn, seqKey)
	if err != nil {
		return 0, err
	}
	id++

	// Store new ID
	if err := txn.Set([]byte(seqKey), encodeUint(id)); err != nil {
		return 0, err
	}

	return int(id), nil
}

// addRef moves the reference counter of a media or post by delta
func addRef(txn *badger.Txn, prefix string, id int, delta int) error {
	key := fmt.Sprintf("%s%d", prefix, id)
	count, err := readUint(txn, key)
	if err != nil {
		return err
	}

	next := int64(count) + int64(delta)
	if next <= 0 {
		return txn.Delete([]byte(key))
	}
	return txn.Set([]byte(key), encodeUint(uint64(next)))
}

// refCount returns how many publications point at a media or post
func refCount(txn *badger.Txn, prefix string, id int) (uint64, error) {
	return readUint(txn, fmt.Sprintf("%s%d", prefix, id))
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}

// getEntity loads the value stored under key, mapping a missing key to ErrNotFound
func getEntity(txn *badger.Txn, key []byte, entity interface{}) error {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return unmarshalEntity(val, entity)
	})
}

// putEntity marshals and stores an entity under key
func putEntity(txn *badger.Txn, key []byte, entity interface{}) error {
	data, err := marshalEntity(entity)
	if err != nil {
		return err
	}
	return txn.Set(key, data)
}

// exists reports whether key is present
func exists(txn *badger.Txn, key []byte) (bool, error) {
	_, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// scanPrefix calls fn with the value of every key under prefix
func scanPrefix(txn *badger.Txn, prefix string, fn func(val []byte) error) error {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	p := []byte(prefix)
	for it.Seek(p); it.ValidForPrefix(p); it.Next() {
		if err := it.Item().Value(fn); err != nil {
			return err
		}
	}
	return nil
}

// sortByID orders a scan result by ascending id. Keys are not zero padded so
// badger iteration order is lexicographic.
func sortByID[T any](items []*T, id func(*T) int) {
	sort.Slice(items, func(i, j int) bool {
		return id(items[i]) < id(items[j])
	})
}

// update runs fn in a read-write transaction, retrying when badger reports a
// conflicting concurrent commit. All check-and-mutate sequences go through here.
func update(db *badger.DB, fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt < maxTxnAttempts; attempt++ {
		err = db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return fmt.Errorf("transaction retries exhausted: %w", err)
}
