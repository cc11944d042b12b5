package state

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"
	"github.com/bytedance/sonic"
)

var bucketState = []byte("state")

// BoltBackend keeps every extension's map under one key in a BoltDB file.
// Values are stored as JSON, so numbers read back as float64.
type BoltBackend struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) the database at path.
func OpenBolt(path string) (*BoltBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	// A second process holding the file lock should fail fast, not hang.
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening state database %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketState); err != nil {
			return fmt.Errorf("creating bucket %q: %w", bucketState, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltBackend{db: db}, nil
}

func (b *BoltBackend) Load(name string) (map[string]interface{}, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	m := map[string]interface{}{}
	err := b.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketState).Get([]byte(name))
		if data == nil {
			return nil
		}
		return sonic.Unmarshal(data, &m)
	})
	if err != nil {
		return nil, fmt.Errorf("loading state for %s: %w", name, err)
	}
	return m, nil
}

func (b *BoltBackend) Save(name string, data map[string]interface{}) error {
	if err := checkName(name); err != nil {
		return err
	}
	encoded, err := sonic.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling state for %s: %w", name, err)
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketState).Put([]byte(name), encoded)
	})
}

// Close closes the underlying database.
func (b *BoltBackend) Close() error {
	return b.db.Close()
}
