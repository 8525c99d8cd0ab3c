package meta

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var packBucket = []byte("meta")

// Pack is a bbolt resource file holding metadata documents keyed by the same
// atlas-relative keys DirResources uses.
type Pack struct {
	db *bolt.DB
}

// OpenPack opens or creates the pack at path.
func OpenPack(path string, readOnly bool) (*Pack, error) {
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second, ReadOnly: readOnly})
	if err != nil {
		return nil, fmt.Errorf("meta: open pack %s: %w", path, err)
	}
	return &Pack{db: db}, nil
}

func (p *Pack) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}

// Put stores a document under key.
func (p *Pack) Put(key string, data []byte) error {
	clean := cleanKey(key)
	if clean == "" {
		return fmt.Errorf("meta: empty pack key")
	}
	return p.db.Update(func(tx *bolt.Tx) error {
		buck, err := tx.CreateBucketIfNotExists(packBucket)
		if err != nil {
			return err
		}
		return buck.Put([]byte(clean), data)
	})
}

func (p *Pack) TryGetResource(key string) ([]byte, bool) {
	if p == nil || p.db == nil {
		return nil, false
	}
	clean := cleanKey(key)
	var (
		out   []byte
		found bool
	)
	_ = p.db.View(func(tx *bolt.Tx) error {
		buck := tx.Bucket(packBucket)
		if buck == nil {
			return nil
		}
		if v := buck.Get([]byte(clean)); v != nil {
			// bbolt values are only valid inside the transaction.
			out = append([]byte{}, v...)
			found = true
		}
		return nil
	})
	return out, found
}

// Keys lists every key stored in the pack.
func (p *Pack) Keys() ([]string, error) {
	var keys []string
	err := p.db.View(func(tx *bolt.Tx) error {
		buck := tx.Bucket(packBucket)
		if buck == nil {
			return nil
		}
		return buck.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}
