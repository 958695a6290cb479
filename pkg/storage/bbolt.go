package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// BboltBackend implements Backend on a bbolt file.
type BboltBackend struct {
	db *bolt.DB
}

// NewBboltBackend opens (creating if needed) the database at dbPath.
func NewBboltBackend(dbPath string) (*BboltBackend, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bbolt database: %w", err)
	}

	return &BboltBackend{db: db}, nil
}

func (b *BboltBackend) CreateBucket(name []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(name)
		return err
	})
}

func (b *BboltBackend) DeleteBucket(name []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		err := tx.DeleteBucket(name)
		if errors.Is(err, bolt.ErrBucketNotFound) {
			return nil
		}
		return err
	})
}

func (b *BboltBackend) Put(bucket, key, value []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bkt, err := bucketFor(tx, bucket)
		if err != nil {
			return err
		}
		return bkt.Put(key, value)
	})
}

func (b *BboltBackend) Get(bucket, key []byte) ([]byte, error) {
	var value []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bkt, err := bucketFor(tx, bucket)
		if err != nil {
			return err
		}
		// Values are only valid for the life of the transaction.
		if v := bkt.Get(key); v != nil {
			value = append([]byte(nil), v...)
		}
		return nil
	})
	return value, err
}

func (b *BboltBackend) Delete(bucket, key []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bkt, err := bucketFor(tx, bucket)
		if err != nil {
			return err
		}
		return bkt.Delete(key)
	})
}

func (b *BboltBackend) ForEach(bucket []byte, fn func(k, v []byte) error) error {
	return b.db.View(func(tx *bolt.Tx) error {
		bkt, err := bucketFor(tx, bucket)
		if err != nil {
			return err
		}
		return bkt.ForEach(fn)
	})
}

func (b *BboltBackend) Batch(bucket []byte, entries map[string][]byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bkt, err := bucketFor(tx, bucket)
		if err != nil {
			return err
		}
		for k, v := range entries {
			if err := bkt.Put([]byte(k), v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *BboltBackend) Close() error {
	return b.db.Close()
}

func bucketFor(tx *bolt.Tx, name []byte) (*bolt.Bucket, error) {
	bkt := tx.Bucket(name)
	if bkt == nil {
		return nil, fmt.Errorf("%w: %s", ErrBucketNotFound, name)
	}
	return bkt, nil
}
