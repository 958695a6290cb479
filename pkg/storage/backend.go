// Package storage provides the key-value backends behind the run store.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrBucketNotFound = errors.New("bucket not found")

// Backend is a bucketed key-value store. Values are raw bytes; callers
// choose the encoding.
type Backend interface {
	CreateBucket(name []byte) error
	DeleteBucket(name []byte) error

	Put(bucket, key, value []byte) error
	// Get returns nil without error when key is absent.
	Get(bucket, key []byte) ([]byte, error)
	Delete(bucket, key []byte) error
	// ForEach visits keys in ascending byte order.
	ForEach(bucket []byte, fn func(k, v []byte) error) error

	// Batch applies puts atomically where the backend supports it.
	Batch(bucket []byte, entries map[string][]byte) error

	Close() error
}

// PutJSON encodes v and stores it under key.
func PutJSON(b Backend, bucket []byte, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return b.Put(bucket, []byte(key), data)
}

// GetJSON decodes the value under key into v. It reports false when the
// key does not exist.
func GetJSON(b Backend, bucket []byte, key string, v any) (bool, error) {
	data, err := b.Get(bucket, []byte(key))
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// DecodeJSON unmarshals a stored value.
func DecodeJSON(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode JSON: %w", err)
	}
	return nil
}
