// Package pricestore caches a built spot price index in BoltDB.
//
// Parsing multi-year price exports on every invocation is wasted
// work; the driver saves the merged index once and restores it on
// later runs. The cache belongs to the driver layer: the core cost
// computation only ever sees the in-memory pricing.Index.
//
// Example usage:
//
//	store, err := pricestore.Open(cfg.Storage.DBPath, log)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	index, ok, err := store.Load()
//	if err != nil || !ok {
//	    index = rebuild()
//	    _ = store.Save(index)
//	}
package pricestore

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/jtuomin/sahkolasku/pkg/logger"
	"github.com/jtuomin/sahkolasku/pkg/pricing"
)

var bucketPrices = []byte("spot_prices") // Canonical timestamp key -> price

// Store persists and restores spot price indexes.
type Store interface {
	// Save replaces the cached prices with the index contents.
	Save(index *pricing.Index) error

	// Load restores the cached index. The ok result is false when the
	// cache is empty.
	Load() (index *pricing.Index, ok bool, err error)

	// Clear drops all cached prices.
	Clear() error

	// Close closes the underlying database.
	Close() error
}

// boltStore implements Store using BoltDB.
type boltStore struct {
	db     *bolt.DB
	logger logger.Logger
	mu     sync.Mutex
	closed bool
}

// Open opens (creating if needed) the price cache at path.
func Open(path string, log logger.Logger) (Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open price cache %s: %w", path, err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, createErr := tx.CreateBucketIfNotExists(bucketPrices)
		return createErr
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create price bucket: %w", err)
	}

	return &boltStore{db: db, logger: log}, nil
}

// Save implements Store.Save.
func (s *boltStore) Save(index *pricing.Index) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	entries := index.Entries()

	err := s.db.Update(func(tx *bolt.Tx) error {
		// Replace, don't merge: the cache mirrors one built index.
		if err := tx.DeleteBucket(bucketPrices); err != nil {
			return err
		}
		b, err := tx.CreateBucket(bucketPrices)
		if err != nil {
			return err
		}

		for key, price := range entries {
			var buf [8]byte
			binary.BigEndian.PutUint64(buf[:], math.Float64bits(price))

			if err := b.Put([]byte(key), buf[:]); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save price index: %w", err)
	}

	s.logger.Info("cached spot price index", "hours", len(entries))

	return nil
}

// Load implements Store.Load.
func (s *boltStore) Load() (*pricing.Index, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, false, ErrStoreClosed
	}

	entries := make(map[string]float64)

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPrices)

		return b.ForEach(func(k, v []byte) error {
			if len(v) != 8 {
				return fmt.Errorf("%w: key %s", ErrCorruptEntry, k)
			}
			entries[string(k)] = math.Float64frombits(binary.BigEndian.Uint64(v))
			return nil
		})
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to load price index: %w", err)
	}

	if len(entries) == 0 {
		return nil, false, nil
	}

	s.logger.Info("restored spot price index from cache", "hours", len(entries))

	return pricing.NewIndex(entries), true, nil
}

// Clear implements Store.Clear.
func (s *boltStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketPrices); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketPrices)
		return err
	})
}

// Close implements Store.Close.
func (s *boltStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	return s.db.Close()
}
