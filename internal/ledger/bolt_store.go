package ledger

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	ratingsBucket = []byte("ratings")
	savedBucket   = []byte("saved_tools")
)

// BoltStore is the on-disk ledger of a local profile, the CLI counterpart of
// browser local storage.
type BoltStore struct {
	db *bolt.DB
}

func OpenBoltStore(path string) (*BoltStore, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, fmt.Errorf("ledger path is required")
	}
	if err := os.MkdirAll(filepath.Dir(trimmed), 0o755); err != nil {
		return nil, fmt.Errorf("ensure ledger dir: %w", err)
	}

	db, err := bolt.Open(trimmed, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open ledger db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{ratingsBucket, savedBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) Ratings(_ context.Context) (map[string]int, error) {
	ratings := make(map[string]int)
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(ratingsBucket).ForEach(func(k, v []byte) error {
			value, err := strconv.Atoi(string(v))
			if err != nil {
				return fmt.Errorf("rating for %s: %w", k, err)
			}
			ratings[string(k)] = value
			return nil
		})
	})
	return ratings, err
}

func (s *BoltStore) SetRating(_ context.Context, toolID string, value int) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(ratingsBucket).Put([]byte(toolID), []byte(strconv.Itoa(value)))
	})
}

func (s *BoltStore) SavedTools(_ context.Context) ([]string, error) {
	type entry struct {
		id  string
		seq uint64
	}
	var entries []entry

	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(savedBucket).ForEach(func(k, v []byte) error {
			if len(v) != 8 {
				return fmt.Errorf("saved tool %s: corrupt sequence", k)
			}
			entries = append(entries, entry{id: string(k), seq: binary.BigEndian.Uint64(v)})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(entries, func(a, b entry) int {
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		default:
			return 0
		}
	})

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.id
	}
	return ids, nil
}

func (s *BoltStore) AddSaved(_ context.Context, toolID string) (bool, error) {
	added := false
	err := s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(savedBucket)
		if bucket.Get([]byte(toolID)) != nil {
			return nil
		}
		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, seq)
		if err := bucket.Put([]byte(toolID), buf); err != nil {
			return err
		}
		added = true
		return nil
	})
	return added, err
}
