package store

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strconv"

	bolt "go.etcd.io/bbolt"
)

const articlesBktName = "articles"

// Bolt is an article index that uses BoltDB as a backend.
type Bolt struct {
	db *bolt.DB
}

// NewBolt creates new Bolt index.
func NewBolt(dir string) (*Bolt, error) {
	db, err := bolt.Open(path.Join(dir, "articles.db"), 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to make boltdb for %s: %w", dir, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{articlesBktName} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("create top-level bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("make buckets: %w", err)
	}

	return &Bolt{db: db}, nil
}

// Put puts article reference to the index, keyed by issue number.
func (b *Bolt) Put(_ context.Context, ref Ref) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(articlesBktName))

		bts, err := json.Marshal(ref)
		if err != nil {
			return fmt.Errorf("marshal ref: %w", err)
		}

		if err := bkt.Put([]byte(strconv.Itoa(ref.IssueNumber)), bts); err != nil {
			return fmt.Errorf("put ref to index: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("update index: %w", err)
	}

	return nil
}

// Get returns article reference for the given issue number.
func (b *Bolt) Get(_ context.Context, issueNumber int) (ref Ref, err error) {
	err = b.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(articlesBktName))

		bts := bkt.Get([]byte(strconv.Itoa(issueNumber)))
		if bts == nil {
			return ErrNotFound
		}

		if err := json.Unmarshal(bts, &ref); err != nil {
			return fmt.Errorf("unmarshal ref: %w", err)
		}

		return nil
	})
	if err != nil {
		return Ref{}, fmt.Errorf("view index: %w", err)
	}

	return ref, nil
}

// List returns all article references from the index.
func (b *Bolt) List(context.Context) ([]Ref, error) {
	var result []Ref
	err := b.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(articlesBktName))
		err := bkt.ForEach(func(k, v []byte) error {
			var ref Ref
			if err := json.Unmarshal(v, &ref); err != nil {
				return fmt.Errorf("unmarshal ref %s: %w", k, err)
			}
			result = append(result, ref)
			return nil
		})
		if err != nil {
			return fmt.Errorf("foreach: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("view index: %w", err)
	}
	return result, nil
}

// Close closes the index.
func (b *Bolt) Close() error { return b.db.Close() }
