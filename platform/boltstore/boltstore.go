// Package boltstore persists deployed composition artifacts in a
// bbolt file, in one bucket named at Open, one key per artifact name.
// It backs platform.Deploy's delete-then-update semantics
// (spec.md §6.3): each artifact is removed before it is rewritten so
// that a deploy never leaves a stale partial body behind.
package boltstore

import (
	"encoding/json"
	"log"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Record is the persisted form of one deployed artifact.
type Record struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Body    interface{} `json:"body"`
}

// Store is a bbolt-backed artifact registry, grounded on the
// teacher's bucket-per-entity/Update-View idiom.
type Store struct {
	Debug    bool
	filename string
	bucket   []byte
	db       *bolt.DB
}

// Open creates or opens the bbolt file at filename and ensures the
// artifact bucket exists.
func Open(filename, bucket string) (*Store, error) {
	db, err := bolt.Open(filename, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	s := &Store{
		filename: filename,
		bucket:   []byte(bucket),
		db:       db,
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(s.bucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying bbolt file.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) logf(format string, args ...interface{}) {
	if s.Debug {
		log.Printf("boltstore.Store."+format, args...)
	}
}

// Deploy writes rec, first deleting any existing record under the
// same name so that a deploy never merges with a stale body
// (spec.md §6.3's "delete-then-update per artifact").
func (s *Store) Deploy(rec *Record) error {
	s.logf("Deploy %s", rec.Name)
	js, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	key := []byte(rec.Name)
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if err := b.Delete(key); err != nil {
			return err
		}
		return b.Put(key, js)
	})
}

// Get reads the artifact named name, returning (nil, nil) if absent.
func (s *Store) Get(name string) (*Record, error) {
	var rec *Record
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		bs := b.Get([]byte(name))
		if bs == nil {
			return nil
		}
		rec = &Record{}
		return json.Unmarshal(bs, rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes the artifact named name, if present.
func (s *Store) Delete(name string) error {
	s.logf("Delete %s", name)
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(name))
	})
}

// List returns every deployed artifact in the store.
func (s *Store) List() ([]*Record, error) {
	recs := make([]*Record, 0, 32)
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, bs := c.First(); k != nil; k, bs = c.Next() {
			var rec Record
			if err := json.Unmarshal(bs, &rec); err != nil {
				return err
			}
			recs = append(recs, &rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// DeployAll deploys every record in recs and returns the count of
// successful updates, matching spec.md §6.3's "deploy() ... returns
// count of successful updates".
func (s *Store) DeployAll(recs []*Record) (int, error) {
	n := 0
	for _, rec := range recs {
		if err := s.Deploy(rec); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
