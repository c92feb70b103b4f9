// Package session persists what the browser was looking at between runs:
// the last location, the selected model, and a log of visited locations.
package session

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yildizm/bookrec/internal/recommender"
	"github.com/yildizm/bookrec/internal/route"
	bolt "go.etcd.io/bbolt"
)

const (
	bucketState  = "state"
	bucketVisits = "visits"

	keyLocation = "location"
	keyModel    = "model"
)

// ErrNotFound is returned when nothing has been saved yet
var ErrNotFound = errors.New("no saved value")

// Visit is one entry of the navigation log
type Visit struct {
	Seq      int
	Location route.Location
	At       time.Time
}

// Store is a bbolt-backed session store
type Store struct {
	db *bolt.DB
}

// Open opens or creates the session database at path
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create session directory: %w", err)
		}
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open session database %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{bucketState, bucketVisits} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize session database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database file lock
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveLocation remembers loc as the last location
func (s *Store) SaveLocation(loc route.Location) error {
	return s.put(keyLocation, loc.String())
}

// LastLocation returns the last saved location
func (s *Store) LastLocation() (route.Location, error) {
	v, err := s.get(keyLocation)
	if err != nil {
		return route.Root, err
	}
	return route.ParseLocation(v), nil
}

// SaveModel remembers the selected model
func (s *Store) SaveModel(m recommender.ModelType) error {
	return s.put(keyModel, string(m))
}

// LastModel returns the last saved model
func (s *Store) LastModel() (recommender.ModelType, error) {
	v, err := s.get(keyModel)
	if err != nil {
		return "", err
	}
	return recommender.ModelType(v), nil
}

func (s *Store) put(key, value string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketState)).Put([]byte(key), []byte(value))
	})
}

func (s *Store) get(key string) (string, error) {
	var value string
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketState)).Get([]byte(key))
		if v == nil {
			return ErrNotFound
		}
		value = string(v)
		return nil
	})
	return value, err
}

// AddVisit appends loc to the navigation log and returns its sequence number
func (s *Store) AddVisit(loc route.Location) (int, error) {
	var seq uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketVisits))
		var err error
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		value := time.Now().UTC().Format(time.RFC3339Nano) + "\t" + loc.String()
		return b.Put(marshalSeq(seq), []byte(value))
	})
	return int(seq), err
}

// Visits returns up to limit visits, newest first; limit <= 0 means all
func (s *Store) Visits(limit int) ([]Visit, error) {
	var visits []Visit
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketVisits)).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(visits) >= limit {
				break
			}
			visit, err := unmarshalVisit(k, v)
			if err != nil {
				return err
			}
			visits = append(visits, visit)
		}
		return nil
	})
	return visits, err
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalVisit(k, v []byte) (Visit, error) {
	if len(k) != 8 {
		return Visit{}, fmt.Errorf("corrupt visit key of length %d", len(k))
	}
	at, loc, ok := strings.Cut(string(v), "\t")
	if !ok {
		return Visit{}, fmt.Errorf("corrupt visit record %q", v)
	}
	t, err := time.Parse(time.RFC3339Nano, at)
	if err != nil {
		return Visit{}, fmt.Errorf("corrupt visit time: %w", err)
	}
	return Visit{
		Seq:      int(binary.BigEndian.Uint64(k)),
		Location: route.ParseLocation(loc),
		At:       t,
	}, nil
}
