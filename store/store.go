// Package store persists solver results in a bolt database so
// trajectories can be reread without recomputing the
// eigendecomposition.
package store

import (
	"encoding/json"

	"github.com/op/go-logging"

	bolt "go.etcd.io/bbolt"

	"bitbucket.org/mrrlab/qevo/esolve"
)

// log is the global logging variable.
var log = logging.MustGetLogger("store")

// RESULTS is the bucket name for all stored results.
var RESULTS = []byte("results")

// ResultIO provides result persistence on top of a bolt database.
type ResultIO struct {
	db *bolt.DB
}

// NewResultIO creates a new ResultIO. A nil database is allowed and
// turns Save and Load into no-ops.
func NewResultIO(db *bolt.DB) *ResultIO {
	return &ResultIO{db: db}
}

// Save stores a result under the given key.
func (s *ResultIO) Save(key string, res *esolve.Result) error {
	data, err := json.Marshal(res)
	if err != nil {
		log.Error("Error serializing result", err)
		return err
	}
	err = SaveData(s.db, []byte(key), data)
	if err != nil {
		log.Error("Error saving result", err)
	}
	return err
}

// Load retrieves a result by key. It returns nil without an error
// when the key is absent.
func (s *ResultIO) Load(key string) (*esolve.Result, error) {
	b, err := LoadData(s.db, []byte(key))
	if err != nil || b == nil {
		return nil, err
	}
	var res *esolve.Result
	if err := json.Unmarshal(b, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// Keys lists all stored result keys.
func (s *ResultIO) Keys() ([]string, error) {
	var keys []string
	if s.db == nil {
		return nil, nil
	}
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(RESULTS)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// SaveData saves values in bolt database.
func SaveData(db *bolt.DB, key []byte, data []byte) error {
	if db == nil {
		return nil
	}
	err := db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(RESULTS)
		if err != nil {
			return err
		}
		return b.Put(key, data)
	})
	return err
}

// LoadData loads data from bolt database.
func LoadData(db *bolt.DB, key []byte) ([]byte, error) {
	var data []byte
	if db == nil {
		return nil, nil
	}
	err := db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(RESULTS)
		if b == nil {
			return nil
		}
		v := b.Get(key)
		if v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}
