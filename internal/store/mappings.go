package store

import (
	"os"
	"path/filepath"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/buntdb"

	"go-import-pipeline/internal/model"
)

// Mappings persists confirmed mapping sets and duplicate-key overrides,
// keyed by mapping signature. Writes are serialized by a mutex so two
// concurrent import runs sharing the store never interleave.
type Mappings struct {
	mu sync.Mutex
	db *buntdb.DB
}

// NewMappings opens the key-value store at datafile, falling back to an
// in-memory store when the parent directory does not exist.
func NewMappings(datafile string) (*Mappings, error) {
	if _, err := os.Stat(filepath.Dir(datafile)); err == nil {
		db, err := buntdb.Open(datafile)
		if err != nil {
			return nil, err
		}
		return &Mappings{db: db}, nil
	}

	db, err := buntdb.Open(":memory:")
	if err != nil {
		return nil, err
	}
	return &Mappings{db: db}, nil
}

// Close releases the underlying store.
func (m *Mappings) Close() error {
	return m.db.Close()
}

// GetMapping loads the mapping persisted under a signature.
func (m *Mappings) GetMapping(signature string) (model.MappingSet, bool, error) {
	var set model.MappingSet
	ok, err := m.get(signature, &set)
	return set, ok, err
}

// SetMapping persists a confirmed mapping under its signature.
func (m *Mappings) SetMapping(signature string, set model.MappingSet) error {
	return m.set(signature, set)
}

// GetKeyFields loads the duplicate-key override persisted alongside a
// mapping.
func (m *Mappings) GetKeyFields(signature string) ([]string, bool, error) {
	var spec model.DuplicateKeySpec
	ok, err := m.get(signature+":"+model.KeyFieldsKey, &spec)
	return spec.Fields, ok, err
}

// SetKeyFields persists a confirmed duplicate-key spec under the reserved
// sub-key of a mapping signature.
func (m *Mappings) SetKeyFields(signature string, fields []string) error {
	return m.set(signature+":"+model.KeyFieldsKey, model.DuplicateKeySpec{Fields: fields})
}

func (m *Mappings) get(key string, out interface{}) (bool, error) {
	var raw string
	err := m.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get(key)
		if err != nil {
			return err
		}
		raw = v
		return nil
	})
	if err == buntdb.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := jsoniter.UnmarshalFromString(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Mappings) set(key string, value interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, err := jsoniter.MarshalToString(value)
	if err != nil {
		return err
	}
	return m.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(key, raw, nil)
		return err
	})
}
