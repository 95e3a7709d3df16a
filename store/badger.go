package store

import (
	"errors"
	"fmt"
	"log"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/akatsarakis/galene/galene"
)

// ErrNoValue is returned when nothing has been published yet.
var ErrNoValue = errors.New("store: no published value")

// entry is the on-disk wrapper: value bytes together with the timestamp
// guarding them, so the store can be inspected without the engine.
type entry struct {
	Version    uint64 `msgpack:"version"`
	TieBreaker string `msgpack:"tie_breaker"`
	Value      []byte `msgpack:"value"`
}

func packEntry(ts galene.Timestamp, val []byte) ([]byte, error) {
	return msgpack.Marshal(entry{
		Version:    ts.Version,
		TieBreaker: string(ts.TieBreaker),
		Value:      val,
	})
}

func unpackEntry(data []byte) (galene.Timestamp, []byte, error) {
	var e entry
	if err := msgpack.Unmarshal(data, &e); err != nil {
		return galene.Timestamp{}, nil, err
	}
	ts := galene.Timestamp{Version: e.Version, TieBreaker: galene.NodeID(e.TieBreaker)}
	return ts, e.Value, nil
}

func stageKey(ts galene.Timestamp) []byte {
	return []byte(fmt.Sprintf("stage/%020d/%s", ts.Version, ts.TieBreaker))
}

var curKey = []byte("cur")

// Badger persists staged and published values in a badger database.
type Badger struct {
	db *badger.DB
}

// OpenBadger opens (or creates) the store at path.
func OpenBadger(path string) (*Badger, error) {
	opts := badger.DefaultOptions(path)
	// keep the library quiet
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", path, err)
	}
	return &Badger{db: db}, nil
}

func (s *Badger) Close() error {
	return s.db.Close()
}

// PutStaged records the value bytes for a staged timestamp.
func (s *Badger) PutStaged(ts galene.Timestamp, val []byte) error {
	data, err := packEntry(ts, val)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(stageKey(ts), data)
	})
}

// Stage implements galene.Staging. It ensures a slot exists for ts; the
// value bytes may arrive later through PutStaged.
func (s *Badger) Stage(ts galene.Timestamp) {
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(stageKey(ts)); err == nil {
			return nil
		}
		data, err := packEntry(ts, nil)
		if err != nil {
			return err
		}
		return txn.Set(stageKey(ts), data)
	})
	if err != nil {
		log.Printf("store: stage %s: %v", ts, err)
	}
}

// Publish implements galene.Staging: the staged entry for ts becomes the
// visible value.
func (s *Badger) Publish(ts galene.Timestamp) {
	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(stageKey(ts))
		if err != nil {
			return err
		}
		data, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		return txn.Set(curKey, data)
	})
	if err != nil {
		log.Printf("store: publish %s: %v", ts, err)
	}
}

// Current returns the visible value and its guarding timestamp.
func (s *Badger) Current() (galene.Timestamp, []byte, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(curKey)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return galene.Timestamp{}, nil, ErrNoValue
	}
	if err != nil {
		return galene.Timestamp{}, nil, err
	}
	return unpackEntry(data)
}

// Staged scans the staged slots in version order.
func (s *Badger) Staged() ([]Staged, error) {
	var out []Staged
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte("stage/")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			data, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			ts, val, err := unpackEntry(data)
			if err != nil {
				return err
			}
			out = append(out, Staged{TS: ts, Value: val})
		}
		return nil
	})
	return out, err
}
