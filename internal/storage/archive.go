package storage

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/game"
)

// Storage keys
const keyGamePrefix = "game:"

// Record is the stored form of a game: enough to replay it.
type Record struct {
	ID       string    `json:"id"`
	StartFEN string    `json:"start_fen"`
	Moves    []string  `json:"moves"` // from-to coordinates, castles as king moves
	FEN      string    `json:"fen"`
	Result   string    `json:"result"`
	SavedAt  time.Time `json:"saved_at"`
}

// Archive wraps BadgerDB for persistent game records.
type Archive struct {
	db *badger.DB
}

// OpenArchive opens the archive in dir. With inMemory set, dir is ignored and
// nothing touches the disk.
func OpenArchive(dir string, inMemory bool) (*Archive, error) {
	opts := badger.DefaultOptions(dir)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Archive{db: db}, nil
}

// Close closes the database
func (a *Archive) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func gameKey(id string) []byte {
	return []byte(keyGamePrefix + id)
}

// NewRecord captures g under id.
func NewRecord(id string, g *game.Game) (*Record, error) {
	result, err := g.Result()
	if err != nil {
		return nil, err
	}
	rec := &Record{
		ID:       id,
		StartFEN: g.StartFEN(),
		FEN:      g.FEN(),
		Result:   string(result),
		SavedAt:  time.Now(),
	}
	for _, m := range g.Moves() {
		rec.Moves = append(rec.Moves, m.UCI())
	}
	return rec, nil
}

// Save stores g under id, replacing any earlier record.
func (a *Archive) Save(id string, g *game.Game) error {
	rec, err := NewRecord(id, g)
	if err != nil {
		return err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return a.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(id), data)
	})
}

// Record loads the stored record of id.
func (a *Archive) Record(id string) (*Record, error) {
	var rec Record

	err := a.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if err == badger.ErrKeyNotFound {
			return errors.Wrapf(errors.ErrGameNotFound, "%s", id)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Load restores the game stored under id by replaying its moves from the
// start position.
func (a *Archive) Load(id string, opts ...game.Option) (*game.Game, error) {
	rec, err := a.Record(id)
	if err != nil {
		return nil, err
	}
	return rec.Replay(opts...)
}

// Replay rebuilds the game the record describes.
func (r *Record) Replay(opts ...game.Option) (*game.Game, error) {
	g, err := game.FromFEN(r.StartFEN, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "record %s", r.ID)
	}
	for _, mv := range r.Moves {
		if _, err := g.MoveAlgebraic(mv); err != nil {
			return nil, errors.Wrapf(err, "record %s", r.ID)
		}
	}
	return g, nil
}

// List returns the stored game ids in key order.
func (a *Archive) List() ([]string, error) {
	var ids []string

	err := a.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyGamePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			ids = append(ids, strings.TrimPrefix(string(it.Item().Key()), keyGamePrefix))
		}
		return nil
	})

	return ids, err
}

// Delete removes the record of id.
func (a *Archive) Delete(id string) error {
	return a.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(gameKey(id)); err == badger.ErrKeyNotFound {
			return errors.Wrapf(errors.ErrGameNotFound, "%s", id)
		} else if err != nil {
			return err
		}
		return txn.Delete(gameKey(id))
	})
}
