// Package repositories persists merged transcripts locally: a badger store
// for the items themselves and a bluge index for full-text search.
package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"connect-chat/domain"

	"github.com/dgraph-io/badger/v4"
)

const defaultPageSize = 50

// TranscriptRepository stores transcript items under time-ordered keys so
// a prefix scan replays a contact's transcript in order.
//
// Key layout:
//
//	item:<contact>:<id>                    -> data key (dedup index)
//	transcript:<contact>:<nano>:<id>       -> item JSON
type TranscriptRepository struct {
	db    *badger.DB
	log   *slog.Logger
	limit *int
}

func NewTranscriptRepository(db *badger.DB, log *slog.Logger, limit *int) *TranscriptRepository {
	return &TranscriptRepository{db: db, log: log, limit: limit}
}

// StoreItem persists one item. Storing the same id twice is a no-op: the
// first-seen copy wins, mirroring the reconciler's duplicate rule.
func (r TranscriptRepository) StoreItem(item domain.TranscriptItem) error {
	if item.ID == "" || item.ContactID == "" {
		return fmt.Errorf("transcript item needs id and contact id")
	}

	dataKey := fmt.Sprintf("transcript:%s:%020d:%s", item.ContactID, item.AbsoluteTime.UTC().UnixNano(), item.ID)
	indexKey := fmt.Sprintf("item:%s:%s", item.ContactID, item.ID)

	value, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encoding transcript item: %w", err)
	}

	return r.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(indexKey))
		if err == nil {
			// Already stored through the other delivery path.
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err := txn.Set([]byte(indexKey), []byte(dataKey)); err != nil {
			return err
		}
		return txn.Set([]byte(dataKey), value)
	})
}

// GetItems returns one page of a contact's transcript in time order plus
// the cursor for the next page. A nil cursor starts from the beginning; a
// nil returned cursor means the transcript is exhausted.
func (r TranscriptRepository) GetItems(contactID string, cursor []byte) ([]domain.TranscriptItem, []byte, error) {
	limit := defaultPageSize
	if r.limit != nil {
		limit = *r.limit
	}

	prefix := []byte(fmt.Sprintf("transcript:%s:", contactID))
	seek := prefix
	if len(cursor) > 0 {
		seek = cursor
	}

	var items []domain.TranscriptItem
	var next []byte

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		opts.PrefetchSize = limit

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			if len(items) == limit {
				// One row past the page: its key is the next cursor.
				next = it.Item().KeyCopy(nil)
				return nil
			}
			err := it.Item().Value(func(v []byte) error {
				var item domain.TranscriptItem
				if err := json.Unmarshal(v, &item); err != nil {
					return fmt.Errorf("decoding transcript item: %w", err)
				}
				items = append(items, item)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("transcript page fetch: %w", err)
	}

	return items, next, nil
}

// CountItems reports how many items are stored for a contact.
func (r TranscriptRepository) CountItems(contactID string) (int, error) {
	prefix := []byte(fmt.Sprintf("item:%s:", contactID))
	count := 0
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}
