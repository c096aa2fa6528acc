package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/napierala85-collab/kalendarz-soboty/internal/board"
)

// maxUpdateRetries bounds the optimistic retry loop in Update. Conflicts
// only happen when two writers race on the same document.
const maxUpdateRetries = 3

// ErrUpdateConflict is returned when Update loses the WATCH race on every
// attempt. Callers re-issue the request; nothing was persisted.
var ErrUpdateConflict = errors.New("board update conflict: concurrent writers")

// Store persists the board document as a single JSON blob in Redis.
type Store struct {
	client *redis.Client
}

// NewStore creates a new board store.
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// Load fetches the current document. An absent key is not an error: the
// document is created implicitly as an empty board.
func (s *Store) Load(ctx context.Context) (*board.Document, error) {
	data, err := s.client.Get(ctx, BoardKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return board.NewDocument(), nil
		}
		return nil, fmt.Errorf("failed to load board: %w", err)
	}
	return decode(data)
}

// Save overwrites the persisted document. The document never expires.
func (s *Store) Save(ctx context.Context, doc *board.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal board: %w", err)
	}
	if err := s.client.Set(ctx, BoardKey(), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save board: %w", err)
	}
	return nil
}

// Update runs mutate against the latest document and persists the result,
// using WATCH so a concurrent writer invalidates the attempt instead of
// being silently overwritten. On conflict the whole load-mutate-persist
// cycle retries with a fresh snapshot; an error from mutate aborts the
// write and is returned untouched.
func (s *Store) Update(ctx context.Context, mutate func(*board.Document) error) (*board.Document, error) {
	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		var updated *board.Document

		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			doc := board.NewDocument()
			data, err := tx.Get(ctx, BoardKey()).Bytes()
			if err != nil && !errors.Is(err, redis.Nil) {
				return fmt.Errorf("failed to load board: %w", err)
			}
			if err == nil {
				if doc, err = decode(data); err != nil {
					return err
				}
			}

			if err := mutate(doc); err != nil {
				return err
			}

			payload, err := json.Marshal(doc)
			if err != nil {
				return fmt.Errorf("failed to marshal board: %w", err)
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, BoardKey(), payload, 0)
				return nil
			})
			if err != nil {
				return err
			}

			updated = doc
			return nil
		}, BoardKey())

		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, ErrUpdateConflict
}

func decode(data []byte) (*board.Document, error) {
	var doc board.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal board: %w", err)
	}
	doc.Normalize()
	return &doc, nil
}
