// Package store abstracts the key→JSON-document persistence the engine
// runs on. Each ledger owns one document holding its full entry list;
// every mutation is a whole-document replace (load, compute, save), so a
// reader never observes a partially written list.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"nutrispend/log"
)

// Document keys. Names match the original local-storage layout so that
// exported blobs remain readable.
const (
	KeyMeals       = "meals"
	KeyWallet      = "wallet_entries_v1"
	KeySettlements = "simple_entries_v1"
	KeyDrinks      = "drink_logs_v2"
	KeyActiveUser  = "activeUser"
	KeyRecentFoods = "recentFoods"
)

// ErrNoDocument is returned by Load when the key has never been written.
var ErrNoDocument = errors.New("no document for key")

// Store is a flat key→document blob store.
type Store interface {
	// Load returns the raw document for key, or ErrNoDocument.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save replaces the document for key atomically.
	Save(ctx context.Context, key string, data []byte) error
}

// LoadList decodes the JSON array stored under key. An absent key, invalid
// JSON or a non-array document all yield an empty list: a corrupt blob must
// never take the app down, only lose its contents.
func LoadList[T any](ctx context.Context, s Store, key string) []T {
	data, err := s.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNoDocument) {
			slog.WarnContext(ctx, "Failed to load document, treating as empty",
				log.FieldComponent, log.ComponentStorage,
				log.FieldKey, key, log.FieldError, err)
		}
		return nil
	}
	var list []T
	if err := json.Unmarshal(data, &list); err != nil {
		slog.WarnContext(ctx, "Corrupt document, treating as empty",
			log.FieldComponent, log.ComponentStorage,
			log.FieldKey, key, log.FieldError, err)
		return nil
	}
	return list
}

// SaveList encodes the list as a JSON array and replaces the document.
func SaveList[T any](ctx context.Context, s Store, key string, list []T) error {
	if list == nil {
		list = []T{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Save(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// LoadString reads a bare string value (the activeUser key is stored raw,
// not JSON-encoded). Absent keys yield "".
func LoadString(ctx context.Context, s Store, key string) string {
	data, err := s.Load(ctx, key)
	if err != nil {
		return ""
	}
	return string(data)
}

// SaveString writes a bare string value.
func SaveString(ctx context.Context, s Store, key, value string) error {
	if err := s.Save(ctx, key, []byte(value)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
