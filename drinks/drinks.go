// Package drinks keeps the shared drinks log: where, what, how much was
// spent on the drink itself and on chakana (the side snacks), and who was
// there. Entries involving both persons are split in half in the summary.
package drinks

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"nutrispend/core"
	"nutrispend/log"
	"nutrispend/store"
)

// Type is the kind of drink logged.
type Type string

const (
	Beer   Type = "Beer"
	Whisky Type = "Whisky"
	Vodka  Type = "Vodka"
	Other  Type = "Other"
)

func (t Type) Valid() bool {
	switch t {
	case Beer, Whisky, Vodka, Other:
		return true
	}
	return false
}

// Entry is one drinks outing. People holds one person for a solo entry or
// both for a shared one.
type Entry struct {
	ID            string        `json:"id"`
	Date          core.Date     `json:"date"`
	Place         string        `json:"place"`
	Drink         Type          `json:"drink"`
	DrinkAmount   core.Money    `json:"drinkAmount"`
	Chakana       string        `json:"chakana,omitempty"`
	ChakanaAmount core.Money    `json:"chakanaAmount"`
	People        []core.Person `json:"people"`
}

// Total is the combined spend of the outing.
func (e Entry) Total() core.Money {
	return e.DrinkAmount.Add(e.ChakanaAmount)
}

// Shared reports whether both persons were part of the entry.
func (e Entry) Shared() bool {
	return len(e.People) == 2
}

func (e Entry) validate() error {
	if strings.TrimSpace(e.Place) == "" {
		return fmt.Errorf("%w: place required", core.ErrEmptyTitle)
	}
	if !e.Drink.Valid() {
		return fmt.Errorf("invalid drink type %q", string(e.Drink))
	}
	if err := e.DrinkAmount.Validate(); err != nil {
		return err
	}
	if e.ChakanaAmount.Paise < 0 {
		return core.ErrInvalidAmount
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if len(e.People) < 1 || len(e.People) > 2 {
		return fmt.Errorf("%w: one or both persons required", core.ErrUnknownPerson)
	}
	seen := map[core.Person]bool{}
	for _, p := range e.People {
		if err := p.Validate(); err != nil {
			return err
		}
		if seen[p] {
			return fmt.Errorf("%w: duplicate person", core.ErrUnknownPerson)
		}
		seen[p] = true
	}
	return nil
}

// Summary is the per-person spend breakdown.
type Summary struct {
	Personal core.Money // solo entries of this person
	Shared   core.Money // full amount of both-person entries
	Overall  core.Money // personal plus half of shared
}

// Log wraps the persisted drinks list. New entries are prepended so the
// stored order is newest first.
type Log struct {
	store store.Store
}

func New(s store.Store) *Log {
	return &Log{store: s}
}

// Add validates and prepends an entry.
func (l *Log) Add(ctx context.Context, e Entry) (Entry, error) {
	e.Place = strings.TrimSpace(e.Place)
	e.Chakana = strings.TrimSpace(e.Chakana)
	if err := e.validate(); err != nil {
		return Entry{}, err
	}
	e.ID = uuid.NewString()

	entries := append([]Entry{e}, l.load(ctx)...)
	if err := store.SaveList(ctx, l.store, store.KeyDrinks, entries); err != nil {
		return Entry{}, err
	}

	slog.InfoContext(ctx, "Drink entry added",
		log.FieldComponent, log.ComponentDrinks,
		"id", e.ID,
		"place", e.Place,
		"drink", string(e.Drink),
		"total", e.Total().String(),
		"shared", e.Shared())
	return e, nil
}

// Delete removes an entry; unknown IDs are a no-op.
func (l *Log) Delete(ctx context.Context, id string) error {
	entries := l.load(ctx)
	for i := range entries {
		if entries[i].ID != id {
			continue
		}
		entries = append(entries[:i], entries[i+1:]...)
		if err := store.SaveList(ctx, l.store, store.KeyDrinks, entries); err != nil {
			return err
		}
		slog.InfoContext(ctx, "Drink entry deleted",
			log.FieldComponent, log.ComponentDrinks, "id", id)
		return nil
	}
	return nil
}

// Entries returns the log in stored (newest first) order.
func (l *Log) Entries(ctx context.Context) []Entry {
	return l.load(ctx)
}

// Summarize totals the person's solo entries, the shared entries, and the
// overall share (personal + shared/2, half-up on the odd paisa).
func (l *Log) Summarize(ctx context.Context, person core.Person) Summary {
	var s Summary
	for _, e := range l.load(ctx) {
		switch {
		case e.Shared():
			s.Shared = s.Shared.Add(e.Total())
		case len(e.People) == 1 && e.People[0] == person:
			s.Personal = s.Personal.Add(e.Total())
		}
	}
	s.Overall = s.Personal.Add(s.Shared.Half())
	return s
}

func (l *Log) load(ctx context.Context) []Entry {
	return store.LoadList[Entry](ctx, l.store, store.KeyDrinks)
}
