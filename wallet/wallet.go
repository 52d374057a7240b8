// Package wallet maintains the per-person cash ledger. Entries are
// append-ordered; each carries the running balance after itself. Deleting
// an entry replays the owner's whole chain, because every later balance
// depends on the deleted one.
package wallet

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"nutrispend/core"
	"nutrispend/log"
	"nutrispend/store"
)

// Kind distinguishes money coming in from money going out.
type Kind string

const (
	Credit Kind = "CREDIT"
	Debit  Kind = "DEBIT"
)

func (k Kind) Valid() bool {
	return k == Credit || k == Debit
}

// Order selects the timestamp direction for the display view.
type Order int

const (
	Newest Order = iota
	Oldest
)

// Entry is one wallet movement. BalanceAfter is derived: it is the signed
// sum of the owner's entries up to and including this one, in stored order.
type Entry struct {
	ID           string      `json:"id"`
	Person       core.Person `json:"user"`
	Kind         Kind        `json:"type"`
	Title        string      `json:"title"`
	Amount       core.Money  `json:"amount"`
	Time         time.Time   `json:"date"`
	BalanceAfter core.Money  `json:"balanceAfter"`
}

func (e Entry) signed() core.Money {
	if e.Kind == Credit {
		return e.Amount
	}
	return e.Amount.Neg()
}

// Ledger wraps the persisted wallet list with its derived-balance rules.
type Ledger struct {
	store store.Store
	now   func() time.Time
}

func New(s store.Store) *Ledger {
	return &Ledger{store: s, now: time.Now}
}

// NewWithClock is used by tests that need deterministic timestamps.
func NewWithClock(s store.Store, now func() time.Time) *Ledger {
	return &Ledger{store: s, now: now}
}

// Record validates and appends a movement, snapshotting the owner's new
// running balance. Nothing is persisted when validation fails.
func (l *Ledger) Record(ctx context.Context, person core.Person, kind Kind, title string, amount core.Money) (Entry, error) {
	if err := person.Validate(); err != nil {
		return Entry{}, err
	}
	if !kind.Valid() {
		return Entry{}, fmt.Errorf("invalid entry kind %q", string(kind))
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return Entry{}, core.ErrEmptyTitle
	}
	if err := amount.Validate(); err != nil {
		return Entry{}, err
	}

	entries := l.load(ctx)
	entry := Entry{
		ID:     uuid.NewString(),
		Person: person,
		Kind:   kind,
		Title:  title,
		Amount: amount,
		Time:   l.now(),
	}
	entry.BalanceAfter = lastBalance(entries, person).Add(entry.signed())

	entries = append(entries, entry)
	if err := store.SaveList(ctx, l.store, store.KeyWallet, entries); err != nil {
		return Entry{}, err
	}

	slog.InfoContext(ctx, "Wallet entry recorded",
		log.FieldComponent, log.ComponentWallet,
		"id", entry.ID,
		"person", string(person),
		"kind", string(kind),
		"amount", amount.String(),
		"balance_after", entry.BalanceAfter.String())
	return entry, nil
}

// Delete removes an entry and replays the owner's remaining chain from
// zero, rewriting every BalanceAfter. Skipping the replay would silently
// corrupt all balances recorded after the deleted entry. Unknown IDs are a
// no-op.
func (l *Ledger) Delete(ctx context.Context, id string) error {
	entries := l.load(ctx)

	idx := -1
	for i, e := range entries {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	owner := entries[idx].Person
	entries = append(entries[:idx], entries[idx+1:]...)

	// Replay is keyed on the deleted entry's owner, not on whoever is on
	// screen: the other person's chain is untouched.
	balance := core.Money{}
	for i := range entries {
		if entries[i].Person != owner {
			continue
		}
		balance = balance.Add(entries[i].signed())
		entries[i].BalanceAfter = balance
	}

	if err := store.SaveList(ctx, l.store, store.KeyWallet, entries); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Wallet entry deleted",
		log.FieldComponent, log.ComponentWallet,
		"id", id, "person", string(owner), "new_balance", balance.String())
	return nil
}

// CurrentBalance is the BalanceAfter of the person's last entry in append
// order. Timestamp views never feed this; display order and balance order
// are independent.
func (l *Ledger) CurrentBalance(ctx context.Context, person core.Person) core.Money {
	return lastBalance(l.load(ctx), person)
}

// Entries returns the person's entries in stored (append) order.
func (l *Ledger) Entries(ctx context.Context, person core.Person) []Entry {
	var out []Entry
	for _, e := range l.load(ctx) {
		if e.Person == person {
			out = append(out, e)
		}
	}
	return out
}

// Sorted is a read-only view of the person's entries ordered by timestamp.
// It never mutates the list or re-derives balances.
func (l *Ledger) Sorted(ctx context.Context, person core.Person, order Order) []Entry {
	out := l.Entries(ctx, person)
	sort.SliceStable(out, func(i, j int) bool {
		if order == Oldest {
			return out[i].Time.Before(out[j].Time)
		}
		return out[j].Time.Before(out[i].Time)
	})
	return out
}

func (l *Ledger) load(ctx context.Context) []Entry {
	return store.LoadList[Entry](ctx, l.store, store.KeyWallet)
}

func lastBalance(entries []Entry, person core.Person) core.Money {
	balance := core.Money{}
	for _, e := range entries {
		if e.Person == person {
			balance = e.BalanceAfter
		}
	}
	return balance
}
