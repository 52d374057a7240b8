// Package settlement tracks shared expenses and loans between the two
// participants and derives who owes whom. The owed direction is always
// payer ← counterparty; the counterparty is never stored independently,
// it is derived from the payer.
//
// Net position rule: expense shares always count, loans count only while
// unsettled. Settling a loan removes it from the balance; marking an
// expense settled only hides it from the pending list.
package settlement

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

// Kind tags an entry as a shared expense or a loan.
type Kind string

const (
	Expense Kind = "EXPENSE"
	Loan    Kind = "LOAN"
)

func (k Kind) Valid() bool {
	return k == Expense || k == Loan
}

// SplitMode governs how an entry's cost is attributed.
type SplitMode string

const (
	// Equal splits the amount in half between payer and counterparty.
	Equal SplitMode = "EQUAL"
	// FullToPayer attributes the whole amount to the counterparty.
	FullToPayer SplitMode = "FULL"
)

func (s SplitMode) Valid() bool {
	return s == Equal || s == FullToPayer
}

// Entry is one shared expense or loan. Settled is the only field that
// mutates in place.
type Entry struct {
	ID           string      `json:"id"`
	Kind         Kind        `json:"kind"`
	Title        string      `json:"title"`
	Description  string      `json:"description,omitempty"`
	Amount       core.Money  `json:"amount"`
	Date         core.Date   `json:"date"`
	PaidBy       core.Person `json:"paidBy"`
	Counterparty core.Person `json:"otherPerson"`
	Split        SplitMode   `json:"split"`
	Settled      bool        `json:"settled"`
}

// OwedAmount is what the counterparty owes the payer for this entry.
func (e Entry) OwedAmount() core.Money {
	if e.Split == Equal {
		return e.Amount.Half()
	}
	return e.Amount
}

func (e Entry) validate() error {
	if !e.Kind.Valid() {
		return fmt.Errorf("invalid entry kind %q", string(e.Kind))
	}
	if !e.Split.Valid() {
		return fmt.Errorf("invalid split mode %q", string(e.Split))
	}
	if strings.TrimSpace(e.Title) == "" {
		return core.ErrEmptyTitle
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	return e.PaidBy.Validate()
}

// Position is the aggregate outcome of the whole entry list.
type Position struct {
	Creditor  core.Person
	Debtor    core.Person
	Amount    core.Money
	SettledUp bool
}

func (p Position) String() string {
	if p.SettledUp {
		return "You are settled up"
	}
	return fmt.Sprintf("%s owes %s %s", p.Debtor, p.Creditor, p.Amount)
}

// Ledger wraps the persisted settlement list.
type Ledger struct {
	store store.Store
}

func New(s store.Store) *Ledger {
	return &Ledger{store: s}
}

// Draft carries the caller-supplied fields of a new or edited entry.
type Draft struct {
	Kind        Kind
	Title       string
	Description string
	Amount      core.Money
	Date        core.Date
	PaidBy      core.Person
	Split       SplitMode
}

func (d Draft) entry() Entry {
	return Entry{
		Kind:         d.Kind,
		Title:        strings.TrimSpace(d.Title),
		Description:  strings.TrimSpace(d.Description),
		Amount:       d.Amount,
		Date:         d.Date,
		PaidBy:       d.PaidBy,
		Counterparty: d.PaidBy.Other(),
		Split:        d.Split,
	}
}

// Add validates the draft, derives the counterparty and appends the entry
// with Settled=false.
func (l *Ledger) Add(ctx context.Context, d Draft) (Entry, error) {
	entry := d.entry()
	if err := entry.validate(); err != nil {
		return Entry{}, err
	}
	entry.ID = uuid.NewString()

	entries := l.load(ctx)
	entries = append(entries, entry)
	if err := store.SaveList(ctx, l.store, store.KeySettlements, entries); err != nil {
		return Entry{}, err
	}

	slog.InfoContext(ctx, "Settlement entry added",
		log.FieldComponent, log.ComponentSettlement,
		"id", entry.ID,
		"kind", string(entry.Kind),
		"paid_by", string(entry.PaidBy),
		"amount", entry.Amount.String(),
		"owed", entry.OwedAmount().String())
	return entry, nil
}

// Edit replaces the entry with the given ID. The counterparty and owed
// amount are re-derived exactly as Add derives them; the settled flag is
// preserved from the stored entry.
func (l *Ledger) Edit(ctx context.Context, id string, d Draft) (Entry, error) {
	entry := d.entry()
	if err := entry.validate(); err != nil {
		return Entry{}, err
	}

	entries := l.load(ctx)
	for i := range entries {
		if entries[i].ID != id {
			continue
		}
		entry.ID = id
		entry.Settled = entries[i].Settled
		entries[i] = entry
		if err := store.SaveList(ctx, l.store, store.KeySettlements, entries); err != nil {
			return Entry{}, err
		}
		slog.InfoContext(ctx, "Settlement entry edited",
			log.FieldComponent, log.ComponentSettlement, "id", id)
		return entry, nil
	}
	return Entry{}, fmt.Errorf("edit settlement %s: %w", id, core.ErrNotFound)
}

// ToggleSettled flips the settled flag and nothing else. Reaching a zero
// net position never settles entries automatically.
func (l *Ledger) ToggleSettled(ctx context.Context, id string) (Entry, error) {
	entries := l.load(ctx)
	for i := range entries {
		if entries[i].ID != id {
			continue
		}
		entries[i].Settled = !entries[i].Settled
		if err := store.SaveList(ctx, l.store, store.KeySettlements, entries); err != nil {
			return Entry{}, err
		}
		slog.InfoContext(ctx, "Settlement entry toggled",
			log.FieldComponent, log.ComponentSettlement,
			"id", id, "settled", entries[i].Settled)
		return entries[i], nil
	}
	return Entry{}, fmt.Errorf("toggle settlement %s: %w", id, core.ErrNotFound)
}

// Delete removes the entry; unknown IDs are a no-op. No recompute is
// needed here, aggregates are derived on read.
func (l *Ledger) Delete(ctx context.Context, id string) error {
	entries := l.load(ctx)
	for i := range entries {
		if entries[i].ID != id {
			continue
		}
		entries = append(entries[:i], entries[i+1:]...)
		if err := store.SaveList(ctx, l.store, store.KeySettlements, entries); err != nil {
			return err
		}
		slog.InfoContext(ctx, "Settlement entry deleted",
			log.FieldComponent, log.ComponentSettlement, "id", id)
		return nil
	}
	return nil
}

// Entries returns all entries in stored order.
func (l *Ledger) Entries(ctx context.Context) []Entry {
	return l.load(ctx)
}

// Loans returns the loans visible to a person (either side of the debt),
// in stored order.
func (l *Ledger) Loans(ctx context.Context, person core.Person) []Entry {
	var out []Entry
	for _, e := range l.load(ctx) {
		if e.Kind == Loan && (e.PaidBy == person || e.Counterparty == person) {
			out = append(out, e)
		}
	}
	return out
}

// PendingLoans returns the person's unsettled loans, in stored order.
// Settled loans stay in Loans for history but drop out of here.
func (l *Ledger) PendingLoans(ctx context.Context, person core.Person) []Entry {
	var out []Entry
	for _, e := range l.Loans(ctx, person) {
		if !e.Settled {
			out = append(out, e)
		}
	}
	return out
}

// NetPosition folds the full entry list into a single signed debt. It is a
// pure function of the stored entries; no accumulator survives between
// calls.
func (l *Ledger) NetPosition(ctx context.Context) Position {
	return NetOf(l.load(ctx))
}

// NetOf computes the net position of an arbitrary entry list. Positive
// running total means Nikita owes Tejas.
func NetOf(entries []Entry) Position {
	var owedToTejas core.Money
	for _, e := range entries {
		if e.Kind == Loan && e.Settled {
			continue
		}
		owed := e.OwedAmount()
		if e.PaidBy == core.Tejas {
			owedToTejas = owedToTejas.Add(owed)
		} else {
			owedToTejas = owedToTejas.Sub(owed)
		}
	}

	switch {
	case owedToTejas.IsZero():
		return Position{SettledUp: true}
	case owedToTejas.Paise > 0:
		return Position{Creditor: core.Tejas, Debtor: core.Nikita, Amount: owedToTejas}
	default:
		return Position{Creditor: core.Nikita, Debtor: core.Tejas, Amount: owedToTejas.Neg()}
	}
}

// TotalExpenses sums the full amounts of expense entries paid by person,
// regardless of settled state. Feeds the spending comparison chart.
func (l *Ledger) TotalExpenses(ctx context.Context, person core.Person) core.Money {
	var total core.Money
	for _, e := range l.load(ctx) {
		if e.Kind == Expense && e.PaidBy == person {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// PendingLoanTotal sums unsettled loan amounts the person still owes.
func (l *Ledger) PendingLoanTotal(ctx context.Context, person core.Person) core.Money {
	var total core.Money
	for _, e := range l.load(ctx) {
		if e.Kind == Loan && !e.Settled && e.Counterparty == person {
			total = total.Add(e.Amount)
		}
	}
	return total
}

func (l *Ledger) load(ctx context.Context) []Entry {
	return store.LoadList[Entry](ctx, l.store, store.KeySettlements)
}
