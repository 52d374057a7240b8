// Package meals maintains the per-person meal log and its calorie
// aggregates. Calories are computed by the caller at entry time (unit
// kcal × quantity) and stored as given; the aggregator validates but never
// re-derives them.
package meals

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"nutrispend/core"
	"nutrispend/log"
	"nutrispend/store"
)

// Type is the meal slot. Display order is fixed: Breakfast, Lunch, Snacks,
// Dinner; anything else sorts last.
type Type string

const (
	Breakfast Type = "Breakfast"
	Lunch     Type = "Lunch"
	Dinner    Type = "Dinner"
	Snacks    Type = "Snacks"
)

var displayOrder = map[Type]int{
	Breakfast: 1,
	Lunch:     2,
	Snacks:    3,
	Dinner:    4,
}

func (t Type) Valid() bool {
	_, ok := displayOrder[t]
	return ok
}

func (t Type) order() int {
	if n, ok := displayOrder[t]; ok {
		return n
	}
	return 99
}

// Entry is one logged meal.
type Entry struct {
	ID       string      `json:"id"`
	Person   core.Person `json:"user"`
	Type     Type        `json:"type"`
	Food     string      `json:"food"`
	Quantity float64     `json:"quantity"`
	Calories int         `json:"calories"`
	Date     core.Date   `json:"date"`
}

func (e Entry) validate() error {
	if err := e.Person.Validate(); err != nil {
		return err
	}
	if !e.Type.Valid() {
		return fmt.Errorf("%w: %q", core.ErrUnknownMealType, string(e.Type))
	}
	if strings.TrimSpace(e.Food) == "" {
		return core.ErrEmptyFood
	}
	if e.Quantity <= 0 {
		return core.ErrInvalidQuantity
	}
	if e.Calories <= 0 {
		return fmt.Errorf("%w: calories must be positive", core.ErrInvalidAmount)
	}
	return e.Date.Validate()
}

// UnmarshalJSON accepts both string and numeric ids. Older logs stamped
// entries with epoch-millisecond numbers; those decode to their decimal
// string form so Edit and Delete address them like any other entry.
func (e *Entry) UnmarshalJSON(data []byte) error {
	type entry Entry
	aux := struct {
		ID json.RawMessage `json:"id"`
		*entry
	}{entry: (*entry)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	e.ID = idString(aux.ID)
	return nil
}

func idString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}

// DayTotal is one point of a trailing calorie series.
type DayTotal struct {
	Date     core.Date
	Calories int
}

// Log wraps the persisted meal list.
type Log struct {
	store store.Store
}

func New(s store.Store) *Log {
	return &Log{store: s}
}

// Add validates and appends a meal. Nothing is persisted on a validation
// failure.
func (l *Log) Add(ctx context.Context, e Entry) (Entry, error) {
	e.Food = strings.TrimSpace(e.Food)
	if err := e.validate(); err != nil {
		return Entry{}, err
	}
	e.ID = uuid.NewString()

	entries := l.load(ctx)
	entries = append(entries, e)
	if err := store.SaveList(ctx, l.store, store.KeyMeals, entries); err != nil {
		return Entry{}, err
	}

	slog.InfoContext(ctx, "Meal added",
		log.FieldComponent, log.ComponentMeals,
		"id", e.ID,
		"person", string(e.Person),
		"type", string(e.Type),
		"food", e.Food,
		"calories", e.Calories,
		"date", e.Date.String())
	return e, nil
}

// Edit replaces the entry with the given ID wholesale.
func (l *Log) Edit(ctx context.Context, id string, e Entry) (Entry, error) {
	e.Food = strings.TrimSpace(e.Food)
	if err := e.validate(); err != nil {
		return Entry{}, err
	}

	entries := l.load(ctx)
	for i := range entries {
		if entries[i].ID != id {
			continue
		}
		e.ID = id
		entries[i] = e
		if err := store.SaveList(ctx, l.store, store.KeyMeals, entries); err != nil {
			return Entry{}, err
		}
		slog.InfoContext(ctx, "Meal edited", log.FieldComponent, log.ComponentMeals, "id", id)
		return e, nil
	}
	return Entry{}, fmt.Errorf("edit meal %s: %w", id, core.ErrNotFound)
}

// Delete removes a meal; unknown IDs are a no-op.
func (l *Log) Delete(ctx context.Context, id string) error {
	entries := l.load(ctx)
	for i := range entries {
		if entries[i].ID != id {
			continue
		}
		entries = append(entries[:i], entries[i+1:]...)
		if err := store.SaveList(ctx, l.store, store.KeyMeals, entries); err != nil {
			return err
		}
		slog.InfoContext(ctx, "Meal deleted", log.FieldComponent, log.ComponentMeals, "id", id)
		return nil
	}
	return nil
}

// DailyTotal sums the calories the person logged on the given day.
func (l *Log) DailyTotal(ctx context.Context, person core.Person, date core.Date) int {
	total := 0
	for _, e := range l.load(ctx) {
		if e.Person == person && e.Date.Equal(date) {
			total += e.Calories
		}
	}
	return total
}

// DailySorted returns the person's meals for the day in display order.
// Entries of the same type keep their logged order.
func (l *Log) DailySorted(ctx context.Context, person core.Person, date core.Date) []Entry {
	var out []Entry
	for _, e := range l.load(ctx) {
		if e.Person == person && e.Date.Equal(date) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Type.order() < out[j].Type.order()
	})
	return out
}

// Trailing yields one DayTotal per calendar day for the `days` days ending
// at anchor, oldest first. The entry list is read once up front; the
// series itself is produced lazily.
func (l *Log) Trailing(ctx context.Context, person core.Person, days int, anchor core.Date) iter.Seq[DayTotal] {
	totals := make(map[string]int)
	for _, e := range l.load(ctx) {
		if e.Person == person {
			totals[e.Date.String()] += e.Calories
		}
	}
	return func(yield func(DayTotal) bool) {
		for i := days - 1; i >= 0; i-- {
			d := anchor.AddDays(-i)
			if !yield(DayTotal{Date: d, Calories: totals[d.String()]}) {
				return
			}
		}
	}
}

// Entries returns the full log in stored order.
func (l *Log) Entries(ctx context.Context) []Entry {
	return l.load(ctx)
}

func (l *Log) load(ctx context.Context) []Entry {
	return store.LoadList[Entry](ctx, l.store, store.KeyMeals)
}
