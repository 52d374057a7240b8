package meals

import (
	"context"
	"errors"
	"testing"

	"nutrispend/core"
	"nutrispend/store"
	"nutrispend/store/memory"
)

var day = core.NewDate(2025, 3, 1)

func entry(p core.Person, t Type, food string, cal int, d core.Date) Entry {
	return Entry{Person: p, Type: t, Food: food, Quantity: 1, Calories: cal, Date: d}
}

func mustAdd(t *testing.T, l *Log, e Entry) Entry {
	t.Helper()
	added, err := l.Add(context.Background(), e)
	if err != nil {
		t.Fatalf("Add(%+v): %v", e, err)
	}
	return added
}

func TestDailyTotal(t *testing.T) {
	l := New(memory.New())
	ctx := context.Background()

	mustAdd(t, l, entry(core.Tejas, Breakfast, "poha", 200, day))
	mustAdd(t, l, entry(core.Tejas, Lunch, "dal rice", 500, day))
	mustAdd(t, l, entry(core.Tejas, Snacks, "biscuits", 150, day))
	// Different person and different day must not count.
	mustAdd(t, l, entry(core.Nikita, Lunch, "dal rice", 500, day))
	mustAdd(t, l, entry(core.Tejas, Dinner, "roti sabzi", 400, day.AddDays(1)))

	if got := l.DailyTotal(ctx, core.Tejas, day); got != 850 {
		t.Errorf("DailyTotal = %d, want 850", got)
	}
	if got := l.DailyTotal(ctx, core.Nikita, day.AddDays(1)); got != 0 {
		t.Errorf("DailyTotal for empty day = %d, want 0", got)
	}
}

func TestAddValidation(t *testing.T) {
	l := New(memory.New())
	ctx := context.Background()

	tests := []struct {
		name    string
		e       Entry
		wantErr error
	}{
		{"unknown meal type", entry(core.Tejas, "Brunch", "toast", 100, day), core.ErrUnknownMealType},
		{"empty food", entry(core.Tejas, Lunch, "   ", 100, day), core.ErrEmptyFood},
		{"zero calories", entry(core.Tejas, Lunch, "water", 0, day), core.ErrInvalidAmount},
		{"zero quantity", Entry{Person: core.Tejas, Type: Lunch, Food: "rice", Calories: 100, Date: day}, core.ErrInvalidQuantity},
		{"unknown person", entry("Alice", Lunch, "rice", 100, day), core.ErrUnknownPerson},
		{"zero date", entry(core.Tejas, Lunch, "rice", 100, core.Date{}), core.ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.Add(ctx, tt.e)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Add = %v, want %v", err, tt.wantErr)
			}
		})
	}
	if got := l.Entries(ctx); len(got) != 0 {
		t.Errorf("rejected entries persisted: %+v", got)
	}
}

func TestDailySortedOrder(t *testing.T) {
	l := New(memory.New())
	ctx := context.Background()

	mustAdd(t, l, entry(core.Tejas, Dinner, "roti", 300, day))
	mustAdd(t, l, entry(core.Tejas, Snacks, "chips", 150, day))
	mustAdd(t, l, entry(core.Tejas, Breakfast, "eggs", 155, day))
	mustAdd(t, l, entry(core.Tejas, Snacks, "fruit", 60, day))
	mustAdd(t, l, entry(core.Tejas, Lunch, "biryani", 600, day))

	got := l.DailySorted(ctx, core.Tejas, day)
	wantOrder := []Type{Breakfast, Lunch, Snacks, Snacks, Dinner}
	if len(got) != len(wantOrder) {
		t.Fatalf("%d entries, want %d", len(got), len(wantOrder))
	}
	for i, want := range wantOrder {
		if got[i].Type != want {
			t.Errorf("position %d = %s, want %s", i, got[i].Type, want)
		}
	}
	// Equal types keep insertion order (chips before fruit).
	if got[2].Food != "chips" || got[3].Food != "fruit" {
		t.Errorf("stable order broken: %s, %s", got[2].Food, got[3].Food)
	}
}

func TestEdit(t *testing.T) {
	l := New(memory.New())
	ctx := context.Background()

	e := mustAdd(t, l, entry(core.Tejas, Lunch, "rice", 130, day))

	edited, err := l.Edit(ctx, e.ID, entry(core.Tejas, Lunch, "rice", 260, day))
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if edited.ID != e.ID {
		t.Errorf("edit changed ID: %s -> %s", e.ID, edited.ID)
	}
	if got := l.DailyTotal(ctx, core.Tejas, day); got != 260 {
		t.Errorf("DailyTotal after edit = %d, want 260", got)
	}

	if _, err := l.Edit(ctx, "missing", entry(core.Tejas, Lunch, "rice", 130, day)); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Edit missing id = %v, want ErrNotFound", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	l := New(memory.New())
	ctx := context.Background()

	e := mustAdd(t, l, entry(core.Tejas, Lunch, "rice", 130, day))
	keep := mustAdd(t, l, entry(core.Tejas, Dinner, "roti", 300, day))

	if err := l.Delete(ctx, e.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := l.Delete(ctx, e.ID); err != nil {
		t.Fatalf("second Delete: %v", err)
	}

	got := l.Entries(ctx)
	if len(got) != 1 || got[0].ID != keep.ID {
		t.Errorf("Entries after delete = %+v", got)
	}
}

func TestTrailing(t *testing.T) {
	l := New(memory.New())
	ctx := context.Background()

	anchor := core.NewDate(2025, 3, 6)
	mustAdd(t, l, entry(core.Tejas, Breakfast, "eggs", 155, anchor))
	mustAdd(t, l, entry(core.Tejas, Lunch, "rice", 300, anchor))
	mustAdd(t, l, entry(core.Tejas, Dinner, "roti", 250, anchor.AddDays(-2)))
	mustAdd(t, l, entry(core.Nikita, Dinner, "roti", 999, anchor.AddDays(-1)))

	var got []DayTotal
	for dt := range l.Trailing(ctx, core.Tejas, 6, anchor) {
		got = append(got, dt)
	}

	if len(got) != 6 {
		t.Fatalf("%d day totals, want 6", len(got))
	}
	if !got[0].Date.Equal(anchor.AddDays(-5)) {
		t.Errorf("series starts at %s, want %s", got[0].Date, anchor.AddDays(-5))
	}
	if !got[5].Date.Equal(anchor) {
		t.Errorf("series ends at %s, want %s", got[5].Date, anchor)
	}
	wantCalories := []int{0, 0, 0, 250, 0, 455}
	for i, want := range wantCalories {
		if got[i].Calories != want {
			t.Errorf("day %d (%s) = %d kcal, want %d", i, got[i].Date, got[i].Calories, want)
		}
	}
}

func TestTrailingEarlyStop(t *testing.T) {
	l := New(memory.New())
	n := 0
	for range l.Trailing(context.Background(), core.Tejas, 30, day) {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("consumed %d elements, want 3", n)
	}
}

func TestNumericIDBlobLoads(t *testing.T) {
	s := memory.New()
	s.Seed(store.KeyMeals, []byte(
		`[{"id":1723456789000,"user":"Tejas","type":"Lunch","food":"Rice","quantity":2,"calories":260,"date":"2025-03-01"}]`))
	l := New(s)
	ctx := context.Background()

	got := l.Entries(ctx)
	if len(got) != 1 {
		t.Fatalf("loaded %d entries, want 1", len(got))
	}
	if got[0].ID != "1723456789000" {
		t.Errorf("ID = %q, want stringified number", got[0].ID)
	}
	if total := l.DailyTotal(ctx, core.Tejas, day); total != 260 {
		t.Errorf("DailyTotal = %d, want 260", total)
	}

	if err := l.Delete(ctx, "1723456789000"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if remaining := l.Entries(ctx); len(remaining) != 0 {
		t.Errorf("entry not deleted: %+v", remaining)
	}
}
