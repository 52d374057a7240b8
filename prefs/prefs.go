// Package prefs persists the small bits of UI state the screens share:
// the currently selected person and the recently used food names. These
// are conveniences only; ledger operations always take the person as an
// explicit parameter and never read the active user themselves.
package prefs

import (
	"context"

	"nutrispend/core"
	"nutrispend/store"
)

// RecentFoodsCap bounds the most-recently-used food list.
const RecentFoodsCap = 5

type Prefs struct {
	store store.Store
}

func New(s store.Store) *Prefs {
	return &Prefs{store: s}
}

// ActiveUser returns the persisted selection, defaulting to Tejas when the
// key is absent or holds an unknown name.
func (p *Prefs) ActiveUser(ctx context.Context) core.Person {
	person, err := core.ParsePerson(store.LoadString(ctx, p.store, store.KeyActiveUser))
	if err != nil {
		return core.Tejas
	}
	return person
}

func (p *Prefs) SetActiveUser(ctx context.Context, person core.Person) error {
	if err := person.Validate(); err != nil {
		return err
	}
	return store.SaveString(ctx, p.store, store.KeyActiveUser, string(person))
}

// RecentFoods returns the MRU food names, most recent first.
func (p *Prefs) RecentFoods(ctx context.Context) []string {
	return store.LoadList[string](ctx, p.store, store.KeyRecentFoods)
}

// TouchFood moves a food name to the front of the MRU list, deduplicating
// and trimming to RecentFoodsCap.
func (p *Prefs) TouchFood(ctx context.Context, name string) error {
	if name == "" {
		return core.ErrEmptyFood
	}
	recent := []string{name}
	for _, f := range p.RecentFoods(ctx) {
		if f == name {
			continue
		}
		recent = append(recent, f)
		if len(recent) == RecentFoodsCap {
			break
		}
	}
	return store.SaveList(ctx, p.store, store.KeyRecentFoods, recent)
}
