package prefs

import (
	"context"
	"testing"

	"nutrispend/core"
	"nutrispend/store"
	"nutrispend/store/memory"
)

func TestActiveUserDefault(t *testing.T) {
	p := New(memory.New())
	if got := p.ActiveUser(context.Background()); got != core.Tejas {
		t.Errorf("default active user = %s, want Tejas", got)
	}
}

func TestActiveUserRoundTrip(t *testing.T) {
	p := New(memory.New())
	ctx := context.Background()

	if err := p.SetActiveUser(ctx, core.Nikita); err != nil {
		t.Fatalf("SetActiveUser: %v", err)
	}
	if got := p.ActiveUser(ctx); got != core.Nikita {
		t.Errorf("ActiveUser = %s, want Nikita", got)
	}
	if err := p.SetActiveUser(ctx, "Alice"); err == nil {
		t.Error("SetActiveUser should reject unknown person")
	}
}

func TestActiveUserGarbageFallsBack(t *testing.T) {
	s := memory.New()
	s.Seed(store.KeyActiveUser, []byte("Zaphod"))
	p := New(s)
	if got := p.ActiveUser(context.Background()); got != core.Tejas {
		t.Errorf("ActiveUser with garbage value = %s, want Tejas", got)
	}
}

func TestTouchFoodMRU(t *testing.T) {
	p := New(memory.New())
	ctx := context.Background()

	for _, f := range []string{"Poha", "Dosa", "Idli", "Poha", "Maggi"} {
		if err := p.TouchFood(ctx, f); err != nil {
			t.Fatalf("TouchFood(%s): %v", f, err)
		}
	}

	got := p.RecentFoods(ctx)
	want := []string{"Maggi", "Poha", "Idli", "Dosa"}
	if len(got) != len(want) {
		t.Fatalf("RecentFoods = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("RecentFoods[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestTouchFoodCap(t *testing.T) {
	p := New(memory.New())
	ctx := context.Background()

	for _, f := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		if err := p.TouchFood(ctx, f); err != nil {
			t.Fatal(err)
		}
	}
	got := p.RecentFoods(ctx)
	if len(got) != RecentFoodsCap {
		t.Fatalf("RecentFoods length = %d, want %d", len(got), RecentFoodsCap)
	}
	if got[0] != "g" || got[RecentFoodsCap-1] != "c" {
		t.Errorf("RecentFoods = %v", got)
	}
}
