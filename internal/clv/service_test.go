package clv

import (
	"context"
	"errors"
	"testing"
)

func TestAddComputesValue(t *testing.T) {
	s := NewStore(t.TempDir())

	c, err := s.Add(context.Background(), Customer{
		ID:                   "c1",
		Name:                 "Alice",
		AveragePurchaseValue: 100,
		PurchaseFrequency:    4,
		CustomerLifespan:     2,
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if c.CLV != 800 {
		t.Fatalf("clv = %v, want 800", c.CLV)
	}
	if s.Count() != 1 {
		t.Fatalf("count = %d", s.Count())
	}
}

func TestAddRejectsInvalid(t *testing.T) {
	s := NewStore(t.TempDir())

	cases := []Customer{
		{Name: "no id", AveragePurchaseValue: 1, PurchaseFrequency: 1, CustomerLifespan: 1},
		{ID: "x", AveragePurchaseValue: 1, PurchaseFrequency: 1, CustomerLifespan: 1},
		{ID: "x", Name: "zero aov", PurchaseFrequency: 1, CustomerLifespan: 1},
		{ID: "x", Name: "negative freq", AveragePurchaseValue: 1, PurchaseFrequency: -1, CustomerLifespan: 1},
		{ID: "x", Name: "zero lifespan", AveragePurchaseValue: 1, PurchaseFrequency: 1},
	}
	for _, c := range cases {
		if _, err := s.Add(context.Background(), c); !errors.Is(err, ErrInvalidCustomer) {
			t.Fatalf("expected ErrInvalidCustomer for %+v, got %v", c, err)
		}
	}
	if s.Count() != 0 {
		t.Fatalf("invalid customers stored: %d", s.Count())
	}
}

func TestAddRejectsNonFiniteValue(t *testing.T) {
	s := NewStore(t.TempDir())

	// Inputs individually valid, product overflows float64.
	_, err := s.Add(context.Background(), Customer{
		ID:                   "huge",
		Name:                 "Overflow",
		AveragePurchaseValue: 1e308,
		PurchaseFrequency:    1e308,
		CustomerLifespan:     2,
	})
	if !errors.Is(err, ErrInvalidCustomer) {
		t.Fatalf("expected ErrInvalidCustomer, got %v", err)
	}
	if s.Count() != 0 {
		t.Fatalf("overflowing customer stored: %d", s.Count())
	}
}

func TestAddRejectsDuplicateWithoutMutation(t *testing.T) {
	s := NewStore(t.TempDir())

	if _, err := s.Add(context.Background(), mkCustomer("c1", 100, 4, 2)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	_, err := s.Add(context.Background(), mkCustomer("c1", 999, 9, 9))
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}

	all := s.All()
	if len(all) != 1 {
		t.Fatalf("expected 1 customer, got %d", len(all))
	}
	if all[0].CLV != 800 {
		t.Fatalf("existing clv mutated: %v", all[0].CLV)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s := NewStore(dir)
	if _, err := s.Add(context.Background(), mkCustomer("c1", 100, 4, 2)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := s.Add(context.Background(), mkCustomer("c2", 10, 1, 1)); err != nil {
		t.Fatalf("Add: %v", err)
	}

	reloaded := NewStore(dir)
	all := reloaded.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 customers after reload, got %d", len(all))
	}
	if all[0].ID != "c1" || all[0].CLV != 800 {
		t.Fatalf("reloaded customer wrong: %+v", all[0])
	}
}
