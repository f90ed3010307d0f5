package clv

import "testing"

func mkCustomer(id string, aov, freq, lifespan float64) Customer {
	c := Customer{
		ID:                   id,
		Name:                 "Customer " + id,
		AveragePurchaseValue: aov,
		PurchaseFrequency:    freq,
		CustomerLifespan:     lifespan,
	}
	c.CLV = c.Value()
	return c
}

func TestTopNDescending(t *testing.T) {
	in := []Customer{
		mkCustomer("a", 10, 1, 1), // 10
		mkCustomer("b", 50, 2, 1), // 100
		mkCustomer("c", 5, 1, 1),  // 5
		mkCustomer("d", 20, 2, 1), // 40
	}

	top := TopN(in, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 customers, got %d", len(top))
	}
	if top[0].ID != "b" || top[1].ID != "d" {
		t.Fatalf("unexpected order: %s, %s", top[0].ID, top[1].ID)
	}
}

func TestTopNBeyondLengthReturnsAllSorted(t *testing.T) {
	in := []Customer{
		mkCustomer("a", 10, 1, 1),
		mkCustomer("b", 50, 2, 1),
		mkCustomer("c", 5, 1, 1),
	}
	top := TopN(in, 10)
	if len(top) != len(in) {
		t.Fatalf("expected all %d customers, got %d", len(in), len(top))
	}
	for i := 1; i < len(top); i++ {
		if top[i].CLV > top[i-1].CLV {
			t.Fatalf("not descending at %d: %v > %v", i, top[i].CLV, top[i-1].CLV)
		}
	}
}

func TestTopNStableOnTies(t *testing.T) {
	in := []Customer{
		mkCustomer("first", 10, 2, 1),  // 20
		mkCustomer("second", 20, 1, 1), // 20
		mkCustomer("third", 4, 5, 1),   // 20
	}
	top := TopN(in, 3)
	for i, want := range []string{"first", "second", "third"} {
		if top[i].ID != want {
			t.Fatalf("tie order broken at %d: got %s, want %s", i, top[i].ID, want)
		}
	}
}

func TestTopNDoesNotMutateInput(t *testing.T) {
	in := []Customer{
		mkCustomer("a", 1, 1, 1),
		mkCustomer("b", 9, 1, 1),
		mkCustomer("c", 5, 1, 1),
	}
	_ = TopN(in, 3)
	if in[0].ID != "a" || in[1].ID != "b" || in[2].ID != "c" {
		t.Fatalf("input slice reordered: %s %s %s", in[0].ID, in[1].ID, in[2].ID)
	}
}

func TestTopNIsPermutation(t *testing.T) {
	in := []Customer{
		mkCustomer("a", 3, 1, 1),
		mkCustomer("b", 1, 1, 1),
		mkCustomer("c", 2, 1, 1),
	}
	top := TopN(in, 3)
	seen := make(map[string]int)
	for _, c := range top {
		seen[c.ID]++
	}
	for _, c := range in {
		if seen[c.ID] != 1 {
			t.Fatalf("customer %s appears %d times", c.ID, seen[c.ID])
		}
	}
}

func TestSummarize(t *testing.T) {
	in := []Customer{
		mkCustomer("a", 10, 1, 1), // 10
		mkCustomer("b", 30, 1, 1), // 30
		mkCustomer("c", 20, 1, 1), // 20
	}
	sum := Summarize(in)
	if sum.Count != 3 {
		t.Fatalf("count = %d", sum.Count)
	}
	if sum.Sum != 60 {
		t.Fatalf("sum = %v", sum.Sum)
	}
	if sum.Average != 20 {
		t.Fatalf("average = %v", sum.Average)
	}
	if sum.Min != 10 || sum.Max != 30 {
		t.Fatalf("min/max = %v/%v", sum.Min, sum.Max)
	}
}
