package clv

// ranked pairs a customer with its input position so equal values keep
// their original relative order through the sort.
type ranked struct {
	c   Customer
	pos int
}

// TopN returns the n highest-value customers in descending CLV order.
// The input slice is never mutated; for n past the end all customers
// are returned sorted.
func TopN(customers []Customer, n int) []Customer {
	work := make([]ranked, len(customers))
	for i, c := range customers {
		work[i] = ranked{c: c, pos: i}
	}
	quicksort(work, 0, len(work)-1)

	if n < 0 {
		n = 0
	}
	if n > len(work) {
		n = len(work)
	}
	out := make([]Customer, n)
	for i := 0; i < n; i++ {
		out[i] = work[i].c
	}
	return out
}

// ahead reports whether a ranks before b: higher value first, earlier
// input position on equal value.
func ahead(a, b ranked) bool {
	if a.c.CLV != b.c.CLV {
		return a.c.CLV > b.c.CLV
	}
	return a.pos < b.pos
}

func quicksort(arr []ranked, low, high int) {
	if low < high {
		p := partition(arr, low, high)
		quicksort(arr, low, p-1)
		quicksort(arr, p+1, high)
	}
}

// partition uses the last element as pivot; entries ranking ahead of the
// pivot move left.
func partition(arr []ranked, low, high int) int {
	pivot := arr[high]
	i := low - 1
	for j := low; j < high; j++ {
		if ahead(arr[j], pivot) {
			i++
			arr[i], arr[j] = arr[j], arr[i]
		}
	}
	arr[i+1], arr[high] = arr[high], arr[i+1]
	return i + 1
}

// Summary holds single-pass aggregate statistics over customer values.
type Summary struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Sum     float64 `json:"sum"`
}

// Summarize computes value statistics in one pass. Callers must check for
// emptiness first; the result is undefined for an empty slice.
func Summarize(customers []Customer) Summary {
	sum := Summary{
		Count: len(customers),
		Min:   customers[0].CLV,
		Max:   customers[0].CLV,
	}
	for _, c := range customers {
		sum.Sum += c.CLV
		if c.CLV < sum.Min {
			sum.Min = c.CLV
		}
		if c.CLV > sum.Max {
			sum.Max = c.CLV
		}
	}
	sum.Average = sum.Sum / float64(sum.Count)
	return sum
}
