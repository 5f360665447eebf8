package analytics

// Entry is any dated record. Records without an amount report 0.
type Entry interface {
	EntryDate() string
	EntryAmount() int64
}

// Summary is the result of FilterAndSum.
type Summary[T Entry] struct {
	Filtered []T
	Total    int64
	Count    int
}

// Predicate narrows a filter; several predicates combine with AND.
type Predicate[T Entry] func(T) bool

// FilterAndSum keeps records whose date falls in iv and that satisfy every
// predicate, and sums their amounts. A malformed date on any record fails the
// whole call.
func FilterAndSum[T Entry](records []T, iv Interval, preds ...Predicate[T]) (Summary[T], error) {
	out := Summary[T]{Filtered: make([]T, 0)}
	for _, rec := range records {
		day, err := ParseDay(rec.EntryDate())
		if err != nil {
			return Summary[T]{}, err
		}
		if !iv.Contains(day) || !matchAll(rec, preds) {
			continue
		}
		out.Filtered = append(out.Filtered, rec)
		out.Total += rec.EntryAmount()
	}
	out.Count = len(out.Filtered)
	return out, nil
}

// SumAmounts adds the amounts of records without filtering.
func SumAmounts[T Entry](records []T) int64 {
	var total int64
	for _, rec := range records {
		total += rec.EntryAmount()
	}
	return total
}

func matchAll[T Entry](rec T, preds []Predicate[T]) bool {
	for _, p := range preds {
		if p != nil && !p(rec) {
			return false
		}
	}
	return true
}
