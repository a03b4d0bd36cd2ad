package query

import (
	"slices"

	"github.com/garnizeh/ideabridge/pkg/models"
)

// Dated is any record with a creation time.
type Dated interface {
	Created() models.Timestamp
}

type Order string

const (
	// OrderRelevance keeps insertion order.
	OrderRelevance Order = "relevance"
	OrderNewest    Order = "newest"
)

func ParseOrder(s string) Order {
	if Order(s) == OrderNewest {
		return OrderNewest
	}
	return OrderRelevance
}

// SortByCreatedDesc returns a copy of items, newest first. Ties keep their
// relative order; a zero createdAt sorts last.
func SortByCreatedDesc[T Dated](items []T) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		return b.Created().Compare(a.Created().Time)
	})
	return out
}

// SortProblems orders problems for the problem list.
func SortProblems(problems []models.Problem, order Order) []models.Problem {
	return Sort(problems, order)
}

func Sort[T Dated](items []T, order Order) []T {
	if order == OrderNewest {
		return SortByCreatedDesc(items)
	}
	return slices.Clone(items)
}

// Latest returns at most n items, newest first.
func Latest[T Dated](items []T, n int) []T {
	out := SortByCreatedDesc(items)
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
