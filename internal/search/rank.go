package search

import (
	"cmp"
	"slices"
)

// Rank returns a new slice holding props in the order defined by key. Every
// ordering ends with ascending ID, so the result is total and repeatable.
// The input slice is left untouched.
func Rank(props []*Property, key SortKey) []*Property {
	out := slices.Clone(props)
	slices.SortStableFunc(out, comparator(key))
	return out
}

func comparator(key SortKey) func(a, b *Property) int {
	switch key {
	case SortPriceLow:
		return func(a, b *Property) int {
			return cmp.Or(cmp.Compare(a.Price, b.Price), byID(a, b))
		}
	case SortPriceHigh:
		return func(a, b *Property) int {
			return cmp.Or(cmp.Compare(b.Price, a.Price), byID(a, b))
		}
	case SortMostViewed:
		return func(a, b *Property) int {
			return cmp.Or(cmp.Compare(b.ViewCount, a.ViewCount), byID(a, b))
		}
	case SortRating:
		return func(a, b *Property) int {
			return cmp.Or(
				compareRating(a.Rating, b.Rating),
				cmp.Compare(b.ViewCount, a.ViewCount),
				byID(a, b),
			)
		}
	default:
		return func(a, b *Property) int {
			return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), byID(a, b))
		}
	}
}

// compareRating sorts higher ratings first and missing ratings last.
func compareRating(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return cmp.Compare(*b, *a)
	}
}

func byID(a, b *Property) int {
	return cmp.Compare(a.ID, b.ID)
}
