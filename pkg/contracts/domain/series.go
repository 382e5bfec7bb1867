package domain

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Series is an ordered key/value result of a grouping. Keys appear in the
// order they were first seen unless the series has been re-sorted.
type Series struct {
	Name   string    `json:"name"`
	Keys   []string  `json:"keys"`
	Values []float64 `json:"values"`
}

// Len returns the number of entries
func (s Series) Len() int {
	return len(s.Keys)
}

// Total sums every non-NaN value
func (s Series) Total() float64 {
	var total float64
	for _, v := range s.Values {
		if !math.IsNaN(v) {
			total += v
		}
	}
	return total
}

// Lookup returns the value stored for key
func (s Series) Lookup(key string) (float64, bool) {
	for i, k := range s.Keys {
		if k == key {
			return s.Values[i], true
		}
	}
	return 0, false
}

// Head returns the first n entries
func (s Series) Head(n int) Series {
	if n < 0 || n >= s.Len() {
		return s.clone()
	}
	return Series{
		Name:   s.Name,
		Keys:   append([]string(nil), s.Keys[:n]...),
		Values: append([]float64(nil), s.Values[:n]...),
	}
}

// SortedDesc returns a copy ordered by value, largest first. The sort is
// stable, so equal values keep their current relative order. NaN sorts last.
func (s Series) SortedDesc() Series {
	return s.sortedBy(func(a, b float64) bool { return a > b })
}

// SortedAsc returns a copy ordered by value, smallest first. The sort is
// stable and NaN sorts last.
func (s Series) SortedAsc() Series {
	return s.sortedBy(func(a, b float64) bool { return a < b })
}

// SortedByKey returns a copy ordered by key. Keys that both parse as numbers
// compare numerically, so "2" precedes "10".
func (s Series) SortedByKey() Series {
	idx := s.indexes()
	sort.SliceStable(idx, func(i, j int) bool {
		return CompareKeys(s.Keys[idx[i]], s.Keys[idx[j]]) < 0
	})
	return s.permute(idx)
}

func (s Series) sortedBy(less func(a, b float64) bool) Series {
	idx := s.indexes()
	sort.SliceStable(idx, func(i, j int) bool {
		a, b := s.Values[idx[i]], s.Values[idx[j]]
		switch {
		case math.IsNaN(a):
			return false
		case math.IsNaN(b):
			return true
		}
		return less(a, b)
	})
	return s.permute(idx)
}

func (s Series) indexes() []int {
	idx := make([]int, s.Len())
	for i := range idx {
		idx[i] = i
	}
	return idx
}

func (s Series) permute(idx []int) Series {
	out := Series{
		Name:   s.Name,
		Keys:   make([]string, len(idx)),
		Values: make([]float64, len(idx)),
	}
	for i, j := range idx {
		out.Keys[i] = s.Keys[j]
		out.Values[i] = s.Values[j]
	}
	return out
}

func (s Series) clone() Series {
	return Series{
		Name:   s.Name,
		Keys:   append([]string(nil), s.Keys...),
		Values: append([]float64(nil), s.Values...),
	}
}

// CompareKeys orders two grouping keys: numerically when both are numbers,
// lexically otherwise.
func CompareKeys(a, b string) int {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}

// maxExactKey bounds the numeric keys JoinKey canonicalizes; larger values
// would lose digits in a float64.
const maxExactKey = 1 << 53

// JoinKey returns the form of an ID used to match rows across tables.
// Finite numbers below 2^53 are canonicalized so "1", "1.0" and "01" are the
// same key; any other text is matched as written.
func JoinKey(id string) string {
	f, err := strconv.ParseFloat(id, 64)
	if err != nil || math.IsNaN(f) || math.Abs(f) >= maxExactKey {
		return id
	}
	if f == 0 {
		f = 0 // -0
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
