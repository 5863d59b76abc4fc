package tripcounter

import (
	"cmp"
	"sort"
)

// Mode is the most frequent key of a TripCounter and the amount of trips that have it
type Mode[K comparable] struct {
	Value K   `json:"value"`
	Count int `json:"count"`
}

// KeyCount is the amount of trips counted for a key
type KeyCount[K comparable] struct {
	Key   K   `json:"key"`
	Count int `json:"count"`
}

// TripCounter counts the amount of trips per key in a single pass.
// + counters: amount of trips per key
// + less: natural order of the keys. Ties between equally frequent keys are broken by it
// + total: amount of trips counted
type TripCounter[K comparable] struct {
	counters map[K]int
	less     func(a K, b K) bool
	total    int
}

// NewTripCounter returns a TripCounter ordered by less
func NewTripCounter[K comparable](less func(a K, b K) bool) *TripCounter[K] {
	return &TripCounter[K]{
		counters: make(map[K]int),
		less:     less,
	}
}

// NewOrderedTripCounter returns a TripCounter for keys with a natural order (ints, strings)
func NewOrderedTripCounter[K cmp.Ordered]() *TripCounter[K] {
	return NewTripCounter[K](cmp.Less[K])
}

func (tc *TripCounter[K]) UpdateCounter(key K) {
	tc.counters[key] += 1
	tc.total += 1
}

func (tc *TripCounter[K]) GetCounter(key K) int {
	return tc.counters[key]
}

// GetTotal returns the amount of trips counted
func (tc *TripCounter[K]) GetTotal() int {
	return tc.total
}

// Len returns the amount of distinct keys
func (tc *TripCounter[K]) Len() int {
	return len(tc.counters)
}

// Mode returns the most frequent key. When several keys share the highest counter the lowest
// one in the counter order wins. The bool is false if nothing was counted.
func (tc *TripCounter[K]) Mode() (Mode[K], bool) {
	var mode Mode[K]
	found := false
	for key, counter := range tc.counters {
		if !found || counter > mode.Count || (counter == mode.Count && tc.less(key, mode.Value)) {
			mode = Mode[K]{Value: key, Count: counter}
			found = true
		}
	}
	return mode, found
}

// Ranking returns every key sorted by counter descending, ties by key ascending
func (tc *TripCounter[K]) Ranking() []KeyCount[K] {
	ranking := make([]KeyCount[K], 0, len(tc.counters))
	for key, counter := range tc.counters {
		ranking = append(ranking, KeyCount[K]{Key: key, Count: counter})
	}

	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Count != ranking[j].Count {
			return ranking[i].Count > ranking[j].Count
		}
		return tc.less(ranking[i].Key, ranking[j].Key)
	})
	return ranking
}

// Min returns the lowest key counted, false if nothing was counted
func (tc *TripCounter[K]) Min() (K, bool) {
	var lowest K
	found := false
	for key := range tc.counters {
		if !found || tc.less(key, lowest) {
			lowest = key
			found = true
		}
	}
	return lowest, found
}

// Max returns the highest key counted, false if nothing was counted
func (tc *TripCounter[K]) Max() (K, bool) {
	var highest K
	found := false
	for key := range tc.counters {
		if !found || tc.less(highest, key) {
			highest = key
			found = true
		}
	}
	return highest, found
}
