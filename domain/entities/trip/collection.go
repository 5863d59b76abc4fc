package trip

import "sort"

// Collection is the ordered set of trips of one city. It is never modified after
// NewCollection, so any number of views can read it at the same time.
type Collection struct {
	city    string
	records []Record
}

func NewCollection(city string, records []Record) *Collection {
	return &Collection{
		city:    city,
		records: records,
	}
}

func (c *Collection) City() string {
	return c.city
}

func (c *Collection) Len() int {
	return len(c.records)
}

// View returns a view with every trip of the collection in source order
func (c *Collection) View() View {
	return View{collection: c}
}

// Months returns the distinct months present in the collection in ascending order
func (c *Collection) Months() []int {
	seen := make(map[int]bool)
	for idx := range c.records {
		seen[c.records[idx].Month] = true
	}

	months := make([]int, 0, len(seen))
	for month := range seen {
		months = append(months, month)
	}
	sort.Ints(months)
	return months
}

// View is a read-only selection of trips of a Collection. It stores positions into the
// collection, never copies of the records. A view that was not produced by Select
// covers every trip of its collection.
type View struct {
	collection *Collection
	indices    []int
	selected   bool
}

// City returns the city of the underlying collection, empty for the zero View
func (v View) City() string {
	if v.collection == nil {
		return ""
	}
	return v.collection.city
}

func (v View) Len() int {
	if v.collection == nil {
		return 0
	}
	if !v.selected {
		return len(v.collection.records)
	}
	return len(v.indices)
}

// At returns a copy of the i-th trip of the view
func (v View) At(i int) Record {
	return *v.at(i)
}

func (v View) at(i int) *Record {
	if !v.selected {
		return &v.collection.records[i]
	}
	return &v.collection.records[v.indices[i]]
}

// Each calls fn with every trip of the view in order. Records are passed by pointer to
// avoid copies on large collections; fn must not modify them.
func (v View) Each(fn func(record *Record)) {
	for i := 0; i < v.Len(); i++ {
		fn(v.at(i))
	}
}

// Select returns a new view with the trips of v that satisfy keep, preserving order
func (v View) Select(keep func(record *Record) bool) View {
	n := v.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if keep(v.at(i)) {
			indices = append(indices, v.position(i))
		}
	}

	return View{
		collection: v.collection,
		indices:    indices,
		selected:   true,
	}
}

// Slice returns the trips between from (inclusive) and to (exclusive). Bounds are clamped
// to the view, so out of range values return an empty slice.
func (v View) Slice(from int, to int) []Record {
	n := v.Len()
	if from < 0 {
		from = 0
	}
	if to > n {
		to = n
	}
	if from >= to {
		return []Record{}
	}

	records := make([]Record, 0, to-from)
	for i := from; i < to; i++ {
		records = append(records, v.At(i))
	}
	return records
}

// Records returns a copy of every trip of the view
func (v View) Records() []Record {
	return v.Slice(0, v.Len())
}

// position maps the i-th trip of the view to its position in the collection
func (v View) position(i int) int {
	if !v.selected {
		return i
	}
	return v.indices[i]
}
