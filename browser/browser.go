package browser

import (
	"bikeshare/domain/entities/trip"
)

// DefaultPageSize amount of raw trips shown at once when no count is given
const DefaultPageSize = 5

// Page returns up to count trips of view starting at offset, in view order. Callers keep the
// offset between calls. A count <= 0 means DefaultPageSize and a negative offset starts at 0.
// Returns fewer trips at the end of the view and none when offset is past it.
func Page(view trip.View, offset int, count int) []trip.Record {
	if count <= 0 {
		count = DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	remaining := view.Len() - offset
	if remaining <= 0 {
		return []trip.Record{}
	}
	if count > remaining {
		count = remaining
	}
	return view.Slice(offset, offset+count)
}

// Cursor walks a view one page at a time, used by the interactive shell
type Cursor struct {
	view     trip.View
	offset   int
	pageSize int
}

func NewCursor(view trip.View, pageSize int) *Cursor {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Cursor{view: view, pageSize: pageSize}
}

// Next returns the following page and moves the cursor past it
func (c *Cursor) Next() []trip.Record {
	page := Page(c.view, c.offset, c.pageSize)
	c.offset += len(page)
	return page
}

// HasNext returns true while there are trips left to show
func (c *Cursor) HasNext() bool {
	return c.offset < c.view.Len()
}

// Offset returns the position of the next trip to show
func (c *Cursor) Offset() int {
	return c.offset
}
