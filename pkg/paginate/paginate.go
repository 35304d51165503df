package paginate

// Bounds returns the half-open [start, end) window of page (1-based) over total items.
// Pages past the end collapse to an empty window at total.
func Bounds(total, page, pageSize int) (start, end int) {
	if total <= 0 || page < 1 || pageSize < 1 {
		return 0, 0
	}

	// Guards the multiplication against overflow for absurd page numbers
	if page-1 >= PageCount(total, pageSize) {
		return total, total
	}

	start = (page - 1) * pageSize
	end = start + pageSize
	if end > total {
		end = total
	}

	return start, end
}

// Slice copies the items of the requested page into a new, never nil, slice
func Slice[T any](items []T, page, pageSize int) []T {
	start, end := Bounds(len(items), page, pageSize)
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

// PageCount returns how many pages of pageSize are needed for total items
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize < 1 {
		return 0
	}

	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}

	return pages
}
