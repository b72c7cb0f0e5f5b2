package domain

// TotalPages returns ceil(count/perPage), 0 for an empty set.
func TotalPages(count, perPage int) int {
	if count <= 0 || perPage <= 0 {
		return 0
	}
	return (count + perPage - 1) / perPage
}

// ValidPage reports whether a 1-indexed page exists for count items.
func ValidPage(page, count, perPage int) bool {
	return page >= 1 && page <= TotalPages(count, perPage)
}

// Paginate returns items [(page-1)*perPage, page*perPage) clipped to the
// slice bounds. Pages outside the valid range yield nil.
func Paginate[T any](items []T, page, perPage int) []T {
	if !ValidPage(page, len(items), perPage) {
		return nil
	}
	start := (page - 1) * perPage
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
