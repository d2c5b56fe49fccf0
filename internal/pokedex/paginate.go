package pokedex

// Page is the visible window of a filtered record list.
type Page struct {
	Items  []Record
	Number int
	Count  int
	Total  int
}

func PageCount(total, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// ClampPage moves page into [1, max(count, 1)].
func ClampPage(page, count int) int {
	if page > count {
		page = count
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Paginate returns the page'th window of records. Pages past the end clamp to
// the last page.
func Paginate(records []Record, page, pageSize int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	count := PageCount(len(records), pageSize)
	page = ClampPage(page, count)

	start := (page - 1) * pageSize
	end := page * pageSize
	if start > len(records) {
		start = len(records)
	}
	if end > len(records) {
		end = len(records)
	}
	return Page{
		Items:  records[start:end],
		Number: page,
		Count:  count,
		Total:  len(records),
	}
}
