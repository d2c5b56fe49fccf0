package pokedex

// Selection is the user's view over the record set: search text, active
// category filters and pagination position.
//
// Every reducer takes the current record set so the page can be clamped
// against the filtered count after the change.
type Selection struct {
	SearchText         string
	SelectedCategories []string
	CurrentPage        int
	PageSize           int
}

func NewSelection(pageSize int) Selection {
	if !ValidPageSize(pageSize) {
		pageSize = DefaultPageSize
	}
	return Selection{CurrentPage: 1, PageSize: pageSize}
}

func (s *Selection) SetSearchText(records []Record, text string) {
	s.SearchText = text
	s.clamp(records)
}

// ToggleCategory adds category when absent and removes it when present.
func (s *Selection) ToggleCategory(records []Record, category string) {
	if category == "" {
		return
	}
	if idx := s.categoryIndex(category); idx >= 0 {
		next := make([]string, 0, len(s.SelectedCategories)-1)
		next = append(next, s.SelectedCategories[:idx]...)
		next = append(next, s.SelectedCategories[idx+1:]...)
		s.SelectedCategories = next
	} else {
		s.SelectedCategories = append(append([]string(nil), s.SelectedCategories...), category)
	}
	s.clamp(records)
}

func (s *Selection) ClearCategories(records []Record) {
	s.SelectedCategories = nil
	s.clamp(records)
}

func (s *Selection) IsSelected(category string) bool {
	return s.categoryIndex(category) >= 0
}

func (s *Selection) SetPage(records []Record, page int) {
	s.CurrentPage = page
	s.clamp(records)
}

func (s *Selection) NextPage(records []Record) {
	s.SetPage(records, s.CurrentPage+1)
}

func (s *Selection) PrevPage(records []Record) {
	s.SetPage(records, s.CurrentPage-1)
}

// SetPageSize ignores sizes outside PageSizes.
func (s *Selection) SetPageSize(records []Record, size int) {
	if !ValidPageSize(size) {
		return
	}
	s.PageSize = size
	s.clamp(records)
}

// Filtered runs the filter pipeline with the current search and categories.
func (s Selection) Filtered(records []Record) []Record {
	return Filter(records, s.SearchText, s.SelectedCategories)
}

// Apply filters records and returns the current page.
func (s Selection) Apply(records []Record) Page {
	return Paginate(s.Filtered(records), s.CurrentPage, s.pageSize())
}

func (s *Selection) clamp(records []Record) {
	count := PageCount(len(s.Filtered(records)), s.pageSize())
	s.CurrentPage = ClampPage(s.CurrentPage, count)
}

func (s Selection) pageSize() int {
	if s.PageSize < 1 {
		return DefaultPageSize
	}
	return s.PageSize
}

func (s Selection) categoryIndex(category string) int {
	for i, c := range s.SelectedCategories {
		if c == category {
			return i
		}
	}
	return -1
}
