package pokedex

// Record is one creature entry as shown by the app.
type Record struct {
	ID         int
	Name       string
	AvatarURL  string
	Categories []string
	Stats      []Stat
}

// Stat is a named base stat of a record.
type Stat struct {
	Name  string
	Value int
}

// Categories offered as filter toggles, in display order.
var Categories = []string{"bug", "electric", "fire", "grass", "normal", "poison", "water"}

// PageSizes are the page sizes a Selection accepts.
var PageSizes = []int{10, 20, 50}

const DefaultPageSize = 10

func ValidPageSize(n int) bool {
	for _, size := range PageSizes {
		if size == n {
			return true
		}
	}
	return false
}

func (r Record) HasCategory(category string) bool {
	for _, c := range r.Categories {
		if c == category {
			return true
		}
	}
	return false
}
