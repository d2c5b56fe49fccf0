package state

import (
	"strconv"

	"github.com/glabrego/pokedex-cli/internal/pokedex"
)

func ClampCursor(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

func CenteredWindow(totalRows, cursor, height int) (int, int) {
	if totalRows <= 0 {
		return 0, 0
	}
	if height <= 0 || totalRows <= height {
		return 0, totalRows
	}
	cursor = ClampCursor(cursor, totalRows)
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	maxStart := totalRows - height
	if start > maxStart {
		start = maxStart
	}
	return start, start + height
}

const listChromeLines = 9

// ListHeight is the number of record rows that fit below the header and above
// the message panel and footer.
func ListHeight(height int) int {
	if height <= 0 {
		return 0
	}
	rows := height - listChromeLines
	if rows < 3 {
		rows = 3
	}
	return rows
}

// NextPageSize cycles through pokedex.PageSizes.
func NextPageSize(current int) int {
	for i, size := range pokedex.PageSizes {
		if size == current {
			return pokedex.PageSizes[(i+1)%len(pokedex.PageSizes)]
		}
	}
	return pokedex.PageSizes[0]
}

// CategoryForKey maps the digit keys 1..n onto pokedex.Categories.
func CategoryForKey(key string) (string, bool) {
	n, err := strconv.Atoi(key)
	if err != nil || n < 1 || n > len(pokedex.Categories) {
		return "", false
	}
	return pokedex.Categories[n-1], true
}
