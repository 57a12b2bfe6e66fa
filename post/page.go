package post

import (
	"strconv"
	"strings"
)

const DefaultPageSize = 10

type Page struct {
	Posts       []*Post
	Number      int
	NumPages    int
	Count       int
	HasNext     bool
	HasPrevious bool
}

// ParsePageNumber reads the ?page= query value. Anything that is not an
// integer means the first page.
func ParsePageNumber(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return n
}

// pageBounds resolves a requested page number against the total count.
// An empty listing still has one (empty) page, and numbers outside
// [1, numPages] resolve to the last page.
func pageBounds(requested, count, size int) (number, numPages, offset int) {
	if size < 1 {
		size = DefaultPageSize
	}
	numPages = (count + size - 1) / size
	if numPages < 1 {
		numPages = 1
	}
	number = requested
	if number < 1 || number > numPages {
		number = numPages
	}
	offset = (number - 1) * size
	return number, numPages, offset
}
