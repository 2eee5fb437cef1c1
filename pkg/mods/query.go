package mods

import (
	"fmt"
	"strings"
)

// PageSize is the number of records shown per page.
const PageSize = 10

// Predicate selects records.
type Predicate func(Record) bool

// Filter returns the records matching pred in their original order.
// A nil predicate keeps everything.
func Filter(records []Record, pred Predicate) []Record {
	if pred == nil {
		return records
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// ByCategory matches the category exactly, ignoring case.
func ByCategory(category string) Predicate {
	want := fold(category)
	return func(r Record) bool { return fold(r.Category) == want }
}

// ByPriority matches the priority after normalizing both sides.
func ByPriority(priority string) Predicate {
	want := fold(priority)
	if p, ok := ParsePriority(priority); ok {
		want = fold(string(p))
	}
	return func(r Record) bool { return fold(string(r.Priority)) == want }
}

// ByAlternative matches the alternative after normalizing both sides.
func ByAlternative(alternative string) Predicate {
	want := fold(alternative)
	if a, ok := ParseAlternative(alternative); ok {
		want = fold(string(a))
	}
	return func(r Record) bool { return fold(string(r.Alternative)) == want }
}

// ByInstalled matches the installed checkbox against the normalized input.
func ByInstalled(installed string) Predicate {
	want := NormalizeInstalled(installed)
	return func(r Record) bool { return r.Installed == want }
}

// ByText matches records whose name or description contains text, ignoring case.
func ByText(text string) Predicate {
	needle := fold(text)
	return func(r Record) bool {
		return strings.Contains(fold(r.Name), needle) || strings.Contains(fold(r.Description), needle)
	}
}

// PageError reports a page number outside [1, PageCount].
type PageError struct {
	Page      int
	PageCount int
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %d out of range: valid pages are 1 to %d", e.Page, e.PageCount)
}

// Page is the window of a result set shown in one reply.
type Page struct {
	Number    int
	PageCount int
	Total     int
	// Start and End are 0-based, End exclusive.
	Start int
	End   int
}

// PageCount returns ceil(total/size).
func PageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Paginate computes the window for a 1-indexed page.
func Paginate(total, page, size int) (Page, error) {
	count := PageCount(total, size)
	if page < 1 || page > count {
		return Page{}, &PageError{Page: page, PageCount: count}
	}
	start := (page - 1) * size
	end := min(start+size, total)
	return Page{Number: page, PageCount: count, Total: total, Start: start, End: end}, nil
}

// Slice returns the records of p from records.
func (p Page) Slice(records []Record) []Record {
	if p.Start >= len(records) {
		return nil
	}
	return records[p.Start:min(p.End, len(records))]
}

// CategoryCount is the number of records sharing a category.
type CategoryCount struct {
	Category string
	Count    int
}

// CategoryCounts counts records per category in order of first appearance.
// Blank categories are counted under "-".
func CategoryCounts(records []Record) []CategoryCount {
	index := make(map[string]int)
	var out []CategoryCount
	for _, r := range records {
		label := r.CategoryLabel()
		if i, ok := index[label]; ok {
			out[i].Count++
			continue
		}
		index[label] = len(out)
		out = append(out, CategoryCount{Category: label, Count: 1})
	}
	return out
}
