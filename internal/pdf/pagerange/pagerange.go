// Package pagerange parses the page-range strings accepted by page-scoped
// tools. The grammar is RANGE ("," RANGE)* where RANGE is a single 1-based
// page number or START "-" END.
package pagerange

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Parse resolves spec against a document with totalPages pages.
//
// Range endpoints clamp to [1, totalPages]; a single page number outside the
// document is a hard error. The result is deduplicated and sorted ascending.
// An empty spec means every page.
func Parse(spec string, totalPages int) ([]int, error) {
	if totalPages < 1 {
		return nil, fmt.Errorf("document has no pages")
	}

	spec = strings.TrimSpace(spec)
	if spec == "" {
		pages := make([]int, totalPages)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages, nil
	}

	seen := make(map[int]bool)
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("empty range in page specification %q", spec)
		}

		if start, end, ok := splitRange(part); ok {
			if start > end {
				return nil, fmt.Errorf("invalid range %q: start exceeds end", part)
			}
			// Out-of-bound endpoints clamp instead of failing so callers can
			// say "7-999" for "7 to the end".
			if start < 1 {
				start = 1
			}
			if end > totalPages {
				end = totalPages
			}
			if start > totalPages || end < 1 {
				continue
			}
			for p := start; p <= end; p++ {
				seen[p] = true
			}
			continue
		}

		page, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid page number %q", part)
		}
		if page < 1 || page > totalPages {
			return nil, fmt.Errorf("page %d is out of bounds (document has %d pages)", page, totalPages)
		}
		seen[page] = true
	}

	pages := make([]int, 0, len(seen))
	for p := range seen {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages, nil
}

// splitRange parses "START-END", returning ok=false for single page numbers.
func splitRange(part string) (int, int, bool) {
	idx := strings.Index(part, "-")
	if idx <= 0 || idx == len(part)-1 {
		return 0, 0, false
	}
	start, err := strconv.Atoi(strings.TrimSpace(part[:idx]))
	if err != nil {
		return 0, 0, false
	}
	end, err := strconv.Atoi(strings.TrimSpace(part[idx+1:]))
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}
