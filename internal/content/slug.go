package content

import "strings"

// Slugify derives a URL slug from a title: lower-case, strip everything
// outside [a-z0-9 -], trim, then collapse whitespace runs to single dashes.
// Uniqueness is enforced by the news table's constraint, not here.
func Slugify(title string) string {
	lower := strings.ToLower(title)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ' || r == '-' {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), "-")
}

// TotalPages reports the number of pages a listing spans, never less than one.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 1
	}
	pages := (total + limit - 1) / limit
	if pages < 1 {
		pages = 1
	}
	return pages
}
