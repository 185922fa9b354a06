package sqlite

import "strings"

// buildSearchQuery resolves the optional free-text query and tag filter
// into a candidate id query. The email join can multiply rows, so ids
// are deduplicated with DISTINCT. With both filters set a card must be
// linked to the tag AND match the text; with neither, all cards match.
//
// Text matching is a case-insensitive substring test over name, company,
// and any linked email address (SQLite LIKE is case-insensitive for
// ASCII). Tag matching is exact.
func buildSearchQuery(q, tag string) (string, []any) {
	query := `SELECT DISTINCT c.id FROM cards c`

	var args []any
	var where []string

	if tag != "" {
		query += `
		JOIN card_tags ct ON ct.card_id = c.id
		JOIN tags t ON t.id = ct.tag_id AND t.name = ?`
		args = append(args, tag)
	}
	if q != "" {
		like := "%" + q + "%"
		where = append(where, `(c.name LIKE ? OR c.company LIKE ? OR EXISTS (
			SELECT 1 FROM card_emails e WHERE e.card_id = c.id AND e.address LIKE ?))`)
		args = append(args, like, like, like)
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	// updated_at has second resolution; id descending keeps ties stable.
	query += " ORDER BY c.updated_at DESC, c.id DESC"
	return query, args
}
