package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"cardvault/internal/domain"
)

// syncCardTags replaces the tag-link set for a card inside an open
// transaction: unlink everything, then find-or-create each named tag and
// link it. Blank and whitespace-only names are skipped. Names are matched
// exactly (case-sensitive, untrimmed); tag rows are never deleted here,
// even at zero references.
func syncCardTags(ctx context.Context, tx *sql.Tx, cardID int64, names []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM card_tags WHERE card_id=?`, cardID); err != nil {
		return fmt.Errorf("failed to clear card tags: %w", err)
	}

	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}

		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO tags (name) VALUES (?)`, name); err != nil {
			return fmt.Errorf("failed to create tag %q: %w", name, err)
		}

		var tagID int64
		if err := tx.QueryRowContext(ctx, `SELECT id FROM tags WHERE name=?`, name).Scan(&tagID); err != nil {
			return fmt.Errorf("failed to resolve tag %q: %w", name, err)
		}

		// OR IGNORE collapses duplicate names within one input.
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO card_tags (card_id, tag_id) VALUES (?, ?)
		`, cardID, tagID); err != nil {
			return fmt.Errorf("failed to link tag %q: %w", name, err)
		}
	}
	return nil
}

// ListTags returns every known tag with its count of currently linked
// cards, alphabetical by name. Zero-count tags are included.
func (r *Repository) ListTags(ctx context.Context) ([]domain.TagCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.QueryContext(ctx, `
		SELECT t.name, COUNT(ct.card_id)
		FROM tags t
		LEFT JOIN card_tags ct ON ct.tag_id = t.id
		GROUP BY t.id, t.name
		ORDER BY t.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	tags := make([]domain.TagCount, 0)
	for rows.Next() {
		var t domain.TagCount
		if err := rows.Scan(&t.Name, &t.Count); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}
	return tags, nil
}
