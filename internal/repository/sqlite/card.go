package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"cardvault/internal/domain"
)

// cardColumns is the SELECT column list for card scalar queries.
const cardColumns = `id, name, title, company, website, notes, photo_path, created_at, updated_at`

// scanCard scans one card scalar row. The photo_path column is mapped to
// the public photo URL ("/" + path, empty when no photo is set).
func scanCard(row interface{ Scan(...any) error }) (*domain.Card, error) {
	var c domain.Card
	var photoPath string
	if err := row.Scan(&c.ID, &c.Name, &c.Title, &c.Company, &c.Website, &c.Notes,
		&photoPath, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if photoPath != "" {
		c.PhotoURL = "/" + photoPath
	}
	return &c, nil
}

// CreateCard inserts the scalar row, all child rows, and the tag links in
// one transaction. A failure anywhere rolls the whole aggregate back.
func (r *Repository) CreateCard(ctx context.Context, input domain.CardInput) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO cards (name, title, company, website, notes, photo_path)
		VALUES (?, ?, ?, ?, ?, '')
	`, input.Name, input.Title, input.Company, input.Website, input.Notes)
	if err != nil {
		return 0, fmt.Errorf("failed to insert card: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read new card id: %w", err)
	}

	if err := insertChildren(ctx, tx, id, input); err != nil {
		return 0, err
	}
	if err := syncCardTags(ctx, tx, id, input.Tags); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit create: %w", err)
	}
	return id, nil
}

// GetCard returns the fully hydrated card, or (nil, nil) when absent.
func (r *Repository) GetCard(ctx context.Context, id int64) (*domain.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getCard(ctx, id)
}

// getCard is GetCard without the lock, for use under ListCards.
func (r *Repository) getCard(ctx context.Context, id int64) (*domain.Card, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = ?`, id)

	card, err := scanCard(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query card: %w", err)
	}

	if err := r.hydrate(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

// hydrate populates Phones, Emails, Addresses, and Tags for a card.
// Children are ordered ascending by child id, tags alphabetically.
func (r *Repository) hydrate(ctx context.Context, c *domain.Card) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, label, number FROM card_phones WHERE card_id = ? ORDER BY id
	`, c.ID)
	if err != nil {
		return fmt.Errorf("failed to query phones: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p domain.Phone
		if err := rows.Scan(&p.ID, &p.Label, &p.Number); err != nil {
			return fmt.Errorf("failed to scan phone: %w", err)
		}
		c.Phones = append(c.Phones, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating phones: %w", err)
	}

	emailRows, err := r.db.QueryContext(ctx, `
		SELECT id, label, address FROM card_emails WHERE card_id = ? ORDER BY id
	`, c.ID)
	if err != nil {
		return fmt.Errorf("failed to query emails: %w", err)
	}
	defer emailRows.Close()
	for emailRows.Next() {
		var e domain.Email
		if err := emailRows.Scan(&e.ID, &e.Label, &e.Address); err != nil {
			return fmt.Errorf("failed to scan email: %w", err)
		}
		c.Emails = append(c.Emails, e)
	}
	if err := emailRows.Err(); err != nil {
		return fmt.Errorf("error iterating emails: %w", err)
	}

	addrRows, err := r.db.QueryContext(ctx, `
		SELECT id, label, street, city, country, postal FROM card_addresses
		WHERE card_id = ? ORDER BY id
	`, c.ID)
	if err != nil {
		return fmt.Errorf("failed to query addresses: %w", err)
	}
	defer addrRows.Close()
	for addrRows.Next() {
		var a domain.Address
		if err := addrRows.Scan(&a.ID, &a.Label, &a.Street, &a.City, &a.Country, &a.Postal); err != nil {
			return fmt.Errorf("failed to scan address: %w", err)
		}
		c.Addresses = append(c.Addresses, a)
	}
	if err := addrRows.Err(); err != nil {
		return fmt.Errorf("error iterating addresses: %w", err)
	}

	tagRows, err := r.db.QueryContext(ctx, `
		SELECT t.name FROM tags t
		JOIN card_tags ct ON ct.tag_id = t.id
		WHERE ct.card_id = ? ORDER BY t.name
	`, c.ID)
	if err != nil {
		return fmt.Errorf("failed to query card tags: %w", err)
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var name string
		if err := tagRows.Scan(&name); err != nil {
			return fmt.Errorf("failed to scan tag: %w", err)
		}
		c.Tags = append(c.Tags, name)
	}
	if err := tagRows.Err(); err != nil {
		return fmt.Errorf("error iterating tags: %w", err)
	}

	// A hydrated card always carries concrete (possibly empty) collections.
	if c.Phones == nil {
		c.Phones = []domain.Phone{}
	}
	if c.Emails == nil {
		c.Emails = []domain.Email{}
	}
	if c.Addresses == nil {
		c.Addresses = []domain.Address{}
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return nil
}

// ListCards resolves the optional text query and tag filter into a
// deduplicated candidate id set, then hydrates each card. Results are
// ordered updated_at descending with id descending as the tie-break.
func (r *Repository) ListCards(ctx context.Context, q, tag string) ([]domain.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	query, args := buildSearchQuery(q, tag)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search cards: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan card id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating card ids: %w", err)
	}
	rows.Close()

	cards := make([]domain.Card, 0, len(ids))
	for _, id := range ids {
		card, err := r.getCard(ctx, id)
		if err != nil {
			return nil, err
		}
		if card == nil {
			// Deleted between resolution and hydration; skip.
			continue
		}
		cards = append(cards, *card)
	}
	return cards, nil
}

// UpdateCard replaces the scalar fields, every child collection, and the
// tag-link set in one transaction. Prior child ids are discarded, never
// reused. Returns domain.ErrNotFound when the card does not exist.
func (r *Repository) UpdateCard(ctx context.Context, id int64, input domain.CardInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE cards SET name=?, title=?, company=?, website=?, notes=?,
			updated_at=CURRENT_TIMESTAMP
		WHERE id=?
	`, input.Name, input.Title, input.Company, input.Website, input.Notes, id)
	if err != nil {
		return fmt.Errorf("failed to update card: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	// Destructive replace: delete-all then insert-all.
	for _, tbl := range []string{"card_phones", "card_emails", "card_addresses"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+tbl+` WHERE card_id=?`, id); err != nil {
			return fmt.Errorf("failed to clear %s: %w", tbl, err)
		}
	}

	if err := insertChildren(ctx, tx, id, input); err != nil {
		return err
	}
	if err := syncCardTags(ctx, tx, id, input.Tags); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit update: %w", err)
	}
	return nil
}

// DeleteCard removes the card; children and tag links go with it via
// foreign-key cascade. Returns the prior photo_path so the caller can
// reclaim the file, or domain.ErrNotFound when the card does not exist.
func (r *Repository) DeleteCard(ctx context.Context, id int64) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var photoPath string
	err = tx.QueryRowContext(ctx, `SELECT photo_path FROM cards WHERE id=?`, id).Scan(&photoPath)
	if err == sql.ErrNoRows {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query photo path: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cards WHERE id=?`, id); err != nil {
		return "", fmt.Errorf("failed to delete card: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit delete: %w", err)
	}
	return photoPath, nil
}

// UpdateCardPhoto sets the photo_path for a card. The referenced file
// must already be durably written; write-before-link ordering is the
// caller's responsibility.
func (r *Repository) UpdateCardPhoto(ctx context.Context, id int64, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.ExecContext(ctx, `
		UPDATE cards SET photo_path=?, updated_at=CURRENT_TIMESTAMP WHERE id=?
	`, path, id)
	if err != nil {
		return fmt.Errorf("failed to update photo path: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ClearCardPhoto clears the photo_path and returns the old path. The
// database reference is cleared before any file cleanup so the store
// stays authoritative.
func (r *Repository) ClearCardPhoto(ctx context.Context, id int64) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var old string
	err = tx.QueryRowContext(ctx, `SELECT photo_path FROM cards WHERE id=?`, id).Scan(&old)
	if err == sql.ErrNoRows {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query photo path: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE cards SET photo_path='', updated_at=CURRENT_TIMESTAMP WHERE id=?
	`, id); err != nil {
		return "", fmt.Errorf("failed to clear photo path: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit photo clear: %w", err)
	}
	return old, nil
}

// insertChildren inserts phone, email, and address rows for a card
// inside an open transaction. Fresh child ids are assigned by SQLite.
func insertChildren(ctx context.Context, tx *sql.Tx, cardID int64, input domain.CardInput) error {
	for _, p := range input.Phones {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO card_phones (card_id, label, number) VALUES (?, ?, ?)
		`, cardID, p.Label, p.Number); err != nil {
			return fmt.Errorf("failed to insert phone: %w", err)
		}
	}
	for _, e := range input.Emails {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO card_emails (card_id, label, address) VALUES (?, ?, ?)
		`, cardID, e.Label, e.Address); err != nil {
			return fmt.Errorf("failed to insert email: %w", err)
		}
	}
	for _, a := range input.Addresses {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO card_addresses (card_id, label, street, city, country, postal)
			VALUES (?, ?, ?, ?, ?, ?)
		`, cardID, a.Label, a.Street, a.City, a.Country, a.Postal); err != nil {
			return fmt.Errorf("failed to insert address: %w", err)
		}
	}
	return nil
}
