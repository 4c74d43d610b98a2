package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lorrc/chat-relay-backend/internal/core/domain"
	"github.com/lorrc/chat-relay-backend/internal/core/ports"
)

// ContactRepository is the external contact store. It seeds the resolver at
// startup and records registrations; messages are never persisted here.
type ContactRepository struct {
	pool *pgxpool.Pool
}

var _ ports.ContactDirectory = (*ContactRepository)(nil)

// NewContactRepository creates a new contact repository.
func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

// LoadAll returns every stored contact identity.
func (r *ContactRepository) LoadAll(ctx context.Context) ([]domain.ContactIdentity, error) {
	const query = `
SELECT contact_id, address, COALESCE(name, '')
FROM contacts
ORDER BY contact_id
`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []domain.ContactIdentity
	for rows.Next() {
		var c domain.ContactIdentity
		if err := rows.Scan(&c.ContactID, &c.Address, &c.Name); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}

	return contacts, rows.Err()
}

// Save upserts a contact identity. Last write wins on both keys, matching
// the resolver's replacement semantics: an address moving to a new contact
// id evicts the previous owner of that address.
func (r *ContactRepository) Save(ctx context.Context, contact domain.ContactIdentity) error {
	const cleanup = `DELETE FROM contacts WHERE address = $1 AND contact_id <> $2`
	const upsert = `
INSERT INTO contacts (contact_id, address, name)
VALUES ($1, $2, NULLIF($3, ''))
ON CONFLICT (contact_id) DO UPDATE
SET address = EXCLUDED.address, name = EXCLUDED.name
`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, cleanup, contact.Address, contact.ContactID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, upsert, contact.ContactID, contact.Address, contact.Name); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
