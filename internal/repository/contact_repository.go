package repository

import (
	"database/sql"

	"github.com/brightcart/mailblast-backend/internal/model"
)

// ContactRepositoryInterface defines methods used by the dispatch service
type ContactRepositoryInterface interface {
	Create(c *model.Contact) error
	ListAll() ([]model.Contact, error)
	ListAllEmails() ([]string, error)
	ListGroupEmails(groupID int) ([]string, error)
}

// ContactRepository is the concrete implementation
type ContactRepository struct {
	DB *sql.DB
}

// Create inserts a new contact
func (r *ContactRepository) Create(c *model.Contact) error {
	query := `
        INSERT INTO contacts (email, first_name, last_name, created_at)
        VALUES ($1, $2, $3, NOW())
        RETURNING id, created_at
    `
	return r.DB.QueryRow(query, c.Email, c.FirstName, c.LastName).Scan(&c.ID, &c.CreatedAt)
}

// ListAll fetches every contact
func (r *ContactRepository) ListAll() ([]model.Contact, error) {
	query := `
        SELECT id, email, first_name, last_name, created_at
        FROM contacts
        ORDER BY id
    `
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []model.Contact{}
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.Email, &c.FirstName, &c.LastName, &c.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, nil
}

// ListAllEmails resolves the "all" pseudo-group: every contact's email.
func (r *ContactRepository) ListAllEmails() ([]string, error) {
	return r.collectEmails(`SELECT email FROM contacts ORDER BY id`)
}

// ListGroupEmails resolves a concrete group to its members' emails.
func (r *ContactRepository) ListGroupEmails(groupID int) ([]string, error) {
	query := `
        SELECT c.email
        FROM contacts c
        JOIN group_members gm ON gm.contact_id = c.id
        WHERE gm.group_id = $1
        ORDER BY c.id
    `
	return r.collectEmails(query, groupID)
}

func (r *ContactRepository) collectEmails(query string, args ...interface{}) ([]string, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	emails := []string{}
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}

var _ ContactRepositoryInterface = (*ContactRepository)(nil)
