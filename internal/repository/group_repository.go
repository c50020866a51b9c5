package repository

import (
	"database/sql"

	appErrors "github.com/brightcart/mailblast-backend/internal/errors"
	"github.com/brightcart/mailblast-backend/internal/model"
)

type GroupRepositoryInterface interface {
	Create(g *model.Group) error
	GetByID(id int) (*model.Group, error)
	ListAll() ([]model.Group, error)
	AddMember(groupID, contactID int) error
}

type GroupRepository struct {
	DB *sql.DB
}

func (r *GroupRepository) Create(g *model.Group) error {
	query := `
        INSERT INTO groups (name, created_at)
        VALUES ($1, NOW())
        RETURNING id, created_at
    `
	return r.DB.QueryRow(query, g.Name).Scan(&g.ID, &g.CreatedAt)
}

func (r *GroupRepository) GetByID(id int) (*model.Group, error) {
	query := `SELECT id, name, created_at FROM groups WHERE id=$1`
	var g model.Group
	err := r.DB.QueryRow(query, id).Scan(&g.ID, &g.Name, &g.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewGroupNotFound(id)
		}
		return nil, err
	}
	return &g, nil
}

func (r *GroupRepository) ListAll() ([]model.Group, error) {
	rows, err := r.DB.Query(`SELECT id, name, created_at FROM groups ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []model.Group{}
	for rows.Next() {
		var g model.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// AddMember is idempotent: adding the same contact twice is a no-op.
func (r *GroupRepository) AddMember(groupID, contactID int) error {
	query := `
        INSERT INTO group_members (group_id, contact_id)
        VALUES ($1, $2)
        ON CONFLICT (group_id, contact_id) DO NOTHING
    `
	_, err := r.DB.Exec(query, groupID, contactID)
	return err
}

var _ GroupRepositoryInterface = (*GroupRepository)(nil)
