package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"eventhub/internal/domain"
)

type groupRepository struct {
	DB *sql.DB
}

func NewGroupRepository(db *sql.DB) domain.GroupRepository {
	return &groupRepository{DB: db}
}

func (r *groupRepository) Create(ctx context.Context, g *domain.Group) error {
	query := `
		INSERT INTO groups (name)
		VALUES ($1)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, g.Name).Scan(&g.ID)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.ErrConflict
	}
	return err
}

func (r *groupRepository) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	query := `SELECT id, name FROM groups WHERE id = $1`
	g := &domain.Group{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&g.ID, &g.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

func (r *groupRepository) GetByName(ctx context.Context, name string) (*domain.Group, error) {
	query := `SELECT id, name FROM groups WHERE name = $1`
	g := &domain.Group{}
	err := r.DB.QueryRowContext(ctx, query, name).Scan(&g.ID, &g.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

func (r *groupRepository) List(ctx context.Context) ([]*domain.GroupWithMemberCount, error) {
	query := `
		SELECT g.id, g.name, COUNT(ug.user_id)
		FROM groups g
		LEFT JOIN user_groups ug ON ug.group_id = g.id
		GROUP BY g.id, g.name
		ORDER BY g.id
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := make([]*domain.GroupWithMemberCount, 0)
	for rows.Next() {
		g := &domain.GroupWithMemberCount{}
		if err := rows.Scan(&g.ID, &g.Name, &g.MemberCount); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// ListByUserID returns the user's groups in a deterministic order (group id
// ascending) so the first element is a stable effective role.
func (r *groupRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Group, error) {
	query := `
		SELECT g.id, g.name
		FROM groups g
		INNER JOIN user_groups ug ON ug.group_id = g.id
		WHERE ug.user_id = $1
		ORDER BY g.id
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*domain.Group
	for rows.Next() {
		g := &domain.Group{}
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *groupRepository) AssignUser(ctx context.Context, userID, groupID string) error {
	query := `
		INSERT INTO user_groups (user_id, group_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, group_id) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query, userID, groupID)
	return err
}

func (r *groupRepository) ReplaceUserGroups(ctx context.Context, userID string, groupIDs []string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_groups WHERE user_id = $1`, userID); err != nil {
		return err
	}
	for _, groupID := range groupIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO user_groups (user_id, group_id) VALUES ($1, $2)`, userID, groupID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Delete refuses to remove a group that still has members: the membership
// check and the delete run in one transaction so the guard cannot race with
// a concurrent assignment.
func (r *groupRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var members int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user_groups WHERE group_id = $1`, id).Scan(&members); err != nil {
		return err
	}
	if members > 0 {
		return fmt.Errorf("%w: group has %d assigned users", domain.ErrConflict, members)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}
