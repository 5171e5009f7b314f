package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/toolhub/dashboard-api/internal/core/domain"
)

type AssignmentRepository struct {
	pool *pgxpool.Pool
}

func NewAssignmentRepository(pool *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{pool: pool}
}

func (r *AssignmentRepository) IsAssigned(ctx context.Context, userID, itemID int64) (bool, error) {
	var assigned bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM user_items WHERE user_id = $1 AND item_id = $2)`,
		userID, itemID).Scan(&assigned)
	if err != nil {
		return false, storageErr("check assignment", err)
	}
	return assigned, nil
}

func (r *AssignmentRepository) ListItemIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT item_id FROM user_items WHERE user_id = $1 ORDER BY display_order`, userID)
	if err != nil {
		return nil, storageErr("list assignments", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, storageErr("scan assignment", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list assignments", err)
	}
	return ids, nil
}

// Replace rewrites the user's assignment set in one transaction so a failed
// insert never leaves the user with a half-applied grant list.
func (r *AssignmentRepository) Replace(ctx context.Context, userID int64, itemIDs []int64) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return storageErr("replace assignments", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM user_items WHERE user_id = $1`, userID); err != nil {
		return storageErr("clear assignments", err)
	}
	for order, itemID := range itemIDs {
		_, err := tx.Exec(ctx, `
			INSERT INTO user_items (user_id, item_id, display_order) VALUES ($1, $2, $3)`,
			userID, itemID, order)
		if err != nil {
			return storageErr("insert assignment", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return storageErr("replace assignments", err)
	}
	return nil
}

func (r *AssignmentRepository) ListUsersForItem(ctx context.Context, itemID int64) ([]*domain.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.username, u.password_hash, u.is_admin, u.must_change_password, u.created_at, u.last_login
		FROM users u
		JOIN user_items ui ON u.id = ui.user_id
		WHERE ui.item_id = $1
		ORDER BY u.username`, itemID)
	if err != nil {
		return nil, storageErr("list item users", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list item users", err)
	}
	return users, nil
}
