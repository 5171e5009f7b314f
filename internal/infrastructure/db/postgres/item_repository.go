package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/toolhub/dashboard-api/internal/core/domain"
	"github.com/toolhub/dashboard-api/internal/core/ports"
)

type ItemRepository struct {
	pool *pgxpool.Pool
}

func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

const itemColumns = `id, name, description, url, icon, category, open_in_new_window, created_at, created_by`

func scanItem(row pgx.Row) (*domain.Item, error) {
	var it domain.Item
	err := row.Scan(&it.ID, &it.Name, &it.Description, &it.URL, &it.Icon, &it.Category, &it.OpenInNewWindow, &it.CreatedAt, &it.CreatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, storageErr("scan item", err)
	}
	return &it, nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM dashboard_items WHERE id = $1`, id)
	return scanItem(row)
}

func (r *ItemRepository) ListWithCounts(ctx context.Context) ([]*ports.ItemWithCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT di.id, di.name, di.description, di.url, di.icon, di.category,
		       di.open_in_new_window, di.created_at, di.created_by,
		       (SELECT COUNT(*) FROM user_items ui WHERE ui.item_id = di.id) AS user_count
		FROM dashboard_items di
		ORDER BY di.category, di.name`)
	if err != nil {
		return nil, storageErr("list items", err)
	}
	defer rows.Close()

	var items []*ports.ItemWithCount
	for rows.Next() {
		var it ports.ItemWithCount
		err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.URL, &it.Icon, &it.Category,
			&it.OpenInNewWindow, &it.CreatedAt, &it.CreatedBy, &it.UserCount)
		if err != nil {
			return nil, storageErr("scan item", err)
		}
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list items", err)
	}
	return items, nil
}

func (r *ItemRepository) ListForUser(ctx context.Context, userID int64) ([]*domain.Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT di.id, di.name, di.description, di.url, di.icon, di.category,
		       di.open_in_new_window, di.created_at, di.created_by
		FROM dashboard_items di
		JOIN user_items ui ON di.id = ui.item_id
		WHERE ui.user_id = $1
		ORDER BY ui.display_order, di.name`, userID)
	if err != nil {
		return nil, storageErr("list user items", err)
	}
	defer rows.Close()

	var items []*domain.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list user items", err)
	}
	return items, nil
}

func (r *ItemRepository) GetForUser(ctx context.Context, itemID, userID int64) (*domain.Item, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT di.id, di.name, di.description, di.url, di.icon, di.category,
		       di.open_in_new_window, di.created_at, di.created_by
		FROM dashboard_items di
		JOIN user_items ui ON di.id = ui.item_id
		WHERE di.id = $1 AND ui.user_id = $2`, itemID, userID)
	return scanItem(row)
}

func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO dashboard_items (name, description, url, icon, category, open_in_new_window, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+itemColumns,
		item.Name, item.Description, item.URL, item.Icon, item.Category, item.OpenInNewWindow, item.CreatedBy)
	return scanItem(row)
}

func (r *ItemRepository) Update(ctx context.Context, item *domain.Item) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE dashboard_items
		SET name = $2, description = $3, url = $4, icon = $5, category = $6, open_in_new_window = $7
		WHERE id = $1`,
		item.ID, item.Name, item.Description, item.URL, item.Icon, item.Category, item.OpenInNewWindow)
	if err != nil {
		return storageErr("update item", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// Delete removes the item row. Assignments cascade away and usage rows get a
// nulled item_id, both enforced by the schema.
func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM dashboard_items WHERE id = $1`, id)
	if err != nil {
		return storageErr("delete item", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}
