package product

import (
	"context"
	"database/sql"

	"github.com/emmaeryne/amjednamoussa/model"
	"github.com/jmoiron/sqlx"
)

type SQL struct {
	conn *sqlx.DB
}

type ProductRepository interface {
	List(ctx context.Context, categoryID *uint64, page, perPage int) ([]model.Product, int64, error)
	GetByID(ctx context.Context, id uint64) (*model.Product, error)
	Create(ctx context.Context, product *model.Product) (uint64, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id uint64) error
}

func NewProductRepository(conn *sqlx.DB) ProductRepository {
	return &SQL{conn: conn}
}

const (
	productColumns = `id, name, description, price, image_url, category_id, sizes, colors, in_stock, created_at, updated_at`

	listProductsBase = `SELECT ` + productColumns + ` FROM product`

	insertProductQuery = `INSERT INTO product (name, description, price, image_url, category_id, sizes, colors, in_stock, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW())`

	updateProductQuery = `UPDATE product
SET name = ?, description = ?, price = ?, image_url = ?, category_id = ?, sizes = ?, colors = ?, in_stock = ?, updated_at = NOW()
WHERE id = ?`
)

func (s *SQL) List(ctx context.Context, categoryID *uint64, page, perPage int) ([]model.Product, int64, error) {
	offset := (page - 1) * perPage

	query := listProductsBase
	countQuery := "SELECT COUNT(*) FROM product"
	args := make([]interface{}, 0, 3)
	countArgs := make([]interface{}, 0, 1)
	if categoryID != nil {
		query += " WHERE category_id = ?"
		countQuery += " WHERE category_id = ?"
		args = append(args, *categoryID)
		countArgs = append(countArgs, *categoryID)
	}
	query += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, perPage, offset)

	rows, err := s.conn.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]model.Product, 0)
	for rows.Next() {
		var p model.Product
		if err := rows.StructScan(&p); err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := s.conn.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.Product, error) {
	var p model.Product
	if err := s.conn.QueryRowxContext(ctx, listProductsBase+" WHERE id = ?", id).StructScan(&p); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *SQL) Create(ctx context.Context, product *model.Product) (uint64, error) {
	res, err := s.conn.ExecContext(ctx, insertProductQuery,
		product.Name, product.Description, product.Price, product.ImageURL, product.CategoryID,
		product.Sizes, product.Colors, product.InStock)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (s *SQL) Update(ctx context.Context, product *model.Product) error {
	res, err := s.conn.ExecContext(ctx, updateProductQuery,
		product.Name, product.Description, product.Price, product.ImageURL, product.CategoryID,
		product.Sizes, product.Colors, product.InStock, product.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes the product record only. Order items keep their snapshot of
// the product name and price, so past orders are unaffected.
func (s *SQL) Delete(ctx context.Context, id uint64) error {
	res, err := s.conn.ExecContext(ctx, "DELETE FROM product WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
