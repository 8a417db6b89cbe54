package category

import (
	"context"
	"database/sql"

	"github.com/emmaeryne/amjednamoussa/model"
	"github.com/jmoiron/sqlx"
)

type SQL struct {
	conn *sqlx.DB
}

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)
}

func NewCategoryRepository(conn *sqlx.DB) CategoryRepository {
	return &SQL{conn: conn}
}

func (s *SQL) List(ctx context.Context) ([]model.Category, error) {
	rows, err := s.conn.QueryxContext(ctx, "SELECT id, name, slug, image_url, created_at FROM category ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]model.Category, 0)
	for rows.Next() {
		var c model.Category
		if err := rows.StructScan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *SQL) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var c model.Category
	if err := s.conn.QueryRowxContext(ctx, "SELECT id, name, slug, image_url, created_at FROM category WHERE slug = ?", slug).StructScan(&c); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
