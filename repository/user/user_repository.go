package user

import (
	"context"
	"database/sql"

	"github.com/emmaeryne/amjednamoussa/model"
	"github.com/jmoiron/sqlx"
)

type SQL struct {
	conn *sqlx.DB
}

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*model.AdminUser, error)
}

func NewUserRepository(conn *sqlx.DB) UserRepository {
	return &SQL{conn: conn}
}

func (s *SQL) GetByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	var entity model.AdminUser
	query := "SELECT id, name, email, password_hash, created_at, updated_at FROM admin_user WHERE email = ?"
	if err := s.conn.QueryRowxContext(ctx, query, email).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}
