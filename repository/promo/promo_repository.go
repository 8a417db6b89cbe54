package promo

import (
	"context"
	"database/sql"

	"github.com/emmaeryne/amjednamoussa/model"
	"github.com/jmoiron/sqlx"
)

type SQL struct {
	conn *sqlx.DB
}

type PromoRepository interface {
	GetActiveByCode(ctx context.Context, code string) (*model.PromoCode, error)
	List(ctx context.Context) ([]model.PromoCode, error)
	Create(ctx context.Context, promo *model.PromoCode) (uint64, error)
	SetActive(ctx context.Context, id uint64, isActive bool) error
	Delete(ctx context.Context, id uint64) error
	IncrementUsage(ctx context.Context, code string) (bool, error)
}

func NewPromoRepository(conn *sqlx.DB) PromoRepository {
	return &SQL{conn: conn}
}

const (
	getActivePromoQuery = `SELECT id, code, discount_type, discount_value, min_order_amount, max_uses, current_uses, is_active, expires_at, created_at, updated_at
FROM promo_code WHERE code = ? AND is_active = TRUE`

	listPromoQuery = `SELECT id, code, discount_type, discount_value, min_order_amount, max_uses, current_uses, is_active, expires_at, created_at, updated_at
FROM promo_code ORDER BY created_at DESC`

	insertPromoQuery = `INSERT INTO promo_code (code, discount_type, discount_value, min_order_amount, max_uses, current_uses, is_active, expires_at, created_at)
VALUES (?, ?, ?, ?, ?, 0, TRUE, ?, NOW())`

	// The guard makes the increment a single conditional update, so two orders
	// redeeming the same code concurrently can never push current_uses past
	// max_uses or clobber each other's write.
	incrementUsageQuery = `UPDATE promo_code
SET current_uses = current_uses + 1, updated_at = NOW()
WHERE code = ? AND (max_uses IS NULL OR current_uses < max_uses)`
)

// GetActiveByCode returns nil without error when no active record matches, so
// inactive codes are indistinguishable from nonexistent ones to callers.
func (s *SQL) GetActiveByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	var promo model.PromoCode
	if err := s.conn.QueryRowxContext(ctx, getActivePromoQuery, code).StructScan(&promo); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &promo, nil
}

func (s *SQL) List(ctx context.Context) ([]model.PromoCode, error) {
	rows, err := s.conn.QueryxContext(ctx, listPromoQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	promos := make([]model.PromoCode, 0)
	for rows.Next() {
		var p model.PromoCode
		if err := rows.StructScan(&p); err != nil {
			return nil, err
		}
		promos = append(promos, p)
	}
	return promos, rows.Err()
}

func (s *SQL) Create(ctx context.Context, promo *model.PromoCode) (uint64, error) {
	res, err := s.conn.ExecContext(ctx, insertPromoQuery,
		promo.Code, promo.DiscountType, promo.DiscountValue, promo.MinOrderAmount, promo.MaxUses, promo.ExpiresAt)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (s *SQL) SetActive(ctx context.Context, id uint64, isActive bool) error {
	res, err := s.conn.ExecContext(ctx, "UPDATE promo_code SET is_active = ?, updated_at = NOW() WHERE id = ?", isActive, id)
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

func (s *SQL) Delete(ctx context.Context, id uint64) error {
	res, err := s.conn.ExecContext(ctx, "DELETE FROM promo_code WHERE id = ?", id)
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

// IncrementUsage bumps current_uses by one. It returns false when the code no
// longer exists or its usage cap was reached between validation and now.
func (s *SQL) IncrementUsage(ctx context.Context, code string) (bool, error) {
	res, err := s.conn.ExecContext(ctx, incrementUsageQuery, code)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
