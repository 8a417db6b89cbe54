package promo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/emmaeryne/amjednamoussa/constant"
	"github.com/emmaeryne/amjednamoussa/model"
	promorepo "github.com/emmaeryne/amjednamoussa/repository/promo"
	redisrepo "github.com/emmaeryne/amjednamoussa/repository/redis"
	cerr "github.com/emmaeryne/amjednamoussa/utils/errors"
	"github.com/emmaeryne/amjednamoussa/utils/logger"
	"github.com/emmaeryne/amjednamoussa/utils/pricing"
	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

const listCacheTTL = 5 * time.Minute

type PromoApp interface {
	Validate(ctx context.Context, code string, orderAmount float64) (*model.PromoValidation, error)
	List(ctx context.Context) ([]model.PromoCode, error)
	Create(ctx context.Context, req *model.CreatePromoCodeRequest) (*model.PromoCode, error)
	SetActive(ctx context.Context, id uint64, isActive bool) error
	Delete(ctx context.Context, id uint64) error
}

type promoAppImpl struct {
	promoRepo promorepo.PromoRepository
	redisRepo redisrepo.Repository
}

func NewPromoApp(promoRepo promorepo.PromoRepository, redisRepo redisrepo.Repository) PromoApp {
	return &promoAppImpl{promoRepo: promoRepo, redisRepo: redisRepo}
}

// Validate checks a promo code against an order amount and computes the
// discount it would grant. It never mutates usage counters, so a cart being
// edited live can re-validate freely. Inactive codes surface as not found.
func (s *promoAppImpl) Validate(ctx context.Context, code string, orderAmount float64) (*model.PromoValidation, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	promo, err := s.promoRepo.GetActiveByCode(ctx, normalized)
	if err != nil {
		logger.Error("[Validate] get promo code", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if promo == nil {
		return nil, cerr.SetCustomError(constant.ErrPromoNotFound)
	}

	if promo.ExpiresAt != nil && promo.ExpiresAt.Before(time.Now()) {
		return nil, cerr.SetCustomError(constant.ErrPromoExpired)
	}

	if promo.MaxUses != nil && promo.CurrentUses >= *promo.MaxUses {
		return nil, cerr.SetCustomError(constant.ErrPromoUsageLimit)
	}

	if orderAmount < promo.MinOrderAmount {
		return nil, cerr.SetCustomErrorf(constant.ErrPromoBelowMinimum, "minimum order of %.2f DT required", promo.MinOrderAmount)
	}

	return &model.PromoValidation{
		Promo:          promo,
		DiscountAmount: pricing.Discount(promo.DiscountType, promo.DiscountValue, orderAmount),
	}, nil
}

func (s *promoAppImpl) List(ctx context.Context) ([]model.PromoCode, error) {
	if cached, ok, err := s.redisRepo.GetCached(ctx, constant.CacheTagPromoCodes, "list"); err == nil && ok {
		var promos []model.PromoCode
		if err := json.Unmarshal([]byte(cached), &promos); err == nil {
			return promos, nil
		}
	}

	promos, err := s.promoRepo.List(ctx)
	if err != nil {
		logger.Error("[List] list promo codes", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	if encoded, err := json.Marshal(promos); err == nil {
		if err := s.redisRepo.SetCached(ctx, constant.CacheTagPromoCodes, "list", string(encoded), listCacheTTL); err != nil {
			logger.Warn("[List] cache promo codes", zap.String("error", err.Error()))
		}
	}

	return promos, nil
}

func (s *promoAppImpl) Create(ctx context.Context, req *model.CreatePromoCodeRequest) (*model.PromoCode, error) {
	if !constant.IsValidDiscountType(req.DiscountType) {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	promo := &model.PromoCode{
		Code:           strings.ToUpper(strings.TrimSpace(req.Code)),
		DiscountType:   req.DiscountType,
		DiscountValue:  req.DiscountValue,
		MinOrderAmount: req.MinOrderAmount,
		MaxUses:        req.MaxUses,
		IsActive:       true,
		ExpiresAt:      req.ExpiresAt,
	}

	id, err := s.promoRepo.Create(ctx, promo)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return nil, cerr.SetCustomError(constant.ErrPromoCodeExists)
		}
		logger.Error("[Create] insert promo code", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	promo.ID = id

	s.invalidateList(ctx)
	return promo, nil
}

func (s *promoAppImpl) SetActive(ctx context.Context, id uint64, isActive bool) error {
	if err := s.promoRepo.SetActive(ctx, id, isActive); err != nil {
		if err == sql.ErrNoRows {
			return cerr.SetCustomError(constant.ErrNotFound)
		}
		logger.Error("[SetActive] update promo code", zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}
	s.invalidateList(ctx)
	return nil
}

func (s *promoAppImpl) Delete(ctx context.Context, id uint64) error {
	if err := s.promoRepo.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return cerr.SetCustomError(constant.ErrNotFound)
		}
		logger.Error("[Delete] delete promo code", zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}
	s.invalidateList(ctx)
	return nil
}

func (s *promoAppImpl) invalidateList(ctx context.Context) {
	if err := s.redisRepo.InvalidateTag(ctx, constant.CacheTagPromoCodes); err != nil {
		logger.Warn("[invalidateList] invalidate promo cache", zap.String("error", err.Error()))
	}
}
