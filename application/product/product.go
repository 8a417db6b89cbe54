package product

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/emmaeryne/amjednamoussa/constant"
	"github.com/emmaeryne/amjednamoussa/model"
	categoryrepo "github.com/emmaeryne/amjednamoussa/repository/category"
	productrepo "github.com/emmaeryne/amjednamoussa/repository/product"
	redisrepo "github.com/emmaeryne/amjednamoussa/repository/redis"
	cerr "github.com/emmaeryne/amjednamoussa/utils/errors"
	"github.com/emmaeryne/amjednamoussa/utils/logger"
	"go.uber.org/zap"
)

const listCacheTTL = 5 * time.Minute

type ProductApp interface {
	ListProducts(ctx context.Context, categorySlug string, page, perPage int) (*model.ProductListResponse, error)
	GetProduct(ctx context.Context, id uint64) (*model.Product, error)
	CreateProduct(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uint64, req *model.UpdateProductRequest) error
	DeleteProduct(ctx context.Context, id uint64) error
	ListCategories(ctx context.Context) ([]model.Category, error)
}

type productAppImpl struct {
	productRepo  productrepo.ProductRepository
	categoryRepo categoryrepo.CategoryRepository
	redisRepo    redisrepo.Repository
}

func NewProductApp(productRepo productrepo.ProductRepository, categoryRepo categoryrepo.CategoryRepository, redisRepo redisrepo.Repository) ProductApp {
	return &productAppImpl{productRepo: productRepo, categoryRepo: categoryRepo, redisRepo: redisRepo}
}

func (s *productAppImpl) ListProducts(ctx context.Context, categorySlug string, page, perPage int) (*model.ProductListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 20
	}

	cacheKey := fmt.Sprintf("list:%s:%d:%d", categorySlug, page, perPage)
	if cached, ok, err := s.redisRepo.GetCached(ctx, constant.CacheTagProducts, cacheKey); err == nil && ok {
		var resp model.ProductListResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			return &resp, nil
		}
	}

	// An unknown slug filters to an empty catalog rather than erroring, the
	// storefront treats category pages as plain filters.
	var categoryID *uint64
	if categorySlug != "" {
		category, err := s.categoryRepo.GetBySlug(ctx, categorySlug)
		if err != nil {
			logger.Error("[ListProducts] get category", zap.String("error", err.Error()))
			return nil, cerr.SetCustomError(constant.ErrInternal)
		}
		if category == nil {
			return &model.ProductListResponse{Items: []model.Product{}, Page: page, PerPage: perPage}, nil
		}
		categoryID = &category.ID
	}

	items, total, err := s.productRepo.List(ctx, categoryID, page, perPage)
	if err != nil {
		logger.Error("[ListProducts] list products", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	resp := &model.ProductListResponse{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PerPage:    perPage,
	}

	if encoded, err := json.Marshal(resp); err == nil {
		if err := s.redisRepo.SetCached(ctx, constant.CacheTagProducts, cacheKey, string(encoded), listCacheTTL); err != nil {
			logger.Warn("[ListProducts] cache products", zap.String("error", err.Error()))
		}
	}

	return resp, nil
}

func (s *productAppImpl) GetProduct(ctx context.Context, id uint64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[GetProduct] get product", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if product == nil {
		return nil, cerr.SetCustomError(constant.ErrNotFound)
	}
	return product, nil
}

func (s *productAppImpl) CreateProduct(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}

	product := &model.Product{
		Name:        req.Name,
		Description: nullableString(req.Description),
		Price:       req.Price,
		ImageURL:    nullableString(req.ImageURL),
		CategoryID:  req.CategoryID,
		Sizes:       model.JSONList(req.Sizes),
		Colors:      model.JSONList(req.Colors),
		InStock:     inStock,
	}

	id, err := s.productRepo.Create(ctx, product)
	if err != nil {
		logger.Error("[CreateProduct] insert product", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	product.ID = id

	s.invalidateProducts(ctx)
	return product, nil
}

func (s *productAppImpl) UpdateProduct(ctx context.Context, id uint64, req *model.UpdateProductRequest) error {
	product := &model.Product{
		ID:          id,
		Name:        req.Name,
		Description: nullableString(req.Description),
		Price:       req.Price,
		ImageURL:    nullableString(req.ImageURL),
		CategoryID:  req.CategoryID,
		Sizes:       model.JSONList(req.Sizes),
		Colors:      model.JSONList(req.Colors),
		InStock:     req.InStock,
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		if err == sql.ErrNoRows {
			return cerr.SetCustomError(constant.ErrNotFound)
		}
		logger.Error("[UpdateProduct] update product", zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}

	s.invalidateProducts(ctx)
	return nil
}

func (s *productAppImpl) DeleteProduct(ctx context.Context, id uint64) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return cerr.SetCustomError(constant.ErrNotFound)
		}
		logger.Error("[DeleteProduct] delete product", zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}

	s.invalidateProducts(ctx)
	return nil
}

func (s *productAppImpl) ListCategories(ctx context.Context) ([]model.Category, error) {
	if cached, ok, err := s.redisRepo.GetCached(ctx, constant.CacheTagCategories, "list"); err == nil && ok {
		var categories []model.Category
		if err := json.Unmarshal([]byte(cached), &categories); err == nil {
			return categories, nil
		}
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		logger.Error("[ListCategories] list categories", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	if encoded, err := json.Marshal(categories); err == nil {
		if err := s.redisRepo.SetCached(ctx, constant.CacheTagCategories, "list", string(encoded), listCacheTTL); err != nil {
			logger.Warn("[ListCategories] cache categories", zap.String("error", err.Error()))
		}
	}

	return categories, nil
}

func (s *productAppImpl) invalidateProducts(ctx context.Context) {
	if err := s.redisRepo.InvalidateTag(ctx, constant.CacheTagProducts); err != nil {
		logger.Warn("[invalidateProducts] invalidate product cache", zap.String("error", err.Error()))
	}
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
