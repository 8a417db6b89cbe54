package product_test

import (
	"context"
	"errors"
	"testing"

	appproduct "github.com/emmaeryne/amjednamoussa/application/product"
	"github.com/emmaeryne/amjednamoussa/constant"
	categorymocks "github.com/emmaeryne/amjednamoussa/mocks/repository/category"
	productmocks "github.com/emmaeryne/amjednamoussa/mocks/repository/product"
	redismocks "github.com/emmaeryne/amjednamoussa/mocks/repository/redis"
	"github.com/emmaeryne/amjednamoussa/model"
	cerr "github.com/emmaeryne/amjednamoussa/utils/errors"
	"github.com/stretchr/testify/mock"
)

func TestProductApp_ListProducts(t *testing.T) {
	type fields struct {
		productRepo  *productmocks.ProductRepository
		categoryRepo *categorymocks.CategoryRepository
		redisRepo    *redismocks.Repository
	}
	tests := []struct {
		name      string
		fields    fields
		slug      string
		page      int
		perPage   int
		mockCall  func(f fields)
		wantCount int
		wantErr   bool
		errCode   constant.ErrorType
	}{
		{
			name: "success: no category filter",
			fields: fields{
				productRepo:  productmocks.NewProductRepository(t),
				categoryRepo: categorymocks.NewCategoryRepository(t),
				redisRepo:    redismocks.NewRepository(t),
			},
			page:    1,
			perPage: 20,
			mockCall: func(f fields) {
				f.redisRepo.On("GetCached", mock.Anything, constant.CacheTagProducts, "list::1:20").Return("", false, nil).Once()
				f.productRepo.On("List", mock.Anything, (*uint64)(nil), 1, 20).Return([]model.Product{
					{ID: 1, Name: "Sac en osier", Price: 45},
					{ID: 2, Name: "Chapeau de paille", Price: 25},
				}, int64(2), nil).Once()
				f.redisRepo.On("SetCached", mock.Anything, constant.CacheTagProducts, "list::1:20", mock.Anything, mock.Anything).Return(nil).Once()
			},
			wantCount: 2,
		},
		{
			name: "success: cache hit skips the repositories",
			fields: fields{
				productRepo:  productmocks.NewProductRepository(t),
				categoryRepo: categorymocks.NewCategoryRepository(t),
				redisRepo:    redismocks.NewRepository(t),
			},
			page:    1,
			perPage: 20,
			mockCall: func(f fields) {
				cached := `{"items":[{"id":1,"name":"Sac en osier","price":45}],"total_count":1,"page":1,"per_page":20}`
				f.redisRepo.On("GetCached", mock.Anything, constant.CacheTagProducts, "list::1:20").Return(cached, true, nil).Once()
			},
			wantCount: 1,
		},
		{
			name: "success: category slug resolved to id",
			fields: fields{
				productRepo:  productmocks.NewProductRepository(t),
				categoryRepo: categorymocks.NewCategoryRepository(t),
				redisRepo:    redismocks.NewRepository(t),
			},
			slug:    "sacs",
			page:    1,
			perPage: 20,
			mockCall: func(f fields) {
				f.redisRepo.On("GetCached", mock.Anything, constant.CacheTagProducts, "list:sacs:1:20").Return("", false, nil).Once()
				f.categoryRepo.On("GetBySlug", mock.Anything, "sacs").Return(&model.Category{ID: 3, Slug: "sacs"}, nil).Once()
				f.productRepo.On("List", mock.Anything, mock.MatchedBy(func(id *uint64) bool {
					return id != nil && *id == 3
				}), 1, 20).Return([]model.Product{{ID: 1, Name: "Sac en osier", Price: 45}}, int64(1), nil).Once()
				f.redisRepo.On("SetCached", mock.Anything, constant.CacheTagProducts, "list:sacs:1:20", mock.Anything, mock.Anything).Return(nil).Once()
			},
			wantCount: 1,
		},
		{
			name: "success: unknown slug yields an empty list",
			fields: fields{
				productRepo:  productmocks.NewProductRepository(t),
				categoryRepo: categorymocks.NewCategoryRepository(t),
				redisRepo:    redismocks.NewRepository(t),
			},
			slug:    "inconnu",
			page:    1,
			perPage: 20,
			mockCall: func(f fields) {
				f.redisRepo.On("GetCached", mock.Anything, constant.CacheTagProducts, "list:inconnu:1:20").Return("", false, nil).Once()
				f.categoryRepo.On("GetBySlug", mock.Anything, "inconnu").Return(nil, nil).Once()
			},
			wantCount: 0,
		},
		{
			name: "error: repository failure",
			fields: fields{
				productRepo:  productmocks.NewProductRepository(t),
				categoryRepo: categorymocks.NewCategoryRepository(t),
				redisRepo:    redismocks.NewRepository(t),
			},
			page:    1,
			perPage: 20,
			mockCall: func(f fields) {
				f.redisRepo.On("GetCached", mock.Anything, constant.CacheTagProducts, "list::1:20").Return("", false, nil).Once()
				f.productRepo.On("List", mock.Anything, (*uint64)(nil), 1, 20).Return(nil, int64(0), errors.New("db error")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appproduct.NewProductApp(tt.fields.productRepo, tt.fields.categoryRepo, tt.fields.redisRepo)

			got, err := app.ListProducts(context.Background(), tt.slug, tt.page, tt.perPage)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ListProducts() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}

			if len(got.Items) != tt.wantCount {
				t.Fatalf("ListProducts() returned %d items, want %d", len(got.Items), tt.wantCount)
			}
		})
	}
}

func TestProductApp_GetProduct(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		productRepo := productmocks.NewProductRepository(t)
		productRepo.On("GetByID", mock.Anything, uint64(1)).Return(&model.Product{ID: 1, Name: "Sac en osier"}, nil).Once()

		app := appproduct.NewProductApp(productRepo, categorymocks.NewCategoryRepository(t), redismocks.NewRepository(t))
		got, err := app.GetProduct(context.Background(), 1)
		if err != nil {
			t.Fatalf("GetProduct() error = %v", err)
		}
		if got.ID != 1 {
			t.Fatalf("GetProduct() ID = %d, want 1", got.ID)
		}
	})

	t.Run("error: not found", func(t *testing.T) {
		productRepo := productmocks.NewProductRepository(t)
		productRepo.On("GetByID", mock.Anything, uint64(99)).Return(nil, nil).Once()

		app := appproduct.NewProductApp(productRepo, categorymocks.NewCategoryRepository(t), redismocks.NewRepository(t))
		_, err := app.GetProduct(context.Background(), 99)

		var ce cerr.CustomError
		if !errors.As(err, &ce) {
			t.Fatalf("error type = %T, want CustomError", err)
		}
		if ce.ErrorCode() != constant.ErrorTypeCode[constant.ErrNotFound] {
			t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[constant.ErrNotFound])
		}
	})
}
