package promo_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	apppromo "github.com/emmaeryne/amjednamoussa/application/promo"
	"github.com/emmaeryne/amjednamoussa/constant"
	promomocks "github.com/emmaeryne/amjednamoussa/mocks/repository/promo"
	redismocks "github.com/emmaeryne/amjednamoussa/mocks/repository/redis"
	"github.com/emmaeryne/amjednamoussa/model"
	cerr "github.com/emmaeryne/amjednamoussa/utils/errors"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/mock"
)

var mysqlDuplicateErr = mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}

func int64Ptr(v int64) *int64 { return &v }

func timePtr(v time.Time) *time.Time { return &v }

func TestPromoApp_Validate(t *testing.T) {
	type fields struct {
		promoRepo *promomocks.PromoRepository
		redisRepo *redismocks.Repository
	}
	type args struct {
		ctx         context.Context
		code        string
		orderAmount float64
	}
	tests := []struct {
		name         string
		fields       fields
		args         args
		mockCall     func(f fields)
		wantDiscount float64
		wantErr      bool
		errCode      constant.ErrorType
		wantErrMsg   string
	}{
		{
			name: "success: percentage discount",
			fields: fields{
				promoRepo: promomocks.NewPromoRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			args: args{
				ctx:         context.Background(),
				code:        "SUMMER10",
				orderAmount: 200,
			},
			mockCall: func(f fields) {
				f.promoRepo.On("GetActiveByCode", mock.Anything, "SUMMER10").Return(&model.PromoCode{
					ID:            1,
					Code:          "SUMMER10",
					DiscountType:  constant.DiscountTypePercentage,
					DiscountValue: 10,
					IsActive:      true,
				}, nil).Once()
			},
			wantDiscount: 20,
		},
		{
			name: "success: fixed discount capped at order amount",
			fields: fields{
				promoRepo: promomocks.NewPromoRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			args: args{
				ctx:         context.Background(),
				code:        "FLAT50",
				orderAmount: 30,
			},
			mockCall: func(f fields) {
				f.promoRepo.On("GetActiveByCode", mock.Anything, "FLAT50").Return(&model.PromoCode{
					ID:            2,
					Code:          "FLAT50",
					DiscountType:  constant.DiscountTypeFixed,
					DiscountValue: 50,
					IsActive:      true,
				}, nil).Once()
			},
			wantDiscount: 30,
		},
		{
			name: "success: code normalized before lookup",
			fields: fields{
				promoRepo: promomocks.NewPromoRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			args: args{
				ctx:         context.Background(),
				code:        "  summer10 ",
				orderAmount: 100,
			},
			mockCall: func(f fields) {
				f.promoRepo.On("GetActiveByCode", mock.Anything, "SUMMER10").Return(&model.PromoCode{
					ID:            1,
					Code:          "SUMMER10",
					DiscountType:  constant.DiscountTypePercentage,
					DiscountValue: 10,
					IsActive:      true,
				}, nil).Once()
			},
			wantDiscount: 10,
		},
		{
			name: "error: code not found",
			fields: fields{
				promoRepo: promomocks.NewPromoRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			args: args{
				ctx:         context.Background(),
				code:        "MISSING",
				orderAmount: 100,
			},
			mockCall: func(f fields) {
				f.promoRepo.On("GetActiveByCode", mock.Anything, "MISSING").Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrPromoNotFound,
		},
		{
			name: "error: expired code reported before usage limit",
			fields: fields{
				promoRepo: promomocks.NewPromoRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			args: args{
				ctx:         context.Background(),
				code:        "OLD",
				orderAmount: 100,
			},
			mockCall: func(f fields) {
				f.promoRepo.On("GetActiveByCode", mock.Anything, "OLD").Return(&model.PromoCode{
					ID:            3,
					Code:          "OLD",
					DiscountType:  constant.DiscountTypeFixed,
					DiscountValue: 10,
					MaxUses:       int64Ptr(5),
					CurrentUses:   5,
					IsActive:      true,
					ExpiresAt:     timePtr(time.Now().Add(-time.Hour)),
				}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrPromoExpired,
		},
		{
			name: "error: usage limit reached",
			fields: fields{
				promoRepo: promomocks.NewPromoRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			args: args{
				ctx:         context.Background(),
				code:        "LIMITED",
				orderAmount: 100,
			},
			mockCall: func(f fields) {
				f.promoRepo.On("GetActiveByCode", mock.Anything, "LIMITED").Return(&model.PromoCode{
					ID:            4,
					Code:          "LIMITED",
					DiscountType:  constant.DiscountTypeFixed,
					DiscountValue: 10,
					MaxUses:       int64Ptr(100),
					CurrentUses:   100,
					IsActive:      true,
				}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrPromoUsageLimit,
		},
		{
			name: "error: order below minimum, usage limit not reached",
			fields: fields{
				promoRepo: promomocks.NewPromoRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			args: args{
				ctx:         context.Background(),
				code:        "BIGSPEND",
				orderAmount: 49.99,
			},
			mockCall: func(f fields) {
				f.promoRepo.On("GetActiveByCode", mock.Anything, "BIGSPEND").Return(&model.PromoCode{
					ID:             5,
					Code:           "BIGSPEND",
					DiscountType:   constant.DiscountTypePercentage,
					DiscountValue:  20,
					MinOrderAmount: 50,
					IsActive:       true,
				}, nil).Once()
			},
			wantErr:    true,
			errCode:    constant.ErrPromoBelowMinimum,
			wantErrMsg: "50.00 DT",
		},
		{
			name: "success: order amount exactly at minimum",
			fields: fields{
				promoRepo: promomocks.NewPromoRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			args: args{
				ctx:         context.Background(),
				code:        "BIGSPEND",
				orderAmount: 50,
			},
			mockCall: func(f fields) {
				f.promoRepo.On("GetActiveByCode", mock.Anything, "BIGSPEND").Return(&model.PromoCode{
					ID:             5,
					Code:           "BIGSPEND",
					DiscountType:   constant.DiscountTypePercentage,
					DiscountValue:  20,
					MinOrderAmount: 50,
					IsActive:       true,
				}, nil).Once()
			},
			wantDiscount: 10,
		},
		{
			name: "success: one use remaining",
			fields: fields{
				promoRepo: promomocks.NewPromoRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			args: args{
				ctx:         context.Background(),
				code:        "ALMOST",
				orderAmount: 100,
			},
			mockCall: func(f fields) {
				f.promoRepo.On("GetActiveByCode", mock.Anything, "ALMOST").Return(&model.PromoCode{
					ID:            7,
					Code:          "ALMOST",
					DiscountType:  constant.DiscountTypeFixed,
					DiscountValue: 15,
					MaxUses:       int64Ptr(5),
					CurrentUses:   4,
					IsActive:      true,
				}, nil).Once()
			},
			wantDiscount: 15,
		},
		{
			name: "success: unlimited uses ignores current counter",
			fields: fields{
				promoRepo: promomocks.NewPromoRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			args: args{
				ctx:         context.Background(),
				code:        "FOREVER",
				orderAmount: 100,
			},
			mockCall: func(f fields) {
				f.promoRepo.On("GetActiveByCode", mock.Anything, "FOREVER").Return(&model.PromoCode{
					ID:            6,
					Code:          "FOREVER",
					DiscountType:  constant.DiscountTypeFixed,
					DiscountValue: 5,
					MaxUses:       nil,
					CurrentUses:   99999,
					IsActive:      true,
				}, nil).Once()
			},
			wantDiscount: 5,
		},
		{
			name: "error: blank code",
			fields: fields{
				promoRepo: promomocks.NewPromoRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			args: args{
				ctx:         context.Background(),
				code:        "   ",
				orderAmount: 100,
			},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name: "error: repository failure",
			fields: fields{
				promoRepo: promomocks.NewPromoRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			args: args{
				ctx:         context.Background(),
				code:        "ANY",
				orderAmount: 100,
			},
			mockCall: func(f fields) {
				f.promoRepo.On("GetActiveByCode", mock.Anything, "ANY").Return(nil, errors.New("db error")).Once()
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
			app := apppromo.NewPromoApp(tt.fields.promoRepo, tt.fields.redisRepo)

			got, err := app.Validate(tt.args.ctx, tt.args.code, tt.args.orderAmount)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				if tt.wantErrMsg != "" && !strings.Contains(err.Error(), tt.wantErrMsg) {
					t.Fatalf("error message = %q, want it to contain %q", err.Error(), tt.wantErrMsg)
				}
				return
			}

			if got.DiscountAmount != tt.wantDiscount {
				t.Fatalf("Validate() DiscountAmount = %v, want %v", got.DiscountAmount, tt.wantDiscount)
			}
		})
	}
}

func TestPromoApp_Create(t *testing.T) {
	type fields struct {
		promoRepo *promomocks.PromoRepository
		redisRepo *redismocks.Repository
	}
	tests := []struct {
		name     string
		fields   fields
		req      *model.CreatePromoCodeRequest
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: code stored upper-cased and active",
			fields: fields{
				promoRepo: promomocks.NewPromoRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			req: &model.CreatePromoCodeRequest{
				Code:          "welcome10",
				DiscountType:  constant.DiscountTypePercentage,
				DiscountValue: 10,
			},
			mockCall: func(f fields) {
				f.promoRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *model.PromoCode) bool {
					return p.Code == "WELCOME10" && p.IsActive
				})).Return(uint64(7), nil).Once()
				f.redisRepo.On("InvalidateTag", mock.Anything, constant.CacheTagPromoCodes).Return(nil).Once()
			},
		},
		{
			name: "error: invalid discount type",
			fields: fields{
				promoRepo: promomocks.NewPromoRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			req: &model.CreatePromoCodeRequest{
				Code:          "BAD",
				DiscountType:  constant.DiscountType("bogus"),
				DiscountValue: 10,
			},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name: "error: duplicate code",
			fields: fields{
				promoRepo: promomocks.NewPromoRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			req: &model.CreatePromoCodeRequest{
				Code:          "DUP",
				DiscountType:  constant.DiscountTypeFixed,
				DiscountValue: 5,
			},
			mockCall: func(f fields) {
				f.promoRepo.On("Create", mock.Anything, mock.Anything).Return(uint64(0), &mysqlDuplicateErr).Once()
			},
			wantErr: true,
			errCode: constant.ErrPromoCodeExists,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := apppromo.NewPromoApp(tt.fields.promoRepo, tt.fields.redisRepo)

			got, err := app.Create(context.Background(), tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Create() error = %v, wantErr %v", err, tt.wantErr)
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

			if got.ID == 0 {
				t.Fatal("Create() returned zero ID")
			}
		})
	}
}
