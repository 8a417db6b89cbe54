package user_test

import (
	"context"
	"errors"
	"testing"
	"time"

	appuser "github.com/emmaeryne/amjednamoussa/application/user"
	"github.com/emmaeryne/amjednamoussa/cmd/config"
	"github.com/emmaeryne/amjednamoussa/constant"
	redismocks "github.com/emmaeryne/amjednamoussa/mocks/repository/redis"
	usermocks "github.com/emmaeryne/amjednamoussa/mocks/repository/user"
	"github.com/emmaeryne/amjednamoussa/model"
	redisrepo "github.com/emmaeryne/amjednamoussa/repository/redis"
	cerr "github.com/emmaeryne/amjednamoussa/utils/errors"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func authConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret",
			JWTExpiration:  time.Hour,
			SessionExpTime: time.Hour,
		},
	}
}

func TestUserApp_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	adminUser := &model.AdminUser{
		ID:           1,
		Name:         "Admin",
		Email:        "admin@namoussa.tn",
		PasswordHash: string(hash),
	}

	type fields struct {
		userRepo  *usermocks.UserRepository
		redisRepo *redismocks.Repository
	}
	tests := []struct {
		name     string
		fields   fields
		req      *model.LoginRequest
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: valid credentials",
			fields: fields{
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			req: &model.LoginRequest{Email: "admin@namoussa.tn", Password: "s3cret"},
			mockCall: func(f fields) {
				f.userRepo.On("GetByEmail", mock.Anything, "admin@namoussa.tn").Return(adminUser, nil).Once()
				f.redisRepo.On("SetSession", mock.Anything, mock.Anything, uint64(1), time.Hour).Return(nil).Once()
			},
		},
		{
			name: "error: unknown email",
			fields: fields{
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			req: &model.LoginRequest{Email: "nobody@namoussa.tn", Password: "s3cret"},
			mockCall: func(f fields) {
				f.userRepo.On("GetByEmail", mock.Anything, "nobody@namoussa.tn").Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name: "error: wrong password",
			fields: fields{
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			req: &model.LoginRequest{Email: "admin@namoussa.tn", Password: "wrong"},
			mockCall: func(f fields) {
				f.userRepo.On("GetByEmail", mock.Anything, "admin@namoussa.tn").Return(adminUser, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidPassword,
		},
		{
			name: "error: repository failure",
			fields: fields{
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			req: &model.LoginRequest{Email: "admin@namoussa.tn", Password: "s3cret"},
			mockCall: func(f fields) {
				f.userRepo.On("GetByEmail", mock.Anything, "admin@namoussa.tn").Return(nil, errors.New("db error")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
		{
			name: "error: session store unavailable fails the login",
			fields: fields{
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			req: &model.LoginRequest{Email: "admin@namoussa.tn", Password: "s3cret"},
			mockCall: func(f fields) {
				f.userRepo.On("GetByEmail", mock.Anything, "admin@namoussa.tn").Return(adminUser, nil).Once()
				f.redisRepo.On("SetSession", mock.Anything, mock.Anything, uint64(1), time.Hour).
					Return(redisrepo.ErrSessionStoreUnavailable).Once()
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
			app := appuser.NewUserApp(authConfig(), tt.fields.userRepo, tt.fields.redisRepo)

			got, err := app.Login(context.Background(), tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Login() error = %v, wantErr %v", err, tt.wantErr)
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

			if got.Token == "" {
				t.Fatal("Login() returned empty token")
			}
			if got.Email != tt.req.Email {
				t.Fatalf("Login() Email = %s, want %s", got.Email, tt.req.Email)
			}
		})
	}
}

func TestUserApp_ValidateToken(t *testing.T) {
	t.Run("round trip through login", func(t *testing.T) {
		hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("bcrypt: %v", err)
		}

		userRepo := usermocks.NewUserRepository(t)
		userRepo.On("GetByEmail", mock.Anything, "admin@namoussa.tn").Return(&model.AdminUser{
			ID:           7,
			Email:        "admin@namoussa.tn",
			PasswordHash: string(hash),
		}, nil).Once()

		var jti string
		redisRepo := redismocks.NewRepository(t)
		redisRepo.On("SetSession", mock.Anything, mock.Anything, uint64(7), time.Hour).Run(func(args mock.Arguments) {
			jti = args.String(1)
		}).Return(nil).Once()
		redisRepo.On("GetSession", mock.Anything, mock.MatchedBy(func(s string) bool {
			return s == jti
		})).Return(uint64(7), nil).Once()

		app := appuser.NewUserApp(authConfig(), userRepo, redisRepo)

		resp, err := app.Login(context.Background(), &model.LoginRequest{Email: "admin@namoussa.tn", Password: "s3cret"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}

		userID, err := app.ValidateToken(context.Background(), resp.Token)
		if err != nil {
			t.Fatalf("ValidateToken() error = %v", err)
		}
		if userID != 7 {
			t.Fatalf("ValidateToken() userID = %d, want 7", userID)
		}
	})

	t.Run("logout revokes the session", func(t *testing.T) {
		hash, _ := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)

		userRepo := usermocks.NewUserRepository(t)
		userRepo.On("GetByEmail", mock.Anything, "admin@namoussa.tn").Return(&model.AdminUser{
			ID:           7,
			Email:        "admin@namoussa.tn",
			PasswordHash: string(hash),
		}, nil).Once()

		var jti string
		redisRepo := redismocks.NewRepository(t)
		redisRepo.On("SetSession", mock.Anything, mock.Anything, uint64(7), time.Hour).Run(func(args mock.Arguments) {
			jti = args.String(1)
		}).Return(nil).Once()
		redisRepo.On("DeleteSession", mock.Anything, mock.MatchedBy(func(s string) bool {
			return s == jti
		})).Return(nil).Once()

		app := appuser.NewUserApp(authConfig(), userRepo, redisRepo)

		resp, err := app.Login(context.Background(), &model.LoginRequest{Email: "admin@namoussa.tn", Password: "s3cret"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}

		if err := app.Logout(context.Background(), resp.Token); err != nil {
			t.Fatalf("Logout() error = %v", err)
		}
	})

	t.Run("error: revoked session", func(t *testing.T) {
		hash, _ := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)

		userRepo := usermocks.NewUserRepository(t)
		userRepo.On("GetByEmail", mock.Anything, "admin@namoussa.tn").Return(&model.AdminUser{
			ID:           7,
			Email:        "admin@namoussa.tn",
			PasswordHash: string(hash),
		}, nil).Once()

		redisRepo := redismocks.NewRepository(t)
		redisRepo.On("SetSession", mock.Anything, mock.Anything, uint64(7), time.Hour).Return(nil).Once()
		redisRepo.On("GetSession", mock.Anything, mock.Anything).Return(uint64(0), errors.New("session not found")).Once()

		app := appuser.NewUserApp(authConfig(), userRepo, redisRepo)

		resp, err := app.Login(context.Background(), &model.LoginRequest{Email: "admin@namoussa.tn", Password: "s3cret"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}

		if _, err := app.ValidateToken(context.Background(), resp.Token); err == nil {
			t.Fatal("ValidateToken() expected error for revoked session")
		}
	})
}
